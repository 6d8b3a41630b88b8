package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func init() {
	Register(&ArchiveCmd{})
}

// ArchiveCmd snapshots completed tasks into the archive log. Completed
// tasks stay on the list; remove them with rm or clear.
type ArchiveCmd struct{}

func (c *ArchiveCmd) Name() string      { return "archive" }
func (c *ArchiveCmd) Aliases() []string { return []string{"newday"} }
func (c *ArchiveCmd) Synopsis() string  { return "Archive completed tasks" }
func (c *ArchiveCmd) Usage() string     { return "svns archive" }
func (c *ArchiveCmd) NeedsStore() bool  { return true }
func (c *ArchiveCmd) NeedsAuth() bool   { return false }

func (c *ArchiveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ArchiveCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	n, err := env.Tasks.ArchiveCompleted(ctx)
	if err != nil {
		return saveFailed(errOut, env, err)
	}
	if n == 0 {
		return ok(env, out, "nothing to archive")
	}
	return ok(env, out, fmt.Sprintf("archived %d", n))
}
