package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"svns/internal/exitcode"
	"svns/internal/task"
)

func init() {
	Register(&MvCmd{})
}

// MvCmd moves a task to the other bucket.
type MvCmd struct{}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return []string{"move"} }
func (c *MvCmd) Synopsis() string  { return "Move a task between signal and noise" }
func (c *MvCmd) Usage() string     { return "svns mv <ref> signal|noise" }
func (c *MvCmd) NeedsStore() bool  { return true }
func (c *MvCmd) NeedsAuth() bool   { return false }

func (c *MvCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MvCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	t, rest, found := lookupTask(env.Tasks, args, errOut)
	if !found {
		return exitcode.UserError
	}
	if len(rest) != 1 {
		fmt.Fprintln(errOut, "error: target list required")
		return exitcode.UserError
	}

	b, err := task.ParseBucket(rest[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, _, err := env.Tasks.Move(ctx, t.ID, b); err != nil {
		return saveFailed(errOut, env, err)
	}
	return ok(env, out, "moved to "+string(b))
}
