package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"svns/internal/exitcode"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd deletes every task.
type ClearCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *ClearCmd) SetForce(force bool) {
	c.force = force
}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all tasks" }
func (c *ClearCmd) Usage() string     { return "svns clear --force" }
func (c *ClearCmd) NeedsStore() bool  { return true }
func (c *ClearCmd) NeedsAuth() bool   { return false }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	n := len(env.Tasks.Tasks())
	if n > 0 && !c.force {
		fmt.Fprintf(errOut, "error: %d tasks would be deleted (use --force)\n", n)
		return exitcode.UserError
	}

	if err := env.Tasks.Clear(ctx); err != nil {
		return saveFailed(errOut, env, err)
	}
	return ok(env, out, "ok")
}
