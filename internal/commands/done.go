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
	Register(NewDoneCmd(true))
	Register(NewDoneCmd(false))
}

// DoneCmd sets or clears the completion flag of a task. The same type
// backs both "done" and "undo".
type DoneCmd struct {
	done bool
}

// NewDoneCmd returns the done command, or the undo command when done is false.
func NewDoneCmd(done bool) *DoneCmd {
	return &DoneCmd{done: done}
}

func (c *DoneCmd) Name() string {
	if c.done {
		return "done"
	}
	return "undo"
}

func (c *DoneCmd) Aliases() []string { return nil }

func (c *DoneCmd) Synopsis() string {
	if c.done {
		return "Mark a task completed"
	}
	return "Reopen a completed task"
}

func (c *DoneCmd) Usage() string    { return fmt.Sprintf("svns %s <ref>", c.Name()) }
func (c *DoneCmd) NeedsStore() bool { return true }
func (c *DoneCmd) NeedsAuth() bool  { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	t, rest, found := lookupTask(env.Tasks, args, errOut)
	if !found {
		return exitcode.UserError
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	done := c.done
	if _, _, err := env.Tasks.Update(ctx, t.ID, task.Patch{Done: &done}); err != nil {
		return saveFailed(errOut, env, err)
	}
	return ok(env, out, "ok")
}
