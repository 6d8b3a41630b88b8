package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"svns/internal/exitcode"
	"svns/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd replaces the text of a task.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change the text of a task" }
func (c *EditCmd) Usage() string     { return "svns edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	t, rest, found := lookupTask(env.Tasks, args, errOut)
	if !found {
		return exitcode.UserError
	}

	text := strings.TrimSpace(strings.Join(rest, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}
	if text == t.Text {
		return ok(env, out, "unchanged")
	}

	if _, _, err := env.Tasks.Update(ctx, t.ID, task.Patch{Text: &text}); err != nil {
		return saveFailed(errOut, env, err)
	}
	return ok(env, out, "ok")
}
