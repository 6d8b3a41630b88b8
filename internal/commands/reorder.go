package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"svns/internal/exitcode"
	"svns/internal/task"
)

func init() {
	Register(&ReorderCmd{})
}

// ReorderCmd rearranges one bucket. Positions name the tasks by their
// current numbers; tasks left out keep their order after the named ones.
type ReorderCmd struct{}

func (c *ReorderCmd) Name() string      { return "reorder" }
func (c *ReorderCmd) Aliases() []string { return nil }
func (c *ReorderCmd) Synopsis() string  { return "Reorder the tasks of a list" }
func (c *ReorderCmd) Usage() string     { return "svns reorder signal|noise <n...>" }
func (c *ReorderCmd) NeedsStore() bool  { return true }
func (c *ReorderCmd) NeedsAuth() bool   { return false }

func (c *ReorderCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReorderCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list and positions required")
		return exitcode.UserError
	}

	b, err := task.ParseBucket(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	current := env.Tasks.Bucket(b)
	ids := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid position: %s\n", arg)
			return exitcode.UserError
		}
		if n < 1 || n > len(current) {
			fmt.Fprintf(errOut, "error: task number out of range: %c%d\n", b.Letter(), n)
			return exitcode.UserError
		}
		ids = append(ids, current[n-1].ID)
	}

	if err := env.Tasks.Reorder(ctx, b, ids); err != nil {
		return saveFailed(errOut, env, err)
	}
	return ok(env, out, "ok")
}
