package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"svns/internal/exitcode"
	"svns/internal/output"
	"svns/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `svns` (no args) and `svns list [signal|noise]`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "svns list [signal|noise]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	buckets := task.Buckets
	switch len(args) {
	case 0:
	case 1:
		b, err := task.ParseBucket(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		buckets = []task.Bucket{b}
	default:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	printed := false
	for _, b := range buckets {
		tasks := env.Tasks.Bucket(b)
		if len(tasks) == 0 {
			continue
		}

		output.FormatSectionHeader(out, b, env.Tasks.CountOpen(b), env.Tasks.Capacity())
		for i, t := range tasks {
			output.FormatTask(out, b, i+1, t)
		}
		printed = true
	}

	if !printed && !env.Config.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
