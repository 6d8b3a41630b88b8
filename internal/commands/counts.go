package commands

import (
	"context"
	"flag"
	"io"

	"svns/internal/exitcode"
	"svns/internal/output"
)

func init() {
	Register(&CountsCmd{})
}

// CountsCmd prints open and done counts.
type CountsCmd struct{}

func (c *CountsCmd) Name() string      { return "counts" }
func (c *CountsCmd) Aliases() []string { return nil }
func (c *CountsCmd) Synopsis() string  { return "Print open and done counts" }
func (c *CountsCmd) Usage() string     { return "svns counts" }
func (c *CountsCmd) NeedsStore() bool  { return true }
func (c *CountsCmd) NeedsAuth() bool   { return false }

func (c *CountsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CountsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	output.FormatCounts(out, env.Tasks.Summary(), env.Tasks.Capacity())
	return exitcode.Success
}
