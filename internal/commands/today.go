package commands

import (
	"context"
	"flag"
	"io"
	"time"

	"svns/internal/exitcode"
	"svns/internal/output"
)

func init() {
	Register(&TodayCmd{})
}

// TodayCmd prints the day's plan as plain text for pasting elsewhere.
type TodayCmd struct {
	now func() time.Time
}

// SetNow sets the clock (for testing).
func (c *TodayCmd) SetNow(now func() time.Time) {
	c.now = now
}

func (c *TodayCmd) Name() string      { return "today" }
func (c *TodayCmd) Aliases() []string { return nil }
func (c *TodayCmd) Synopsis() string  { return "Print today's plan as text" }
func (c *TodayCmd) Usage() string     { return "svns today" }
func (c *TodayCmd) NeedsStore() bool  { return true }
func (c *TodayCmd) NeedsAuth() bool   { return false }

func (c *TodayCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TodayCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	now := c.now
	if now == nil {
		now = time.Now
	}
	output.FormatPlan(out, now(), env.Tasks.Tasks())
	return exitcode.Success
}
