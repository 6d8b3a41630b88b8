// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"svns/internal/config"
	"svns/internal/exitcode"
	"svns/internal/service"
	"svns/internal/store"
	"svns/internal/task"
)

// Env is what a command runs against.
type Env struct {
	// Config is always set.
	Config *config.Config

	// Tasks is set when NeedsStore returns true.
	Tasks *task.Model

	// Remote is set when NeedsAuth returns true.
	Remote service.Service
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes the task list.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args and returns the exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// saveFailed reports an error returned by a model mutation. Capacity
// refusals are user errors; anything else means the list could not be
// written.
func saveFailed(errOut io.Writer, env *Env, err error) int {
	if errors.Is(err, task.ErrCapacityExceeded) {
		fmt.Fprintf(errOut, "error: signal capped at %d, finish or move something first\n", env.Tasks.Capacity())
		return exitcode.UserError
	}
	if errors.Is(err, store.ErrStorage) {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// ok prints the success line unless quiet.
func ok(env *Env, out io.Writer, msg string) int {
	if !env.Config.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
