// Package cli parses the command line and wires a command to its
// dependencies.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"svns/internal/commands"
	"svns/internal/config"
	"svns/internal/exitcode"
	"svns/internal/kv"
	"svns/internal/log"
	"svns/internal/service"
	"svns/internal/store"
	"svns/internal/task"
)

var (
	// ErrNoOAuthClient is returned by a ServiceFactory when the OAuth
	// client credentials are missing.
	ErrNoOAuthClient = errors.New("oauth_client.json not found")

	// ErrNotLoggedIn is returned by a ServiceFactory when no token is stored.
	ErrNotLoggedIn = errors.New("not logged in (run: svns login)")
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// StoreOpener opens the key-value store that holds the task list.
type StoreOpener func(ctx context.Context, cfg *config.Config) (kv.Store, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	opener   StoreOpener
}

// NewDispatcher creates a new dispatcher with the given registry, service
// factory and store opener.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory, opener StoreOpener) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		opener:   opener,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list everything
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, flagError(err))
		return exitcode.UserError
	}

	// A leading dash left over means the flag parser stopped early
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	log.Setup(errOut, debug)

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if !debug && cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	}

	logger := log.GetLogger("cli")
	logger.Debug().Str("command", cmd.Name()).Str("config", cfg.Dir).Msg("dispatch")

	env := &commands.Env{Config: cfg}

	if cmd.NeedsStore() {
		kvs, err := d.opener(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %s\n", err)
			return exitcode.StorageError
		}
		defer func() {
			if err := kvs.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close store")
			}
		}()
		st := store.New(kvs, log.GetLogger("store"))
		env.Tasks = task.NewModel(ctx, st, task.WithCapacity(cfg.SignalLimit))
	}

	if cmd.NeedsAuth() {
		svc, err := d.factory(ctx, cfg)
		if err != nil {
			if isAuthError(err) {
				fmt.Fprintf(errOut, "error: auth error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}
		env.Remote = svc
	}

	return cmd.Run(ctx, env, positionalArgs, out, errOut)
}

// flagError turns a flag package error into the message shown to the user.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "error: flag needs an argument: " + flagName
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		return "error: unknown flag: " + flagName
	}

	return "error: " + errStr
}

func isAuthError(err error) bool {
	if errors.Is(err, ErrNoOAuthClient) || errors.Is(err, ErrNotLoggedIn) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "token") || strings.Contains(msg, "auth")
}
