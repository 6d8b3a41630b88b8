// Package main is the entry point for the svns CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"svns/internal/backend/googletasks"
	"svns/internal/cli"
	"svns/internal/commands"
	"svns/internal/config"
	"svns/internal/kv"
	"svns/internal/log"
	"svns/internal/service"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w in %s", cli.ErrNoOAuthClient, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, cli.ErrNotLoggedIn
		}
		return googletasks.New(ctx, cfg)
	}

	opener := func(ctx context.Context, cfg *config.Config) (kv.Store, error) {
		return kv.OpenSQLite(cfg.DatabasePath(), log.GetLogger("kv"))
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory, opener)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
