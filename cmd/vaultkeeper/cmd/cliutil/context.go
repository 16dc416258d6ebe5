// Package cliutil holds helpers shared by the vaultkeeper commands.
package cliutil

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app"
)

var ErrNoApp = errors.New("приложение не инициализировано")

type appKey struct{}

// WithApp stores the application in ctx for the subcommands.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// AppFrom returns the application stored by WithApp or nil.
func AppFrom(ctx context.Context) *app.App {
	a, _ := ctx.Value(appKey{}).(*app.App)
	return a
}

// App returns the application of the running command.
func App(cmd *cobra.Command) (*app.App, error) {
	a := AppFrom(cmd.Context())
	if a == nil {
		return nil, ErrNoApp
	}
	return a, nil
}

// Logger returns the application logger scoped to the command.
func Logger(a *app.App, cmd *cobra.Command) *slog.Logger {
	return a.Log.With("command", cmd.CommandPath())
}
