package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/server"
)

const defaultAddr = "localhost:8080"

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		Long: `Запускает HTTP API поверх настроенного хранилища.
Адрес берётся из RUN_ADDRESS или флага --addr. Остановка по SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			if a.Remote() {
				return fmt.Errorf("serve работает только с локальным хранилищем, уберите --server")
			}
			if addr == "" && a.Config != nil {
				addr = a.Config.Server.RunAddress
			}
			if addr == "" {
				addr = defaultAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(a, addr, a.Log).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP сервера (host:port)")
	return cmd
}
