package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vaultkeeper/internal/app"
	"vaultkeeper/internal/app/server"
	"vaultkeeper/internal/config"
	"vaultkeeper/internal/utils/logger"
)

func main() {
	conf := config.MustLoad("")
	log := logger.NewWithLevel(conf.Env, conf.Logger.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, conf, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := server.New(a, conf.Server.RunAddress, log).Run(ctx); err != nil {
		log.Error("server stopped", "error", err)
		a.Close()
		os.Exit(1)
	}
	log.Info("server exiting gracefully")
}
