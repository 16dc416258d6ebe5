// cmd/vaultkeeper/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app"
	"vaultkeeper/internal/app/client"
	"vaultkeeper/internal/config"
	"vaultkeeper/internal/utils/logger"
)

type rootOptions struct {
	cfgFile    string
	driver     string
	sqlitePath string
	logLevel   string
	serverURL  string
	owned      *app.App
}

// NewRootCmd builds the command tree. A context already carrying an app (see
// cliutil.WithApp) skips configuration loading.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "vaultkeeper",
		Short: "Vaultkeeper - менеджер паролей с хранилищами, тегами и аккаунтами",
		Long: `Vaultkeeper хранит аккаунты и их учётные данные в отдельных хранилищах.
Аккаунты размечаются тегами хранилища, по тегам и тексту их можно искать.

Хранилище данных выбирается конфигурацией: memory, sqlite или postgres.`,
		PersistentPreRunE:  opts.setupApp,
		PersistentPostRunE: opts.closeApp,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "конфигурационный файл")
	flags.StringVar(&opts.driver, "storage", "", "хранилище данных (memory, sqlite, postgres)")
	flags.StringVar(&opts.sqlitePath, "db", "", "путь к файлу SQLite")
	flags.StringVar(&opts.logLevel, "log-level", "", "уровень логирования (debug, info, warn, error)")
	flags.StringVar(&opts.serverURL, "server", "", "URL сервера Vaultkeeper; без него используется локальное хранилище")

	register(rootCmd)
	return rootCmd
}

func (o *rootOptions) setupApp(cmd *cobra.Command, _ []string) error {
	if cliutil.AppFrom(cmd.Context()) != nil {
		return nil
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if o.driver != "" {
		cfg.Storage.Driver = o.driver
	}
	if o.sqlitePath != "" {
		cfg.Storage.SQLitePath = o.sqlitePath
	}
	if o.logLevel != "" {
		cfg.Logger.LogLevel = o.logLevel
	}
	if o.serverURL != "" {
		cfg.Client.ServerURL = o.serverURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewWithLevel(cfg.Env, cfg.Logger.LogLevel)

	var a *app.App
	if cfg.Client.ServerURL != "" {
		a = remoteApp(cfg.Client.ServerURL, log)
		a.Config = cfg
	} else {
		a, err = app.New(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("ошибка инициализации приложения: %w", err)
		}
	}
	o.owned = a
	cmd.SetContext(cliutil.WithApp(cmd.Context(), a))
	return nil
}

func remoteApp(serverURL string, log *slog.Logger) *app.App {
	c := client.New(serverURL, log)
	return app.NewWithServices(c.Vaults(), c.Tags(), c.Accounts(), log)
}

func (o *rootOptions) closeApp(_ *cobra.Command, _ []string) error {
	if o.owned == nil {
		return nil
	}
	err := o.owned.Close()
	o.owned = nil
	return err
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
