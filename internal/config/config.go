package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env     string
	Storage storage
	Server  server
	Client  client
	Logger  logger
}

type storage struct {
	Driver      string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH"`
	DatabaseURI string `env:"DATABASE_URI"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

// client настраивает CLI на работу с удалённым сервером вместо локального хранилища
type client struct {
	ServerURL string `env:"SERVER_URL"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

// Load собирает конфиг из .env, переменных окружения и (опционально) файла
// configFile. Пустой configFile означает, что файл не используется.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("log_level", "")
	v.SetDefault("storage_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "vaultkeeper.db")
	v.SetDefault("database_uri", "")
	v.SetDefault("run_address", "localhost:8080")
	v.SetDefault("server_url", "")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Env: strings.ToLower(v.GetString("app_env")),
		Storage: storage{
			Driver:      strings.ToLower(v.GetString("storage_driver")),
			SQLitePath:  v.GetString("sqlite_path"),
			DatabaseURI: v.GetString("database_uri"),
		},
		Server: server{RunAddress: v.GetString("run_address")},
		Client: client{ServerURL: v.GetString("server_url")},
		Logger: logger{LogLevel: strings.ToLower(v.GetString("log_level"))},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad как Load, но завершает процесс при ошибке.
func MustLoad(configFile string) *Config {
	cfg, err := Load(configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("%w: unknown APP_ENV %q", ErrInvalidConfig, c.Env)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: SQLITE_PATH is required for sqlite storage", ErrInvalidConfig)
		}
	case DriverPostgres:
		if c.Storage.DatabaseURI == "" {
			return fmt.Errorf("%w: DATABASE_URI is required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Client.ServerURL != "" {
		u, err := url.Parse(c.Client.ServerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: SERVER_URL must be an http(s) URL, got %q", ErrInvalidConfig, c.Client.ServerURL)
		}
	}
	return nil
}
