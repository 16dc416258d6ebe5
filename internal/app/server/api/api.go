//GET    /api/v1/health                                 # Проверка сервиса и хранилища
//GET    /api/v1/vaults                                 # Список хранилищ
//POST   /api/v1/vaults                                 # Создать или обновить хранилище
//GET    /api/v1/vaults/{vaultID}                       # Получить хранилище
//DELETE /api/v1/vaults/{vaultID}                       # Удалить хранилище (каскадно)
//GET    /api/v1/vaults/{vaultID}/tags                  # Теги хранилища
//PUT    /api/v1/vaults/{vaultID}/tags                  # Обновить набор тегов (409 при повторе метки)
//DELETE /api/v1/vaults/{vaultID}/tags/{tagID}          # Удалить тег
//GET    /api/v1/vaults/{vaultID}/accounts              # Аккаунты хранилища
//POST   /api/v1/vaults/{vaultID}/accounts              # Создать или обновить аккаунт
//GET    /api/v1/vaults/{vaultID}/accounts/{accountID}  # Получить аккаунт
//DELETE /api/v1/vaults/{vaultID}/accounts/{accountID}  # Удалить аккаунт

package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"vaultkeeper/internal/app"
	accountAPI "vaultkeeper/internal/app/server/api/http/account"
	healthAPI "vaultkeeper/internal/app/server/api/http/health"
	"vaultkeeper/internal/app/server/api/http/middleware"
	"vaultkeeper/internal/app/server/api/http/middleware/logger"
	tagAPI "vaultkeeper/internal/app/server/api/http/tag"
	vaultAPI "vaultkeeper/internal/app/server/api/http/vault"
)

type Handlers struct {
	Health  *healthAPI.Handler
	Vault   *vaultAPI.Handler
	Tag     *tagAPI.Handler
	Account *accountAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(a *app.App, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	API := humachi.New(mux, huma.DefaultConfig("Vaultkeeper API", "1.0.0"))

	h := handlers(a, log)
	h.Health.SetupRoutes(API)
	h.Vault.SetupRoutes(API)
	h.Tag.SetupRoutes(API)
	h.Account.SetupRoutes(API)

	return mux
}

func handlers(a *app.App, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer(loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(func(ctx context.Context) error {
		_, err := a.Vaults.List(ctx)
		return err
	}, log, middlewares.GetAllAndClear())

	vaultHandler := vaultAPI.NewHandler(a.Vaults, log, middlewares.GetAllAndClear())
	tagHandler := tagAPI.NewHandler(a.Tags, a.Vaults, log, middlewares.GetAllAndClear())
	accountHandler := accountAPI.NewHandler(a.Accounts, a.Vaults, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Vault:   vaultHandler,
		Tag:     tagHandler,
		Account: accountHandler,
	}
}
