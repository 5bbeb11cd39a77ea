package bootstrap

import (
	"log/slog"

	"storefront-cart/internal/infra/state"
	"storefront-cart/internal/pkg/clock"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/usecase"

	"go.uber.org/fx"
)

var StateModule = fx.Module("state",
	fx.Provide(
		clock.NewRealClock,
		NewStateRepository,
	),
)

// NewStateRepository picks the persistence backend from config. Unknown
// backends fall back to the file store with a warning rather than failing
// startup.
func NewStateRepository(cfg config.Config, clk clock.Clock, logger *slog.Logger) usecase.StateRepository {
	switch cfg.State.Backend {
	case "memory":
		return state.NewMemoryRepository()
	case "redis":
		return state.NewRedisRepository(cfg.State.RedisAddr, cfg.State.Key, cfg.State.TTL, logger)
	case "file":
		return state.NewFileRepository(cfg.State.FilePath, clk, logger)
	default:
		logger.Warn("unknown state backend, using file store", "backend", cfg.State.Backend)
		return state.NewFileRepository(cfg.State.FilePath, clk, logger)
	}
}
