package components

import (
	"log/slog"

	"storefront-cart/internal/infra/couponclient"
	"storefront-cart/internal/infra/ordergateway"
	"storefront-cart/internal/pkg/config"
	"storefront-cart/internal/usecase"

	"go.uber.org/fx"
)

var CollaboratorModule = fx.Module("collaborators",
	fx.Provide(
		func(cfg config.Config, logger *slog.Logger) usecase.CouponValidator {
			return couponclient.New(cfg.Coupon, logger)
		},
		func(cfg config.Config, logger *slog.Logger) usecase.OrderSubmitter {
			return ordergateway.New(cfg.Order, logger)
		},
	),
)
