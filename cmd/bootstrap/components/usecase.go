package components

import (
	"storefront-cart/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		usecase.NewCartStore,
		usecase.NewCheckout,
	),
)
