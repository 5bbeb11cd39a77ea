package bootstrap

import (
	"storefront-cart/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StateModule,
	components.CollaboratorModule,
	components.UseCaseModule,
	components.HandlerModule,
)
