package bootstrap

import (
	"careserve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	TokenModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
