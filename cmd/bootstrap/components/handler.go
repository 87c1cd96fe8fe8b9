package components

import (
	"careserve/internal/handler"
	"careserve/internal/handler/api"
	"careserve/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewServiceHandler,
		api.NewDashboardHandler,
		api.NewExportHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
