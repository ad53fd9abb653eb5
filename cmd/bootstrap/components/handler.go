package components

import (
	"geo-tours/internal/handler"
	"geo-tours/internal/handler/api"
	"geo-tours/internal/handler/middleware"
	"geo-tours/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAdminBookingHandler,
		api.NewReportingHandler,
		func(cfg config.Config) *middleware.AuthMiddleware {
			return middleware.NewAuthMiddleware(cfg.JWT)
		},
	),
	fx.Invoke(handler.NewRouter),
)
