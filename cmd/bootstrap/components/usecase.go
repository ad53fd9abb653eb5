package components

import (
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/clock"
	"geo-tours/internal/pkg/config"
	"geo-tours/internal/usecase/commands"
	"geo-tours/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) notify.Mailer {
		return notify.NewMailer(cfg.Mail)
	},
	fx.Annotate(
		notify.NewDispatcher,
		fx.As(new(commands.EventDispatcher)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewChangeRequestUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewCalendarQueries,
		queries.NewRevenueQueries,
		queries.NewInvoiceQueries,
		queries.NewChangeRequestQueries,
	),
)
