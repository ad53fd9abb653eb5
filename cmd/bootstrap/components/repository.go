package components

import (
	"geo-tours/internal/infra/db"
	"geo-tours/internal/infra/readstore"
	"geo-tours/internal/infra/uow"
	"geo-tours/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewChangeRequestReadStore,
			fx.As(new(queries.ChangeRequestReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
