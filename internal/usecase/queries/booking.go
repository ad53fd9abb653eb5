package queries

import (
	"context"
	"time"

	"geo-tours/internal/infra"
	"geo-tours/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingReadStore is the projection source for every booking query.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	Find(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	RevenueRows(ctx context.Context, from, to *time.Time) ([]RevenueRow, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	ListDeleted(ctx context.Context) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

// GetByIDForUser scopes the lookup to the owning user. Bookings of other
// users surface as not found rather than forbidden, so that ownership is
// not probeable.
func (q *bookingQueriesImpl) GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	if view.UserID == nil || *view.UserID != userID || view.IsDeleted {
		return nil, errs.ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter) ([]*BookingView, error) {
	filter.Deleted = false
	views, err := q.store.Find(ctx, filter)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	views, err := q.store.Find(ctx, BookingFilter{UserID: &userID})
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}

// ListDeleted is the back-office trash view.
func (q *bookingQueriesImpl) ListDeleted(ctx context.Context) ([]*BookingView, error) {
	views, err := q.store.Find(ctx, BookingFilter{Deleted: true})
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}

func mapReadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrBookingNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
