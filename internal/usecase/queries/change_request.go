package queries

import (
	"context"

	"github.com/google/uuid"
)

type ChangeRequestReadStore interface {
	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]ChangeRequestView, error)
}

type ChangeRequestQueries interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]ChangeRequestView, error)
}

type changeRequestQueriesImpl struct {
	store ChangeRequestReadStore
}

func NewChangeRequestQueries(store ChangeRequestReadStore) ChangeRequestQueries {
	return &changeRequestQueriesImpl{store: store}
}

func (q *changeRequestQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]ChangeRequestView, error) {
	views, err := q.store.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}
