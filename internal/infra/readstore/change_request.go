package readstore

import (
	"context"

	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"
	"geo-tours/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ChangeRequestReadStore struct {
	dbtx db.DBTX
}

func NewChangeRequestReadStore(dbtx db.DBTX) *ChangeRequestReadStore {
	return &ChangeRequestReadStore{dbtx: dbtx}
}

func (r *ChangeRequestReadStore) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]queries.ChangeRequestView, error) {
	query, args, err := psql.Select("id", "booking_id", "requested_date", "reason", "status", "admin_note", "resolved_at", "created_at").
		From("booking_change_requests").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build change request list query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list change requests", err)
	}
	defer rows.Close()

	views := []queries.ChangeRequestView{}
	for rows.Next() {
		var v queries.ChangeRequestView
		if err := rows.Scan(&v.ID, &v.BookingID, &v.RequestedDate, &v.Reason, &v.Status, &v.AdminNote, &v.ResolvedAt, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan change request view", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
