package repository

import (
	"context"
	"errors"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type ChangeRequestRepository struct{}

func NewChangeRequestRepository() *ChangeRequestRepository {
	return &ChangeRequestRepository{}
}

func (r *ChangeRequestRepository) Create(ctx context.Context, dbtx db.DBTX, req *booking.ChangeRequest) (uuid.UUID, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query, args, err := psql.Insert("booking_change_requests").
		Columns("id", "booking_id", "requested_date", "reason", "status", "admin_note", "resolved_at").
		Values(req.ID, req.BookingID, req.RequestedDate, req.Reason, req.Status, req.AdminNote, req.ResolvedAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build insert change request query", err)
	}

	if err := dbtx.QueryRow(ctx, query, args...).Scan(&req.CreatedAt); err != nil {
		// The partial unique index backs the one-pending-per-booking invariant.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("pending change request already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert change request", err)
	}
	return req.ID, nil
}

func (r *ChangeRequestRepository) Update(ctx context.Context, dbtx db.DBTX, req *booking.ChangeRequest) error {
	query, args, err := psql.Update("booking_change_requests").
		Set("requested_date", req.RequestedDate).
		Set("status", req.Status).
		Set("admin_note", req.AdminNote).
		Set("resolved_at", req.ResolvedAt).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update change request query", err)
	}

	ct, err := dbtx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update change request", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("change request not found", nil, infra.KindNotFound)
	}
	return nil
}
