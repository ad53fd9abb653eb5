package repository

import (
	"context"
	"time"

	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"
)

// EmailLogRepository is an append-only trail of outbound mail attempts,
// including the failed ones the engine swallows.
type EmailLogRepository struct{}

func NewEmailLogRepository() *EmailLogRepository {
	return &EmailLogRepository{}
}

func (r *EmailLogRepository) Append(ctx context.Context, dbtx db.DBTX, template, recipient string, payload []byte, status string, lastError *string, at time.Time) error {
	query, args, err := psql.Insert("email_logs").
		Columns("template", "recipient", "payload", "status", "last_error", "created_at").
		Values(template, recipient, payload, status, lastError, at).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert email log query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert email log", err)
	}
	return nil
}
