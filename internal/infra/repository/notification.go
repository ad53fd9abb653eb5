package repository

import (
	"context"

	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, kind, title, body string, metadata []byte) error {
	query, args, err := psql.Insert("notifications").
		Columns("user_id", "kind", "title", "body", "metadata").
		Values(userID, kind, title, body, metadata).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert notification query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert notification", err)
	}
	return nil
}
