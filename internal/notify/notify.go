// Package notify delivers the engine's best-effort side effects:
// notification records for registered users and templated emails.
// Delivery runs after the primary transaction commits and never feeds
// failures back into it.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"geo-tours/internal/infra/db"
	"geo-tours/internal/infra/repository"
	"geo-tours/internal/pkg/clock"
	"geo-tours/internal/usecase/shared"

	"github.com/google/uuid"
)

type Notification struct {
	UserID   uuid.UUID
	Kind     string
	Title    string
	Body     string
	Metadata map[string]any
}

type Email struct {
	Template  string
	Recipient string
	Payload   map[string]any
}

// Event is one post-commit side effect bundle. Either part may be nil:
// guest bookings have no notification target, bookings without any
// contact address have no email.
type Event struct {
	Notification *Notification
	Email        *Email
}

type Dispatcher struct {
	uow       shared.UnitOfWork
	mailer    Mailer
	emailLogs shared.EmailLogRepository
	clock     clock.Clock
}

func NewDispatcher(uow shared.UnitOfWork, mailer Mailer, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		uow:       uow,
		mailer:    mailer,
		emailLogs: repository.NewEmailLogRepository(),
		clock:     clk,
	}
}

// Dispatch runs every event, logging failures out of band. At-least-once,
// never at-most-once: a crash between commit and dispatch loses effects,
// a failure after partial delivery may repeat them on retry by callers.
func (d *Dispatcher) Dispatch(ctx context.Context, events []Event) {
	for _, ev := range events {
		if ev.Notification != nil {
			d.dispatchNotification(ctx, ev.Notification)
		}
		if ev.Email != nil {
			d.dispatchEmail(ctx, ev.Email)
		}
	}
}

func (d *Dispatcher) dispatchNotification(ctx context.Context, n *Notification) {
	metadata, err := json.Marshal(n.Metadata)
	if err != nil {
		slog.Error("failed to marshal notification metadata", "kind", n.Kind, "error", err.Error())
		return
	}
	err = d.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return repository.NewNotificationRepository().Create(ctx, dbtx, n.UserID, n.Kind, n.Title, n.Body, metadata)
	})
	if err != nil {
		slog.Error("failed to store notification", "kind", n.Kind, "user_id", n.UserID.String(), "error", err.Error())
	}
}

func (d *Dispatcher) dispatchEmail(ctx context.Context, e *Email) {
	if e.Recipient == "" {
		return
	}

	status := "sent"
	var lastError *string
	if err := d.mailer.Send(ctx, *e); err != nil {
		status = "failed"
		msg := err.Error()
		lastError = &msg
		slog.Error("failed to send email", "template", e.Template, "recipient", e.Recipient, "error", msg)
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		slog.Error("failed to marshal email payload", "template", e.Template, "error", err.Error())
		payload = nil
	}
	err = d.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return d.emailLogs.Append(ctx, dbtx, e.Template, e.Recipient, payload, status, lastError, d.clock.Now())
	})
	if err != nil {
		slog.Error("failed to append email log", "template", e.Template, "error", err.Error())
	}
}
