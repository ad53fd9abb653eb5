package commands

import (
	"context"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/clock"
	"geo-tours/internal/pkg/errs"
	"geo-tours/internal/usecase/shared"

	"github.com/google/uuid"
)

type changeRequestUseCaseImpl struct {
	uow        shared.UnitOfWork
	dispatcher EventDispatcher
	clock      clock.Clock
}

func NewChangeRequestUseCase(uow shared.UnitOfWork, dispatcher EventDispatcher, clk clock.Clock) ChangeRequestCommands {
	return &changeRequestUseCaseImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

// RequestDateChange creates a PENDING change request for an open booking
// owned by the caller. At most one PENDING request may exist per
// booking; the partial unique index backs the check under concurrency.
func (u *changeRequestUseCaseImpl) RequestDateChange(ctx context.Context, userID, bookingID uuid.UUID, requestedDate, reason string) (uuid.UUID, error) {
	var events []notify.Event
	var id uuid.UUID
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID == nil || *b.UserID != userID {
			return errs.ErrBookingNotOwned
		}
		if b.IsDeleted {
			return errs.ErrBookingDeleted
		}
		if b.IsClosed() {
			return errs.Mark(booking.ErrAlreadyClosed, errs.ErrBookingClosed)
		}

		pending, err := tx.Reads().HasPendingChangeRequest(ctx, bookingID)
		if err != nil {
			return err
		}
		if pending {
			return errs.ErrDuplicateChangeRequest
		}

		req, err := booking.NewChangeRequest(bookingID, requestedDate, reason)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		id, err = tx.ChangeRequests().Create(ctx, tx.DB(), req)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateChangeRequest)
			}
			return err
		}

		events = []notify.Event{{
			Notification: &notify.Notification{
				UserID: userID,
				Kind:   "date_change_requested",
				Title:  "Date change request received",
				Body:   "Your request to move booking " + bookingID.String() + " is awaiting review.",
				Metadata: map[string]any{
					"bookingId":       bookingID.String(),
					"changeRequestId": id.String(),
					"requestedDate":   formatDay(req.RequestedDate),
				},
			},
		}}
		return nil
	})
	if err != nil {
		return uuid.Nil, mapBookingWriteErr(err)
	}
	u.dispatcher.Dispatch(ctx, events)
	return id, nil
}

// ApproveChangeRequest resolves a PENDING request and copies its
// requested date onto the parent booking in the same transaction.
func (u *changeRequestUseCaseImpl) ApproveChangeRequest(ctx context.Context, id uuid.UUID, adminNote *string) error {
	return u.resolve(ctx, id, adminNote, true)
}

func (u *changeRequestUseCaseImpl) RejectChangeRequest(ctx context.Context, id uuid.UUID, adminNote *string) error {
	return u.resolve(ctx, id, adminNote, false)
}

func (u *changeRequestUseCaseImpl) resolve(ctx context.Context, id uuid.UUID, adminNote *string, approve bool) error {
	var events []notify.Event
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := tx.Reads().ChangeRequestByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrChangeRequestNotFound)
			}
			return err
		}

		b, err := tx.Reads().BookingByIDForUpdate(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if b.IsDeleted {
			return errs.ErrBookingDeleted
		}
		// A stale pending request must not be approved once the parent
		// booking is closed.
		if b.IsClosed() {
			return errs.Mark(booking.ErrAlreadyClosed, errs.ErrBookingClosed)
		}

		now := u.clock.Now()
		if approve {
			err = req.Approve(now, trimPtr(adminNote))
		} else {
			err = req.Reject(now, trimPtr(adminNote))
		}
		if err != nil {
			return errs.Mark(err, errs.ErrChangeRequestNotPending)
		}
		if err := tx.ChangeRequests().Update(ctx, tx.DB(), req); err != nil {
			return err
		}

		if approve {
			if err := u.applyRequestedDate(ctx, tx, b, req.RequestedDate); err != nil {
				return err
			}
		}

		events = u.resolutionEvents(ctx, tx.Reads(), b, req, approve)
		return nil
	})
	if err != nil {
		return mapBookingWriteErr(err)
	}
	u.dispatcher.Dispatch(ctx, events)
	return nil
}

// applyRequestedDate moves the booking's desired date. When tour items
// exist the first one carries the date and the legacy summary follows;
// otherwise only the legacy field moves.
func (u *changeRequestUseCaseImpl) applyRequestedDate(ctx context.Context, tx shared.Tx, b *booking.Booking, date time.Time) error {
	if len(b.Tours) > 0 {
		b.Tours[0].DesiredDate = date
		if err := tx.Bookings().ReplaceTourItems(ctx, tx.DB(), b.ID, b.Tours); err != nil {
			return err
		}
	}
	d := date
	b.DesiredDate = &d
	return tx.Bookings().Update(ctx, tx.DB(), b)
}

func (u *changeRequestUseCaseImpl) resolutionEvents(
	ctx context.Context,
	reads shared.CommandReads,
	b *booking.Booking,
	req *booking.ChangeRequest,
	approved bool,
) []notify.Event {
	decision := "rejected"
	kind := "date_change_rejected"
	if approved {
		decision = "approved"
		kind = "date_change_approved"
	}
	name, email := resolveContact(ctx, reads, b)

	ev := notify.Event{}
	if b.UserID != nil {
		ev.Notification = &notify.Notification{
			UserID: *b.UserID,
			Kind:   kind,
			Title:  "Date change request " + decision,
			Body:   "Your request to move booking " + b.ID.String() + " was " + decision + ".",
			Metadata: map[string]any{
				"bookingId":       b.ID.String(),
				"changeRequestId": req.ID.String(),
				"requestedDate":   formatDay(req.RequestedDate),
			},
		}
	}
	if email != "" {
		payload := map[string]any{
			"customerName":  name,
			"bookingId":     b.ID.String(),
			"requestedDate": formatDay(req.RequestedDate),
			"decision":      decision,
		}
		if req.AdminNote != nil {
			payload["adminNote"] = *req.AdminNote
		}
		ev.Email = &notify.Email{
			Template:  notify.TemplateDateChangeResult,
			Recipient: email,
			Payload:   payload,
		}
	}
	if ev.Notification == nil && ev.Email == nil {
		return nil
	}
	return []notify.Event{ev}
}
