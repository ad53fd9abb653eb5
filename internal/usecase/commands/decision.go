package commands

import (
	"context"
	"errors"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/errs"
	"geo-tours/internal/usecase/shared"

	"github.com/google/uuid"
)

// ApproveBooking moves a PENDING booking to APPROVED. The row is locked
// for the duration of the transaction so two concurrent decisions
// serialize; the loser observes a non-PENDING state and fails.
func (u *bookingUseCaseImpl) ApproveBooking(ctx context.Context, id uuid.UUID, adminNote *string) error {
	return u.decide(ctx, id, func(b *booking.Booking) error {
		return b.Approve(u.clock.Now(), trimPtr(adminNote))
	}, notify.TemplateBookingApproved, "booking_approved", "Booking approved")
}

func (u *bookingUseCaseImpl) RejectBooking(ctx context.Context, id uuid.UUID, adminNote *string) error {
	return u.decide(ctx, id, func(b *booking.Booking) error {
		return b.Reject(u.clock.Now(), trimPtr(adminNote))
	}, notify.TemplateBookingRejected, "booking_rejected", "Booking rejected")
}

func (u *bookingUseCaseImpl) decide(
	ctx context.Context,
	id uuid.UUID,
	transition func(b *booking.Booking) error,
	template, kind, title string,
) error {
	var events []notify.Event
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := transition(b); err != nil {
			return mapTransitionErr(err)
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		events = u.decisionEvents(ctx, tx.Reads(), b, template, kind, title)
		return nil
	})
	if err != nil {
		return mapBookingWriteErr(err)
	}
	u.dispatcher.Dispatch(ctx, events)
	return nil
}

func (u *bookingUseCaseImpl) CancelBookingByUser(ctx context.Context, userID, id uuid.UUID) error {
	var events []notify.Event
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b.UserID == nil || *b.UserID != userID {
			return errs.ErrBookingNotOwned
		}
		if err := b.Cancel(u.clock.Now()); err != nil {
			return mapTransitionErr(err)
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		events = u.decisionEvents(ctx, tx.Reads(), b, notify.TemplateBookingCancelled, "booking_cancelled", "Booking cancelled")
		return nil
	})
	if err != nil {
		return mapBookingWriteErr(err)
	}
	u.dispatcher.Dispatch(ctx, events)
	return nil
}

// SoftDeleteBooking is idempotent: deleting an already-deleted booking
// is a no-op success.
func (u *bookingUseCaseImpl) SoftDeleteBooking(ctx context.Context, id uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !b.SoftDelete(u.clock.Now()) {
			return nil
		}
		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
	return mapBookingWriteErr(err)
}

// RestoreBooking is idempotent.
func (u *bookingUseCaseImpl) RestoreBooking(ctx context.Context, id uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !b.Restore() {
			return nil
		}
		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
	return mapBookingWriteErr(err)
}

// PurgeBooking physically removes the row; cascade takes the nested
// records. Irreversible.
func (u *bookingUseCaseImpl) PurgeBooking(ctx context.Context, id uuid.UUID) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Purge(ctx, tx.DB(), id)
	})
	return mapBookingWriteErr(err)
}

// decisionEvents builds the post-commit notification/email bundle for a
// status decision. Reads run inside the transaction; failures degrade to
// the guest identity rather than aborting.
func (u *bookingUseCaseImpl) decisionEvents(
	ctx context.Context,
	reads shared.CommandReads,
	b *booking.Booking,
	template, kind, title string,
) []notify.Event {
	name, email := resolveContact(ctx, reads, b)

	ev := notify.Event{}
	if b.UserID != nil {
		ev.Notification = &notify.Notification{
			UserID: *b.UserID,
			Kind:   kind,
			Title:  title,
			Body:   title + ": " + b.ID.String(),
			Metadata: map[string]any{
				"bookingId": b.ID.String(),
				"status":    b.Status.String(),
			},
		}
	}
	if email != "" {
		payload := map[string]any{
			"customerName": name,
			"bookingId":    b.ID.String(),
			"balanceDue":   b.BalanceDue(),
			"currency":     string(b.Currency),
		}
		if b.AdminNote != nil {
			payload["adminNote"] = *b.AdminNote
		}
		ev.Email = &notify.Email{
			Template:  template,
			Recipient: email,
			Payload:   payload,
		}
	}
	if ev.Notification == nil && ev.Email == nil {
		return nil
	}
	return []notify.Event{ev}
}

// mapTransitionErr lifts entity transition errors onto usecase sentinels.
func mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrDeleted):
		return errs.Mark(err, errs.ErrBookingDeleted)
	case errors.Is(err, booking.ErrNotPending):
		return errs.Mark(err, errs.ErrInvalidBookingState)
	case errors.Is(err, booking.ErrAlreadyClosed):
		return errs.Mark(err, errs.ErrBookingClosed)
	default:
		return errs.Mark(err, errs.ErrInvalidBookingState)
	}
}
