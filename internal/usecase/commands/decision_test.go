//go:build unit

package commands_test

import (
	"context"
	"testing"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/errs"
	"geo-tours/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("approves a pending booking and notifies the owner", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())
		note := "confirmed by phone"

		require.NoError(t, f.bookings.ApproveBooking(ctx, id, &note))

		b := f.stored(id)
		assert.Equal(t, booking.StatusApproved, b.Status)
		require.NotNil(t, b.ApprovedAt)
		assert.Equal(t, fixedNow, *b.ApprovedAt)
		require.NotNil(t, b.AdminNote)
		assert.Equal(t, note, *b.AdminNote)

		require.Len(t, f.dispatcher.events, 1)
		ev := f.dispatcher.events[0]
		require.NotNil(t, ev.Notification)
		assert.Equal(t, "booking_approved", ev.Notification.Kind)
		require.NotNil(t, ev.Email)
		assert.Equal(t, notify.TemplateBookingApproved, ev.Email.Template)
		assert.Equal(t, "nino@example.com", ev.Email.Recipient)
		assert.InDelta(t, 200, ev.Email.Payload["balanceDue"].(float64), 1e-9)
	})

	t.Run("approving twice fails", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())

		require.NoError(t, f.bookings.ApproveBooking(ctx, id, nil))
		require.ErrorIs(t, f.bookings.ApproveBooking(ctx, id, nil), errs.ErrInvalidBookingState)
	})

	t.Run("rejecting a cancelled booking fails", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build())

		require.ErrorIs(t, f.bookings.RejectBooking(ctx, id, nil), errs.ErrInvalidBookingState)
	})

	t.Run("deciding a deleted booking fails", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Deleted(fixedNow).Build())

		require.ErrorIs(t, f.bookings.ApproveBooking(ctx, id, nil), errs.ErrBookingDeleted)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		require.ErrorIs(t, f.bookings.ApproveBooking(ctx, uuid.New(), nil), errs.ErrBookingNotFound)
	})
}

func TestCancelBookingByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels an approved booking", func(t *testing.T) {
		f := newFixture()
		seed := builder.NewBookingBuilder().WithStatus(booking.StatusApproved).Build()
		id := f.seedBooking(seed)

		require.NoError(t, f.bookings.CancelBookingByUser(ctx, *seed.UserID, id))

		b := f.stored(id)
		assert.Equal(t, booking.StatusCancelled, b.Status)
		assert.Nil(t, b.ApprovedAt)
		require.NotNil(t, b.CancelledAt)
	})

	t.Run("someone else's booking is not cancellable", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())

		require.ErrorIs(t, f.bookings.CancelBookingByUser(ctx, uuid.New(), id), errs.ErrBookingNotOwned)
	})

	t.Run("cancelling a rejected booking fails", func(t *testing.T) {
		f := newFixture()
		seed := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).Build()
		id := f.seedBooking(seed)

		require.ErrorIs(t, f.bookings.CancelBookingByUser(ctx, *seed.UserID, id), errs.ErrBookingClosed)
	})
}

func TestSoftDeleteAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("delete restore round trip", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())

		require.NoError(t, f.bookings.SoftDeleteBooking(ctx, id))
		assert.True(t, f.stored(id).IsDeleted)

		require.NoError(t, f.bookings.RestoreBooking(ctx, id))
		assert.False(t, f.stored(id).IsDeleted)
		assert.Nil(t, f.stored(id).DeletedAt)
	})

	t.Run("repeat calls are no-op successes", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())

		require.NoError(t, f.bookings.RestoreBooking(ctx, id))
		require.NoError(t, f.bookings.SoftDeleteBooking(ctx, id))
		require.NoError(t, f.bookings.SoftDeleteBooking(ctx, id))
		assert.True(t, f.stored(id).IsDeleted)
	})
}

func TestPurgeBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("purge removes the row", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())

		require.NoError(t, f.bookings.PurgeBooking(ctx, id))
		assert.Nil(t, f.stored(id))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		require.ErrorIs(t, f.bookings.PurgeBooking(ctx, uuid.New()), errs.ErrBookingNotFound)
	})
}
