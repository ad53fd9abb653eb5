//go:build unit

package commands_test

import (
	"context"
	"testing"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/errs"
	"geo-tours/internal/pkg/patch"
	"geo-tours/internal/usecase/commands"
	"geo-tours/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking with tour defaults", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)
		userID := f.seedUser()

		id, err := f.bookings.CreateBooking(ctx, commands.CreateBookingInput{
			UserID:      userID,
			TourID:      tourID,
			DesiredDate: "2026-03-05",
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)

		b := f.stored(id)
		require.NotNil(t, b)
		assert.Equal(t, booking.StatusPending, b.Status)
		assert.Equal(t, booking.CurrencyGEL, b.Currency)
		require.Len(t, b.Tours, 1)
		assert.Equal(t, tourID, b.Tours[0].TourID)
		assert.Equal(t, 1, b.Tours[0].Adults)
		assert.Equal(t, booking.CarSedan, b.Tours[0].CarType)
		require.NotNil(t, b.TourID)
		assert.Equal(t, tourID, *b.TourID)

		require.Len(t, f.dispatcher.events, 1)
		ev := f.dispatcher.events[0]
		require.NotNil(t, ev.Notification)
		assert.Equal(t, userID, ev.Notification.UserID)
		assert.Equal(t, "booking_created", ev.Notification.Kind)
		require.NotNil(t, ev.Email)
		assert.Equal(t, notify.TemplateBookingReceived, ev.Email.Template)
		assert.Equal(t, "nino@example.com", ev.Email.Recipient)
	})

	t.Run("inactive tour is rejected", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(false)
		userID := f.seedUser()

		_, err := f.bookings.CreateBooking(ctx, commands.CreateBookingInput{
			UserID: userID, TourID: tourID, DesiredDate: "2026-03-05",
		})
		require.ErrorIs(t, err, errs.ErrTourInactive)
		assert.Empty(t, f.dispatcher.events)
	})

	t.Run("unknown tour", func(t *testing.T) {
		f := newFixture()
		userID := f.seedUser()

		_, err := f.bookings.CreateBooking(ctx, commands.CreateBookingInput{
			UserID: userID, TourID: uuid.New(), DesiredDate: "2026-03-05",
		})
		require.ErrorIs(t, err, errs.ErrTourNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)

		_, err := f.bookings.CreateBooking(ctx, commands.CreateBookingInput{
			UserID: uuid.New(), TourID: tourID, DesiredDate: "2026-03-05",
		})
		require.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("unparseable date fails validation", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)
		userID := f.seedUser()

		_, err := f.bookings.CreateBooking(ctx, commands.CreateBookingInput{
			UserID: userID, TourID: tourID, DesiredDate: "someday",
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestCreateAdminBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to an approved booking", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)
		date := "2026-03-05"

		id, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			GuestName:  "Nino B.",
			GuestEmail: "nino@example.com",
			LegacyTour: booking.LegacyTourInput{TourID: &tourID, DesiredDate: &date},
		})
		require.NoError(t, err)

		b := f.stored(id)
		assert.Equal(t, booking.StatusApproved, b.Status)
		require.NotNil(t, b.ApprovedAt)
		assert.Equal(t, fixedNow, *b.ApprovedAt)
		assert.Nil(t, b.RejectedAt)
		assert.Nil(t, b.CancelledAt)
		assert.Equal(t, booking.CurrencyGEL, b.Currency)
		assert.Equal(t, booking.PayFlat, b.AmountPaidMode)
	})

	t.Run("explicit pending status carries no decision timestamp", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)
		date := "2026-03-05"
		status := booking.StatusPending

		id, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			GuestName:  "Nino B.",
			Status:     &status,
			LegacyTour: booking.LegacyTourInput{TourID: &tourID, DesiredDate: &date},
		})
		require.NoError(t, err)

		b := f.stored(id)
		assert.Equal(t, booking.StatusPending, b.Status)
		assert.Nil(t, b.ApprovedAt)
	})

	t.Run("percent payment derives amountPaid", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)
		date := "2026-03-05"
		mode := booking.PayPercent
		total, pct := 200.0, 50.0

		id, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			GuestName:         "Nino B.",
			TotalPrice:        &total,
			AmountPaidMode:    &mode,
			AmountPaidPercent: &pct,
			LegacyTour:        booking.LegacyTourInput{TourID: &tourID, DesiredDate: &date},
		})
		require.NoError(t, err)

		b := f.stored(id)
		assert.InDelta(t, 100, b.AmountPaid, 1e-9)
		require.NotNil(t, b.AmountPaidPercent)
	})

	t.Run("user and guest together fail validation", func(t *testing.T) {
		f := newFixture()
		tourID := f.seedTour(true)
		userID := f.seedUser()
		date := "2026-03-05"

		_, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			UserID:     &userID,
			GuestName:  "Nino B.",
			LegacyTour: booking.LegacyTourInput{TourID: &tourID, DesiredDate: &date},
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("no services fail validation", func(t *testing.T) {
		f := newFixture()

		_, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			GuestName: "Nino B.",
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("hotel inquiry email goes out when requested", func(t *testing.T) {
		f := newFixture()
		hotelID := f.seedHotel("front-desk@roomskazbegi.ge")
		send := true
		checkIn, checkOut := "2026-03-05", "2026-03-08"

		_, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			GuestName: "Nino B.",
			Hotel: &booking.HotelServiceInput{
				HotelID:            hotelID,
				CheckIn:            &checkIn,
				CheckOut:           &checkOut,
				SendRequestToHotel: &send,
			},
		})
		require.NoError(t, err)

		require.Len(t, f.dispatcher.events, 1)
		ev := f.dispatcher.events[0]
		require.NotNil(t, ev.Email)
		assert.Equal(t, notify.TemplateHotelRequest, ev.Email.Template)
		assert.Equal(t, "front-desk@roomskazbegi.ge", ev.Email.Recipient)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		f := newFixture()

		_, err := f.bookings.CreateAdminBooking(ctx, commands.CreateAdminBookingInput{
			GuestName: "Nino B.",
			Hotel:     &booking.HotelServiceInput{HotelID: uuid.New()},
		})
		require.ErrorIs(t, err, errs.ErrHotelNotFound)
	})
}

func TestUpdateAdminBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("patching the total leaves services untouched", func(t *testing.T) {
		f := newFixture()
		seed := builder.NewBookingBuilder().
			WithHotel(builder.NewHotelServiceBuilder().Build(), "Rooms Kazbegi").
			Build()
		id := f.seedBooking(seed)

		err := f.bookings.UpdateAdminBooking(ctx, id, commands.UpdateAdminBookingInput{
			TotalPrice: patch.Value(750.0),
		})
		require.NoError(t, err)

		b := f.stored(id)
		assert.InDelta(t, 750, b.TotalPrice, 1e-9)
		assert.Equal(t, seed.Tours, b.Tours)
		require.NotNil(t, b.Hotel)
		assert.Equal(t, seed.Hotel.HotelID, b.Hotel.HotelID)
		assert.Zero(t, f.state.tourReplacements)
		assert.Zero(t, f.state.hotelReplacements)
	})

	t.Run("null tours clear the whole set", func(t *testing.T) {
		f := newFixture()
		seed := builder.NewBookingBuilder().
			WithHotel(builder.NewHotelServiceBuilder().Build(), "Rooms Kazbegi").
			Build()
		id := f.seedBooking(seed)

		err := f.bookings.UpdateAdminBooking(ctx, id, commands.UpdateAdminBookingInput{
			Tours: patch.Null[[]booking.TourItemInput](),
		})
		require.NoError(t, err)

		b := f.stored(id)
		assert.Empty(t, b.Tours)
		assert.Nil(t, b.TourID)
		assert.Nil(t, b.DesiredDate)
		assert.Equal(t, 1, f.state.tourReplacements)
	})

	t.Run("legacy date patch keeps the rest of the tour", func(t *testing.T) {
		f := newFixture()
		seed := builder.NewBookingBuilder().Build()
		id := f.seedBooking(seed)
		originalTourID := seed.Tours[0].TourID

		err := f.bookings.UpdateAdminBooking(ctx, id, commands.UpdateAdminBookingInput{
			LegacyDesiredDate: patch.Value("2026-04-10"),
		})
		require.NoError(t, err)

		b := f.stored(id)
		require.Len(t, b.Tours, 1)
		assert.Equal(t, originalTourID, b.Tours[0].TourID)
		assert.Equal(t, seed.Tours[0].Adults, b.Tours[0].Adults)
		assert.Equal(t, "2026-04-10", b.Tours[0].DesiredDate.Format("2006-01-02"))
	})

	t.Run("percent mode recomputes against the new total", func(t *testing.T) {
		f := newFixture()
		pct := 25.0
		seed := builder.NewBookingBuilder().WithFinancials(400, 100).Build()
		seed.AmountPaidMode = booking.PayPercent
		seed.AmountPaidPercent = &pct
		id := f.seedBooking(seed)

		err := f.bookings.UpdateAdminBooking(ctx, id, commands.UpdateAdminBookingInput{
			TotalPrice: patch.Value(800.0),
		})
		require.NoError(t, err)

		b := f.stored(id)
		assert.InDelta(t, 200, b.AmountPaid, 1e-9)
	})

	t.Run("removing the only service fails", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Build())

		err := f.bookings.UpdateAdminBooking(ctx, id, commands.UpdateAdminBookingInput{
			Tours: patch.Null[[]booking.TourItemInput](),
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("deleted booking cannot be patched", func(t *testing.T) {
		f := newFixture()
		id := f.seedBooking(builder.NewBookingBuilder().Deleted(fixedNow).Build())

		err := f.bookings.UpdateAdminBooking(ctx, id, commands.UpdateAdminBookingInput{
			TotalPrice: patch.Value(100.0),
		})
		require.ErrorIs(t, err, errs.ErrBookingDeleted)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()

		err := f.bookings.UpdateAdminBooking(ctx, uuid.New(), commands.UpdateAdminBookingInput{
			TotalPrice: patch.Value(100.0),
		})
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}
