//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"geo-tours/internal/infra"
	"geo-tours/internal/pkg/errs"
	"geo-tours/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadStore struct {
	views []*queries.BookingView
	rows  []queries.RevenueRow
}

func (s *fakeReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	for _, v := range s.views {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", errors.New("no rows in result set"), infra.KindNotFound)
}

func (s *fakeReadStore) Find(_ context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	out := []*queries.BookingView{}
	for _, v := range s.views {
		if v.IsDeleted != filter.Deleted {
			continue
		}
		if filter.UserID != nil && (v.UserID == nil || *v.UserID != *filter.UserID) {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if filter.DesiredFrom != nil && (v.DesiredDate == nil || v.DesiredDate.Before(*filter.DesiredFrom)) {
			continue
		}
		if filter.DesiredTo != nil && (v.DesiredDate == nil || !v.DesiredDate.Before(*filter.DesiredTo)) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *fakeReadStore) RevenueRows(_ context.Context, from, to *time.Time) ([]queries.RevenueRow, error) {
	out := []queries.RevenueRow{}
	for _, row := range s.rows {
		if from != nil && row.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !row.CreatedAt.Before(*to) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func view(status string, desired time.Time) *queries.BookingView {
	d := desired
	return &queries.BookingView{
		ID:          uuid.New(),
		Status:      status,
		DesiredDate: &d,
		CreatedAt:   desired.AddDate(0, 0, -7),
	}
}

func TestGetByIDForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	owned := view("APPROVED", day(2026, 3, 5))
	owned.UserID = &userID
	other := view("APPROVED", day(2026, 3, 6))
	otherUser := uuid.New()
	other.UserID = &otherUser
	deleted := view("APPROVED", day(2026, 3, 7))
	deleted.UserID = &userID
	deleted.IsDeleted = true

	q := queries.NewBookingQueries(&fakeReadStore{views: []*queries.BookingView{owned, other, deleted}})

	t.Run("owner reads own booking", func(t *testing.T) {
		got, err := q.GetByIDForUser(ctx, userID, owned.ID)
		require.NoError(t, err)
		assert.Equal(t, owned.ID, got.ID)
	})

	t.Run("someone else's booking reads as not found", func(t *testing.T) {
		_, err := q.GetByIDForUser(ctx, userID, other.ID)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("deleted booking reads as not found", func(t *testing.T) {
		_, err := q.GetByIDForUser(ctx, userID, deleted.ID)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := q.GetByIDForUser(ctx, userID, uuid.New())
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestGetCalendar(t *testing.T) {
	ctx := context.Background()

	t.Run("summary counts every status, days list only approved", func(t *testing.T) {
		store := &fakeReadStore{views: []*queries.BookingView{
			view("APPROVED", day(2026, 3, 5)),
			view("PENDING", day(2026, 3, 5)),
			view("APPROVED", day(2026, 4, 1)),
		}}
		q := queries.NewCalendarQueries(store)

		cal, err := q.GetCalendar(ctx, "2026-03")
		require.NoError(t, err)

		assert.Equal(t, "2026-03", cal.Month)
		assert.Len(t, cal.Days, 31)
		assert.Equal(t, 2, cal.Summary.Total)
		assert.Equal(t, 1, cal.Summary.ByStatus["APPROVED"])
		assert.Equal(t, 1, cal.Summary.ByStatus["PENDING"])

		fifth := cal.Days[4]
		assert.Equal(t, "2026-03-05", fifth.Date)
		assert.Equal(t, 1, fifth.BookingCount)
		require.Len(t, fifth.Bookings, 1)
		assert.Equal(t, "APPROVED", fifth.Bookings[0].Status)
	})

	t.Run("empty month still lists every day", func(t *testing.T) {
		q := queries.NewCalendarQueries(&fakeReadStore{})

		cal, err := q.GetCalendar(ctx, "2026-02")
		require.NoError(t, err)

		assert.Len(t, cal.Days, 28)
		for _, d := range cal.Days {
			assert.Zero(t, d.BookingCount)
			assert.NotNil(t, d.Bookings)
		}
	})

	t.Run("bad month fails validation", func(t *testing.T) {
		q := queries.NewCalendarQueries(&fakeReadStore{})
		_, err := q.GetCalendar(ctx, "March 2026")
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestGetRevenueSummary(t *testing.T) {
	ctx := context.Background()
	store := &fakeReadStore{rows: []queries.RevenueRow{
		{CreatedAt: day(2026, 3, 1), TotalPrice: 300, AmountPaid: 100},
		{CreatedAt: day(2026, 3, 15), TotalPrice: 200, AmountPaid: 200},
		{CreatedAt: day(2026, 4, 2), TotalPrice: 400, AmountPaid: 250},
	}}
	q := queries.NewRevenueQueries(store)

	t.Run("buckets by creation month with grand totals", func(t *testing.T) {
		got, err := q.GetRevenueSummary(ctx, nil, nil)
		require.NoError(t, err)

		require.Len(t, got.Buckets, 2)
		assert.Equal(t, "2026-03", got.Buckets[0].Month)
		assert.InDelta(t, 500, got.Buckets[0].Revenue, 1e-9)
		assert.InDelta(t, 300, got.Buckets[0].Paid, 1e-9)
		assert.InDelta(t, 200, got.Buckets[0].Balance, 1e-9)
		assert.Equal(t, "2026-04", got.Buckets[1].Month)
		assert.InDelta(t, 400, got.Buckets[1].Revenue, 1e-9)

		assert.InDelta(t, 900, got.TotalRevenue, 1e-9)
		assert.InDelta(t, 550, got.TotalPaid, 1e-9)
		assert.InDelta(t, 350, got.TotalBalance, 1e-9)
	})

	t.Run("toMonth is inclusive", func(t *testing.T) {
		from, to := "2026-03", "2026-03"
		got, err := q.GetRevenueSummary(ctx, &from, &to)
		require.NoError(t, err)

		require.Len(t, got.Buckets, 1)
		assert.Equal(t, "2026-03", got.Buckets[0].Month)
		assert.InDelta(t, 500, got.TotalRevenue, 1e-9)
	})

	t.Run("inverted range fails validation", func(t *testing.T) {
		from, to := "2026-04", "2026-03"
		_, err := q.GetRevenueSummary(ctx, &from, &to)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("empty result keeps zeroed totals", func(t *testing.T) {
		got, err := queries.NewRevenueQueries(&fakeReadStore{}).GetRevenueSummary(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, got.Buckets)
		assert.Zero(t, got.TotalRevenue)
	})
}

func TestGetInvoice(t *testing.T) {
	ctx := context.Background()

	base := func() *queries.BookingView {
		v := view("APPROVED", day(2026, 3, 5))
		v.GuestName = "Nino B."
		v.GuestEmail = "nino@example.com"
		v.TotalPrice = 300
		v.AmountPaid = 100
		v.BalanceDue = 200
		v.Currency = "GEL"
		return v
	}

	t.Run("guest booking with legacy tour line", func(t *testing.T) {
		v := base()
		tourID := uuid.New()
		title := "Kazbegi day trip"
		v.TourID = &tourID
		v.TourTitle = &title

		q := queries.NewInvoiceQueries(&fakeReadStore{views: []*queries.BookingView{v}})
		inv, err := q.GetInvoice(ctx, v.ID)
		require.NoError(t, err)

		assert.Equal(t, v.ID, inv.BookingID)
		assert.Equal(t, "Nino B.", inv.CustomerName)
		assert.Equal(t, "nino@example.com", inv.CustomerEmail)
		require.NotNil(t, inv.LegacyTour)
		assert.Equal(t, "Kazbegi day trip", inv.LegacyTour.TourTitle)
		assert.Nil(t, inv.Hotel)
		assert.NotNil(t, inv.Tours)
		assert.InDelta(t, 200, inv.BalanceDue, 1e-9)
	})

	t.Run("registered user identity wins", func(t *testing.T) {
		v := base()
		userID := uuid.New()
		name, email := "Giorgi K.", "giorgi@example.com"
		v.UserID = &userID
		v.UserName = &name
		v.UserEmail = &email

		q := queries.NewInvoiceQueries(&fakeReadStore{views: []*queries.BookingView{v}})
		inv, err := q.GetInvoice(ctx, v.ID)
		require.NoError(t, err)

		assert.Equal(t, "Giorgi K.", inv.CustomerName)
		assert.Equal(t, "giorgi@example.com", inv.CustomerEmail)
	})

	t.Run("structured hotel wins over legacy name", func(t *testing.T) {
		v := base()
		legacyName := "Ignored Inn"
		v.HotelName = &legacyName
		hotelID := uuid.New()
		v.Hotel = &queries.HotelServiceView{
			HotelID:   &hotelID,
			HotelName: "Rooms Kazbegi",
			Rooms:     []queries.HotelRoomView{{RoomType: "Standard", GuestCount: 2}},
		}

		q := queries.NewInvoiceQueries(&fakeReadStore{views: []*queries.BookingView{v}})
		inv, err := q.GetInvoice(ctx, v.ID)
		require.NoError(t, err)

		require.NotNil(t, inv.Hotel)
		assert.Equal(t, "Rooms Kazbegi", inv.Hotel.HotelName)
	})

	t.Run("legacy hotel name builds a fallback with one room", func(t *testing.T) {
		v := base()
		name, roomType := "Old Tbilisi Inn", "Deluxe"
		guests := 3
		v.HotelName = &name
		v.HotelRoomType = &roomType
		v.HotelGuests = &guests

		q := queries.NewInvoiceQueries(&fakeReadStore{views: []*queries.BookingView{v}})
		inv, err := q.GetInvoice(ctx, v.ID)
		require.NoError(t, err)

		require.NotNil(t, inv.Hotel)
		assert.Equal(t, "Old Tbilisi Inn", inv.Hotel.HotelName)
		require.Len(t, inv.Hotel.Rooms, 1)
		assert.Equal(t, "Deluxe", inv.Hotel.Rooms[0].RoomType)
		assert.Equal(t, 3, inv.Hotel.Rooms[0].GuestCount)
	})

	t.Run("anonymous guest gets a placeholder name", func(t *testing.T) {
		v := base()
		v.GuestName = ""

		q := queries.NewInvoiceQueries(&fakeReadStore{views: []*queries.BookingView{v}})
		inv, err := q.GetInvoice(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Guest customer", inv.CustomerName)
	})

	t.Run("missing booking", func(t *testing.T) {
		q := queries.NewInvoiceQueries(&fakeReadStore{})
		_, err := q.GetInvoice(ctx, uuid.New())
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}
