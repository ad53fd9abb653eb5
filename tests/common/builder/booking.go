package builder

import (
	"time"

	"geo-tours/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingBuilder assembles a valid booking aggregate for tests; mutate
// it through the With helpers to reach the state under test.
type BookingBuilder struct {
	b booking.Booking
}

func NewBookingBuilder() *BookingBuilder {
	userID := uuid.New()
	tourDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	builder := &BookingBuilder{
		b: booking.Booking{
			ID:             uuid.New(),
			UserID:         &userID,
			Status:         booking.StatusPending,
			ServiceStatus:  booking.ServicePending,
			Currency:       booking.CurrencyGEL,
			AmountPaidMode: booking.PayFlat,
			TotalPrice:     300,
			AmountPaid:     100,
			Tours: []booking.TourItem{{
				ID:          uuid.New(),
				TourID:      uuid.New(),
				DesiredDate: tourDate,
				Adults:      2,
				Children:    1,
				CarType:     booking.CarSedan,
			}},
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	builder.b.SyncLegacySummary("")
	return builder
}

func (bb *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(bb)
	return bb
}

func (bb *BookingBuilder) AsGuest(name, email, phone string) *BookingBuilder {
	bb.b.UserID = nil
	bb.b.GuestName = name
	bb.b.GuestEmail = email
	bb.b.GuestPhone = phone
	return bb
}

func (bb *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	bb.b.UserID = &id
	bb.b.GuestName = ""
	bb.b.GuestEmail = ""
	bb.b.GuestPhone = ""
	return bb
}

func (bb *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	bb.b.Status = s
	return bb
}

func (bb *BookingBuilder) WithTours(items ...booking.TourItem) *BookingBuilder {
	bb.b.Tours = items
	bb.b.SyncLegacySummary("")
	return bb
}

func (bb *BookingBuilder) WithHotel(svc *booking.HotelService, hotelName string) *BookingBuilder {
	bb.b.Hotel = svc
	bb.b.SyncLegacySummary(hotelName)
	return bb
}

func (bb *BookingBuilder) WithFinancials(total, paid float64) *BookingBuilder {
	bb.b.TotalPrice = total
	bb.b.AmountPaid = paid
	return bb
}

func (bb *BookingBuilder) Deleted(at time.Time) *BookingBuilder {
	bb.b.IsDeleted = true
	bb.b.DeletedAt = &at
	return bb
}

func (bb *BookingBuilder) Build() *booking.Booking {
	clone := bb.b
	if bb.b.UserID != nil {
		id := *bb.b.UserID
		clone.UserID = &id
	}
	clone.Tours = append([]booking.TourItem(nil), bb.b.Tours...)
	return &clone
}

// HotelServiceBuilder covers the structured hotel part.
type HotelServiceBuilder struct {
	svc booking.HotelService
}

func NewHotelServiceBuilder() *HotelServiceBuilder {
	checkIn := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	return &HotelServiceBuilder{
		svc: booking.HotelService{
			ID:       uuid.New(),
			HotelID:  uuid.New(),
			CheckIn:  &checkIn,
			CheckOut: &checkOut,
			Rooms:    []booking.HotelRoom{{RoomType: "Standard", GuestCount: 2}},
		},
	}
}

func (hb *HotelServiceBuilder) WithHotelID(id uuid.UUID) *HotelServiceBuilder {
	hb.svc.HotelID = id
	return hb
}

func (hb *HotelServiceBuilder) WithRooms(rooms ...booking.HotelRoom) *HotelServiceBuilder {
	hb.svc.Rooms = rooms
	return hb
}

func (hb *HotelServiceBuilder) WithSendRequest(send bool) *HotelServiceBuilder {
	hb.svc.SendRequestToHotel = send
	return hb
}

func (hb *HotelServiceBuilder) Build() *booking.HotelService {
	clone := hb.svc
	clone.Rooms = append([]booking.HotelRoom(nil), hb.svc.Rooms...)
	return &clone
}
