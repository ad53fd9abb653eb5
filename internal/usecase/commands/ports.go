package commands

import (
	"context"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/patch"

	"github.com/google/uuid"
)

// EventDispatcher receives the post-commit side effect bundle. The
// production implementation is notify.Dispatcher.
type EventDispatcher interface {
	Dispatch(ctx context.Context, events []notify.Event)
}

// CreateBookingInput is the customer self-service payload: one tour,
// one date, no financials.
type CreateBookingInput struct {
	UserID      uuid.UUID
	TourID      uuid.UUID
	DesiredDate string
	Adults      *int
	Children    *int
	CarType     *booking.CarType
	Note        *string
}

// CreateAdminBookingInput is the staff-authored payload: both input
// shapes of the normalizer, full financials, optional pre-approval.
type CreateAdminBookingInput struct {
	UserID     *uuid.UUID
	GuestName  string
	GuestEmail string
	GuestPhone string

	Status        *booking.Status
	ServiceStatus *booking.ServiceStatus
	Currency      *booking.Currency

	TotalPrice        *float64
	AmountPaid        *float64
	AmountPaidMode    *booking.PayMode
	AmountPaidPercent *float64

	Tours      *[]booking.TourItemInput
	LegacyTour booking.LegacyTourInput

	Hotel       *booking.HotelServiceInput
	LegacyHotel booking.LegacyHotelInput

	Note      *string
	AdminNote *string
}

// UpdateAdminBookingInput is a tri-state patch. A field left Unset keeps
// the persisted state; Null clears it; Value replaces it. Tour and hotel
// slices are only recomputed when at least one related field was set.
type UpdateAdminBookingInput struct {
	UserID     patch.Field[uuid.UUID]
	GuestName  patch.Field[string]
	GuestEmail patch.Field[string]
	GuestPhone patch.Field[string]

	ServiceStatus patch.Field[booking.ServiceStatus]
	Currency      patch.Field[booking.Currency]

	TotalPrice        patch.Field[float64]
	AmountPaid        patch.Field[float64]
	AmountPaidMode    patch.Field[booking.PayMode]
	AmountPaidPercent patch.Field[float64]

	Tours             patch.Field[[]booking.TourItemInput]
	LegacyTourID      patch.Field[uuid.UUID]
	LegacyDesiredDate patch.Field[string]
	LegacyAdults      patch.Field[int]
	LegacyChildren    patch.Field[int]
	LegacyCarType     patch.Field[booking.CarType]

	Hotel              patch.Field[booking.HotelServiceInput]
	LegacyHotelName    patch.Field[string]
	LegacyCheckIn      patch.Field[string]
	LegacyCheckOut     patch.Field[string]
	LegacyRoomType     patch.Field[string]
	LegacyHotelGuests  patch.Field[int]
	LegacyHotelNotes   patch.Field[string]

	Note      patch.Field[string]
	AdminNote patch.Field[string]
}

func (in *UpdateAdminBookingInput) toursTouched() bool {
	return in.Tours.IsSet() || in.LegacyTourID.IsSet() || in.LegacyDesiredDate.IsSet() ||
		in.LegacyAdults.IsSet() || in.LegacyChildren.IsSet() || in.LegacyCarType.IsSet()
}

func (in *UpdateAdminBookingInput) hotelTouched() bool {
	return in.Hotel.IsSet() || in.LegacyHotelName.IsSet() || in.LegacyCheckIn.IsSet() ||
		in.LegacyCheckOut.IsSet() || in.LegacyRoomType.IsSet() ||
		in.LegacyHotelGuests.IsSet() || in.LegacyHotelNotes.IsSet()
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (uuid.UUID, error)
	CreateAdminBooking(ctx context.Context, in CreateAdminBookingInput) (uuid.UUID, error)
	UpdateAdminBooking(ctx context.Context, id uuid.UUID, in UpdateAdminBookingInput) error
	ApproveBooking(ctx context.Context, id uuid.UUID, adminNote *string) error
	RejectBooking(ctx context.Context, id uuid.UUID, adminNote *string) error
	CancelBookingByUser(ctx context.Context, userID, id uuid.UUID) error
	SoftDeleteBooking(ctx context.Context, id uuid.UUID) error
	RestoreBooking(ctx context.Context, id uuid.UUID) error
	PurgeBooking(ctx context.Context, id uuid.UUID) error
}

type ChangeRequestCommands interface {
	RequestDateChange(ctx context.Context, userID, bookingID uuid.UUID, requestedDate, reason string) (uuid.UUID, error)
	ApproveChangeRequest(ctx context.Context, id uuid.UUID, adminNote *string) error
	RejectChangeRequest(ctx context.Context, id uuid.UUID, adminNote *string) error
}
