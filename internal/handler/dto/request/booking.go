package request

import (
	"geo-tours/internal/domain/booking"
	"geo-tours/internal/pkg/patch"
	"geo-tours/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateBookingRequest is the customer self-service payload.
type CreateBookingRequest struct {
	TourID      uuid.UUID        `json:"tourId" binding:"required"`
	DesiredDate string           `json:"desiredDate" binding:"required"`
	Adults      *int             `json:"adults"`
	Children    *int             `json:"children"`
	CarType     *booking.CarType `json:"carType"`
	Note        *string          `json:"note"`
}

func (r *CreateBookingRequest) ToInput(userID uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		UserID:      userID,
		TourID:      r.TourID,
		DesiredDate: r.DesiredDate,
		Adults:      r.Adults,
		Children:    r.Children,
		CarType:     r.CarType,
		Note:        r.Note,
	}
}

type TourItemRequest struct {
	TourID      uuid.UUID        `json:"tourId" binding:"required"`
	DesiredDate string           `json:"desiredDate" binding:"required"`
	Adults      *int             `json:"adults"`
	Children    *int             `json:"children"`
	CarType     *booking.CarType `json:"carType"`
}

func (r TourItemRequest) toInput() booking.TourItemInput {
	return booking.TourItemInput{
		TourID:      r.TourID,
		DesiredDate: r.DesiredDate,
		Adults:      r.Adults,
		Children:    r.Children,
		CarType:     r.CarType,
	}
}

type HotelRoomRequest struct {
	RoomType   string `json:"roomType"`
	GuestCount *int   `json:"guestCount"`
}

type HotelServiceRequest struct {
	HotelID            uuid.UUID          `json:"hotelId" binding:"required"`
	CheckIn            *string            `json:"checkIn"`
	CheckOut           *string            `json:"checkOut"`
	Notes              *string            `json:"notes"`
	SendRequestToHotel *bool              `json:"sendRequestToHotel"`
	Rooms              []HotelRoomRequest `json:"rooms"`
}

func (r HotelServiceRequest) toInput() booking.HotelServiceInput {
	rooms := make([]booking.HotelRoomInput, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		rooms = append(rooms, booking.HotelRoomInput{RoomType: room.RoomType, GuestCount: room.GuestCount})
	}
	return booking.HotelServiceInput{
		HotelID:            r.HotelID,
		CheckIn:            r.CheckIn,
		CheckOut:           r.CheckOut,
		Notes:              r.Notes,
		SendRequestToHotel: r.SendRequestToHotel,
		Rooms:              rooms,
	}
}

// CreateAdminBookingRequest accepts both payload shapes: the new tours[]
// array plus hotelService object, and the legacy flat fields.
type CreateAdminBookingRequest struct {
	UserID     *uuid.UUID `json:"userId"`
	GuestName  string     `json:"guestName"`
	GuestEmail string     `json:"guestEmail"`
	GuestPhone string     `json:"guestPhone"`

	Status        *booking.Status        `json:"status"`
	ServiceStatus *booking.ServiceStatus `json:"serviceStatus"`
	Currency      *booking.Currency      `json:"currency"`

	TotalPrice        *float64         `json:"totalPrice"`
	AmountPaid        *float64         `json:"amountPaid"`
	AmountPaidMode    *booking.PayMode `json:"amountPaidMode"`
	AmountPaidPercent *float64         `json:"amountPaidPercent"`

	Tours *[]TourItemRequest `json:"tours"`

	// Legacy single-tour fields.
	TourID      *uuid.UUID       `json:"tourId"`
	DesiredDate *string          `json:"desiredDate"`
	Adults      *int             `json:"adults"`
	Children    *int             `json:"children"`
	CarType     *booking.CarType `json:"carType"`

	HotelService *HotelServiceRequest `json:"hotelService"`

	// Legacy flat hotel fields.
	HotelName     *string `json:"hotelName"`
	HotelCheckIn  *string `json:"hotelCheckIn"`
	HotelCheckOut *string `json:"hotelCheckOut"`
	HotelRoomType *string `json:"hotelRoomType"`
	HotelGuests   *int    `json:"hotelGuests"`
	HotelNotes    *string `json:"hotelNotes"`

	Note      *string `json:"note"`
	AdminNote *string `json:"adminNote"`
}

func (r *CreateAdminBookingRequest) ToInput() commands.CreateAdminBookingInput {
	in := commands.CreateAdminBookingInput{
		UserID:            r.UserID,
		GuestName:         r.GuestName,
		GuestEmail:        r.GuestEmail,
		GuestPhone:        r.GuestPhone,
		Status:            r.Status,
		ServiceStatus:     r.ServiceStatus,
		Currency:          r.Currency,
		TotalPrice:        r.TotalPrice,
		AmountPaid:        r.AmountPaid,
		AmountPaidMode:    r.AmountPaidMode,
		AmountPaidPercent: r.AmountPaidPercent,
		LegacyTour: booking.LegacyTourInput{
			TourID:      r.TourID,
			DesiredDate: r.DesiredDate,
			Adults:      r.Adults,
			Children:    r.Children,
			CarType:     r.CarType,
		},
		LegacyHotel: booking.LegacyHotelInput{
			HotelName: r.HotelName,
			CheckIn:   r.HotelCheckIn,
			CheckOut:  r.HotelCheckOut,
			RoomType:  r.HotelRoomType,
			Guests:    r.HotelGuests,
			Notes:     r.HotelNotes,
		},
		Note:      r.Note,
		AdminNote: r.AdminNote,
	}
	if r.Tours != nil {
		items := make([]booking.TourItemInput, 0, len(*r.Tours))
		for _, t := range *r.Tours {
			items = append(items, t.toInput())
		}
		in.Tours = &items
	}
	if r.HotelService != nil {
		svc := r.HotelService.toInput()
		in.Hotel = &svc
	}
	return in
}

// UpdateAdminBookingRequest is the tri-state patch body. A key absent
// from the JSON leaves the field untouched; an explicit null clears it.
type UpdateAdminBookingRequest struct {
	UserID     patch.Field[uuid.UUID] `json:"userId"`
	GuestName  patch.Field[string]    `json:"guestName"`
	GuestEmail patch.Field[string]    `json:"guestEmail"`
	GuestPhone patch.Field[string]    `json:"guestPhone"`

	ServiceStatus patch.Field[booking.ServiceStatus] `json:"serviceStatus"`
	Currency      patch.Field[booking.Currency]      `json:"currency"`

	TotalPrice        patch.Field[float64]         `json:"totalPrice"`
	AmountPaid        patch.Field[float64]         `json:"amountPaid"`
	AmountPaidMode    patch.Field[booking.PayMode] `json:"amountPaidMode"`
	AmountPaidPercent patch.Field[float64]         `json:"amountPaidPercent"`

	Tours patch.Field[[]TourItemRequest] `json:"tours"`

	TourID      patch.Field[uuid.UUID]       `json:"tourId"`
	DesiredDate patch.Field[string]          `json:"desiredDate"`
	Adults      patch.Field[int]             `json:"adults"`
	Children    patch.Field[int]             `json:"children"`
	CarType     patch.Field[booking.CarType] `json:"carType"`

	HotelService patch.Field[HotelServiceRequest] `json:"hotelService"`

	HotelName     patch.Field[string] `json:"hotelName"`
	HotelCheckIn  patch.Field[string] `json:"hotelCheckIn"`
	HotelCheckOut patch.Field[string] `json:"hotelCheckOut"`
	HotelRoomType patch.Field[string] `json:"hotelRoomType"`
	HotelGuests   patch.Field[int]    `json:"hotelGuests"`
	HotelNotes    patch.Field[string] `json:"hotelNotes"`

	Note      patch.Field[string] `json:"note"`
	AdminNote patch.Field[string] `json:"adminNote"`
}

func (r *UpdateAdminBookingRequest) ToInput() commands.UpdateAdminBookingInput {
	in := commands.UpdateAdminBookingInput{
		UserID:            r.UserID,
		GuestName:         r.GuestName,
		GuestEmail:        r.GuestEmail,
		GuestPhone:        r.GuestPhone,
		ServiceStatus:     r.ServiceStatus,
		Currency:          r.Currency,
		TotalPrice:        r.TotalPrice,
		AmountPaid:        r.AmountPaid,
		AmountPaidMode:    r.AmountPaidMode,
		AmountPaidPercent: r.AmountPaidPercent,
		LegacyTourID:      r.TourID,
		LegacyDesiredDate: r.DesiredDate,
		LegacyAdults:      r.Adults,
		LegacyChildren:    r.Children,
		LegacyCarType:     r.CarType,
		LegacyHotelName:   r.HotelName,
		LegacyCheckIn:     r.HotelCheckIn,
		LegacyCheckOut:    r.HotelCheckOut,
		LegacyRoomType:    r.HotelRoomType,
		LegacyHotelGuests: r.HotelGuests,
		LegacyHotelNotes:  r.HotelNotes,
		Note:              r.Note,
		AdminNote:         r.AdminNote,
	}

	switch {
	case r.Tours.HasValue():
		items := make([]booking.TourItemInput, 0, len(r.Tours.MustGet()))
		for _, t := range r.Tours.MustGet() {
			items = append(items, t.toInput())
		}
		in.Tours = patch.Value(items)
	case r.Tours.IsNull():
		in.Tours = patch.Null[[]booking.TourItemInput]()
	}

	switch {
	case r.HotelService.HasValue():
		in.Hotel = patch.Value(r.HotelService.MustGet().toInput())
	case r.HotelService.IsNull():
		in.Hotel = patch.Null[booking.HotelServiceInput]()
	}

	return in
}

// DecisionRequest carries the optional staff note for approve/reject.
type DecisionRequest struct {
	AdminNote *string `json:"adminNote"`
}

type CreateChangeRequestRequest struct {
	RequestedDate string `json:"requestedDate" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}
