package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView is the denormalized read model served to the back-office
// and the customer area. BalanceDue is derived at projection time.
type BookingView struct {
	ID uuid.UUID `json:"id"`

	UserID    *uuid.UUID `json:"userId,omitempty"`
	UserName  *string    `json:"userName,omitempty"`
	UserEmail *string    `json:"userEmail,omitempty"`
	UserPhone *string    `json:"userPhone,omitempty"`

	GuestName  string `json:"guestName,omitempty"`
	GuestEmail string `json:"guestEmail,omitempty"`
	GuestPhone string `json:"guestPhone,omitempty"`

	Status        string `json:"status"`
	ServiceStatus string `json:"serviceStatus"`

	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	TotalPrice        float64  `json:"totalPrice"`
	AmountPaid        float64  `json:"amountPaid"`
	BalanceDue        float64  `json:"balanceDue"`
	Currency          string   `json:"currency"`
	AmountPaidMode    string   `json:"amountPaidMode"`
	AmountPaidPercent *float64 `json:"amountPaidPercent,omitempty"`

	// Legacy single-service summary for backward-compatible reads.
	TourID        *uuid.UUID `json:"tourId,omitempty"`
	TourTitle     *string    `json:"tourTitle,omitempty"`
	DesiredDate   *time.Time `json:"desiredDate,omitempty"`
	Adults        *int       `json:"adults,omitempty"`
	Children      *int       `json:"children,omitempty"`
	CarType       *string    `json:"carType,omitempty"`
	HotelName     *string    `json:"hotelName,omitempty"`
	HotelCheckIn  *time.Time `json:"hotelCheckIn,omitempty"`
	HotelCheckOut *time.Time `json:"hotelCheckOut,omitempty"`
	HotelRoomType *string    `json:"hotelRoomType,omitempty"`
	HotelGuests   *int       `json:"hotelGuests,omitempty"`
	HotelNotes    *string    `json:"hotelNotes,omitempty"`

	Note      *string `json:"note,omitempty"`
	AdminNote *string `json:"adminNote,omitempty"`

	Tours []TourItemView    `json:"tours"`
	Hotel *HotelServiceView `json:"hotelService,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TourItemView struct {
	ID          uuid.UUID `json:"id"`
	TourID      uuid.UUID `json:"tourId"`
	TourTitle   string    `json:"tourTitle"`
	DesiredDate time.Time `json:"desiredDate"`
	Adults      int       `json:"adults"`
	Children    int       `json:"children"`
	CarType     string    `json:"carType"`
}

type HotelServiceView struct {
	HotelID            *uuid.UUID      `json:"hotelId,omitempty"`
	HotelName          string          `json:"hotelName"`
	CheckIn            *time.Time      `json:"checkIn,omitempty"`
	CheckOut           *time.Time      `json:"checkOut,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	SendRequestToHotel bool            `json:"sendRequestToHotel"`
	Rooms              []HotelRoomView `json:"rooms"`
}

type HotelRoomView struct {
	RoomType   string `json:"roomType"`
	GuestCount int    `json:"guestCount"`
}

type ChangeRequestView struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"bookingId"`
	RequestedDate time.Time  `json:"requestedDate"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	AdminNote     *string    `json:"adminNote,omitempty"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// BookingFilter narrows admin listings; zero value lists all live bookings.
type BookingFilter struct {
	UserID      *uuid.UUID
	Status      *string
	Deleted     bool
	DesiredFrom *time.Time
	DesiredTo   *time.Time
}

// RevenueRow is the minimal financial tuple the revenue aggregator
// buckets by creation month.
type RevenueRow struct {
	CreatedAt  time.Time
	TotalPrice float64
	AmountPaid float64
}
