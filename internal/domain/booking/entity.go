package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingIdentity   = errors.New("booking requires a user or a guest identity")
	ErrAmbiguousIdentity = errors.New("booking cannot carry both a user and a guest identity")
	ErrNoServices        = errors.New("booking requires at least one tour or hotel service")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrNotPending        = errors.New("booking is not pending")
	ErrAlreadyClosed     = errors.New("booking is already cancelled or rejected")
	ErrDeleted           = errors.New("booking is deleted")
)

// Booking is the aggregate root. Nested tour items and the hotel service
// live and die with it; the flat legacy fields are a derived summary of
// the first tour item and the hotel stay, recomputed on every write.
type Booking struct {
	ID uuid.UUID

	// Holder: registered user or guest, never both.
	UserID     *uuid.UUID
	GuestName  string
	GuestEmail string
	GuestPhone string

	Status        Status
	ServiceStatus ServiceStatus

	ApprovedAt  *time.Time
	RejectedAt  *time.Time
	CancelledAt *time.Time

	IsDeleted bool
	DeletedAt *time.Time

	TotalPrice        float64
	AmountPaid        float64
	Currency          Currency
	AmountPaidMode    PayMode
	AmountPaidPercent *float64

	// Legacy single-service summary (derived, not authoritative while
	// nested records exist).
	TourID        *uuid.UUID
	DesiredDate   *time.Time
	Adults        *int
	Children      *int
	CarType       *CarType
	HotelName     *string
	HotelCheckIn  *time.Time
	HotelCheckOut *time.Time
	HotelRoomType *string
	HotelGuests   *int
	HotelNotes    *string

	Note      *string
	AdminNote *string

	Tours []TourItem
	Hotel *HotelService

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TourItem struct {
	ID          uuid.UUID
	TourID      uuid.UUID
	DesiredDate time.Time
	Adults      int
	Children    int
	CarType     CarType
}

type HotelService struct {
	ID                 uuid.UUID
	HotelID            uuid.UUID
	CheckIn            *time.Time
	CheckOut           *time.Time
	Notes              *string
	SendRequestToHotel bool
	Rooms              []HotelRoom
}

type HotelRoom struct {
	RoomType   string
	GuestCount int
}

func (b *Booking) HasTour() bool {
	return len(b.Tours) > 0
}

// HasHotel covers both the structured hotel service and the legacy
// name-only stay.
func (b *Booking) HasHotel() bool {
	if b.Hotel != nil {
		return true
	}
	return b.HotelName != nil && strings.TrimSpace(*b.HotelName) != ""
}

func (b *Booking) HasGuestIdentity() bool {
	return strings.TrimSpace(b.GuestName) != "" ||
		strings.TrimSpace(b.GuestEmail) != "" ||
		strings.TrimSpace(b.GuestPhone) != ""
}

// ValidateIdentity enforces exactly one identity source.
func (b *Booking) ValidateIdentity() error {
	hasUser := b.UserID != nil && *b.UserID != uuid.Nil
	hasGuest := b.HasGuestIdentity()
	if !hasUser && !hasGuest {
		return ErrMissingIdentity
	}
	if hasUser && hasGuest {
		return ErrAmbiguousIdentity
	}
	return nil
}

func (b *Booking) ValidateServices() error {
	if !b.HasTour() && !b.HasHotel() {
		return ErrNoServices
	}
	return nil
}

func (b *Booking) IsClosed() bool {
	return b.Status.IsTerminal()
}

// BalanceDue is always derived, never stored.
func (b *Booking) BalanceDue() float64 {
	return Round2(b.TotalPrice - b.AmountPaid)
}

func (b *Booking) ApplyPayment(p Payment) {
	b.TotalPrice = p.TotalPrice
	b.AmountPaid = p.AmountPaid
	b.AmountPaidMode = p.Mode
	b.AmountPaidPercent = p.Percent
}

// Approve moves a pending booking to APPROVED and stamps exactly one
// decision timestamp.
func (b *Booking) Approve(now time.Time, adminNote *string) error {
	if b.IsDeleted {
		return ErrDeleted
	}
	if b.Status != StatusPending {
		return ErrNotPending
	}
	b.Status = StatusApproved
	b.setDecisionAt(StatusApproved, now)
	if adminNote != nil {
		b.AdminNote = adminNote
	}
	return nil
}

func (b *Booking) Reject(now time.Time, adminNote *string) error {
	if b.IsDeleted {
		return ErrDeleted
	}
	if b.Status != StatusPending {
		return ErrNotPending
	}
	b.Status = StatusRejected
	b.setDecisionAt(StatusRejected, now)
	if adminNote != nil {
		b.AdminNote = adminNote
	}
	return nil
}

// Cancel is the customer-side exit; valid from any open state.
func (b *Booking) Cancel(now time.Time) error {
	if b.IsDeleted {
		return ErrDeleted
	}
	if b.IsClosed() {
		return ErrAlreadyClosed
	}
	b.Status = StatusCancelled
	b.setDecisionAt(StatusCancelled, now)
	return nil
}

// setDecisionAt keeps the three decision timestamps mutually exclusive.
func (b *Booking) setDecisionAt(s Status, now time.Time) {
	b.ApprovedAt = nil
	b.RejectedAt = nil
	b.CancelledAt = nil
	switch s {
	case StatusApproved:
		b.ApprovedAt = &now
	case StatusRejected:
		b.RejectedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
}

// SoftDelete is idempotent.
func (b *Booking) SoftDelete(now time.Time) bool {
	if b.IsDeleted {
		return false
	}
	b.IsDeleted = true
	b.DeletedAt = &now
	return true
}

// Restore is idempotent.
func (b *Booking) Restore() bool {
	if !b.IsDeleted {
		return false
	}
	b.IsDeleted = false
	b.DeletedAt = nil
	return true
}

// SyncLegacySummary re-derives the flat legacy fields from the nested
// records. hotelName is the display name of the structured hotel, looked
// up by the caller; it is ignored when no structured hotel service
// exists so that a legacy name-only stay keeps its own fields.
func (b *Booking) SyncLegacySummary(hotelName string) {
	if len(b.Tours) > 0 {
		first := b.Tours[0]
		tourID := first.TourID
		date := first.DesiredDate
		adults := first.Adults
		children := first.Children
		carType := first.CarType
		b.TourID = &tourID
		b.DesiredDate = &date
		b.Adults = &adults
		b.Children = &children
		b.CarType = &carType
	} else {
		b.TourID = nil
		b.DesiredDate = nil
		b.Adults = nil
		b.Children = nil
		b.CarType = nil
	}

	if b.Hotel == nil {
		return
	}
	name := hotelName
	b.HotelName = &name
	b.HotelCheckIn = b.Hotel.CheckIn
	b.HotelCheckOut = b.Hotel.CheckOut
	b.HotelNotes = b.Hotel.Notes
	if len(b.Hotel.Rooms) > 0 {
		roomType := b.Hotel.Rooms[0].RoomType
		guests := 0
		for _, r := range b.Hotel.Rooms {
			guests += r.GuestCount
		}
		b.HotelRoomType = &roomType
		b.HotelGuests = &guests
	} else {
		b.HotelRoomType = nil
		b.HotelGuests = nil
	}
}

// ContactEmail resolves the outbound address: registered user email wins,
// then the guest email, else empty (callers skip delivery).
func (b *Booking) ContactEmail(userEmail string) string {
	if strings.TrimSpace(userEmail) != "" {
		return strings.TrimSpace(userEmail)
	}
	return strings.TrimSpace(b.GuestEmail)
}
