package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRequestNotPending = errors.New("change request is not pending")
	ErrEmptyReason       = errors.New("change request reason is required")
)

// ChangeRequest is a customer request to move a booking's desired date,
// resolved by staff.
type ChangeRequest struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	RequestedDate time.Time
	Reason        string
	Status        Status
	AdminNote     *string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
}

func NewChangeRequest(bookingID uuid.UUID, requestedDate string, reason string) (*ChangeRequest, error) {
	date, err := ParseFlexDate(requestedDate)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}
	return &ChangeRequest{
		ID:            uuid.New(),
		BookingID:     bookingID,
		RequestedDate: date,
		Reason:        reason,
		Status:        StatusPending,
	}, nil
}

func (r *ChangeRequest) Approve(now time.Time, adminNote *string) error {
	return r.resolve(StatusApproved, now, adminNote)
}

func (r *ChangeRequest) Reject(now time.Time, adminNote *string) error {
	return r.resolve(StatusRejected, now, adminNote)
}

func (r *ChangeRequest) resolve(s Status, now time.Time, adminNote *string) error {
	if r.Status != StatusPending {
		return ErrRequestNotPending
	}
	r.Status = s
	r.ResolvedAt = &now
	if adminNote != nil {
		r.AdminNote = adminNote
	}
	return nil
}
