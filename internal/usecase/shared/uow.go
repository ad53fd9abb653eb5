package shared

import (
	"context"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	ChangeRequests() ChangeRequestRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are write-side lookups: full aggregates for mutation and
// minimal snapshots for referential checks.
type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// BookingByIDForUpdate locks the bookings row; only meaningful inside Within.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ChangeRequestByID(ctx context.Context, id uuid.UUID) (*booking.ChangeRequest, error)
	HasPendingChangeRequest(ctx context.Context, bookingID uuid.UUID) (bool, error)
	TourByID(ctx context.Context, id uuid.UUID) (*TourSnapshot, error)
	HotelByID(ctx context.Context, id uuid.UUID) (*HotelSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

// Minimal snapshots for command read operations
type TourSnapshot struct {
	ID       uuid.UUID
	Title    string
	IsActive bool
}

type HotelSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

type BookingRepository interface {
	// Create inserts the booking row and all nested records.
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// Update writes the scalar columns of the aggregate (status, decision
	// timestamps, financials, legacy summary, notes, soft-delete pair).
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	// ReplaceTourItems swaps the full tour item set.
	ReplaceTourItems(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, items []booking.TourItem) error
	// ReplaceHotelService swaps the hotel service and its rooms; nil removes it.
	ReplaceHotelService(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, svc *booking.HotelService) error
	// Purge physically removes the booking and, via cascade, its children.
	Purge(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type ChangeRequestRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, req *booking.ChangeRequest) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, req *booking.ChangeRequest) error
}

type NotificationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, kind, title, body string, metadata []byte) error
}

type EmailLogRepository interface {
	Append(ctx context.Context, dbtx db.DBTX, template, recipient string, payload []byte, status string, lastError *string, at time.Time) error
}
