package errs

import "errors"

// Domain-specific sentinel errors for the booking engine usecase layers
var (
	// Lookup errors
	ErrBookingNotFound       = errors.New("booking not found")
	ErrTourNotFound          = errors.New("tour not found")
	ErrHotelNotFound         = errors.New("hotel not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrChangeRequestNotFound = errors.New("change request not found")

	// State errors
	ErrInvalidBookingState       = errors.New("operation not allowed in current booking state")
	ErrBookingDeleted            = errors.New("booking is soft-deleted")
	ErrBookingClosed             = errors.New("booking is cancelled or rejected")
	ErrChangeRequestNotPending   = errors.New("change request is not pending")
	ErrDuplicateChangeRequest    = errors.New("a pending change request already exists")
	ErrBookingNotOwned           = errors.New("booking not owned by user")
	ErrTourInactive              = errors.New("tour is not active")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
