package api

import (
	"errors"
	"net/http"

	"geo-tours/internal/handler/httperr"
	"geo-tours/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errMissingParam = errs.New("missing required query parameter")

// respondError maps usecase sentinels to HTTP statuses: missing records
// to 404, state conflicts to 409, domain validation to 422.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingNotFound),
		errors.Is(err, errs.ErrBookingNotOwned):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrTourNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Tour not found", nil)
	case errors.Is(err, errs.ErrHotelNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Hotel not found", nil)
	case errors.Is(err, errs.ErrUserNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errors.Is(err, errs.ErrChangeRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Change request not found", nil)
	case errors.Is(err, errs.ErrDuplicateChangeRequest):
		httperr.AbortWithError(c, http.StatusConflict, err, "A pending change request already exists", nil)
	case errors.Is(err, errs.ErrInvalidBookingState),
		errors.Is(err, errs.ErrBookingDeleted),
		errors.Is(err, errs.ErrBookingClosed),
		errors.Is(err, errs.ErrChangeRequestNotPending):
		httperr.AbortWithError(c, http.StatusConflict, err, "Operation not allowed in current state", nil)
	case errors.Is(err, errs.ErrTourInactive):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Tour is not active", nil)
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
