package api

import (
	"context"
	"net/http"
	"time"

	reqdto "geo-tours/internal/handler/dto/request"
	resdto "geo-tours/internal/handler/dto/response"
	"geo-tours/internal/handler/httperr"
	"geo-tours/internal/usecase/commands"
	"geo-tours/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminBookingHandler serves the back-office booking surface.
type AdminBookingHandler struct {
	commands       commands.BookingCommands
	changeRequests commands.ChangeRequestCommands
	queries        queries.BookingQueries
	crQueries      queries.ChangeRequestQueries
}

func NewAdminBookingHandler(
	cmds commands.BookingCommands,
	changeRequests commands.ChangeRequestCommands,
	qrys queries.BookingQueries,
	crQueries queries.ChangeRequestQueries,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		commands:       cmds,
		changeRequests: changeRequests,
		queries:        qrys,
		crQueries:      crQueries,
	}
}

// @Summary Create booking (staff)
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAdminBookingRequest true "Booking payload"
// @Success 201 {object} queries.BookingView
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/bookings [post]
func (h *AdminBookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateAdminBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.commands.CreateAdminBooking(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Update booking (staff)
// @Description Tri-state patch; keys absent from the body stay untouched
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateAdminBookingRequest true "Patch payload"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/bookings/{id} [patch]
func (h *AdminBookingHandler) UpdateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateAdminBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.commands.UpdateAdminBooking(c.Request.Context(), id, req.ToInput()); err != nil {
		respondError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get booking (staff)
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id} [get]
func (h *AdminBookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List bookings (staff)
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param userId query string false "Filter by owning user"
// @Param from query string false "Desired date lower bound (YYYY-MM-DD)"
// @Param to query string false "Desired date upper bound (YYYY-MM-DD)"
// @Success 200 {array} queries.BookingView
// @Router /admin/bookings [get]
func (h *AdminBookingHandler) ListBookings(c *gin.Context) {
	filter, err := listFilterFromQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid filter parameters", nil)
		return
	}

	views, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []*queries.BookingView{}
	}
	c.JSON(http.StatusOK, views)
}

// @Summary List soft-deleted bookings (staff)
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.BookingView
// @Router /admin/bookings/trash [get]
func (h *AdminBookingHandler) ListDeletedBookings(c *gin.Context) {
	views, err := h.queries.ListDeleted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if views == nil {
		views = []*queries.BookingView{}
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Approve booking
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecisionRequest false "Optional admin note"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/approve [post]
func (h *AdminBookingHandler) ApproveBooking(c *gin.Context) {
	h.decide(c, h.commands.ApproveBooking, "Booking approved")
}

// @Summary Reject booking
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.DecisionRequest false "Optional admin note"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/reject [post]
func (h *AdminBookingHandler) RejectBooking(c *gin.Context) {
	h.decide(c, h.commands.RejectBooking, "Booking rejected")
}

// @Summary Soft-delete booking
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id} [delete]
func (h *AdminBookingHandler) SoftDeleteBooking(c *gin.Context) {
	h.simple(c, h.commands.SoftDeleteBooking, "Booking deleted")
}

// @Summary Restore soft-deleted booking
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id}/restore [post]
func (h *AdminBookingHandler) RestoreBooking(c *gin.Context) {
	h.simple(c, h.commands.RestoreBooking, "Booking restored")
}

// @Summary Permanently delete booking
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id}/purge [delete]
func (h *AdminBookingHandler) PurgeBooking(c *gin.Context) {
	h.simple(c, h.commands.PurgeBooking, "Booking permanently deleted")
}

// @Summary List change requests of a booking
// @Tags admin-bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.ChangeRequestView
// @Router /admin/bookings/{id}/change-requests [get]
func (h *AdminBookingHandler) ListChangeRequests(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	views, err := h.crQueries.ListByBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Approve change request
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Param request body reqdto.DecisionRequest false "Optional admin note"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/change-requests/{id}/approve [post]
func (h *AdminBookingHandler) ApproveChangeRequest(c *gin.Context) {
	h.decide(c, h.changeRequests.ApproveChangeRequest, "Change request approved")
}

// @Summary Reject change request
// @Tags admin-bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Param request body reqdto.DecisionRequest false "Optional admin note"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/change-requests/{id}/reject [post]
func (h *AdminBookingHandler) RejectChangeRequest(c *gin.Context) {
	h.decide(c, h.changeRequests.RejectChangeRequest, "Change request rejected")
}

func (h *AdminBookingHandler) decide(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, adminNote *string) error, msg string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return
	}

	var req reqdto.DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	if err := fn(c.Request.Context(), id, req.AdminNote); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: msg})
}

func (h *AdminBookingHandler) simple(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error, msg string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: msg})
}

func listFilterFromQuery(c *gin.Context) (queries.BookingFilter, error) {
	var filter queries.BookingFilter
	if s := c.Query("status"); s != "" {
		filter.Status = &s
	}
	if s := c.Query("userId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, err
		}
		filter.UserID = &id
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, err
		}
		t = t.UTC()
		filter.DesiredFrom = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, err
		}
		// inclusive upper day bound
		t = t.UTC().AddDate(0, 0, 1)
		filter.DesiredTo = &t
	}
	return filter, nil
}
