package api

import (
	"net/http"

	"geo-tours/internal/handler/httperr"
	"geo-tours/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportingHandler serves the back-office aggregations: calendar,
// revenue, invoices.
type ReportingHandler struct {
	calendar queries.CalendarQueries
	revenue  queries.RevenueQueries
	invoices queries.InvoiceQueries
}

func NewReportingHandler(
	calendar queries.CalendarQueries,
	revenue queries.RevenueQueries,
	invoices queries.InvoiceQueries,
) *ReportingHandler {
	return &ReportingHandler{
		calendar: calendar,
		revenue:  revenue,
		invoices: invoices,
	}
}

// @Summary Booking calendar
// @Description Day-by-day occupancy for one month
// @Tags reporting
// @Produce json
// @Security BearerAuth
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} queries.CalendarView
// @Failure 422 {object} httperr.Response
// @Router /admin/calendar [get]
func (h *ReportingHandler) GetCalendar(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingParam, "month query parameter is required", nil)
		return
	}

	view, err := h.calendar.GetCalendar(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Revenue summary
// @Description Month-bucketed revenue over booking creation dates
// @Tags reporting
// @Produce json
// @Security BearerAuth
// @Param fromMonth query string false "Lower bound (YYYY-MM, inclusive)"
// @Param toMonth query string false "Upper bound (YYYY-MM, inclusive)"
// @Success 200 {object} queries.RevenueSummaryView
// @Failure 422 {object} httperr.Response
// @Router /admin/revenue [get]
func (h *ReportingHandler) GetRevenueSummary(c *gin.Context) {
	var fromMonth, toMonth *string
	if s := c.Query("fromMonth"); s != "" {
		fromMonth = &s
	}
	if s := c.Query("toMonth"); s != "" {
		toMonth = &s
	}

	view, err := h.revenue.GetRevenueSummary(c.Request.Context(), fromMonth, toMonth)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Booking invoice
// @Description Denormalized billing snapshot of one booking
// @Tags reporting
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.InvoiceView
// @Failure 404 {object} httperr.Response
// @Router /admin/bookings/{id}/invoice [get]
func (h *ReportingHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.invoices.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
