//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"geo-tours/internal/handler/api"
	"geo-tours/internal/pkg/errs"
	"geo-tours/internal/usecase/queries"
	"geo-tours/tests/common/httptest"
	commandsmock "geo-tours/tests/mock/commands"
	queriesmock "geo-tours/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminBookingHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockCtrl           *gomock.Controller
	mockCommands       *commandsmock.MockBookingCommands
	mockChangeRequests *commandsmock.MockChangeRequestCommands
	mockQueries        *queriesmock.MockBookingQueries
	mockCRQueries      *queriesmock.MockChangeRequestQueries
	handler            *api.AdminBookingHandler
}

func (s *AdminBookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockChangeRequests = commandsmock.NewMockChangeRequestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.mockCRQueries = queriesmock.NewMockChangeRequestQueries(s.mockCtrl)
	s.handler = api.NewAdminBookingHandler(s.mockCommands, s.mockChangeRequests, s.mockQueries, s.mockCRQueries)

	s.router.POST("/admin/bookings", s.handler.CreateBooking)
	s.router.GET("/admin/bookings", s.handler.ListBookings)
	s.router.GET("/admin/bookings/trash", s.handler.ListDeletedBookings)
	s.router.GET("/admin/bookings/:id", s.handler.GetBooking)
	s.router.PATCH("/admin/bookings/:id", s.handler.UpdateBooking)
	s.router.POST("/admin/bookings/:id/approve", s.handler.ApproveBooking)
	s.router.POST("/admin/bookings/:id/reject", s.handler.RejectBooking)
	s.router.DELETE("/admin/bookings/:id", s.handler.SoftDeleteBooking)
	s.router.POST("/admin/bookings/:id/restore", s.handler.RestoreBooking)
	s.router.DELETE("/admin/bookings/:id/purge", s.handler.PurgeBooking)
	s.router.GET("/admin/bookings/:id/change-requests", s.handler.ListChangeRequests)
	s.router.POST("/admin/change-requests/:id/approve", s.handler.ApproveChangeRequest)
	s.router.POST("/admin/change-requests/:id/reject", s.handler.RejectChangeRequest)
}

func (s *AdminBookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminBookingHandlerTestSuite))
}

func (s *AdminBookingHandlerTestSuite) TestCreateBooking() {
	url := "/admin/bookings"
	body := map[string]any{
		"guestName":   "Nino B.",
		"tourId":      uuid.New().String(),
		"desiredDate": "2026-03-05",
		"totalPrice":  300,
	}

	s.Run("success: returns 201 with the created view", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().CreateAdminBooking(gomock.Any(), gomock.Any()).Return(id, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(&queries.BookingView{ID: id, Status: "APPROVED"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var view queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &view)
		s.Equal("APPROVED", view.Status)
	})

	s.Run("error: 422 when both identities are present", func() {
		s.mockCommands.EXPECT().CreateAdminBooking(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.ErrValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
	})
}

func (s *AdminBookingHandlerTestSuite) TestUpdateBooking() {
	s.Run("success: partial patch returns the fresh view", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().UpdateAdminBooking(gomock.Any(), id, gomock.Any()).Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(&queries.BookingView{ID: id, TotalPrice: 750}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/bookings/"+id.String(),
			map[string]any{"totalPrice": 750}, "bearer-token")

		var view queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.InDelta(750, view.TotalPrice, 1e-9)
	})

	s.Run("error: 409 on a soft-deleted booking", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().UpdateAdminBooking(gomock.Any(), id, gomock.Any()).
			Return(errs.ErrBookingDeleted).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/bookings/"+id.String(),
			map[string]any{"totalPrice": 750}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Operation not allowed in current state")
	})

	s.Run("error: 404 on an unknown booking", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().UpdateAdminBooking(gomock.Any(), id, gomock.Any()).
			Return(errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/admin/bookings/"+id.String(),
			map[string]any{"totalPrice": 750}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *AdminBookingHandlerTestSuite) TestDecisions() {
	s.Run("success: approve without a body", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().ApproveBooking(gomock.Any(), id, nil).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+id.String()+"/approve", nil, "bearer-token")

		var resp map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal("Booking approved", resp["message"])
	})

	s.Run("success: reject with an admin note", func() {
		id := uuid.New()
		note := "date unavailable"
		s.mockCommands.EXPECT().RejectBooking(gomock.Any(), id, &note).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+id.String()+"/reject",
			map[string]any{"adminNote": note}, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 when the booking is not pending", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().ApproveBooking(gomock.Any(), id, nil).
			Return(errs.ErrInvalidBookingState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+id.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Operation not allowed in current state")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/not-a-uuid/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})
}

func (s *AdminBookingHandlerTestSuite) TestTrash() {
	s.Run("soft delete then restore", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().SoftDeleteBooking(gomock.Any(), id).Return(nil).Times(1)
		s.mockCommands.EXPECT().RestoreBooking(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/bookings/"+id.String(), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/"+id.String()+"/restore", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("trash listing", func() {
		s.mockQueries.EXPECT().ListDeleted(gomock.Any()).
			Return([]*queries.BookingView{{ID: uuid.New(), IsDeleted: true}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings/trash", nil, "bearer-token")

		var views []queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &views)
		s.Len(views, 1)
		s.True(views[0].IsDeleted)
	})

	s.Run("purge", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().PurgeBooking(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/bookings/"+id.String()+"/purge", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *AdminBookingHandlerTestSuite) TestChangeRequests() {
	s.Run("listing by booking", func() {
		bookingID := uuid.New()
		s.mockCRQueries.EXPECT().ListByBooking(gomock.Any(), bookingID).
			Return([]queries.ChangeRequestView{{ID: uuid.New(), BookingID: bookingID, Status: "PENDING"}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings/"+bookingID.String()+"/change-requests", nil, "bearer-token")

		var views []queries.ChangeRequestView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &views)
		s.Len(views, 1)
	})

	s.Run("error: 409 when resolving a resolved request", func() {
		id := uuid.New()
		s.mockChangeRequests.EXPECT().ApproveChangeRequest(gomock.Any(), id, nil).
			Return(errs.ErrChangeRequestNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/change-requests/"+id.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Operation not allowed in current state")
	})
}

type ReportingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCalendar *queriesmock.MockCalendarQueries
	mockRevenue  *queriesmock.MockRevenueQueries
	mockInvoices *queriesmock.MockInvoiceQueries
	handler      *api.ReportingHandler
}

func (s *ReportingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCalendar = queriesmock.NewMockCalendarQueries(s.mockCtrl)
	s.mockRevenue = queriesmock.NewMockRevenueQueries(s.mockCtrl)
	s.mockInvoices = queriesmock.NewMockInvoiceQueries(s.mockCtrl)
	s.handler = api.NewReportingHandler(s.mockCalendar, s.mockRevenue, s.mockInvoices)

	s.router.GET("/admin/calendar", s.handler.GetCalendar)
	s.router.GET("/admin/revenue", s.handler.GetRevenueSummary)
	s.router.GET("/admin/bookings/:id/invoice", s.handler.GetInvoice)
}

func (s *ReportingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReportingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}

func (s *ReportingHandlerTestSuite) TestGetCalendar() {
	s.Run("success", func() {
		s.mockCalendar.EXPECT().GetCalendar(gomock.Any(), "2026-03").
			Return(&queries.CalendarView{Month: "2026-03"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/calendar?month=2026-03", nil, "bearer-token")

		var view queries.CalendarView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("2026-03", view.Month)
	})

	s.Run("error: 400 without a month", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/calendar", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "month query parameter is required")
	})

	s.Run("error: 422 on a malformed month", func() {
		s.mockCalendar.EXPECT().GetCalendar(gomock.Any(), "bad").
			Return(nil, errs.ErrValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/calendar?month=bad", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
	})
}

func (s *ReportingHandlerTestSuite) TestGetRevenueSummary() {
	s.Run("success with bounds", func() {
		from, to := "2026-03", "2026-04"
		s.mockRevenue.EXPECT().GetRevenueSummary(gomock.Any(), &from, &to).
			Return(&queries.RevenueSummaryView{TotalRevenue: 900}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/revenue?fromMonth=2026-03&toMonth=2026-04", nil, "bearer-token")

		var view queries.RevenueSummaryView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.InDelta(900, view.TotalRevenue, 1e-9)
	})

	s.Run("success without bounds", func() {
		s.mockRevenue.EXPECT().GetRevenueSummary(gomock.Any(), nil, nil).
			Return(&queries.RevenueSummaryView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/revenue", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *ReportingHandlerTestSuite) TestGetInvoice() {
	s.Run("success", func() {
		id := uuid.New()
		s.mockInvoices.EXPECT().GetInvoice(gomock.Any(), id).
			Return(&queries.InvoiceView{BookingID: id, CustomerName: "Nino B."}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings/"+id.String()+"/invoice", nil, "bearer-token")

		var view queries.InvoiceView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("Nino B.", view.CustomerName)
	})

	s.Run("error: 404 on an unknown booking", func() {
		id := uuid.New()
		s.mockInvoices.EXPECT().GetInvoice(gomock.Any(), id).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings/"+id.String()+"/invoice", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}
