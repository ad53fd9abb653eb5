package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"geo-tours/internal/handler/api"
	"geo-tours/internal/handler/middleware"
	"geo-tours/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	adminHandler *api.AdminBookingHandler,
	reportingHandler *api.ReportingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, adminHandler, reportingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	adminHandler *api.AdminBookingHandler,
	reportingHandler *api.ReportingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/change-requests", Handler: bookingHandler.RequestDateChange},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/bookings", Handler: adminHandler.CreateBooking},
				{Method: http.MethodGet, Path: "/bookings", Handler: adminHandler.ListBookings},
				{Method: http.MethodGet, Path: "/bookings/trash", Handler: adminHandler.ListDeletedBookings},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: adminHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/bookings/:id", Handler: adminHandler.UpdateBooking},
				{Method: http.MethodDelete, Path: "/bookings/:id", Handler: adminHandler.SoftDeleteBooking},
				{Method: http.MethodPost, Path: "/bookings/:id/approve", Handler: adminHandler.ApproveBooking},
				{Method: http.MethodPost, Path: "/bookings/:id/reject", Handler: adminHandler.RejectBooking},
				{Method: http.MethodPost, Path: "/bookings/:id/restore", Handler: adminHandler.RestoreBooking},
				{Method: http.MethodDelete, Path: "/bookings/:id/purge", Handler: adminHandler.PurgeBooking},
				{Method: http.MethodGet, Path: "/bookings/:id/change-requests", Handler: adminHandler.ListChangeRequests},
				{Method: http.MethodGet, Path: "/bookings/:id/invoice", Handler: reportingHandler.GetInvoice},
				{Method: http.MethodPost, Path: "/change-requests/:id/approve", Handler: adminHandler.ApproveChangeRequest},
				{Method: http.MethodPost, Path: "/change-requests/:id/reject", Handler: adminHandler.RejectChangeRequest},
				{Method: http.MethodGet, Path: "/calendar", Handler: reportingHandler.GetCalendar},
				{Method: http.MethodGet, Path: "/revenue", Handler: reportingHandler.GetRevenueSummary},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
