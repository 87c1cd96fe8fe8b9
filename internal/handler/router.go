package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"careserve/internal/handler/api"
	"careserve/internal/handler/middleware"
	"careserve/internal/pkg/config"
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
	serviceHandler *api.ServiceHandler,
	dashboardHandler *api.DashboardHandler,
	exportHandler *api.ExportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, serviceHandler, dashboardHandler, exportHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	serviceHandler *api.ServiceHandler,
	dashboardHandler *api.DashboardHandler,
	exportHandler *api.ExportHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	bookings := engine.Group("/bookings")
	bookings.Use(authMiddleware.RequireAuth())
	{
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
			{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
			{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: bookingHandler.UpdateBookingStatus},
		})
	}

	services := engine.Group("/services")
	services.Use(authMiddleware.RequireAuth())
	{
		addRoutes(services, []route{
			{Method: http.MethodGet, Path: "", Handler: serviceHandler.ListServices},
			{Method: http.MethodGet, Path: "/:id", Handler: serviceHandler.GetService},
		})
	}

	dashboard := engine.Group("/dashboard")
	dashboard.Use(authMiddleware.RequireAuth())
	{
		addRoutes(dashboard, []route{
			{Method: http.MethodGet, Path: "", Handler: dashboardHandler.GetDashboard},
		})
	}

	me := engine.Group("/me")
	me.Use(authMiddleware.RequireAuth())
	{
		addRoutes(me, []route{
			{Method: http.MethodGet, Path: "/export", Handler: exportHandler.ExportUserData},
		})
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
