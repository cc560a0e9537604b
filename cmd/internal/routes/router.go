package routes

import (
	"companion/cmd/internal/metrics"
	"companion/cmd/internal/utils/apierror"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Handlers struct {
	Appointments  *DefaultAppointmentRoute
	Notifications *DefaultNotificationRoute
	Realtime      *DefaultRealtimeRoute
	Health        *DefaultHealthRoute
	Metrics       *metrics.Metrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// SubmitRateLimit is requests per second per client on /submit; 0 disables it.
	SubmitRateLimit float64
}

func Register(e *echo.Echo, h Handlers) {
	e.Use(h.Metrics.Middleware())

	e.GET("/", h.Appointments.Index)
	e.GET("/doctors", h.Appointments.GetDoctors)

	// Both spellings were used by earlier front-ends.
	e.POST("/bookAppointment", h.Appointments.BookAppointment)
	e.POST("/book_appointment", h.Appointments.BookAppointment)
	e.GET("/api/appointments", h.Appointments.GetAppointments)

	var submitMiddleware []echo.MiddlewareFunc
	if h.SubmitRateLimit > 0 {
		submitMiddleware = append(submitMiddleware, submitLimiter(h.SubmitRateLimit))
	}
	e.POST("/submit", h.Notifications.Submit, submitMiddleware...)

	e.GET("/socket", h.Realtime.Socket)
	e.GET("/health", h.Health.Health)
	if h.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(h.MetricsHandler))
	}
}

// submitLimiter guards the route that calls the paid text generation API.
func submitLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond * 3)
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, apierror.NewSimple(http.StatusForbidden, "Could not identify client"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(apierror.TooManyRequestsError.Code(), apierror.TooManyRequestsError)
		},
	})
}
