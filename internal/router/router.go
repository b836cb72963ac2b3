package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	appointmentHandler "github.com/clinicore/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicore/clinic-api/internal/handler/auth"
	clinicalrecordHandler "github.com/clinicore/clinic-api/internal/handler/clinicalrecord"
	dashboardHandler "github.com/clinicore/clinic-api/internal/handler/dashboard"
	healthHandler "github.com/clinicore/clinic-api/internal/handler/health"
	patientHandler "github.com/clinicore/clinic-api/internal/handler/patient"
	prometheusHandler "github.com/clinicore/clinic-api/internal/handler/prometheus"
	responsibleHandler "github.com/clinicore/clinic-api/internal/handler/responsible"
	taskHandler "github.com/clinicore/clinic-api/internal/handler/task"
	userHandler "github.com/clinicore/clinic-api/internal/handler/user"
	"github.com/clinicore/clinic-api/internal/middleware"
)

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Handlers struct {
	Auth           *authHandler.Handler
	User           *userHandler.Handler
	Patient        *patientHandler.Handler
	ClinicalRecord *clinicalrecordHandler.Handler
	Appointment    *appointmentHandler.Handler
	Responsible    *responsibleHandler.Handler
	Task           *taskHandler.Handler
	Dashboard      *dashboardHandler.Handler
	Health         *healthHandler.Handler
}

type Router struct {
	engine *gin.Engine
}

// New assembles the HTTP surface: ambient middleware on every route, then a
// public group for login and health, and an authenticated group for the rest.
func New(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := prometheusHandler.New()
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(config.CORSConfig),
		metrics.Middleware(),
		limiter.RateLimit(),
	)

	public := engine.Group("/api/v1")
	handlers.Health.RegisterRoutes(public)
	public.GET("/health/metrics", metrics.Handler())

	protected := engine.Group("/api/v1", auth.Authenticate())

	handlers.Auth.RegisterRoutes(public, protected)
	handlers.User.RegisterRoutes(protected, auth)
	handlers.Patient.RegisterRoutes(protected, auth)
	handlers.ClinicalRecord.RegisterRoutes(protected, auth)
	handlers.Appointment.RegisterRoutes(protected, auth)
	handlers.Responsible.RegisterRoutes(protected, auth)
	handlers.Task.RegisterRoutes(protected, auth)
	handlers.Dashboard.RegisterRoutes(protected)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
