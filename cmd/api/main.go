package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/clinicore/clinic-api/internal/config"
	"github.com/clinicore/clinic-api/internal/email"
	appointmentHandler "github.com/clinicore/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicore/clinic-api/internal/handler/auth"
	clinicalrecordHandler "github.com/clinicore/clinic-api/internal/handler/clinicalrecord"
	dashboardHandler "github.com/clinicore/clinic-api/internal/handler/dashboard"
	healthHandler "github.com/clinicore/clinic-api/internal/handler/health"
	patientHandler "github.com/clinicore/clinic-api/internal/handler/patient"
	responsibleHandler "github.com/clinicore/clinic-api/internal/handler/responsible"
	taskHandler "github.com/clinicore/clinic-api/internal/handler/task"
	userHandler "github.com/clinicore/clinic-api/internal/handler/user"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository/postgres"
	"github.com/clinicore/clinic-api/internal/router"
	appointmentService "github.com/clinicore/clinic-api/internal/service/appointment"
	authService "github.com/clinicore/clinic-api/internal/service/auth"
	clinicalrecordService "github.com/clinicore/clinic-api/internal/service/clinicalrecord"
	dashboardService "github.com/clinicore/clinic-api/internal/service/dashboard"
	patientService "github.com/clinicore/clinic-api/internal/service/patient"
	responsibleService "github.com/clinicore/clinic-api/internal/service/responsible"
	taskService "github.com/clinicore/clinic-api/internal/service/task"
	userService "github.com/clinicore/clinic-api/internal/service/user"
	"github.com/clinicore/clinic-api/pkg/auth"
	"github.com/clinicore/clinic-api/pkg/logger"
	"github.com/clinicore/clinic-api/pkg/security"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  os.Getenv("CLINIC_LOG_LEVEL"),
		Pretty: os.Getenv("CLINIC_LOG_PRETTY") == "true",
	})

	if err := model.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	recordRepo := postgres.NewClinicalRecordRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	responsibleRepo := postgres.NewResponsibleRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	hasher := security.NewBcryptHasher(12)
	tokens := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	mailer := email.NewService(cfg.SMTP)

	authSvc := authService.NewService(userRepo, hasher, tokens)
	userSvc := userService.NewService(userRepo, hasher)
	patientSvc := patientService.NewService(patientRepo)
	recordSvc := clinicalrecordService.NewService(recordRepo, patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, userRepo, mailer)
	responsibleSvc := responsibleService.NewService(responsibleRepo, userRepo)
	taskSvc := taskService.NewService(taskRepo, responsibleRepo)
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	r := router.New(authMiddleware, router.Handlers{
		Auth:           authHandler.NewHandler(authSvc),
		User:           userHandler.NewHandler(userSvc),
		Patient:        patientHandler.NewHandler(patientSvc),
		ClinicalRecord: clinicalrecordHandler.NewHandler(recordSvc),
		Appointment:    appointmentHandler.NewHandler(appointmentSvc),
		Responsible:    responsibleHandler.NewHandler(responsibleSvc, taskSvc),
		Task:           taskHandler.NewHandler(taskSvc),
		Dashboard:      dashboardHandler.NewHandler(dashboardSvc),
		Health:         healthHandler.NewHandler(db),
	}, router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst:  cfg.Server.RateLimitBurst,
		CORSConfig: corsConfig,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
