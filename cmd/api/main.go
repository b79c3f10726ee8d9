package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/config"
	appointmentHandler "github.com/jwalitptl/clinic-api/internal/handler/appointment"
	doctorHandler "github.com/jwalitptl/clinic-api/internal/handler/doctor"
	healthHandler "github.com/jwalitptl/clinic-api/internal/handler/health"
	patientHandler "github.com/jwalitptl/clinic-api/internal/handler/patient"
	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/internal/router"
	appointmentService "github.com/jwalitptl/clinic-api/internal/service/appointment"
	catalogService "github.com/jwalitptl/clinic-api/internal/service/catalog"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
	"github.com/jwalitptl/clinic-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.Logging.Level))
	appLog := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	// Initialize the in-memory store and repositories
	store := memory.NewStore()
	patientRepo := memory.NewPatientRepository(store)
	appointmentRepo := memory.NewAppointmentRepository(store)
	catalogRepo := memory.NewCatalogRepository(store)

	// Initialize services
	patientSvc := patientService.NewService(patientRepo)
	catalogSvc := catalogService.NewService(catalogRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, catalogRepo)

	// Initialize handlers
	patientH := patientHandler.NewHandler(patientSvc)
	doctorH := doctorHandler.NewHandler(catalogSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	healthH := healthHandler.NewHandler()

	routerCfg := router.DefaultConfig()
	routerCfg.RateLimit.Enabled = cfg.RateLimit.Enabled
	routerCfg.RateLimit.RPS = cfg.RateLimit.RPS
	routerCfg.RateLimit.Burst = cfg.RateLimit.Burst
	if len(cfg.CORS.AllowedOrigins) > 0 {
		routerCfg.CORS.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.New(routerCfg, patientH, doctorH, appointmentH, healthH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLog.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Fatal(err, "server forced to shutdown")
	}

	appLog.Info("server exited properly")
}
