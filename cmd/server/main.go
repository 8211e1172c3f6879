package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quickcert/quickcert-api/internal/cache"
	"github.com/quickcert/quickcert-api/internal/certdoc"
	"github.com/quickcert/quickcert-api/internal/config"
	"github.com/quickcert/quickcert-api/internal/database"
	"github.com/quickcert/quickcert-api/internal/handlers"
	"github.com/quickcert/quickcert-api/internal/middleware"
	"github.com/quickcert/quickcert-api/internal/repository"
	"github.com/quickcert/quickcert-api/internal/services"
	"github.com/quickcert/quickcert-api/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Clinic QuickCert API")

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	visitRepo := repository.NewVisitRepository()
	certRepo := repository.NewCertificateRepository()
	auditRepo := repository.NewAuditRepository()

	// Initialize renderer with the clinic identity block
	renderer := certdoc.NewRenderer(certdoc.Header{
		Name:    cfg.Clinic.Name,
		Address: cfg.Clinic.Address,
		Contact: cfg.Clinic.Contact,
	})

	// Initialize services
	patientService := services.NewPatientService(patientRepo, visitRepo, certRepo)
	certService := services.NewCertificateService(certRepo, visitRepo, patientRepo, auditRepo, cacheImpl, renderer, cfg.Cache.PDFTTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	patientHandler := handlers.NewPatientHandler(patientService)
	certHandler := handlers.NewCertificateHandler(certService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))
	r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Patients
	r.Route("/patients", func(r chi.Router) {
		r.Get("/", patientHandler.ListPatients)
		r.Post("/", patientHandler.CreatePatient)
		r.Get("/{id}", patientHandler.GetPatient)
		r.Put("/{id}", patientHandler.UpdatePatient)
		r.Delete("/{id}", patientHandler.DeletePatient)
		r.Get("/{id}/visits", patientHandler.ListVisits)
		r.Post("/{id}/visits", patientHandler.CreateVisit)
	})

	// Visits
	r.Route("/visits", func(r chi.Router) {
		r.Get("/{id}", patientHandler.GetVisit)
		r.With(middleware.IdempotencyKey).Post("/{id}/certificates", certHandler.CreateCertificate)
	})

	// Certificates
	r.Route("/certificates", func(r chi.Router) {
		r.Get("/", certHandler.ListRecent)
		r.Get("/{id}", certHandler.GetCertificate)
		r.Get("/{id}/document", certHandler.GetDocument)
		r.Get("/{id}/pdf", certHandler.ExportPDF)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
