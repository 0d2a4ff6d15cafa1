package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "awardflow/docs" // This is for Swagger
	"awardflow/internal/auth"
	"awardflow/internal/config"
	"awardflow/internal/database"
	"awardflow/internal/email"
	"awardflow/internal/handlers"
	"awardflow/internal/logger"
	"awardflow/internal/middleware"
	"awardflow/internal/models"
	"awardflow/internal/repository"
	"awardflow/internal/scheduler"
	"awardflow/internal/service"
	"awardflow/internal/vault"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Award Flow API
// @version 1.0
// @description Backend API for the citation and appreciation award approval workflow

// @contact.name API Support
// @contact.email support@awardflow.mil

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	// Overlay secrets from Vault when enabled
	if cfg.Vault.Enabled {
		vaultClient, err := vault.NewClient(&cfg.Vault)
		if err != nil {
			slog.Error("Failed to create Vault client", "error", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		secrets, err := vaultClient.LoadSecrets(ctx)
		cancel()
		if err != nil {
			slog.Error("Failed to load secrets from Vault", "error", err)
			os.Exit(1)
		}
		cfg.ApplySecrets(secrets)
		slog.Info("Secrets loaded from Vault", "path", cfg.Vault.SecretPath)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		err := db.Close()
		if err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrator := database.NewMigrator(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	auditRepo := repository.NewAuditRepository(db.DB)
	applicationRepo := repository.NewApplicationRepository(db.DB)
	parameterRepo := repository.NewParameterRepository(db.DB)
	graceMarkRepo := repository.NewGraceMarkRepository(db.DB)
	priorityRepo := repository.NewPriorityRepository(db.DB)
	withdrawalRepo := repository.NewWithdrawalRepository(db.DB)

	// Initialize services
	tokenService := auth.NewService(&cfg.JWT)
	emailService := email.NewService(&cfg.Email)
	auditService := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(userRepo, sessionRepo, tokenService, &cfg.JWT, auditService)
	applicationSvc := service.NewApplicationService(applicationRepo, parameterRepo, graceMarkRepo, priorityRepo, withdrawalRepo, auditService)
	reviewSvc := service.NewReviewService(applicationRepo, graceMarkRepo, priorityRepo, userRepo, emailService, auditService)
	withdrawalSvc := service.NewWithdrawalService(applicationRepo, withdrawalRepo, userRepo, emailService, auditService)
	finalizationSvc := service.NewFinalizationService(applicationRepo, userRepo, emailService, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	applicationHandler := handlers.NewApplicationHandler(applicationSvc)
	reviewHandler := handlers.NewReviewHandler(reviewSvc)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalSvc)
	finalizationHandler := handlers.NewFinalizationHandler(finalizationSvc)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(tokenService, sessionRepo)
	rbacMw := middleware.NewRBACMiddleware()
	auditMw := middleware.NewAuditMiddleware(db.DB)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Start background jobs
	jobs, err := scheduler.New(&cfg.Scheduler, applicationRepo, sessionRepo, userRepo, withdrawalSvc, emailService)
	if err != nil {
		slog.Error("Failed to create scheduler", "error", err)
		os.Exit(1)
	}
	jobs.Start()
	defer jobs.Stop()

	mux := http.NewServeMux()

	// Auth endpoints
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.Handle("POST /api/v1/auth/logout",
		authMw.Authenticate(
			http.HandlerFunc(authHandler.Logout),
		),
	)

	// Application endpoints
	mux.Handle("POST /api/v1/applications",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleUnit)(
				http.HandlerFunc(applicationHandler.Submit),
			),
		),
	)

	mux.Handle("GET /api/v1/applications",
		authMw.Authenticate(
			http.HandlerFunc(applicationHandler.List),
		),
	)

	mux.Handle("GET /api/v1/applications/shortlisted",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(applicationHandler.ListShortlisted),
			),
		),
	)

	mux.Handle("GET /api/v1/applications/{id}",
		authMw.Authenticate(
			http.HandlerFunc(applicationHandler.Get),
		),
	)

	// Parameter endpoints
	mux.Handle("PUT /api/v1/parameters/{id}/approved-marks",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(applicationHandler.SetApprovedMarks),
			),
		),
	)

	mux.Handle("POST /api/v1/parameters/{id}/clarification",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(applicationHandler.RaiseClarification),
			),
		),
	)

	mux.Handle("PUT /api/v1/parameters/{id}/clarification",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleUnit)(
				http.HandlerFunc(applicationHandler.ResolveClarification),
			),
		),
	)

	mux.Handle("POST /api/v1/parameters/{id}/uploads",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleUnit)(
				http.HandlerFunc(applicationHandler.AttachUpload),
			),
		),
	)

	// Review endpoints
	mux.Handle("PUT /api/v1/applications/{id}/grace-marks",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(reviewHandler.AddGraceMarks),
			),
		),
	)

	mux.Handle("PUT /api/v1/applications/{id}/priority",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(reviewHandler.SetPriority),
			),
		),
	)

	mux.Handle("POST /api/v1/applications/{id}/approve",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(reviewHandler.Approve),
			),
		),
	)

	mux.Handle("POST /api/v1/applications/{id}/reject",
		authMw.Authenticate(
			rbacMw.RequireReviewer()(
				http.HandlerFunc(reviewHandler.Reject),
			),
		),
	)

	mux.Handle("POST /api/v1/applications/{id}/shortlist",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleCommand)(
				http.HandlerFunc(reviewHandler.Shortlist),
			),
		),
	)

	mux.Handle("POST /api/v1/applications/{id}/side-lane/approve",
		authMw.Authenticate(
			rbacMw.RequireSideLane()(
				http.HandlerFunc(reviewHandler.ApproveSideLane),
			),
		),
	)

	mux.Handle("POST /api/v1/applications/bulk-approve",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleCommand)(
				auditMw.Log("application.bulk_approve", "application", "bulk approval")(
					http.HandlerFunc(reviewHandler.BulkApprove),
				),
			),
		),
	)

	// Withdrawal endpoints
	mux.Handle("POST /api/v1/applications/{id}/withdrawal",
		authMw.Authenticate(
			rbacMw.RequireNonUnit()(
				http.HandlerFunc(withdrawalHandler.Request),
			),
		),
	)

	mux.Handle("POST /api/v1/applications/{id}/withdrawal/decision",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleCommand)(
				http.HandlerFunc(withdrawalHandler.Decide),
			),
		),
	)

	mux.Handle("GET /api/v1/withdrawals/pending",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleCommand)(
				http.HandlerFunc(withdrawalHandler.ListPending),
			),
		),
	)

	// Finalization endpoints
	mux.Handle("GET /api/v1/finalization/eligible",
		authMw.Authenticate(
			rbacMw.RequireAnyRole(models.RoleCommand, models.RoleCW2MO, models.RoleCW2OL)(
				http.HandlerFunc(finalizationHandler.ListEligible),
			),
		),
	)

	mux.Handle("POST /api/v1/finalization/batch",
		authMw.Authenticate(
			rbacMw.RequireSideLane()(
				auditMw.Log("finalization.batch", "finalization", "batch finalization")(
					http.HandlerFunc(finalizationHandler.FinalizeBatch),
				),
			),
		),
	)

	// Audit log endpoints
	mux.Handle("GET /api/v1/audit-logs",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleCommand)(
				http.HandlerFunc(auditHandler.List),
			),
		),
	)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, err := w.Write([]byte(`{"status":"unhealthy","database":"error"}`))
			if err != nil {
				slog.Error("Failed to write health check response", "error", err)
				return
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`))
		if err != nil {
			slog.Error("Failed to write health check response", "error", err)
			return
		}
	})

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.LoggingMiddleware(
		middleware.MetricsMiddleware(
			middleware.SecurityHeaders(
				corsMw.Handler(
					rateLimiter.Limit(mux),
				),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
