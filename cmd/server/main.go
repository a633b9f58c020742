package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "harambee-backend/internal/api/http"
	"harambee-backend/internal/config"
	"harambee-backend/internal/logger"
	"harambee-backend/internal/repository/postgres"
	"harambee-backend/internal/security"
	"harambee-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load environment overrides from .env when present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Harambee Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.SMTP.Host != "" {
		emailSvc = service.NewEmailService(
			cfg.SMTP.Host,
			fmt.Sprintf("%d", cfg.SMTP.Port),
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.From,
		)
		logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
	} else {
		logger.Info("SMTP not configured, email delivery disabled")
	}

	// Initialize Services
	notifier := service.NewNotifier(
		store.NotificationRepository,
		store.GroupRepository,
		store.MemberRepository,
		store.UserRepository,
		emailSvc,
	)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	contributionSvc := service.NewContributionService(
		store.ContributionRepository,
		store.MemberRepository,
		store.GroupRepository,
		ledgerSvc,
		notifier,
	)
	groupSvc := service.NewGroupService(
		store.GroupRepository,
		store.MemberRepository,
		store.UserRepository,
		notifier,
	)
	projectSvc := service.NewProjectService(store.ProjectRepository, store.GroupRepository)
	linkSvc := service.NewLinkService(store.GroupRepository, store.ProjectRepository, groupSvc)
	otpSvc := service.NewOTPService(store.OTPRepository, service.NewLogOTPSender())
	authSvc := service.NewAuthService(store.UserRepository, store.OTPRepository, tokenManager)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		OTP:           otpSvc,
		Contributions: contributionSvc,
		Groups:        groupSvc,
		Projects:      projectSvc,
		Ledger:        ledgerSvc,
		Notifications: noteSvc,
		Links:         linkSvc,
		Tokens:        tokenManager,
		EchoOTPCodes:  cfg.OTP.EchoCodes,
	})

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
