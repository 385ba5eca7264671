package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "sacco-backend/internal/api/http"
	"sacco-backend/internal/config"
	"sacco-backend/internal/logger"
	"sacco-backend/internal/repository/postgres"
	"sacco-backend/internal/security"
	"sacco-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present (local development convenience)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SACCO Ledger Engine...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Services
	emailSender := service.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	notifier := service.NewNotifier(store.NotificationRepository, emailSender)

	accountSvc := service.NewAccountService(store.AccountRepository, store.SavingsRepository, store.WelfareRepository)
	txnSvc := service.NewTransactionService(store.TransactionRepository, store.AccountRepository)
	eligibilitySvc := service.NewEligibilityService(store.AccountRepository, store.SavingsRepository, cfg.Ledger)
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.AccountRepository,
		store.TransactionRepository,
		txnSvc,
		eligibilitySvc,
		notifier,
		cfg.Ledger,
	)
	batchSvc := service.NewBatchService(
		store.AccountRepository,
		store.WelfareRepository,
		store.LoanRepository,
		notifier,
		cfg.Ledger,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers and router
	router := httpapi.NewRouter(authMiddleware, httpapi.Handlers{
		Accounts:      httpapi.NewAccountHandler(accountSvc, eligibilitySvc),
		Transactions:  httpapi.NewTransactionHandler(txnSvc),
		Loans:         httpapi.NewLoanHandler(loanSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
		Jobs:          httpapi.NewJobHandler(batchSvc),
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
