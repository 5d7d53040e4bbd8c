package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowcheck/config"
	"glowcheck/internal/ai"
	"glowcheck/internal/handlers"
	"glowcheck/internal/payment"
	"glowcheck/internal/report"
	"glowcheck/internal/router"
	"glowcheck/internal/server"
	"glowcheck/internal/store"
	"glowcheck/pkg/logger"
)

func main() {
	// Initialize logger
	l := logger.New()
	l.Info("Starting Glowcheck backend...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l.Fatal("Failed to load config", err)
	}

	// Missing credentials degrade features instead of blocking startup:
	// no AI key means mock analysis, no Stripe keys means payment
	// endpoints answer 503, no DB means the in-memory store.
	if cfg.AI.APIKey == "" {
		l.Warn("Vision API key is not configured, analysis endpoints will serve mock results")
	}
	if cfg.Stripe.SecretKey == "" || cfg.Stripe.WebhookKey == "" {
		l.Warn("Stripe configuration is incomplete, payment endpoints will be unavailable")
	}

	// Pick the store variant once, here, rather than probing per module.
	var db store.Store
	if cfg.HasDB() {
		var pg *store.PostgresStore
		maxRetries := 5
		for i := 0; i < maxRetries; i++ {
			pg, err = store.NewPostgresStore(cfg.DB)
			if err == nil {
				break
			}
			l.Error("Failed to connect to database, retrying...", err)
			time.Sleep(time.Duration(i+1) * time.Second)
		}
		if pg == nil {
			l.Fatal("Failed to connect to database after multiple attempts", err)
		}
		db = pg
	} else {
		l.Warn("No database configured, using the in-memory store")
		db = store.NewMemoryStore()
	}
	defer db.Close()

	// Initialize external clients
	stripeClient := payment.NewStripeClient(cfg.Stripe, cfg.Server.BaseURL)
	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL).WithModel(cfg.AI.Model)

	// Wire services and handlers
	mailer := report.NewMailer(l)
	reports := report.NewService(aiClient, mailer, l)

	engine := router.Setup(cfg, l, router.Handlers{
		Analyze: handlers.NewAnalyzeHandler(aiClient, l),
		Chat:    handlers.NewChatHandler(aiClient, l),
		Quiz:    handlers.NewQuizHandler(l),
		Report:  handlers.NewReportHandler(reports, l),
		Payment: handlers.NewPaymentHandler(stripeClient, l),
		Webhook: handlers.NewWebhookHandler(stripeClient, db, l),
		Account: handlers.NewAccountHandler(db, l),
	})

	// Start HTTP server
	httpServer := server.NewServer(cfg.Server.Port, engine, l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("Failed to start HTTP server", err)
		}
	}()

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		l.Error("Error during HTTP server shutdown", err)
	}

	l.Info("Server stopped successfully")
}
