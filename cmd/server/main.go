package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartbiz/internal/config"
	"smartbiz/internal/database"
	"smartbiz/internal/dispatch"
	"smartbiz/internal/handlers"
	"smartbiz/internal/scheduler"
	"smartbiz/internal/services"
	"smartbiz/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("configuration error")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	reminders := store.NewReminderStore(db)
	recipients := store.NewRecipientRegistry(db)
	invoices := store.NewInvoiceStore(db)
	documents := store.NewDocumentStore(db)

	dispatcher, err := dispatch.NewTelegramClient(cfg.TelegramToken, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram client")
	}

	var mailer handlers.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = services.NewEmailService(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName)
	} else {
		logger.Warn().Msg("SENDGRID_API_KEY not set, invoice email disabled")
	}

	var completer handlers.Completer
	if cfg.DeepseekAPIKey != "" {
		svc, err := services.NewCompletionService(cfg.DeepseekAPIKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize completion service")
		}
		completer = svc
	} else {
		logger.Warn().Msg("DEEPSEEK_API_KEY not set, document endpoints disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := scheduler.NewWorker(reminders, dispatcher, cfg.PollInterval, logger)
	worker.Start(ctx)

	h := handlers.New(reminders, recipients, invoices, documents, mailer, completer, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))
	router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/", h.Home)
	router.GET("/health", h.Health)

	router.POST("/reminders", h.ScheduleReminder)
	router.GET("/reminders", h.ListReminders)
	router.DELETE("/reminders/:id", h.CancelReminder)
	router.POST("/reminders/cancel", h.CancelByRecipient)

	router.GET("/recipients", h.ListRecipients)
	router.POST("/events/registration", h.IngestRegistration)

	router.POST("/invoices", h.CreateInvoice)
	router.GET("/invoices", h.ListInvoices)
	router.DELETE("/invoices/:id", h.DeleteInvoice)
	router.POST("/invoices/:id/remind", h.SendPaymentReminder)

	router.POST("/documents", h.CreateDocument)
	router.GET("/documents", h.ListDocuments)
	router.DELETE("/documents/:id", h.DeleteDocument)
	router.POST("/documents/:id/ask", h.AskDocument)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	worker.Stop()
}
