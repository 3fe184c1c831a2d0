package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"time-tracking-assistant/config"
	"time-tracking-assistant/internal/app"
	"time-tracking-assistant/internal/httpserver"
	"time-tracking-assistant/internal/middleware"
	tgDelivery "time-tracking-assistant/internal/tracker/delivery/telegram"
	"time-tracking-assistant/pkg/log"
	"time-tracking-assistant/pkg/telegram"
)

// updateDrainTimeout bounds how long shutdown waits for webhook updates
// that are still being processed.
const updateDrainTimeout = 30 * time.Second

// @title       Time Tracking Assistant API
// @description Conversational time tracking: tell the assistant what you start and stop, read back running tasks, history and daily totals.
// @version     1.0
// @BasePath    /
// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name X-API-Key
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
		MaxSizeMB:    cfg.Logger.MaxSizeMB,
		MaxBackups:   cfg.Logger.MaxBackups,
		MaxAgeDays:   cfg.Logger.MaxAgeDays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Time Tracking Assistant bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if cfg.Telegram.BotToken == "" {
		logger.Fatal(ctx, "TELEGRAM_BOT_TOKEN is required")
	}

	// 3. Tracker domain
	tr, err := app.NewTracker(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize storage: %v", err)
	}
	defer tr.Close()

	// 4. Telegram
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	if err := bot.SetMyCommands(ctx, tgDelivery.Commands()); err != nil {
		logger.Warnf(ctx, "Failed to publish the command menu: %v", err)
	}
	telegramHandler := tgDelivery.New(logger, tr.UseCase, bot)

	// Webhook when a public URL is known, long polling otherwise.
	webhookMode := false
	if webhookURL := resolveWebhookURL(ctx, cfg.Telegram, logger); webhookURL != "" {
		if err := bot.SetWebhook(ctx, webhookURL, cfg.Telegram.WebhookSecret); err != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook, falling back to long polling: %v", err)
		} else {
			webhookMode = true
			logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
		}
	}

	// 5. HTTP Server
	srvCfg := httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware: middleware.New(logger, middleware.Config{
			APIKey:          cfg.API.Key,
			WebhookSecret:   cfg.Telegram.WebhookSecret,
			RateLimitPerMin: cfg.RateLimit.PerMinute,
			RateLimitBurst:  cfg.RateLimit.Burst,
		}),
		DB:             tr.DB,
		TrackerUseCase: tr.UseCase,
		APIEnabled:     cfg.API.Key != "",
	}
	if webhookMode {
		srvCfg.TelegramHandler = telegramHandler
	}
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize HTTP server: %v", err)
	}

	// 6. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})
	if !webhookMode {
		poller := tgDelivery.NewPoller(logger, bot, telegramHandler, cfg.Telegram.PollTimeout)
		g.Go(func() error {
			return poller.Run(gctx)
		})
	}

	runErr := g.Wait()

	// Updates accepted over the webhook run detached from the server; finish
	// them before the deferred tracker Close releases the database.
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), updateDrainTimeout)
	if err := telegramHandler.Wait(drainCtx); err != nil {
		logger.Warnf(ctx, "Gave up waiting for in-flight updates: %v", err)
	}
	cancel()

	if runErr != nil {
		logger.Errorf(ctx, "Bot stopped with error: %v", runErr)
		return
	}
	logger.Info(ctx, "Bot stopped gracefully")
}

// resolveWebhookURL returns the configured webhook URL or one derived from a
// local ngrok tunnel. An empty result selects long polling.
func resolveWebhookURL(ctx context.Context, cfg config.TelegramConfig, l log.Logger) string {
	if cfg.WebhookURL != "" {
		return cfg.WebhookURL
	}
	if cfg.NgrokAPI == "" {
		return ""
	}

	publicURL, err := detectNgrokURL(ctx, cfg.NgrokAPI, ngrokAttempts)
	if err != nil {
		l.Infof(ctx, "No ngrok tunnel detected (%v), using long polling", err)
		return ""
	}
	l.Infof(ctx, "Auto-detected ngrok URL: %s", publicURL)
	return publicURL + webhookPath
}
