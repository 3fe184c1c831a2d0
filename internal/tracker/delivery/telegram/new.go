package telegram

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/tracker"
	pkgLog "time-tracking-assistant/pkg/log"
	pkgTelegram "time-tracking-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
	HandleUpdate(ctx context.Context, update pkgTelegram.Update)
	Wait(ctx context.Context) error
}

type handler struct {
	l   pkgLog.Logger
	uc  tracker.UseCase
	bot *pkgTelegram.Bot

	// wg tracks updates handled in the background by HandleWebhook.
	wg sync.WaitGroup
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc tracker.UseCase, bot *pkgTelegram.Bot) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
	}
}

// Commands is the menu published with setMyCommands.
func Commands() []pkgTelegram.BotCommand {
	return []pkgTelegram.BotCommand{
		{Command: "track", Description: "Tell me what you started or finished"},
		{Command: "status", Description: "Show running tasks"},
		{Command: "history", Description: "Completed tasks of the last N days"},
		{Command: "stats", Description: "Time per task today"},
		{Command: "help", Description: "How to use the bot"},
	}
}
