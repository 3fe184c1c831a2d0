package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgLog "time-tracking-assistant/pkg/log"
	pkgTelegram "time-tracking-assistant/pkg/telegram"
)

const pollRetryDelay = 3 * time.Second

// Poller receives updates through getUpdates when no webhook is reachable.
type Poller struct {
	l       pkgLog.Logger
	bot     *pkgTelegram.Bot
	h       Handler
	timeout int // seconds per long poll
}

// NewPoller creates a long-polling loop feeding h.
func NewPoller(l pkgLog.Logger, bot *pkgTelegram.Bot, h Handler, timeout int) *Poller {
	if timeout <= 0 {
		timeout = 30
	}
	return &Poller{l: l, bot: bot, h: h, timeout: timeout}
}

// Run polls until ctx is cancelled. Every update is handled in its own
// goroutine; Run waits for them before returning.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.bot.DeleteWebhook(ctx); err != nil {
		p.l.Warnf(ctx, "telegram.Poller: deleteWebhook failed: %v", err)
	}
	p.l.Infof(ctx, "telegram.Poller: long polling started (timeout=%ds)", p.timeout)

	var (
		wg     sync.WaitGroup
		offset int64
	)
	defer wg.Wait()

	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := p.bot.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			p.l.Warnf(ctx, "telegram.Poller: getUpdates failed, retrying in %s: %v", pollRetryDelay, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			if u.Message == nil {
				continue
			}

			wg.Add(1)
			go func(u pkgTelegram.Update) {
				defer wg.Done()
				// Handlers finish their reply even while shutting down.
				p.h.HandleUpdate(pkgLog.WithTraceID(context.WithoutCancel(ctx), ""), u)
			}(u)
		}
	}
}
