package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/model"
	"time-tracking-assistant/internal/tracker"
	pkgLog "time-tracking-assistant/pkg/log"
	pkgResponse "time-tracking-assistant/pkg/response"
	pkgTelegram "time-tracking-assistant/pkg/telegram"
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers 200 right away and processes the update in the background,
// since a model round trip can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram.HandleWebhook: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	if update.Message == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Detach from the request context, which is cancelled once we respond.
	bgCtx := pkgLog.WithTraceID(context.Background(), pkgLog.TraceIDFromContext(ctx))
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.HandleUpdate(bgCtx, update)
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// Wait blocks until every update accepted by HandleWebhook has been handled,
// or ctx is done.
func (h *handler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandleUpdate processes one update and replies in the originating chat.
func (h *handler) HandleUpdate(ctx context.Context, update pkgTelegram.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.From == nil || msg.From.IsBot {
		return
	}
	if pkgLog.TraceIDFromContext(ctx) == "" {
		ctx = pkgLog.WithTraceID(ctx, "")
	}

	reply, err := h.processMessage(ctx, msg)
	if err != nil {
		h.l.Errorf(ctx, "telegram.HandleUpdate: update=%d: %v", update.UpdateID, err)
	}
	if reply == "" {
		return
	}
	h.send(ctx, msg.Chat.ID, reply)
}

// processMessage returns the text to send back, or "" to stay silent.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) (string, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return "", nil
	}

	sc := model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}

	cmd, args := splitCommand(text)
	switch cmd {
	case "":
		// Plain text is only treated as /track in private chats.
		if !msg.Chat.IsPrivate() {
			return "", nil
		}
		return h.track(ctx, sc, msg.Chat.ID, text)
	case "track":
		if args == "" {
			return trackUsage, nil
		}
		return h.track(ctx, sc, msg.Chat.ID, args)
	case "status":
		return h.status(ctx, sc)
	case "history":
		return h.history(ctx, sc, args)
	case "stats":
		return h.stats(ctx, sc)
	case "start":
		return welcomeText, nil
	case "help":
		return helpText, nil
	default:
		if !msg.Chat.IsPrivate() {
			return "", nil
		}
		return fmt.Sprintf("Unknown command /%s.\n\n%s", cmd, helpText), nil
	}
}

func (h *handler) track(ctx context.Context, sc model.Scope, chatID int64, text string) (string, error) {
	if err := h.bot.SendChatAction(ctx, chatID, pkgTelegram.ChatActionTyping); err != nil {
		h.l.Warnf(ctx, "telegram.track: failed to send typing action: %v", err)
	}

	out, err := h.uc.Track(ctx, sc, tracker.TrackInput{Message: text})
	if err != nil {
		return errorMessage(err, out.Reply), err
	}
	return presentTrack(out), nil
}

func (h *handler) status(ctx context.Context, sc model.Scope) (string, error) {
	out, err := h.uc.Status(ctx, sc)
	if err != nil {
		return errorMessage(err, ""), err
	}
	return presentStatus(out), nil
}

func (h *handler) history(ctx context.Context, sc model.Scope, args string) (string, error) {
	var days int
	if args != "" {
		n, err := strconv.Atoi(strings.Fields(args)[0])
		if err != nil || n < 1 {
			return errorMessage(tracker.ErrInvalidDays, ""), nil
		}
		days = n
	}

	out, err := h.uc.History(ctx, sc, tracker.HistoryInput{Days: days})
	if err != nil {
		return errorMessage(err, ""), err
	}
	return presentHistory(out), nil
}

func (h *handler) stats(ctx context.Context, sc model.Scope) (string, error) {
	out, err := h.uc.Stats(ctx, sc)
	if err != nil {
		return errorMessage(err, ""), err
	}
	return presentStats(out), nil
}

// send tries Markdown first and resends as plain text if Telegram rejects
// the entities.
func (h *handler) send(ctx context.Context, chatID int64, text string) {
	err := h.bot.SendMessageWithMode(ctx, chatID, text, pkgTelegram.ParseModeMarkdown)
	if err == nil {
		return
	}
	h.l.Warnf(ctx, "telegram.send: markdown rejected, resending as plain text: %v", err)
	if err := h.bot.SendMessage(ctx, chatID, stripMarkdown(text)); err != nil {
		h.l.Errorf(ctx, "telegram.send: chat=%d: %v", chatID, err)
	}
}

// splitCommand splits "/history@my_bot 7" into ("history", "7").
// Text that is not a command yields an empty command.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	head, args, _ := strings.Cut(text, " ")
	cmd := strings.TrimPrefix(head, "/")
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}
