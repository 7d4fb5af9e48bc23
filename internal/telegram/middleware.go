package telegram

import (
	"context"
	"regexp"
	"runtime/debug"

	tele "gopkg.in/telebot.v4"

	"financebot/internal/logger"

	"log/slog"
)

var tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)

// recoverMiddleware catches panics in handlers and prevents the bot from crashing.
func recoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}

// loggerMiddleware logs a single receipt line per update.
func loggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		user := c.Sender()
		chat := c.Chat()

		chatID, userID := int64(0), int64(0)
		if chat != nil {
			chatID = chat.ID
		}
		if user != nil {
			userID = user.ID
		}

		attrs := []slog.Attr{
			slog.String("event", "update.received"),
			slog.String("rid", logger.BuildRID(upd.ID, chatID, userID)),
			slog.Int("update_id", upd.ID),
			slog.Int64("chat_id", chatID),
			slog.Int64("user_id", userID),
		}
		switch {
		case upd.Callback != nil:
			attrs = append(attrs, slog.String("kind", "callback"))
		case upd.Message != nil:
			attrs = append(attrs, slog.String("kind", "message"))
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
			}
		}
		logger.TG.LogAttrs(context.Background(), slog.LevelDebug, "update received", attrs...)

		return next(c)
	}
}

// sanitizeError prevents accidental leakage of the bot token in logs.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}
