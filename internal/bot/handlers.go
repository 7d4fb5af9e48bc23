package bot

import (
	"context"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"financebot/internal/logger"

	"log/slog"
)

// Register wires the router onto the Telegram bot: the two commands, the
// generic callback endpoint, and the text endpoint.
func Register(b *tele.Bot, r *Router) {
	b.Handle("/start", func(c tele.Context) error {
		return handle(c, "start", func(ctx context.Context) error {
			return send(c, r.Start())
		})
	})

	b.Handle("/help", func(c tele.Context) error {
		return handle(c, "help", func(ctx context.Context) error {
			return send(c, r.Help())
		})
	})

	b.Handle(tele.OnCallback, func(c tele.Context) error {
		_ = c.Respond()
		key := callbackKey(c.Callback())
		return handle(c, "callback."+key, func(ctx context.Context) error {
			reply := r.Select(ctx, c.Sender().ID, key)
			return edit(c, reply)
		})
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		return handle(c, "text", func(ctx context.Context) error {
			notify := func(text string) { _ = c.Send(text) }
			reply := r.Text(ctx, c.Sender().ID, strings.TrimSpace(c.Text()), notify)
			return send(c, reply)
		})
	})
}

// handle runs fn with a request-scoped context and logs one summary line.
func handle(c tele.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx := buildContext(c)
	ctx = logger.WithHandler(ctx, name)

	err := fn(ctx)

	status := "ok"
	attrs := []slog.Attr{
		slog.String("handler", name),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	}
	if err != nil {
		status = "fail"
		attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}
	attrs = append(attrs, slog.String("status", status))
	logger.Info(ctx, "tg", "handler.handled", attrs...)
	return err
}

// buildContext constructs a context.Context from tele.Context, carrying the
// rid and update metadata for consistent logging in downstream layers.
func buildContext(c tele.Context) context.Context {
	upd := c.Update()

	var chatID, userID int64
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := c.Sender(); user != nil {
		userID = user.ID
	}

	ctx := logger.WithRID(context.Background(), logger.BuildRID(upd.ID, chatID, userID))
	ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
	return logger.WithLogger(ctx, logger.Component("tg"))
}

// callbackKey returns cb.Unique if present; otherwise parses Telebot's
// \f<unique>|<payload> encoding from the raw data.
func callbackKey(cb *tele.Callback) string {
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	raw := strings.TrimPrefix(cb.Data, "\f")
	key, _, _ := strings.Cut(raw, "|")
	return strings.TrimSpace(key)
}

func send(c tele.Context, reply Reply) error {
	return c.Send(reply.Text, sendOptions(reply))
}

// edit rewrites the originating menu message in place, falling back to a new
// message when there is nothing to edit.
func edit(c tele.Context, reply Reply) error {
	return c.EditOrSend(reply.Text, sendOptions(reply))
}

func sendOptions(reply Reply) *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:             tele.ModeMarkdown,
		ReplyMarkup:           reply.Markup,
		DisableWebPagePreview: reply.NoPreview,
	}
}
