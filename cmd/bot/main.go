package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	tele "gopkg.in/telebot.v4"

	"financebot/internal/assistant"
	"financebot/internal/bot"
	"financebot/internal/config"
	"financebot/internal/deals"
	"financebot/internal/logger"
	"financebot/internal/search"
	"financebot/internal/storage"
	"financebot/internal/telegram"

	"log/slog"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Profile: cfg.Logging.Profile,
	})

	startedAt := time.Now()

	if err := storage.RunMigrations(cfg.Database); err != nil {
		return err
	}

	db, err := storage.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	purchases := storage.NewPurchaseRepository(db)
	ai := assistant.New(cfg.OpenAI, purchases)
	if !ai.Available() {
		logger.L.Warn("assistant disabled",
			slog.String("component", "app"),
			slog.String("event", "assistant.disabled"),
			slog.String("reason", "no api key"),
		)
	}

	router := bot.NewRouter(purchases, deals.New(cfg.Deals), search.New(cfg.Search), ai)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.L.With("component", "app").Info("app ready",
		slog.String("event", "ready"),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	err = telegram.Run(ctx, cfg, func(b *tele.Bot) {
		bot.Register(b, router)
	})

	logger.L.With("component", "app").Info("shutting down...",
		slog.String("event", "shutdown"),
	)
	return err
}
