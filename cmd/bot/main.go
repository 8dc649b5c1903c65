// Package main contains the entrypoint for the channel posting bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/bot"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/bot/tasks"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/config"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/content"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/database"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/gemini"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/logger"
	"github.com/Dmitrytsr966/Post-Telegram-RAG-LM-Studio-Web-BAG/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// ai client, validator, bot, scheduler), handles graceful shutdown, and
// returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	validator := content.New(content.Limits{
		MaxLengthNoMedia:   cfg.ContentValidator.MaxLengthNoMedia,
		MaxLengthWithMedia: cfg.ContentValidator.MaxLengthWithMedia,
	}, log)

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}
	poster := telegram.NewChannelPoster(tg, cfg.Telegram.ChannelID, log)

	tDeps := tasks.TaskDeps{
		Logger:       log,
		Store:        store,
		GeminiClient: gemClient,
		Poster:       poster,
		Validator:    validator,
		Config:       cfg,
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, db, store, gemClient, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
