package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/awhatson15/rsvp-bot/bot"
	"github.com/awhatson15/rsvp-bot/config"
	"github.com/awhatson15/rsvp-bot/db"
	"github.com/awhatson15/rsvp-bot/handlers"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot stopped with error", zap.Error(err))
	}
	logger.Info("bot stopped")
}

func run(cfg *config.Config, logger *zap.Logger) (err error) {
	database, err := db.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, database.Close())
	}()

	if err := database.Migrate(logger); err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	logger.Info("authorized", zap.String("username", api.Self.UserName))

	drafts := handlers.NewDraftStore()
	dispatcher := handlers.NewDispatcher(database, bot.NewClient(api), drafts, logger, handlers.Options{
		BotUsername: api.Self.UserName,
		NameLookups: cfg.NameLookups,
	})

	sweeper, err := bot.NewDraftSweeper(cfg.DraftSweepSchedule, cfg.DraftTTL, drafts, logger)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer func() {
		<-sweeper.Stop().Done()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return bot.NewBot(api, dispatcher, logger, cfg.PollTimeout).Run(ctx)
}
