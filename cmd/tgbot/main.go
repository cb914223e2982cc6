package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/api/predictor"
	"github.com/Alias1177/StockPredictor/internal/config"
	"github.com/Alias1177/StockPredictor/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const connectTimeout = 2 * time.Minute

func main() {
	// Setup logger
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(lvl)

	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := telegram.Connect(ctx, cfg.TelegramBotToken, connectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	log.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")

	client := predictor.NewClient(predictor.ClientOptions{
		BaseURL:        cfg.APIURL,
		RequestTimeout: cfg.Timeout(),
	})
	if err := client.Health(ctx); err != nil {
		log.Warn().Err(err).Str("api_url", client.BaseURL()).Msg("Prediction service is not healthy yet")
	}

	// Setup update configuration
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	handler := telegram.NewBot(telegram.NewLimitedSender(ctx, bot, cfg.TelegramSendRate), client, client)
	handler.Run(ctx, updates)

	log.Info().Msg("Shutting down bot...")
	bot.StopReceivingUpdates()
	handler.Wait()
}
