package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/api/predictor"
	"github.com/Alias1177/StockPredictor/internal/config"
	"github.com/Alias1177/StockPredictor/internal/console"
	"github.com/Alias1177/StockPredictor/internal/requester"
	"github.com/Alias1177/StockPredictor/internal/tui"
)

func init() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		setupLogger(os.Stderr, "info", true)
		log.Error().Err(err).Msg("Invalid configuration")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := predictor.NewClient(predictor.ClientOptions{
		BaseURL:        cfg.APIURL,
		RequestTimeout: cfg.Timeout(),
	})

	// predictor AAPL: print one prediction and exit
	if len(os.Args) > 1 {
		setupLogger(os.Stderr, cfg.LogLevel, true)
		return runOnce(ctx, client, strings.Join(os.Args[1:], " "))
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		setupLogger(os.Stderr, cfg.LogLevel, true)
		log.Error().Err(err).Str("path", cfg.LogFile).Msg("Failed to open log file")
		return 1
	}
	defer logFile.Close()
	setupLogger(logFile, cfg.LogLevel, false)

	log.Info().Str("api_url", client.BaseURL()).Msg("Starting predictor UI")
	if err := tui.Run(ctx, client, client); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("UI exited with error")
		return 1
	}
	return 0
}

func runOnce(ctx context.Context, client *predictor.Client, ticker string) int {
	view, errRegion := console.NewView(ticker, os.Stdout, os.Stderr)
	r := requester.New(client, view)
	r.Trigger(ctx)
	r.Wait()

	if errRegion.Visible() {
		return 1
	}
	return 0
}

func setupLogger(out io.Writer, level string, color bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: !color}).
		Level(lvl).With().Timestamp().Logger()
}
