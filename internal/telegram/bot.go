package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/predict"
	"github.com/Alias1177/StockPredictor/internal/requester"
	"github.com/Alias1177/StockPredictor/models"
)

const usageText = "Send a stock ticker symbol (for example AAPL) to get tomorrow's price prediction.\n\n" +
	"Commands:\n" +
	"/stocks - list tickers with enough history\n" +
	"/help - show this message"

// chat holds the requester bound to one Telegram chat
type chat struct {
	input     *chatInput
	requester *requester.Requester
}

// Bot turns Telegram updates into prediction requests. Each chat gets its
// own requester; a text message acts as the Enter key and the inline
// button as the predict button.
type Bot struct {
	sender  Sender
	client  models.PredictionClient
	catalog models.CatalogClient
	logger  zerolog.Logger

	mu    sync.Mutex
	chats map[int64]*chat
}

// NewBot creates a bot. catalog may be nil, which disables /stocks.
func NewBot(sender Sender, client models.PredictionClient, catalog models.CatalogClient) *Bot {
	return &Bot{
		sender:  sender,
		client:  client,
		catalog: catalog,
		logger:  log.With().Str("component", "telegram_bot").Logger(),
		chats:   make(map[int64]*chat),
	}
}

// Run handles updates until the channel closes or ctx is done
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// Wait blocks until predictions in flight in every chat have completed
func (b *Bot) Wait() {
	b.mu.Lock()
	chats := make([]*chat, 0, len(b.chats))
	for _, c := range b.chats {
		chats = append(chats, c)
	}
	b.mu.Unlock()

	for _, c := range chats {
		c.requester.Wait()
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if strings.HasPrefix(message.Text, "/") {
		b.handleCommand(ctx, chatID, message.Text)
		return
	}

	c := b.chat(chatID)
	c.input.Set(message.Text)
	c.requester.OnKeyPress(ctx, requester.KeyEnter)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, text string) {
	command := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}

	switch command {
	case "stocks":
		b.send(chatID, b.stocksText(ctx))
	default:
		b.send(chatID, usageText)
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if _, err := b.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to answer callback")
	}
	if callback.Message == nil || callback.Data != predictAgainData {
		return
	}

	b.chat(callback.Message.Chat.ID).requester.OnClick(ctx)
}

func (b *Bot) stocksText(ctx context.Context) string {
	if b.catalog == nil {
		return "Ticker listing is not available."
	}
	tickers, err := b.catalog.Stocks(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Failed to list stocks")
		return predict.MsgConnectionError
	}
	if len(tickers) == 0 {
		return "No tickers available yet."
	}
	return fmt.Sprintf("Available tickers: %s", strings.Join(tickers, ", "))
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) chat(chatID int64) *chat {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.chats[chatID]; ok {
		return c
	}

	logger := b.logger.With().Int64("chat_id", chatID).Logger()

	result := newMessageRegion(chatID, b.sender, logger)
	result.keyboard = predictAgainKeyboard()
	errRegion := newMessageRegion(chatID, b.sender, logger)
	errRegion.keyboard = predictAgainKeyboard()
	loading := newMessageRegion(chatID, b.sender, logger)
	loading.SetText(loadingText)

	input := &chatInput{}
	c := &chat{
		input: input,
		requester: requester.New(b.client, requester.View{
			Input:   input,
			Result:  result,
			Error:   errRegion,
			Loading: loading,
		}, requester.WithLogger(logger)),
	}
	b.chats[chatID] = c
	return c
}
