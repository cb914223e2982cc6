package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Alias1177/StockPredictor/internal/predict"
)

const (
	loadingText       = "⏳ Fetching prediction..."
	predictAgainData  = "predict"
	predictAgainLabel = "🔁 Predict again"

	// maxMessageLength is Telegram's text limit in UTF-16 code units
	maxMessageLength = 4096
	ellipsis         = "…"
)

// chatInput holds the last ticker typed in a chat
type chatInput struct {
	mu    sync.Mutex
	value string
}

func (i *chatInput) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

func (i *chatInput) Set(value string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = value
}

// messageRegion is a region backed by one chat message. Showing sends the
// message, hiding deletes it. Text is sent without a parse mode so it is
// never interpreted as markup.
type messageRegion struct {
	chatID   int64
	sender   Sender
	logger   zerolog.Logger
	keyboard *tgbotapi.InlineKeyboardMarkup

	text      string
	shownText string
	messageID int
}

func newMessageRegion(chatID int64, sender Sender, logger zerolog.Logger) *messageRegion {
	return &messageRegion{chatID: chatID, sender: sender, logger: logger}
}

func (r *messageRegion) SetText(text string) {
	r.text = truncateMessage(text)
}

func (r *messageRegion) SetCard(card predict.Card) {
	r.text = truncateMessage(card.String())
}

// truncateMessage cuts text so it fits in one message, marking the cut with an ellipsis
func truncateMessage(text string) string {
	if utf16Len(text) <= maxMessageLength {
		return text
	}
	budget := maxMessageLength - utf16Len(ellipsis)
	units := 0
	for i, r := range text {
		units += utf16Len(string(r))
		if units > budget {
			return text[:i] + ellipsis
		}
	}
	return text
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func (r *messageRegion) Show() {
	if r.messageID != 0 {
		if r.shownText == r.text {
			return
		}
		edit := tgbotapi.NewEditMessageText(r.chatID, r.messageID, r.text)
		edit.ReplyMarkup = r.keyboard
		if _, err := r.sender.Send(edit); err != nil {
			r.logger.Error().Err(err).Int("message_id", r.messageID).Msg("Failed to edit message")
			return
		}
		r.shownText = r.text
		return
	}

	msg := tgbotapi.NewMessage(r.chatID, r.text)
	if r.keyboard != nil {
		msg.ReplyMarkup = *r.keyboard
	}
	sent, err := r.sender.Send(msg)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to send message")
		return
	}
	r.messageID = sent.MessageID
	r.shownText = r.text
}

func (r *messageRegion) Hide() {
	if r.messageID == 0 {
		return
	}
	if _, err := r.sender.Request(tgbotapi.NewDeleteMessage(r.chatID, r.messageID)); err != nil {
		r.logger.Warn().Err(err).Int("message_id", r.messageID).Msg("Failed to delete message")
	}
	r.messageID = 0
	r.shownText = ""
}

func predictAgainKeyboard() *tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(predictAgainLabel, predictAgainData),
		),
	)
	return &keyboard
}
