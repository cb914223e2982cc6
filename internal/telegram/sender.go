package telegram

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Sender is the subset of *tgbotapi.BotAPI the bot uses
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// limitedSender spaces outbound calls so the bot stays under Telegram's
// flood limits (about 30 messages per second)
type limitedSender struct {
	ctx     context.Context
	base    Sender
	limiter *rate.Limiter
}

// NewLimitedSender wraps base with a limiter allowing perSecond calls
func NewLimitedSender(ctx context.Context, base Sender, perSecond float64) Sender {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &limitedSender{
		ctx:     ctx,
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (s *limitedSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := s.limiter.Wait(s.ctx); err != nil {
		return tgbotapi.Message{}, err
	}
	return s.base.Send(c)
}

func (s *limitedSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := s.limiter.Wait(s.ctx); err != nil {
		return nil, err
	}
	return s.base.Request(c)
}

// Connect authorizes the bot, retrying with exponential backoff while
// Telegram is unreachable. A rejected token fails immediately.
func Connect(ctx context.Context, token string, maxElapsed time.Duration) (*tgbotapi.BotAPI, error) {
	var bot *tgbotapi.BotAPI
	operation := func() error {
		var err error
		bot, err = tgbotapi.NewBotAPI(token)
		if err != nil {
			var apiErr *tgbotapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = maxElapsed

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("Telegram authorization failed")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(backoffStrategy, ctx), notify); err != nil {
		return nil, err
	}
	return bot, nil
}
