package requester

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/predict"
	"github.com/Alias1177/StockPredictor/models"
)

// KeyEnter is the key that submits the ticker input
const KeyEnter = "Enter"

// Requester binds the ticker input and the predict button to the
// prediction service and drives the result, error and loading regions.
type Requester struct {
	client models.PredictionClient
	view   View
	logger zerolog.Logger

	mu      sync.Mutex
	session predict.Session
	wg      sync.WaitGroup
}

type Option func(*Requester)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Requester) {
		r.logger = logger
	}
}

// New creates a Requester. All four view handles must be non-nil.
func New(client models.PredictionClient, view View, opts ...Option) *Requester {
	r := &Requester{
		client: client,
		view:   view,
		logger: log.With().Str("component", "requester").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnClick handles activation of the predict button
func (r *Requester) OnClick(ctx context.Context) {
	r.Trigger(ctx)
}

// OnKeyPress handles a key press in the ticker input
func (r *Requester) OnKeyPress(ctx context.Context, key string) {
	if key == KeyEnter {
		r.Trigger(ctx)
	}
}

// Trigger reads the input and starts a prediction. It returns as soon as
// the loading region is shown; the outcome is rendered when the call
// completes. Only the most recent request may update the view.
func (r *Requester) Trigger(ctx context.Context) {
	r.mu.Lock()
	req, err := r.session.Begin(r.view.Input.Value())
	r.view.render(&r.session)
	r.mu.Unlock()

	if err != nil {
		r.logger.Debug().Err(err).Msg("Rejected ticker input")
		return
	}

	logger := r.logger.With().Str("ticker", req.Ticker).Uint64("request", req.ID).Logger()
	logger.Debug().Msg("Prediction started")

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		resp, err := r.client.Predict(ctx, req.Ticker)

		r.mu.Lock()
		defer r.mu.Unlock()

		if !r.session.Finish(req.ID, resp, err) {
			logger.Debug().Uint64("latest", r.session.Latest()).Msg("Discarded stale prediction")
			return
		}
		if err != nil {
			logger.Info().Err(err).Str("phase", r.session.Phase().String()).Msg("Prediction failed")
		}
		r.view.render(&r.session)
	}()
}

// Wait blocks until every started prediction has completed
func (r *Requester) Wait() {
	r.wg.Wait()
}

// Phase returns the current visible state
func (r *Requester) Phase() predict.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Phase()
}
