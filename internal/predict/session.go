package predict

import (
	"errors"

	"github.com/Alias1177/StockPredictor/models"
)

// Phase is the visible state of a prediction session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInvalid
	PhaseLoading
	PhaseSuccess
	PhaseAppError
	PhaseNetworkError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseInvalid:
		return "INVALID"
	case PhaseLoading:
		return "LOADING"
	case PhaseSuccess:
		return "SUCCESS"
	case PhaseAppError:
		return "APP_ERROR"
	case PhaseNetworkError:
		return "NETWORK_ERROR"
	}
	return "UNKNOWN"
}

// Request identifies one validated prediction call
type Request struct {
	ID     uint64
	Ticker string
}

// Session tracks the result, error and loading regions of one requester.
// It is not safe for concurrent use; the owning event loop serializes calls.
type Session struct {
	latest uint64
	phase  Phase
	card   *Card
	errMsg string
}

// Begin validates raw input and starts a new request. Any request issued
// before it is superseded, including when validation fails.
func (s *Session) Begin(raw string) (Request, error) {
	s.latest++
	s.card = nil

	ticker, err := NormalizeTicker(raw)
	if err != nil {
		s.phase = PhaseInvalid
		s.errMsg = UserMessage(err)
		return Request{}, err
	}

	s.phase = PhaseLoading
	s.errMsg = ""
	return Request{ID: s.latest, Ticker: ticker}, nil
}

// Finish applies the outcome of request id. It reports false and changes
// nothing when id is not the most recently issued request.
func (s *Session) Finish(id uint64, resp *models.PredictionResponse, err error) bool {
	if id != s.latest || s.phase != PhaseLoading {
		return false
	}

	if err == nil && resp == nil {
		err = &NetworkError{Err: errEmptyResponse}
	}

	if err != nil {
		s.card = nil
		s.errMsg = UserMessage(err)
		var appErr *ApplicationError
		if errors.As(err, &appErr) {
			s.phase = PhaseAppError
		} else {
			s.phase = PhaseNetworkError
		}
		return true
	}

	card := NewCard(resp)
	s.card = &card
	s.errMsg = ""
	s.phase = PhaseSuccess
	return true
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Loading() bool {
	return s.phase == PhaseLoading
}

// Card returns the rendered result, or nil unless the last request succeeded
func (s *Session) Card() *Card {
	return s.card
}

// ErrorMessage returns the text of the error region, empty when it is hidden
func (s *Session) ErrorMessage() string {
	return s.errMsg
}

// Latest returns the id of the most recent request
func (s *Session) Latest() uint64 {
	return s.latest
}
