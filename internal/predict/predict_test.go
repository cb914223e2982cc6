package predict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/StockPredictor/models"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"empty", "", "", true},
		{"spaces", "   ", "", true},
		{"tabs and newlines", "\t\n ", "", true},
		{"lower case padded", "  aapl ", "AAPL", false},
		{"mixed case", "MsFt", "MSFT", false},
		{"already normalized", "IBM", "IBM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTicker(tt.input)
			if tt.wantErr {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, MsgEmptyTicker, validationErr.Message)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &ValidationError{Message: MsgEmptyTicker}, MsgEmptyTicker},
		{"application with message", &ApplicationError{StatusCode: 404, Message: "ticker not found"}, "ticker not found"},
		{"application without message", &ApplicationError{StatusCode: 500}, MsgPredictionFail},
		{"network", &NetworkError{Err: errors.New("dial tcp: connection refused")}, MsgConnectionError},
		{"unknown", errors.New("boom"), MsgConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestNewCard(t *testing.T) {
	card := NewCard(&models.PredictionResponse{
		Ticker:         "AAPL",
		PredictedPrice: 187.42,
		PredictionDate: "2024-05-02",
		Method:         "Moving Average (3-day)",
		Last3Prices:    []float64{185.1, 186.3, 187.0},
	})

	assert.Equal(t, "Prediction for AAPL", card.Heading)
	assert.Equal(t, "$187.42", card.PredictedPrice)
	assert.Equal(t, "$185.1, $186.3, $187", card.LastPrices)

	text := card.String()
	assert.Contains(t, text, "$187.42")
	assert.Contains(t, text, "$185.1, $186.3, $187")
	assert.Contains(t, text, "Prediction Date: 2024-05-02")
	assert.Contains(t, text, "Method: Moving Average (3-day)")
}

func TestNewCard_LastPrices(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   string
	}{
		{"three", []float64{185.1, 186.3, 187.0}, "$185.1, $186.3, $187"},
		{"one", []float64{42}, "$42"},
		{"empty", []float64{}, "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(&models.PredictionResponse{Ticker: "AAPL", Last3Prices: tt.prices})
			assert.Equal(t, tt.want, card.LastPrices)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$187", FormatPrice(187))
	assert.Equal(t, "$0.1", FormatPrice(0.1))
	assert.Equal(t, "$1234567.891", FormatPrice(1234567.891))
}

func TestSession_BeginRejectsBlankInput(t *testing.T) {
	var s Session

	_, err := s.Begin("   ")
	require.Error(t, err)
	assert.Equal(t, PhaseInvalid, s.Phase())
	assert.Equal(t, MsgEmptyTicker, s.ErrorMessage())
	assert.Nil(t, s.Card())
	assert.False(t, s.Loading())
}

func TestSession_Transitions(t *testing.T) {
	resp := &models.PredictionResponse{Ticker: "AAPL", PredictedPrice: 187.42}

	tests := []struct {
		name      string
		resp      *models.PredictionResponse
		err       error
		wantPhase Phase
		wantMsg   string
	}{
		{"success", resp, nil, PhaseSuccess, ""},
		{"application error", nil, &ApplicationError{StatusCode: 404, Message: "ticker not found"}, PhaseAppError, "ticker not found"},
		{"application error fallback", nil, &ApplicationError{StatusCode: 500}, PhaseAppError, MsgPredictionFail},
		{"network error", nil, &NetworkError{Err: errors.New("refused")}, PhaseNetworkError, MsgConnectionError},
		{"nil response", nil, nil, PhaseNetworkError, MsgConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			req, err := s.Begin(" aapl ")
			require.NoError(t, err)
			assert.Equal(t, "AAPL", req.Ticker)
			assert.Equal(t, PhaseLoading, s.Phase())

			assert.True(t, s.Finish(req.ID, tt.resp, tt.err))
			assert.Equal(t, tt.wantPhase, s.Phase())
			assert.Equal(t, tt.wantMsg, s.ErrorMessage())
			assert.False(t, s.Loading())
			if tt.wantPhase == PhaseSuccess {
				require.NotNil(t, s.Card())
				assert.Equal(t, "$187.42", s.Card().PredictedPrice)
			} else {
				assert.Nil(t, s.Card())
			}
		})
	}
}

func TestSession_DiscardsStaleResponses(t *testing.T) {
	var s Session

	first, err := s.Begin("aapl")
	require.NoError(t, err)
	second, err := s.Begin("msft")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	assert.True(t, s.Finish(second.ID, &models.PredictionResponse{Ticker: "MSFT"}, nil))
	assert.False(t, s.Finish(first.ID, &models.PredictionResponse{Ticker: "AAPL"}, nil))

	require.NotNil(t, s.Card())
	assert.Equal(t, "Prediction for MSFT", s.Card().Heading)
}

func TestSession_NewRequestClearsPreviousOutput(t *testing.T) {
	var s Session

	req, err := s.Begin("aapl")
	require.NoError(t, err)
	s.Finish(req.ID, nil, &ApplicationError{StatusCode: 404, Message: "ticker not found"})
	assert.Equal(t, "ticker not found", s.ErrorMessage())

	_, err = s.Begin("msft")
	require.NoError(t, err)
	assert.Empty(t, s.ErrorMessage())
	assert.Nil(t, s.Card())
	assert.True(t, s.Loading())
}

func TestSession_InvalidInputSupersedesInFlight(t *testing.T) {
	var s Session

	req, err := s.Begin("aapl")
	require.NoError(t, err)
	_, err = s.Begin("")
	require.Error(t, err)

	assert.False(t, s.Finish(req.ID, &models.PredictionResponse{Ticker: "AAPL"}, nil))
	assert.Equal(t, PhaseInvalid, s.Phase())
	assert.Equal(t, MsgEmptyTicker, s.ErrorMessage())
}
