package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/StockPredictor/internal/platform/http"
	"github.com/Alias1177/StockPredictor/internal/predict"
	"github.com/Alias1177/StockPredictor/models"
)

const (
	predictPath = "/predict"
	healthPath  = "/health"
	stocksPath  = "/stocks"
)

var (
	errNullBody     = errors.New("response body is null")
	errMissingField = errors.New("response is missing a required field")
)

// Client talks to the stock prediction service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new prediction service client
type ClientOptions struct {
	BaseURL string
	// RequestTimeout of zero waits until the transport resolves or fails the call
	RequestTimeout time.Duration
	UserAgent      string
	Transport      http.RoundTripper
}

// NewClient creates a new prediction service client
func NewClient(options ClientOptions) *Client {
	return &Client{
		baseURL: strings.TrimRight(options.BaseURL, "/"),
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:   options.RequestTimeout,
			UserAgent: options.UserAgent,
			Transport: options.Transport,
		}),
		logger: log.With().Str("component", "predictor_client").Logger(),
	}
}

// BaseURL returns the root of the prediction service
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict posts ticker to the prediction endpoint. It makes exactly one
// attempt. Failures are *predict.ApplicationError for a non-2xx answer with
// a non-null JSON body and *predict.NetworkError for everything else,
// including a success body without ticker or last_3_prices.
func (c *Client) Predict(ctx context.Context, ticker string) (*models.PredictionResponse, error) {
	payload, err := json.Marshal(models.PredictionRequest{Ticker: ticker})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(payload))
	if err != nil {
		return nil, &predict.NetworkError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	logger := c.logger.With().
		Str("ticker", ticker).
		Str("request_id", httpClient.WithRequestID(req)).
		Logger()
	logger.Debug().Str("url", req.URL.String()).Msg("Requesting prediction")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("Prediction request failed")
		return nil, &predict.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Msg("Reading prediction response failed")
		return nil, &predict.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	logger = logger.With().Int("status", resp.StatusCode).Dur("latency", time.Since(start)).Logger()

	if !httpClient.IsSuccess(resp.StatusCode) {
		appErr, err := parseErrorBody(resp.StatusCode, body)
		if err != nil {
			logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing error response")
			return nil, &predict.NetworkError{Err: err}
		}
		logger.Info().Str("error", appErr.Message).Msg("Prediction rejected")
		return nil, appErr
	}

	data, err := parsePrediction(body)
	if err != nil {
		logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, &predict.NetworkError{Err: err}
	}

	logger.Debug().Float64("predicted_price", data.PredictedPrice).Msg("Received prediction")
	return data, nil
}

// Health probes the service health endpoint
func (c *Client) Health(ctx context.Context) error {
	var data models.HealthResponse
	if err := c.getJSON(ctx, healthPath, &data); err != nil {
		return err
	}
	if data.Status != models.HealthStatusHealthy {
		return &predict.UnhealthyError{Status: data.Status}
	}
	return nil
}

// Stocks lists the tickers the service can predict
func (c *Client) Stocks(ctx context.Context) ([]string, error) {
	var data models.StocksResponse
	if err := c.getJSON(ctx, stocksPath, &data); err != nil {
		return nil, err
	}
	return data.Tickers, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &predict.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if !httpClient.IsSuccess(resp.StatusCode) {
		return &httpClient.HTTPStatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &predict.NetworkError{Err: fmt.Errorf("parsing JSON: %w", err)}
	}
	return nil
}

// requiredFields detects fields a prediction cannot be shown without
type requiredFields struct {
	Ticker      *string    `json:"ticker"`
	Last3Prices *[]float64 `json:"last_3_prices"`
}

func parsePrediction(body []byte) (*models.PredictionResponse, error) {
	var present requiredFields
	if err := json.Unmarshal(body, &present); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if present.Ticker == nil {
		return nil, fmt.Errorf("%w: ticker", errMissingField)
	}
	if present.Last3Prices == nil {
		return nil, fmt.Errorf("%w: last_3_prices", errMissingField)
	}

	var data models.PredictionResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &data, nil
}

// parseErrorBody reads the body of a non-2xx answer. Any JSON value other
// than null is accepted; only an object's error field carries a message.
func parseErrorBody(status int, body []byte) (*predict.ApplicationError, error) {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if payload == nil {
		return nil, errNullBody
	}

	appErr := &predict.ApplicationError{StatusCode: status}
	if _, ok := payload.(map[string]interface{}); ok {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		appErr.Message = errorMessage(errResp.Error)
	}
	return appErr, nil
}

// errorMessage renders the error field as display text. Falsy values
// (null, false, 0, "") carry no message.
func errorMessage(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if !v {
			return ""
		}
	case float64:
		if v == 0 {
			return ""
		}
	}
	return displayText(v)
}

func displayText(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = displayText(item)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}
