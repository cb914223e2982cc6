package models

// PredictionRequest is the body posted to the prediction endpoint
type PredictionRequest struct {
	Ticker string `json:"ticker"`
}

// PredictionResponse represents a successful answer from the prediction service
type PredictionResponse struct {
	Ticker         string    `json:"ticker"`
	PredictedPrice float64   `json:"predicted_price"`
	PredictionDate string    `json:"prediction_date"`
	Method         string    `json:"method"`
	Last3Prices    []float64 `json:"last_3_prices"`
}

// ErrorResponse is the body the service sends with a non-2xx status.
// Error holds whatever JSON value the service put there, nil when absent.
type ErrorResponse struct {
	Error interface{} `json:"error"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// StocksResponse lists the tickers the service has history for
type StocksResponse struct {
	Tickers []string `json:"tickers"`
}

const HealthStatusHealthy = "healthy"
