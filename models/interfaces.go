package models

import "context"

type PredictionClient interface {
	Predict(ctx context.Context, ticker string) (*PredictionResponse, error)
}

type CatalogClient interface {
	Health(ctx context.Context) error
	Stocks(ctx context.Context) ([]string, error)
}
