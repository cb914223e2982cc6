package predict

import (
	"strconv"
	"strings"

	"github.com/Alias1177/StockPredictor/models"
)

// Card is the human-readable form of a prediction, one field per line of the result region
type Card struct {
	Heading        string
	PredictedPrice string
	PredictionDate string
	Method         string
	LastPrices     string
}

// NewCard renders resp. Values are interpolated as the server sent them:
// no rounding and no locale formatting.
func NewCard(resp *models.PredictionResponse) Card {
	prices := make([]string, 0, len(resp.Last3Prices))
	for _, p := range resp.Last3Prices {
		prices = append(prices, strconv.FormatFloat(p, 'f', -1, 64))
	}

	return Card{
		Heading:        "Prediction for " + resp.Ticker,
		PredictedPrice: FormatPrice(resp.PredictedPrice),
		PredictionDate: resp.PredictionDate,
		Method:         resp.Method,
		LastPrices:     "$" + strings.Join(prices, ", $"),
	}
}

// FormatPrice prefixes the shortest decimal form of v with a dollar sign (187.0 -> "$187")
func FormatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func (c Card) Lines() []string {
	return []string{
		c.Heading,
		c.PredictedPrice,
		"Prediction Date: " + c.PredictionDate,
		"Method: " + c.Method,
		"Last 3 Prices: " + c.LastPrices,
	}
}

func (c Card) String() string {
	return strings.Join(c.Lines(), "\n")
}
