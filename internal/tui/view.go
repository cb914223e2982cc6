package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Alias1177/StockPredictor/internal/predict"
)

const (
	buttonLabel = "Predict"
	retryHint   = " (ctrl+r to retry)"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Stock Price Predictor") + "\n")
	b.WriteString(m.renderCatalog() + "\n\n")

	b.WriteString(m.input.View() + "  " + m.renderButton() + "\n\n")

	switch {
	case m.session.Loading():
		b.WriteString(m.spinner.View() + " Fetching prediction...\n")
	case m.session.Card() != nil:
		b.WriteString(renderCard(*m.session.Card()) + "\n")
	case m.session.ErrorMessage() != "":
		b.WriteString(errorStyle.Render(m.session.ErrorMessage()) + "\n")
	}

	help := "enter: predict • tab: switch focus • esc: quit"
	if m.catalog != nil {
		help = "enter: predict • tab: switch focus • ctrl+r: reload tickers • esc: quit"
	}
	b.WriteString("\n" + hintStyle.Render(help) + "\n")
	return b.String()
}

func (m Model) renderButton() string {
	if m.focus == focusButton {
		return focusedButtonStyle.Render(buttonLabel)
	}
	return buttonStyle.Render(buttonLabel)
}

func (m Model) renderCatalog() string {
	var unhealthy *predict.UnhealthyError
	switch {
	case errors.As(m.healthErr, &unhealthy):
		return warnStyle.Render(fmt.Sprintf("Prediction service reports status %q, predictions may fail.", unhealthy.Status) + retryHint)
	case m.healthErr != nil:
		return warnStyle.Render("Prediction service unavailable: " + predict.MsgConnectionError + retryHint)
	case m.stocksErr != nil:
		return warnStyle.Render("Could not load available tickers." + retryHint)
	case len(m.tickers) > 0:
		return hintStyle.Render("Available: " + strings.Join(m.tickers, ", "))
	}
	return hintStyle.Render("Enter a stock ticker symbol")
}

func renderCard(c predict.Card) string {
	lines := []string{
		headingStyle.Render(c.Heading),
		priceStyle.Render(c.PredictedPrice),
		labelStyle.Render("Prediction Date:") + " " + c.PredictionDate,
		labelStyle.Render("Method:") + " " + c.Method,
		labelStyle.Render("Last 3 Prices:") + " " + c.LastPrices,
	}
	return resultStyle.Render(strings.Join(lines, "\n"))
}
