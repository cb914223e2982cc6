package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/StockPredictor/internal/predict"
	"github.com/Alias1177/StockPredictor/models"
)

const catalogTimeout = 5 * time.Second

type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// Messages
type predictionMsg struct {
	id   uint64
	resp *models.PredictionResponse
	err  error
}

type catalogMsg struct {
	tickers   []string
	healthErr error
	stocksErr error
}

// Model is the bubbletea model of the prediction screen
type Model struct {
	ctx     context.Context
	client  models.PredictionClient
	catalog models.CatalogClient
	logger  zerolog.Logger

	input   textinput.Model
	spinner spinner.Model
	session predict.Session
	focus   focusTarget

	tickers   []string
	healthErr error
	stocksErr error
	width     int
	quitting  bool
}

// New creates the model. catalog may be nil, in which case no ticker
// hint is shown.
func New(ctx context.Context, client models.PredictionClient, catalog models.CatalogClient) Model {
	ti := textinput.New()
	ti.Placeholder = "Ticker, e.g. AAPL"
	ti.Focus()
	ti.Width = 20
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return Model{
		ctx:     ctx,
		client:  client,
		catalog: catalog,
		logger:  log.With().Str("component", "tui").Logger(),
		input:   ti,
		spinner: s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCatalog())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+r":
			return m, m.loadCatalog()

		case "tab", "shift+tab":
			return m.toggleFocus(), nil

		case "enter":
			return m.trigger()

		case " ":
			if m.focus == focusButton {
				return m.trigger()
			}
		}

	case predictionMsg:
		if !m.session.Finish(msg.id, msg.resp, msg.err) {
			m.logger.Debug().Uint64("request", msg.id).Uint64("latest", m.session.Latest()).Msg("Discarded stale prediction")
			return m, nil
		}
		if msg.err != nil {
			m.logger.Info().Err(msg.err).Str("phase", m.session.Phase().String()).Msg("Prediction failed")
		}
		return m, nil

	case catalogMsg:
		m.tickers = msg.tickers
		m.healthErr = msg.healthErr
		m.stocksErr = msg.stocksErr
		if msg.healthErr != nil || msg.stocksErr != nil {
			m.logger.Warn().AnErr("health", msg.healthErr).AnErr("stocks", msg.stocksErr).Msg("Ticker catalog unavailable")
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

// trigger is shared by the Enter key in the input and the predict button
func (m Model) trigger() (tea.Model, tea.Cmd) {
	req, err := m.session.Begin(m.input.Value())
	if err != nil {
		return m, nil
	}
	m.logger.Debug().Str("ticker", req.Ticker).Uint64("request", req.ID).Msg("Prediction started")
	return m, tea.Batch(m.spinner.Tick, m.predict(req))
}

func (m Model) predict(req predict.Request) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		resp, err := client.Predict(ctx, req.Ticker)
		return predictionMsg{id: req.ID, resp: resp, err: err}
	}
}

func (m Model) loadCatalog() tea.Cmd {
	if m.catalog == nil {
		return nil
	}
	ctx, catalog := m.ctx, m.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
		defer cancel()

		if err := catalog.Health(ctx); err != nil {
			return catalogMsg{healthErr: err}
		}
		tickers, err := catalog.Stocks(ctx)
		return catalogMsg{tickers: tickers, stocksErr: err}
	}
}

// Run starts the terminal UI and blocks until the user quits
func Run(ctx context.Context, client models.PredictionClient, catalog models.CatalogClient) error {
	p := tea.NewProgram(New(ctx, client, catalog), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
