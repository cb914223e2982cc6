package requester

import "github.com/Alias1177/StockPredictor/internal/predict"

// Input is the ticker text field
type Input interface {
	Value() string
}

// Region is a display area that can be shown or hidden independently
type Region interface {
	Show()
	Hide()
}

// TextRegion displays a single plain-text message. Text is never
// interpreted as markup.
type TextRegion interface {
	Region
	SetText(text string)
}

// ResultRegion displays a rendered prediction
type ResultRegion interface {
	Region
	SetCard(card predict.Card)
}

// View holds the UI handles a Requester drives. They are owned by the
// frontend and injected at construction.
type View struct {
	Input   Input
	Result  ResultRegion
	Error   TextRegion
	Loading Region
}

func (v View) render(s *predict.Session) {
	switch s.Phase() {
	case predict.PhaseLoading:
		v.Result.Hide()
		v.Error.Hide()
		v.Loading.Show()
	case predict.PhaseSuccess:
		v.Loading.Hide()
		v.Error.Hide()
		v.Result.SetCard(*s.Card())
		v.Result.Show()
	case predict.PhaseInvalid, predict.PhaseAppError, predict.PhaseNetworkError:
		v.Loading.Hide()
		v.Result.Hide()
		v.Error.SetText(s.ErrorMessage())
		v.Error.Show()
	default:
		v.Loading.Hide()
		v.Result.Hide()
		v.Error.Hide()
	}
}
