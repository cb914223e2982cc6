// Package console renders a prediction session as lines of plain text,
// for one-shot use from scripts.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/Alias1177/StockPredictor/internal/predict"
	"github.com/Alias1177/StockPredictor/internal/requester"
)

// StaticInput is an input whose value never changes
type StaticInput string

func (s StaticInput) Value() string {
	return string(s)
}

// Region prints its content to a writer each time it is shown
type Region struct {
	mu      sync.Mutex
	out     io.Writer
	text    string
	visible bool
}

func NewRegion(out io.Writer) *Region {
	return &Region{out: out}
}

func (r *Region) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
	if r.text != "" {
		fmt.Fprintln(r.out, r.text)
	}
}

func (r *Region) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
}

func (r *Region) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
}

func (r *Region) SetCard(card predict.Card) {
	r.SetText(card.String())
}

// Visible reports whether the region is currently shown
func (r *Region) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// NewView builds a requester view for a fixed ticker. Results go to out,
// errors to errOut; the loading region stays silent.
func NewView(ticker string, out, errOut io.Writer) (requester.View, *Region) {
	errRegion := NewRegion(errOut)
	return requester.View{
		Input:   StaticInput(ticker),
		Result:  NewRegion(out),
		Error:   errRegion,
		Loading: NewRegion(io.Discard),
	}, errRegion
}
