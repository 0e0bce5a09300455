package layout

import (
	"go.uber.org/zap"

	"Domino3D/internal/logger"
)

// Engine keeps the current layout spec and regenerates the row when it changes
type Engine struct {
	spec Spec
}

// NewEngine validates spec and returns an engine holding it
func NewEngine(spec Spec) (*Engine, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Engine{spec: spec}, nil
}

func (e *Engine) Spec() Spec {
	return e.spec
}

// Layout regenerates the row for the current spec
func (e *Engine) Layout() []Placement {
	p, _ := Generate(e.spec)
	return p
}

// SwitchArrangement toggles the arrangement and regenerates the full row
func (e *Engine) SwitchArrangement() ([]Placement, Arrangement) {
	e.spec.Arrangement = e.spec.Arrangement.Toggle()
	logger.Log.Info("Arrangement switched",
		zap.String("arrangement", e.spec.Arrangement.String()),
		zap.Int("count", e.spec.Count))
	return e.Layout(), e.spec.Arrangement
}

// Redraw regenerates the row under the current arrangement with a new count and spacing.
// An invalid count or spacing leaves the engine unchanged.
func (e *Engine) Redraw(count int, spacing float32) ([]Placement, error) {
	next := e.spec
	next.Count = count
	next.BaseSpacing = spacing
	placements, err := Generate(next)
	if err != nil {
		return nil, err
	}
	e.spec = next
	logger.Log.Info("Layout redrawn",
		zap.String("arrangement", next.Arrangement.String()),
		zap.Int("count", count),
		zap.Float32("spacing", spacing))
	return placements, nil
}
