package scene

import "Domino3D/internal/renderer"

// Sink receives the units the registry creates and destroys. It owns cameras,
// GPU resources and presentation; the registry only tells it what exists.
type Sink interface {
	AddUnit(u *renderer.Unit)
	RemoveUnit(u *renderer.Unit)
}

// NopSink discards every notification
type NopSink struct{}

func (NopSink) AddUnit(*renderer.Unit)    {}
func (NopSink) RemoveUnit(*renderer.Unit) {}

// MemorySink keeps the live set in insertion order
type MemorySink struct {
	Units   []*renderer.Unit
	Added   int
	Removed int
}

func (s *MemorySink) AddUnit(u *renderer.Unit) {
	s.Units = append(s.Units, u)
	s.Added++
}

func (s *MemorySink) RemoveUnit(u *renderer.Unit) {
	for i, o := range s.Units {
		if o == u {
			s.Units = append(s.Units[:i], s.Units[i+1:]...)
			s.Removed++
			return
		}
	}
}
