package controls

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownControl = errors.New("unknown control")

// Action runs a control with its raw argument and reports the resulting state
type Action func(arg string) (string, error)

// Binding is a named control as shown to the user
type Binding struct {
	Name  string
	Usage string
	run   Action
}

// Bindings maps control names to actions. Safe for concurrent use.
type Bindings struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

func NewBindings() *Bindings {
	return &Bindings{bindings: make(map[string]Binding)}
}

// Register binds name to action, replacing any previous binding
func (b *Bindings) Register(name, usage string, action Action) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings[name] = Binding{Name: name, Usage: usage, run: action}
}

// Available returns the bound control names in sorted order
func (b *Bindings) Available() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.bindings))
	for name := range b.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Bindings) Lookup(name string) (Binding, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	binding, ok := b.bindings[name]
	return binding, ok
}

// Invoke runs the named control
func (b *Bindings) Invoke(name, arg string) (string, error) {
	binding, ok := b.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	return binding.run(arg)
}
