package core

import (
	"slices"
	"sync"
)

// Registry is the page-scoped slot an artifact assigns its test cases to. It
// starts out absent; the artifact may assign it at any point before the host
// asks for a run. Readers always get a snapshot.
type Registry struct {
	mu       sync.RWMutex
	tests    []TestCase
	assigned bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Set replaces the registry contents. Assigning a nil slice still marks the
// registry as present.
func (r *Registry) Set(tests []TestCase) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tests = slices.Clone(tests)
	r.assigned = true
}

// Tests returns a copy of the registered test cases and whether the registry
// has been assigned at all.
func (r *Registry) Tests() ([]TestCase, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.assigned {
		return nil, false
	}

	return slices.Clone(r.tests), true
}

// Names returns the current test names, or an empty slice when the registry
// is absent.
func (r *Registry) Names() []string {
	tests, _ := r.Tests()
	return TestNames(tests)
}
