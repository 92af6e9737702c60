package samples

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Sample is one runnable console sample.
type Sample interface {
	// Name is the subcommand that invokes the sample.
	Name() string

	// Description is a one-line summary shown in the sample listing.
	Description() string

	// Run executes the sample with its remaining command-line arguments.
	Run(ctx context.Context, args []string) error
}

// Registry manages sample registration and lookup.
// It provides thread-safe access to registered samples.
type Registry struct {
	mu      sync.RWMutex
	samples map[string]Sample
}

// DefaultRegistry is the global sample registry.
// Samples register themselves via init() functions.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		samples: make(map[string]Sample),
	}
}

// Register adds a sample to the registry.
// This is typically called from provider package init() functions.
func (r *Registry) Register(s Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.samples[name]; exists {
		return fmt.Errorf("sample already registered: %s", name)
	}

	r.samples[name] = s
	return nil
}

// Get retrieves a registered sample by name.
func (r *Registry) Get(name string) (Sample, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.samples[name]
	if !exists {
		return nil, fmt.Errorf("unknown sample: %s", name)
	}
	return s, nil
}

// List returns all registered samples sorted by name.
func (r *Registry) List() []Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Sample, 0, len(r.samples))
	for _, s := range r.samples {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Unregister removes a sample from the registry.
// This is mainly useful for testing.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.samples, name)
}

// Global convenience functions that use DefaultRegistry

// Register adds a sample to the default registry.
func Register(s Sample) error {
	return DefaultRegistry.Register(s)
}

// Get retrieves a sample from the default registry.
func Get(name string) (Sample, error) {
	return DefaultRegistry.Get(name)
}

// List returns all samples in the default registry.
func List() []Sample {
	return DefaultRegistry.List()
}
