package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/s0up4200/mailgallery/gallery"
)

// defaultCompiler is shared by managers built without WithCompiler
var defaultCompiler = NewExprCompiler(WithCache(100))

// Manager holds named filters, such as the presets from the configuration
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters registers multiple filters at once. Nothing is registered
// unless every expression compiles.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for name, expr := range filters {
		filter, err := m.compiler.Compile(expr)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the filter function for an explicit expression or a
// registered preset, falling back to the given default expression.
func (m *Manager) Resolve(expression, preset, fallback string) (func(gallery.File) bool, error) {
	switch {
	case expression != "" && preset != "":
		return nil, fmt.Errorf("cannot use both --filter and --preset")
	case preset != "":
		filter, ok := m.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		return filter.Evaluate, nil
	case expression != "":
		return m.compileFunc(expression)
	default:
		return m.compileFunc(fallback)
	}
}

func (m *Manager) compileFunc(expression string) (func(gallery.File) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(gallery.File) bool { return true }, nil
	}
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return nil, err
	}
	return filter.Evaluate, nil
}
