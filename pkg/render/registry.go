package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formblock/pkg/model"
)

// ErrUnknownRenderer is returned when no output format matches a name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry maps output format names ("html", "text") to renderers. The first
// format registered is the default used when a caller leaves the name empty.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Renderer
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Renderer)}
}

// Register adds renderer under its Name(). Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.formats[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.formats[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer for name, or the default when name is blank.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		if len(r.order) == 0 {
			return nil, fmt.Errorf("%w: registry is empty", ErrUnknownRenderer)
		}
		name = r.order[0]
	}
	renderer, ok := r.formats[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Render renders block in the named format. Blocks without fields produce no
// output and never reach the renderer.
func (r *Registry) Render(ctx context.Context, name string, block model.Block, options RenderOptions) ([]byte, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if !block.HasContent() {
		return nil, nil
	}
	return renderer.Render(ctx, block, options)
}

// List returns the registered format names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := slices.Clone(r.order)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.formats[strings.TrimSpace(name)]
	return ok
}
