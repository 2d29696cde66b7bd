package render

import (
	"context"

	"github.com/goliatone/go-formblock/pkg/model"
)

// Renderer converts a form block into a byte representation (HTML, plain
// text, ...). A block without fields renders to nil output and a nil error.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, block model.Block, options RenderOptions) ([]byte, error)
}
