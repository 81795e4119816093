package render

import "context"

// Renderer converts a Snapshot into a byte representation (HTML, JSON,
// plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap Snapshot, options RenderOptions) ([]byte, error)
}
