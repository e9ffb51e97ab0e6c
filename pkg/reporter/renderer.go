package reporter

import "context"

// Renderer formats a Document for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted document to the configured output.
	Render(ctx context.Context, doc *Document) error
}
