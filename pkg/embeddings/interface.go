package embeddings

import (
	"context"
)

// IEmbedder defines the interface for the text embedding provider.
// Implementations are safe for concurrent use.
type IEmbedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
