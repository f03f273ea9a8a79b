package embedding

import "context"

// Embedder converts text into a fixed-dimension numeric vector.
// The dimension is determined by the underlying model.
type Embedder interface {
	ModelName() string
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}
