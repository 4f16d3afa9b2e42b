package embedding

import "context"

// Embedder is the platform's embed(model, text) function. Chunk inserts and
// question embedding both go through it; determinism is not guaranteed.
type Embedder interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
}
