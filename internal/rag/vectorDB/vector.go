package vectorDB

import (
	"context"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
)

// DataProcessor is the chunk side of the data platform. InsertChunk runs the
// embedding inside the store at insert time - callers never compute vectors
// for chunks themselves.
type DataProcessor interface {
	EnsureReady(ctx context.Context) error
	InsertChunk(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error
	Search(ctx context.Context, queryVector []float32, fileIds []string, limit int) ([]docmodel.RetrievedSource, error)

	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error
}
