package store

import (
	"context"
	"sort"
	"sync"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

// InMemoryDocumentStore is the fallback when redis is offline at startup.
// Rows do not survive a restart - streaming then relies on the resolver's
// identifier-only candidates.
type InMemoryDocumentStore struct {
	mu   *sync.RWMutex
	docs map[string]docmodel.Document
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mu:   new(sync.RWMutex),
		docs: make(map[string]docmodel.Document),
	}
}

func (s *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc docmodel.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.FileId] = doc
	inMemLogger.Debug("Saved document row", "fileId", doc.FileId)
	return nil
}

func (s *InMemoryDocumentStore) GetDocument(ctx context.Context, fileId string) (docmodel.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, found := s.docs[fileId]
	return doc, found
}

func (s *InMemoryDocumentStore) ListDocuments(ctx context.Context) ([]docmodel.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]docmodel.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
