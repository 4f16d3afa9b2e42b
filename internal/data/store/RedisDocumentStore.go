package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/data/redisStore"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

const (
	documentKeyPrefix = "doc:"
	createdAtIndexKey = "docs:createdAt"
)

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	backing := redisStore.GetRedisStore(ctx)
	if backing == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  backing,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc docmodel.Document) error {
	log := s.logger.WithTrace(ctx).With("fileId", doc.FileId)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, documentKeyPrefix+doc.FileId, data, config.RedisDocumentStoreTTL); err != nil {
		return err
	}
	// index by creation time so ListDocuments stays ordered
	if err := s.store.SortedSetAdd(ctx, createdAtIndexKey, float64(doc.CreatedAt.UnixNano()), doc.FileId); err != nil {
		return err
	}

	log.Debug("Saved document row")
	return nil
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, fileId string) (docmodel.Document, bool) {
	var doc docmodel.Document

	val, err := s.store.Get(ctx, documentKeyPrefix+fileId)
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		s.logger.WithTrace(ctx).Error("Document lookup failed", "fileId", fileId, "error", err)
		return doc, false
	}

	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		s.logger.Error("Corrupt document row", "fileId", fileId, "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context) ([]docmodel.Document, error) {
	ids, err := s.store.SortedSetAll(ctx, createdAtIndexKey)
	if err != nil {
		return nil, err
	}

	docs := make([]docmodel.Document, 0, len(ids))
	for _, id := range ids {
		if doc, found := s.GetDocument(ctx, id); found {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// TestDocumentStore wires a miniredis-backed store for tests.
func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test docstore"),
	}
}
