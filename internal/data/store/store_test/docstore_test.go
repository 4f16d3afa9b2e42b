package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/data/redisStore"
	"github.com/akolanti/DocQueryAPI/internal/data/store"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func init() {
	logger_i.Init()
}

func newTestStore(t *testing.T) (*store.RedisDocumentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestDocumentStore(redisStore.NewTestStore(client)), mr
}

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	docStore, mr := newTestStore(t)
	ctx := context.Background()

	doc := docmodel.Document{
		FileId:         "file-abc",
		Filename:       "report.pdf",
		StagePath:      "file-abc/report.pdf",
		StageReference: "@pdf_documents",
		ChunkCount:     7,
		CreatedAt:      time.Now().UTC(),
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := docStore.SaveDocument(ctx, doc); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		got, found := docStore.GetDocument(ctx, "file-abc")
		if !found {
			t.Fatal("Document was saved but not found")
		}
		if got.StagePath != doc.StagePath || got.ChunkCount != 7 {
			t.Errorf("Data mismatch, got %+v", got)
		}
	})

	t.Run("Get Non-Existent Document", func(t *testing.T) {
		if _, found := docStore.GetDocument(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Row lands in miniredis", func(t *testing.T) {
		if !mr.Exists("doc:file-abc") {
			t.Error("Expected doc:file-abc key in redis")
		}
	})
}

func TestRedisDocumentStore_ListOrderedByCreatedAt(t *testing.T) {
	docStore, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// save out of order on purpose
	for _, d := range []docmodel.Document{
		{FileId: "second", Filename: "b.pdf", CreatedAt: base.Add(time.Minute)},
		{FileId: "first", Filename: "a.pdf", CreatedAt: base},
		{FileId: "third", Filename: "c.pdf", CreatedAt: base.Add(2 * time.Minute)},
	} {
		if err := docStore.SaveDocument(ctx, d); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}
	}

	docs, err := docStore.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(docs) != len(want) {
		t.Fatalf("Got %d documents", len(docs))
	}
	for i, w := range want {
		if docs[i].FileId != w {
			t.Errorf("Position %d got %s, want %s", i, docs[i].FileId, w)
		}
	}
}
