package ingest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

func init() {
	logger_i.Init()
}

// --- Mocks ---

type mockStage struct {
	putFunc func(ctx context.Context, localPath, stageRef, relativeKey string) (string, error)
}

func (m *mockStage) Put(ctx context.Context, localPath, stageRef, relativeKey string) (string, error) {
	return m.putFunc(ctx, localPath, stageRef, relativeKey)
}
func (m *mockStage) Presign(ctx context.Context, stageRef, relativeKey string, ttl time.Duration) (string, error) {
	return "", nil
}
func (m *mockStage) Fetch(ctx context.Context, url string) (*http.Response, error) { return nil, nil }

type mockDocStore struct {
	saveFunc func(ctx context.Context, doc docmodel.Document) error
	saved    []docmodel.Document
}

func (m *mockDocStore) SaveDocument(ctx context.Context, doc docmodel.Document) error {
	m.saved = append(m.saved, doc)
	if m.saveFunc != nil {
		return m.saveFunc(ctx, doc)
	}
	return nil
}
func (m *mockDocStore) GetDocument(ctx context.Context, fileId string) (docmodel.Document, bool) {
	return docmodel.Document{}, false
}
func (m *mockDocStore) ListDocuments(ctx context.Context) ([]docmodel.Document, error) {
	return nil, nil
}

type mockVectorDB struct {
	insertFunc func(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error
	inserted   []docmodel.Chunk
}

func (m *mockVectorDB) EnsureReady(ctx context.Context) error { return nil }
func (m *mockVectorDB) InsertChunk(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error {
	m.inserted = append(m.inserted, chunk)
	if m.insertFunc != nil {
		return m.insertFunc(ctx, doc, chunk)
	}
	return nil
}
func (m *mockVectorDB) Search(ctx context.Context, queryVector []float32, fileIds []string, limit int) ([]docmodel.RetrievedSource, error) {
	return nil, nil
}
func (m *mockVectorDB) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	return "", false, nil
}
func (m *mockVectorDB) SaveToCache(ctx context.Context, id string, queryVector []float32, answer string) error {
	return nil
}

// --- Unit Tests ---

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Report Q3.PDF", "report-q3.pdf"},
		{"notes.txt", "notes.txt"},
		{"My Résumé.docx", "my-r-sum.docx"},
		{"archive.tar.gz", "archive.tar.pdf"},
		{"plain", "plain.pdf"},
		{"../../etc/passwd", "passwd.pdf"},
		{"???", "document.pdf"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q; want %q", tt.in, got, tt.expected)
		}
	}
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected docType
	}{
		{"test.pdf", typePDF},
		{"DOC.DOCX", typeDocxTxtRtf},
		{"notes.txt", typeDocxTxtRtf},
		{"image.png", typeUnsupported},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestIngest_Success(t *testing.T) {
	stage := &mockStage{
		putFunc: func(ctx context.Context, localPath, stageRef, relativeKey string) (string, error) {
			// gateway rewrites the leaf, caller must adopt it
			return "assigned/" + relativeKey, nil
		},
	}
	docs := &mockDocStore{}
	vDB := &mockVectorDB{}

	svc := NewService(stage, docs, vDB)
	content := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 60))

	res, err := svc.Ingest(context.Background(), content, "My Notes.TXT")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if res.Filename != "my-notes.txt" {
		t.Errorf("Filename = %q; want sanitized my-notes.txt", res.Filename)
	}
	if res.FileId == "" {
		t.Error("Expected a generated fileId")
	}
	if !strings.HasPrefix(res.StagePath, "assigned/") {
		t.Errorf("StagePath = %q; want the gateway-assigned key", res.StagePath)
	}
	if res.ChunkCount < 2 {
		t.Errorf("Expected multiple chunks from %d bytes, got %d", len(content), res.ChunkCount)
	}

	if len(docs.saved) != 1 {
		t.Fatalf("Expected 1 document row, got %d", len(docs.saved))
	}
	if docs.saved[0].ChunkCount != res.ChunkCount {
		t.Errorf("Document ChunkCount = %d; want %d", docs.saved[0].ChunkCount, res.ChunkCount)
	}
	if docs.saved[0].StagePath != res.StagePath {
		t.Errorf("Document StagePath = %q; want %q", docs.saved[0].StagePath, res.StagePath)
	}

	if len(vDB.inserted) != res.ChunkCount {
		t.Fatalf("Expected %d chunk inserts, got %d", res.ChunkCount, len(vDB.inserted))
	}
	for i, c := range vDB.inserted {
		if c.ChunkIndex != i {
			t.Errorf("Insert %d has ChunkIndex %d; inserts must follow generation order", i, c.ChunkIndex)
		}
		if c.FileId != res.FileId {
			t.Errorf("Chunk %d carries fileId %q; want %q", i, c.FileId, res.FileId)
		}
	}
}

func TestIngest_NoReadableText(t *testing.T) {
	putCalled := false
	stage := &mockStage{
		putFunc: func(ctx context.Context, localPath, stageRef, relativeKey string) (string, error) {
			putCalled = true
			return relativeKey, nil
		},
	}
	svc := NewService(stage, &mockDocStore{}, &mockVectorDB{})

	_, err := svc.Ingest(context.Background(), []byte("   \n\t  \n"), "blank.txt")
	if !errors.Is(err, faults.ErrNoReadableText) {
		t.Fatalf("Expected ErrNoReadableText, got %v", err)
	}
	if putCalled {
		t.Error("Upload must not happen for documents with no readable text")
	}
}

func TestIngest_StageFailure(t *testing.T) {
	stage := &mockStage{
		putFunc: func(ctx context.Context, localPath, stageRef, relativeKey string) (string, error) {
			return "", errors.New("gateway down")
		},
	}
	docs := &mockDocStore{}
	svc := NewService(stage, docs, &mockVectorDB{})

	_, err := svc.Ingest(context.Background(), []byte(strings.Repeat("words ", 50)), "doc.txt")
	if err == nil {
		t.Fatal("Expected error when upload fails")
	}
	if len(docs.saved) != 0 {
		t.Error("Document row must not be written when upload failed")
	}
}

func TestIngest_PartialChunkFailure(t *testing.T) {
	stage := &mockStage{
		putFunc: func(ctx context.Context, localPath, stageRef, relativeKey string) (string, error) {
			return relativeKey, nil
		},
	}
	docs := &mockDocStore{}
	vDB := &mockVectorDB{}
	vDB.insertFunc = func(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error {
		if chunk.ChunkIndex == 1 {
			return errors.New("vector store unavailable")
		}
		return nil
	}

	svc := NewService(stage, docs, vDB)
	content := []byte(strings.Repeat("lorem ipsum dolor sit amet ", 60))

	_, err := svc.Ingest(context.Background(), content, "doc.txt")
	if err == nil {
		t.Fatal("Expected error on chunk insert failure")
	}
	// inserts stop at the failure, nothing is rolled back
	if len(vDB.inserted) != 2 {
		t.Errorf("Expected inserts to stop after the failing chunk, got %d attempts", len(vDB.inserted))
	}
	if len(docs.saved) != 1 {
		t.Errorf("Document row written before chunk inserts should remain, got %d rows", len(docs.saved))
	}
}
