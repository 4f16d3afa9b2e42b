package rag_test

import (
	"context"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/rag/llm"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnEnsureReady     func(ctx context.Context) error
	OnInsertChunk     func(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error
	OnSearch          func(ctx context.Context, queryVector []float32, fileIds []string, limit int) ([]docmodel.RetrievedSource, error)
	OnGetCachedAnswer func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache     func(ctx context.Context, id string, queryVector []float32, answer string) error

	SearchCalls     int
	CompletionCalls int
}

func (m *MockVectorDB) EnsureReady(ctx context.Context) error {
	if m.OnEnsureReady != nil {
		return m.OnEnsureReady(ctx)
	}
	return nil
}

func (m *MockVectorDB) InsertChunk(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error {
	if m.OnInsertChunk != nil {
		return m.OnInsertChunk(ctx, doc, chunk)
	}
	return nil
}

func (m *MockVectorDB) Search(ctx context.Context, queryVector []float32, fileIds []string, limit int) ([]docmodel.RetrievedSource, error) {
	m.SearchCalls++
	if m.OnSearch != nil {
		return m.OnSearch(ctx, queryVector, fileIds, limit)
	}
	return []docmodel.RetrievedSource{defaultSource()}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, queryVector)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, queryVector []float32, answer string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, queryVector, answer)
	}
	return nil
}

type MockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)

	EmbedCalls int
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	m.EmbedCalls++
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type MockProvider struct {
	OnComplete func(ctx context.Context, prompt string) (llm.Payload, error)

	CompleteCalls int
	LastPrompt    string
}

func (m *MockProvider) Complete(ctx context.Context, prompt string) (llm.Payload, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	if m.OnComplete != nil {
		return m.OnComplete(ctx, prompt)
	}
	return llm.PlainText{Value: "default answer"}, nil
}

func defaultSource() docmodel.RetrievedSource {
	return docmodel.RetrievedSource{
		ChunkId:    "chunk-1",
		FileId:     "file-1",
		Filename:   "report.pdf",
		PageNumber: 2,
		ChunkIndex: 0,
		Text:       "the quarterly revenue was 4.2 million",
		Relevance:  0.91,
	}
}
