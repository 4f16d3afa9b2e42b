package docmodel

import (
	"context"
	"time"
)

// Document is the row persisted once per ingested file. StagePath is whatever
// key the stage gateway actually assigned on upload - it is authoritative and
// never rewritten after ingestion commits.
type Document struct {
	FileId         string    `json:"file_id"`
	Filename       string    `json:"filename"`
	StagePath      string    `json:"stage_path"`
	StageReference string    `json:"stage_reference"`
	ChunkCount     int       `json:"chunk_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Chunk is one windowed slice of a page. CharStart/CharEnd index into the
// unnormalized page text, CharEnd exclusive. ChunkIndex is global across the
// document with no gaps.
type Chunk struct {
	ChunkId    string    `json:"chunk_id"`
	FileId     string    `json:"file_id"`
	PageNumber int       `json:"page_number"`
	ChunkIndex int       `json:"chunk_index"`
	RawText    string    `json:"raw_text"`
	Text       string    `json:"text"`
	CharStart  int       `json:"char_start"`
	CharEnd    int       `json:"char_end"`
	CreatedAt  time.Time `json:"created_at"`
}

// RetrievedSource is the read-time projection of a chunk joined with its
// document, plus the similarity score from the search. Never persisted.
type RetrievedSource struct {
	ChunkId        string  `json:"chunk_id"`
	FileId         string  `json:"file_id"`
	PageNumber     int     `json:"page_number"`
	ChunkIndex     int     `json:"chunk_index"`
	Text           string  `json:"text"`
	CharStart      int     `json:"char_start"`
	CharEnd        int     `json:"char_end"`
	Filename       string  `json:"filename"`
	StagePath      string  `json:"stage_path"`
	StageReference string  `json:"stage_reference"`
	Relevance      float32 `json:"relevance"`
}

type QueryResult struct {
	Answer  string            `json:"answer"`
	Sources []RetrievedSource `json:"sources"`
}

type IngestResult struct {
	FileId     string `json:"file_id"`
	Filename   string `json:"filename"`
	StagePath  string `json:"stage_path"`
	ChunkCount int    `json:"chunk_count"`
}

type DocumentStore interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, fileId string) (Document, bool)
	ListDocuments(ctx context.Context) ([]Document, error)
}
