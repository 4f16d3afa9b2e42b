package api

import "time"

type IngestResponse struct {
	FileId     string `json:"file_id" example:"3b9f2f4e-8c1d-4f6a-9a2e-1f0c5d7b8a91"`
	Filename   string `json:"filename" example:"quarterly-report.pdf"`
	StagePath  string `json:"stage_path" example:"3b9f2f4e-8c1d-4f6a-9a2e-1f0c5d7b8a91/quarterly-report.pdf"`
	ChunkCount int    `json:"chunk_count" example:"42"`
}

type QueryResponse struct {
	Answer  string           `json:"answer"`
	Sources []SourceResponse `json:"sources"`
}

type SourceResponse struct {
	ChunkId    string  `json:"chunk_id"`
	FileId     string  `json:"file_id"`
	Filename   string  `json:"filename"`
	PageNumber int     `json:"page_number"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	CharStart  int     `json:"char_start"`
	CharEnd    int     `json:"char_end"`
	Relevance  float32 `json:"relevance"`
}

type DocumentResponse struct {
	FileId     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	StagePath  string    `json:"stage_path"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"question must not be empty"`
}

// requests---------------------

type QueryRequest struct {
	Question string   `json:"question" validate:"required"`
	FileIds  []string `json:"file_ids,omitempty"`
	TopK     int      `json:"top_k,omitempty"`
}
