package ingest

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/adapter/utils"
	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/data/stage"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/internal/metrics"
	"github.com/akolanti/DocQueryAPI/internal/rag/chunker"
	"github.com/akolanti/DocQueryAPI/internal/rag/vectorDB"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

type Service struct {
	stage    stage.ObjectStage
	docs     docmodel.DocumentStore
	vectorDB vectorDB.DataProcessor
	params   chunker.Params
	stageRef string
	logger   *logger_i.Logger
}

func NewService(objectStage stage.ObjectStage, docs docmodel.DocumentStore, vector vectorDB.DataProcessor) *Service {
	return &Service{
		stage:    objectStage,
		docs:     docs,
		vectorDB: vector,
		params:   chunker.Params{Size: config.ChunkSize, Overlap: config.ChunkOverlap},
		stageRef: config.DefaultStage,
		logger:   logger_i.NewLogger("Document Ingestion"),
	}
}

// Ingest runs the full pipeline for one uploaded file: chunk, upload, persist
// the document row, then persist chunks one at a time (each insert embeds
// inside the store). Chunk inserts are independent - a failure partway
// leaves the document partially ingested and already-written rows stay.
func (s *Service) Ingest(ctx context.Context, data []byte, originalName string) (docmodel.IngestResult, error) {
	log := s.logger.WithTrace(ctx)

	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("ingest", time.Since(start)) }()

	fileId := utils.GetNewUUID()
	filename := SanitizeFilename(originalName)
	log = log.With("fileId", fileId, "filename", filename)

	// scoped temp file, removed on every exit path
	tempFile, err := os.CreateTemp("", "ingest-*"+filepath.Ext(filename))
	if err != nil {
		return docmodel.IngestResult{}, faults.Upstreamf("temp storage", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Error("Error removing temp file", "path", tempPath, "error", err)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return docmodel.IngestResult{}, faults.Upstreamf("temp storage", err)
	}
	if err := tempFile.Close(); err != nil {
		return docmodel.IngestResult{}, faults.Upstreamf("temp storage", err)
	}

	pages, err := extractText(tempPath, getDocType(filename))
	if err != nil {
		log.Error("Error extracting document content", "error", err)
		return docmodel.IngestResult{}, err
	}

	windows, err := chunker.SplitPages(pages, s.params)
	if err != nil {
		return docmodel.IngestResult{}, err
	}
	if len(windows) == 0 {
		log.Warn("Document produced zero chunks")
		return docmodel.IngestResult{}, faults.ErrNoReadableText
	}
	log.Debug("Chunked document", "pages", len(pages), "chunks", len(windows))

	// upload under a per-document folder; the gateway may rewrite the leaf,
	// whatever it assigned is the stage path from here on
	assignedKey, err := s.stage.Put(ctx, tempPath, s.stageRef, fileId+"/"+filename)
	if err != nil {
		return docmodel.IngestResult{}, err
	}

	doc := docmodel.Document{
		FileId:         fileId,
		Filename:       filename,
		StagePath:      assignedKey,
		StageReference: s.stageRef,
		ChunkCount:     len(windows),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		return docmodel.IngestResult{}, faults.Upstreamf("document persistence", err)
	}

	// strictly sequential: one insert (embedding included) completes before
	// the next starts, so chunk_index ordering in storage matches generation
	for _, w := range windows {
		chunk := docmodel.Chunk{
			ChunkId:    utils.GetNewUUID(),
			FileId:     fileId,
			PageNumber: w.Page,
			ChunkIndex: w.Index,
			RawText:    w.RawText,
			Text:       w.Text,
			CharStart:  w.CharStart,
			CharEnd:    w.CharEnd,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.vectorDB.InsertChunk(ctx, doc, chunk); err != nil {
			log.Error("Chunk insert failed, document left partially ingested",
				"chunkIndex", w.Index, "error", err)
			return docmodel.IngestResult{}, err
		}
	}

	metrics.CountDocumentIngested(len(windows))
	log.Info("Document ingested", "chunks", len(windows), "stagePath", assignedKey)

	return docmodel.IngestResult{
		FileId:     fileId,
		Filename:   filename,
		StagePath:  assignedKey,
		ChunkCount: len(windows),
	}, nil
}
