package rag

import (
	"context"
	"strings"
	"time"

	"github.com/akolanti/DocQueryAPI/internal/adapter/utils"
	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/internal/metrics"
	"github.com/akolanti/DocQueryAPI/internal/rag/embedding"
	"github.com/akolanti/DocQueryAPI/internal/rag/llm"
	"github.com/akolanti/DocQueryAPI/internal/rag/vectorDB"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

const (
	// fixed result values - these are answers, not errors
	NoResultsAnswer  = "No relevant results found in the selected PDFs."
	NoAnswerFallback = "No answer could be generated for this question."
)

// Service answers questions against ingested documents. Callers only see
// this contract, never the vector DB or the completion gateway directly.
type Service interface {
	Query(ctx context.Context, question string, fileIds []string, topK int) (docmodel.QueryResult, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, llm llm.Provider, em embedding.Embedder) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llm,
		embedder:    em,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) Query(ctx context.Context, question string, fileIds []string, topK int) (docmodel.QueryResult, error) {
	log := s.logger.WithTrace(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		// reject before touching any external service
		return docmodel.QueryResult{}, faults.ClientInputf("question must not be empty")
	}
	topK = clampTopK(topK)

	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("query", time.Since(start)) }()

	processContext, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	// Embedding
	questionVector, err := s.executeEmbeddingStep(processContext, question)
	if err != nil {
		log.Error("Question embedding failed", "error", err)
		return docmodel.QueryResult{}, err
	}

	// Cache check
	if cached, found := s.executeCacheCheckStep(processContext, questionVector); found {
		log.Debug("Answer served from cache")
		return docmodel.QueryResult{Answer: cached, Sources: nil}, nil
	}

	// Similarity search
	sources, err := s.executeVectorSearchStep(processContext, questionVector, fileIds, topK)
	if err != nil {
		log.Error("Similarity search failed", "error", err)
		return docmodel.QueryResult{}, err
	}
	if len(sources) == 0 {
		// empty result, not an error
		return docmodel.QueryResult{Answer: NoResultsAnswer, Sources: []docmodel.RetrievedSource{}}, nil
	}

	// Grounded completion
	answer, err := s.executeCompletionStep(processContext, question, sources)
	if err != nil {
		log.Error("Completion failed", "error", err)
		return docmodel.QueryResult{}, err
	}
	if answer == "" {
		answer = NoAnswerFallback
	}

	// Background cache save, detached so handler completion cannot cancel it
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.vectorDB.SaveToCache(saveCtx, utils.GetNewUUID(), questionVector, answer); err != nil {
			s.logger.Error("Failed to save answer to cache", "error", err)
		}
	}()

	return docmodel.QueryResult{Answer: answer, Sources: sources}, nil
}

func clampTopK(topK int) int {
	if topK < 1 {
		return 1
	}
	if topK > config.MaxTopK {
		return config.MaxTopK
	}
	return topK
}

func (s *service) executeEmbeddingStep(ctx context.Context, question string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeCacheCheckStep(ctx context.Context, vector []float32) (string, bool) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	answer, found, _ := s.vectorDB.GetCachedAnswer(ctx, vector)
	return answer, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, vector []float32, fileIds []string, topK int) ([]docmodel.RetrievedSource, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, vector, fileIds, topK)
}

func (s *service) executeCompletionStep(ctx context.Context, question string, sources []docmodel.RetrievedSource) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	payload, err := s.llmProvider.Complete(ctx, BuildGroundingPrompt(question, sources))
	if err != nil {
		return "", err
	}
	return llm.ExtractText(payload), nil
}
