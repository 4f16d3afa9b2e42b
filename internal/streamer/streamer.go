package streamer

import (
	"context"
	"io"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/internal/metrics"
	"github.com/akolanti/DocQueryAPI/internal/resolver"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

// Object is a stream plus the provenance of the candidate that produced it.
type Object struct {
	Body           io.ReadCloser
	ContentType    string
	Identifier     string
	StageReference string
	FileId         string
	Filename       string
}

// Prober attempts exactly one candidate and returns the open stream on
// success. Implementations must not buffer the body.
type Prober interface {
	Probe(ctx context.Context, candidate resolver.Candidate) (*Object, error)
}

type Service struct {
	docs   docmodel.DocumentStore
	prober Prober
	logger *logger_i.Logger
}

func NewService(docs docmodel.DocumentStore, prober Prober) *Service {
	return &Service{
		docs:   docs,
		prober: prober,
		logger: logger_i.NewLogger("Object Streaming"),
	}
}

// Stream resolves the request into candidates and probes them in order,
// returning the first stream that opens. When every candidate fails the
// last probe error is surfaced so the caller sees the most specific cause.
func (s *Service) Stream(ctx context.Context, identifier string, fileId string, stageRef string) (*Object, error) {
	log := s.logger.WithTrace(ctx)

	req := resolver.Request{
		Identifier:     identifier,
		StageReference: stageRef,
		DefaultStage:   config.DefaultStage,
	}

	var doc *docmodel.Document
	if fileId != "" {
		if found, ok := s.docs.GetDocument(ctx, fileId); ok {
			doc = &found
			req.Doc = doc
		} else {
			log.Debug("No document row for fileId, resolving from identifier alone", "fileId", fileId)
		}
	}

	candidates, err := resolver.CandidatesFor(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, candidate := range candidates {
		obj, err := s.prober.Probe(ctx, candidate)
		if err != nil {
			metrics.CountStreamProbe(false)
			log.Debug("Candidate miss",
				"identifier", candidate.Identifier, "stage", candidate.StageReference, "error", err)
			lastErr = err
			continue
		}
		metrics.CountStreamProbe(true)

		obj.Identifier = candidate.Identifier
		obj.StageReference = candidate.StageReference
		if doc != nil {
			obj.FileId = doc.FileId
			obj.Filename = doc.Filename
		}
		log.Info("Resolved object",
			"identifier", candidate.Identifier, "stage", candidate.StageReference,
			"attempts", len(candidates))
		return obj, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, faults.Upstreamf("object resolution", errNoCandidateResolved)
}
