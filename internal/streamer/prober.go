package streamer

import (
	"context"
	"errors"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/data/stage"
	"github.com/akolanti/DocQueryAPI/internal/resolver"
)

var errNoCandidateResolved = errors.New("no candidate resolved to a readable object")

// stageProber turns one candidate into a presign + fetch round trip against
// the stage gateway.
type stageProber struct {
	stage stage.ObjectStage
}

func NewStageProber(objectStage stage.ObjectStage) Prober {
	return &stageProber{stage: objectStage}
}

func (p *stageProber) Probe(ctx context.Context, candidate resolver.Candidate) (*Object, error) {
	url, err := p.stage.Presign(ctx, candidate.StageReference, candidate.Identifier, config.PresignTTL)
	if err != nil {
		return nil, err
	}

	resp, err := p.stage.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return &Object{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
