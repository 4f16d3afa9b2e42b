package adapter

import (
	"github.com/akolanti/DocQueryAPI/internal/api"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
)

func ToIngestResponse(res docmodel.IngestResult) api.IngestResponse {
	return api.IngestResponse{
		FileId:     res.FileId,
		Filename:   res.Filename,
		StagePath:  res.StagePath,
		ChunkCount: res.ChunkCount,
	}
}

func ToQueryResponse(result docmodel.QueryResult) api.QueryResponse {
	// sources is always an array in the response, never null
	sources := make([]api.SourceResponse, 0, len(result.Sources))
	for _, s := range result.Sources {
		sources = append(sources, api.SourceResponse{
			ChunkId:    s.ChunkId,
			FileId:     s.FileId,
			Filename:   s.Filename,
			PageNumber: s.PageNumber,
			ChunkIndex: s.ChunkIndex,
			Text:       s.Text,
			CharStart:  s.CharStart,
			CharEnd:    s.CharEnd,
			Relevance:  s.Relevance,
		})
	}
	return api.QueryResponse{
		Answer:  result.Answer,
		Sources: sources,
	}
}

func ToDocumentResponses(docs []docmodel.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, api.DocumentResponse{
			FileId:     d.FileId,
			Filename:   d.Filename,
			StagePath:  d.StagePath,
			ChunkCount: d.ChunkCount,
			CreatedAt:  d.CreatedAt,
		})
	}
	return out
}

func BadRequest(message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
