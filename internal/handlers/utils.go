package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akolanti/DocQueryAPI/internal/adapter"
	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/faults"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message, httpCode))
}

// statusForError maps the fault taxonomy onto HTTP codes: caller mistakes
// are 4xx, anything a dependency did wrong is a 502.
func statusForError(err error) (int, string) {
	switch {
	case faults.IsClientInput(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, faults.ErrNoReadableText):
		return http.StatusBadRequest, "document contains no readable text"
	case faults.IsUpstream(err):
		return http.StatusBadGateway, "a downstream dependency failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func topKOrDefault(topK int) int {
	if topK == 0 {
		return config.DefaultTopK
	}
	return topK
}
