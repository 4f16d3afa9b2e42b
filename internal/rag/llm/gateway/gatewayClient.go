package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/customHttpClient"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/internal/rag/llm"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

var logger *logger_i.Logger
var gatewayClient *client
var once sync.Once

type client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

// GetGatewayClient builds the completion client once. The gateway is an
// OpenAI/Ollama-compatible endpoint; which one decides the response shape,
// which is why Complete hands back a llm.Payload instead of a string.
func GetGatewayClient(ctx context.Context) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("completion_gateway")

		baseURL := os.Getenv("COMPLETION_GATEWAY_URL")
		if baseURL == "" {
			baseURL = config.CompletionGatewayURL
		}
		model := os.Getenv("COMPLETION_MODEL")
		if model == "" {
			model = config.CompletionModelName
		}
		gatewayClient = &client{
			baseURL: baseURL,
			model:   model,
			apiKey:  os.Getenv("COMPLETION_API_KEY"),
			http:    customHttpClient.NewPooledClient(config.CompletionCallTimeout),
		}
		logger.Info("Completion gateway client created", "model", model)
	})

	if gatewayClient == nil {
		return nil
	}
	return gatewayClient
}

type completeRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

func (c *client) Complete(ctx context.Context, prompt string) (llm.Payload, error) {
	log := logger.WithTrace(ctx)

	payload, err := json.Marshal(completeRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return nil, faults.Upstreamf("completion", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, faults.Upstreamf("completion", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Completion call failed", "error", err)
		return nil, faults.Upstreamf("completion", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("Completion gateway rejected request", "status", resp.StatusCode)
		return nil, faults.Upstreamf("completion", fmt.Errorf("gateway returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Upstreamf("completion", err)
	}
	return llm.ParsePayload(body), nil
}
