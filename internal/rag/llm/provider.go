package llm

import "context"

// Provider is the platform's complete(model, prompt) function. The response
// shape depends on which model family the gateway routes to, so callers get
// a Payload and extract text via ExtractText.
type Provider interface {
	Complete(ctx context.Context, prompt string) (Payload, error)
}
