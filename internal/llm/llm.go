// Package llm talks to the model backends: embedding generation and free-text
// candidate commentary. The default backend is a locally hosted Ollama server;
// Gemini is available as an alternative provider.
package llm

import "context"

// maxEmbedInput caps embedding input length in bytes.
const maxEmbedInput = 40000

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces free text from a prompt. One blocking call, no retries.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Health reports reachability of the local model server.
type Health struct {
	OK      bool
	Message string
	Models  []string
}

func truncateInput(text string) string {
	if len(text) > maxEmbedInput {
		return text[:maxEmbedInput]
	}
	return text
}
