package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaClient drives a locally hosted Ollama server. generateURL is the full
// /api/generate endpoint; the embeddings and health endpoints are derived from
// its base. No API key required.
type OllamaClient struct {
	httpClient  *http.Client
	generateURL string
	baseURL     string
	model       string
	embedModel  string
	temperature float32
}

func NewOllamaClient(generateURL, model, embedModel string) *OllamaClient {
	return &OllamaClient{
		httpClient:  &http.Client{Timeout: 120 * time.Second},
		generateURL: generateURL,
		baseURL:     strings.TrimRight(baseOf(generateURL), "/"),
		model:       model,
		embedModel:  embedModel,
		temperature: 0.2,
	}
}

// baseOf strips the /api suffix so other Ollama endpoints can be reached.
func baseOf(generateURL string) string {
	if idx := strings.Index(generateURL, "/api"); idx != -1 {
		return generateURL[:idx]
	}
	return generateURL
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float32 `json:"temperature"`
	Stream      bool    `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Text     string `json:"text"`
	Output   string `json:"output"`
}

// Generate implements Generator with a single blocking POST to /api/generate.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: c.temperature,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var gen generateResponse
	if err := json.Unmarshal(data, &gen); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	// Field name varies across server versions.
	for _, text := range []string{gen.Response, gen.Text, gen.Output} {
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("ollama response contained no generated text")
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed implements Embedder via /api/embeddings.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{
		Model:  c.embedModel,
		Prompt: truncateInput(text),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama embed request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read embed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama embed returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var emb embedResponse
	if err := json.Unmarshal(data, &emb); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}

	if len(emb.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return emb.Embedding, nil
}

// HealthCheck pings the server for available models, trying the endpoints that
// different server versions expose.
func (c *OllamaClient) HealthCheck(ctx context.Context) Health {
	for _, path := range []string{"/api/tags", "/api/models"} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			continue
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return Health{OK: true, Message: "ollama reachable (no model list)"}
		}
		if resp.StatusCode != http.StatusOK || readErr != nil {
			continue
		}

		var tags struct {
			Models []struct {
				Name  string `json:"name"`
				Model string `json:"model"`
			} `json:"models"`
		}
		if err := json.Unmarshal(data, &tags); err != nil {
			return Health{OK: true, Message: "ollama reachable"}
		}

		var names []string
		for _, m := range tags.Models {
			if m.Name != "" {
				names = append(names, m.Name)
			} else if m.Model != "" {
				names = append(names, m.Model)
			}
		}

		return Health{OK: true, Message: "ollama reachable", Models: names}
	}

	return Health{OK: false, Message: "unable to reach ollama"}
}
