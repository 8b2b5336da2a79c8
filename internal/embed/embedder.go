// Package embed turns text into fixed-length vectors using a pinned
// embedding model. Providers are selected by configuration.
package embed

import (
	"context"
	"fmt"
)

// Embedder maps text to a fixed-length vector. The mapping is deterministic
// for a pinned model, so equal inputs yield equal vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config selects and configures an embedding provider.
type Config struct {
	Provider   string
	BaseURL    string
	Model      string
	APIKey     string
	Dimensions int
}

// New creates the configured embedder.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		return newOllama(baseURL, model), nil
	case "openai":
		return newOpenAI(cfg.BaseURL, cfg.APIKey, cfg.Model, cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedder provider: %s", cfg.Provider)
	}
}
