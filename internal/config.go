package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Embedder providers.
const (
	EmbedderOllama = "ollama"
	EmbedderOpenAI = "openai"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Notes    NotesConfig       `yaml:"notes"`
	Embedder EmbedderConfig    `yaml:"embedder"`
	Vector   VectorConfig      `yaml:"vector"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Notes.Validate(); err != nil {
		return err
	}
	if err := c.Embedder.Validate(); err != nil {
		return err
	}
	return c.Vector.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// NotesConfig holds settings for the AppleScript bridge.
type NotesConfig struct {
	// TimeoutSeconds bounds a single osascript invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ScriptTimeout returns the per-call timeout as a duration.
func (c *NotesConfig) ScriptTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the notes configuration.
func (c *NotesConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(600)),
	)
}

// EmbedderConfig selects the embedding provider. The model is pinned:
// changing it invalidates stored vectors, so pair a model change with an
// index version bump.
type EmbedderConfig struct {
	Provider   string `yaml:"provider"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"`
}

// Validate validates the embedder configuration.
func (c *EmbedderConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Provider, validation.Required, validation.In(EmbedderOllama, EmbedderOpenAI)),
		validation.Field(&c.Dimensions, validation.Required, validation.Min(1), validation.Max(8192)),
	)
}

// VectorConfig holds the vector store location.
type VectorConfig struct {
	// Path to the store database. Empty means the per-user default under
	// the home directory.
	Path string `yaml:"path"`
}

// Validate validates the vector configuration.
func (c *VectorConfig) Validate() error {
	return nil
}

// StorePath resolves the configured path, falling back to
// ~/.laguz/notes.db.
func (c *VectorConfig) StorePath() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".laguz", "notes.db"), nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Notes: NotesConfig{
			TimeoutSeconds: 30,
		},
		Embedder: EmbedderConfig{
			Provider:   EmbedderOllama,
			Model:      "nomic-embed-text",
			Dimensions: 768,
		},
	}
}
