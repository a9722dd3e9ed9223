package types

import "time"

// GeneratorConfig holds settings for the card generation stage.
type GeneratorConfig struct {
	// Model is the chat-completion model identifier (e.g. "gpt-4-turbo").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the completion API endpoint. Empty selects the
	// public OpenAI endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Timeout is the HTTP request timeout for completion calls (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// CardStyle identifies the output flashcard syntax.
type CardStyle string

const (
	// StyleObsidianSpacedRepetition is the syntax consumed by the Obsidian
	// Spaced Repetition plugin: a #flashcards tag line followed by
	// front / ? / back blocks.
	StyleObsidianSpacedRepetition CardStyle = "obsidian-spaced-repetition"
)

// FormatConfig holds settings for flashcard rendering.
type FormatConfig struct {
	// Style selects the output syntax.
	Style CardStyle `json:"style" yaml:"style"`

	// IncludeTag prepends the #flashcards tag line the plugin keys on.
	IncludeTag bool `json:"include_tag" yaml:"include_tag"`
}

// ProcessingConfig holds settings for directory-tree processing.
type ProcessingConfig struct {
	// InputDir is the root of the notes tree (default: current directory).
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the root of the mirrored flashcard tree. Empty means
	// InputDir/flashcards.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Overwrite regenerates files whose output already exists. When false,
	// existing outputs are skipped and no API call is made for them.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// HistoryConfig holds settings for the run-history ledger.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty means
	// ~/.config/flashcard-generator/history.db.
	Path string `json:"path" yaml:"path"`
}
