// Package llm provides the text-generation and text-classification client
// used by the outreach and reply-routing workflows and the resume parser.
package llm

import "fmt"

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider.
	ProviderGemini Provider = "gemini"
	// ProviderGoogle is accepted as an alias for Gemini.
	ProviderGoogle Provider = "google"
)

// Config holds the model configuration for the application.
type Config struct {
	Provider Provider
	Model    string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    "gemini-2.5-flash",
	}
}

// UnsupportedProviderError reports a configured provider with no implementation.
type UnsupportedProviderError struct {
	Provider Provider
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported LLM provider: %s", e.Provider)
}
