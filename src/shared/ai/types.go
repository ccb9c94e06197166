package ai

import "context"

// Options controls a single completion; zero fields fall back to the
// factory defaults.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// JSONMode asks the provider to constrain output to a JSON document.
	JSONMode bool
}

// Client is a provider-agnostic text-completion interface. The rest of
// the backend treats the model runtime as an opaque service behind this
// single method.
type Client interface {
	// Name identifies the provider ("ollama", "openai").
	Name() string
	// Complete sends a prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
