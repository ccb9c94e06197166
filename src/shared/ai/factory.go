package ai

// Factory inputs to construct a client without leaking provider details.
type FactoryConfig struct {
	Provider  string // "ollama" or "openai"
	OpenAIKey string
	BaseURL   string
	// Defaults
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     int // seconds
}

// NewClient returns a provider-agnostic completion client.
func NewClient(cfg FactoryConfig) Client {
	switch cfg.Provider {
	case "openai":
		return newOpenAIClient(cfg)
	default:
		return newOllamaClient(cfg)
	}
}
