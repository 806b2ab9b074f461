package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/maya-agents-go/config"
)

// ProviderFactory creates providers based on model name or explicit provider choice
type ProviderFactory struct {
	openaiAPIKey  string
	openaiBaseURL string
	geminiAPIKey  string
	ollamaURL     string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
		ollamaURL:    DefaultOllamaURL,
	}
}

// NewProviderFactoryFromConfig builds a factory from loaded configuration
func NewProviderFactoryFromConfig(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey:  cfg.OpenAIAPIKey,
		openaiBaseURL: cfg.OpenAIBaseURL,
		geminiAPIKey:  cfg.GeminiAPIKey,
		ollamaURL:     cfg.OllamaURL,
	}
}

// GetProvider returns the appropriate provider for the given model/provider name
func (f *ProviderFactory) GetProvider(ctx context.Context, model, providerName string) (Provider, error) {
	// If provider is explicitly specified, use that
	if providerName != "" {
		return f.getProviderByName(ctx, providerName)
	}

	// Otherwise, infer from model name
	return f.getProviderByModel(ctx, model)
}

// getProviderByName creates a provider by explicit name
func (f *ProviderFactory) getProviderByName(ctx context.Context, providerName string) (Provider, error) {
	switch strings.ToLower(providerName) {
	case providerNameOpenAI:
		return f.openai()

	case providerNameGemini:
		return f.gemini(ctx)

	case providerNameOllama:
		return NewOllamaProvider(f.ollamaURL, nil)

	default:
		return nil, fmt.Errorf("unknown provider: %s (allowed: openai, gemini, ollama)", providerName)
	}
}

// getProviderByModel infers provider from model name
func (f *ProviderFactory) getProviderByModel(ctx context.Context, model string) (Provider, error) {
	modelLower := strings.ToLower(model)

	// Gemini models use Gemini
	if strings.HasPrefix(modelLower, "gemini-") {
		return f.gemini(ctx)
	}

	// GPT models and anything unknown use OpenAI
	return f.openai()
}

func (f *ProviderFactory) openai() (Provider, error) {
	if f.openaiAPIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}
	return NewOpenAIProvider(f.openaiAPIKey, f.openaiBaseURL), nil
}

func (f *ProviderFactory) gemini(ctx context.Context) (Provider, error) {
	if f.geminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	return NewGeminiProvider(ctx, f.geminiAPIKey)
}
