package llm

import (
	"context"
	"unicode/utf8"
)

const (
	userRole      = "user"
	developerRole = "developer"
	assistantRole = "assistant"
)

// Provider is a text-generation backend used by the agents
type Provider interface {
	// Name returns the provider identifier (openai, gemini, ollama)
	Name() string

	// Generate runs a single non-streaming generation
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

// GenerationRequest is a provider-agnostic generation request
type GenerationRequest struct {
	Model        string
	SystemPrompt string
	// InputArray holds chat messages as {"role": ..., "content": ...}
	InputArray []map[string]any

	// Sampling parameters. Zero values leave the provider default in place.
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
}

// GenerationResponse is a provider-agnostic generation result
type GenerationResponse struct {
	RawOutput string
	Usage     Usage
}

// Usage reports token accounting for one generation
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserMessage builds a single user input item
func UserMessage(content string) map[string]any {
	return map[string]any{
		"role":    userRole,
		"content": content,
	}
}

// AssistantMessage builds an assistant input item, used to replay earlier model output
func AssistantMessage(content string) map[string]any {
	return map[string]any{
		"role":    assistantRole,
		"content": content,
	}
}

// messageParts extracts role and content from an input item.
// ok is false when either is missing.
func messageParts(item map[string]any) (role string, content string, ok bool) {
	role, hasRole := item["role"].(string)
	content, hasContent := item["content"].(string)
	return role, content, hasRole && hasContent
}

// truncate cuts s to at most maxLen bytes without splitting a rune
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
