package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog/log"
)

const (
	providerNameOllama = "ollama"

	// DefaultOllamaURL is where a local Ollama daemon listens
	DefaultOllamaURL = "http://localhost:11434"
)

// OllamaProvider implements the Provider interface against an Ollama server
type OllamaProvider struct {
	client *api.Client
}

// NewOllamaProvider creates a provider for the Ollama server at baseURL
func NewOllamaProvider(baseURL string, httpClient *http.Client) (*OllamaProvider, error) {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaProvider{client: api.NewClient(u, httpClient)}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return providerNameOllama
}

// Generate runs a non-streaming chat request
func (p *OllamaProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Debug().Msgf("🎵 OLLAMA GENERATION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "ollama.generate")
	defer transaction.Finish()
	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOllama)

	stream := false
	req := &api.ChatRequest{
		Model:    request.Model,
		Messages: buildOllamaMessages(request),
		Options:  ollamaOptions(request),
		Stream:   &stream,
	}

	var out strings.Builder
	var usage Usage
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		if resp.Done {
			usage = Usage{
				InputTokens:  resp.PromptEvalCount,
				OutputTokens: resp.EvalCount,
				TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msgf("❌ OLLAMA REQUEST FAILED after %v", time.Since(startTime))
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("ollama response did not include any output text")
	}

	log.Debug().Msgf("✅ OLLAMA GENERATION COMPLETED in %v (tokens=%d)", time.Since(startTime), usage.TotalTokens)
	transaction.SetTag("success", "true")
	return &GenerationResponse{RawOutput: text, Usage: usage}, nil
}

func buildOllamaMessages(request *GenerationRequest) []api.Message {
	messages := make([]api.Message, 0, len(request.InputArray)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, api.Message{Role: "system", Content: request.SystemPrompt})
	}
	for _, item := range request.InputArray {
		role, content, ok := messageParts(item)
		if !ok {
			continue
		}
		if role == developerRole {
			role = "system"
		}
		messages = append(messages, api.Message{Role: role, Content: content})
	}
	return messages
}

func ollamaOptions(request *GenerationRequest) map[string]any {
	options := map[string]any{}
	if request.Temperature > 0 {
		options["temperature"] = request.Temperature
	}
	if request.TopP > 0 {
		options["top_p"] = request.TopP
	}
	if request.MaxOutputTokens > 0 {
		options["num_predict"] = request.MaxOutputTokens
	}
	return options
}
