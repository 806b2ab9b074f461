package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const providerNameGemini = "gemini"

// GeminiProvider implements the Provider interface using the Google GenAI SDK
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a Gemini provider backed by the Gemini API
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate runs a single GenerateContent call
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Debug().Msgf("🎵 GEMINI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()
	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents, config := buildGeminiRequest(request)

	span := transaction.StartChild("gemini.api_call")
	resp, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	span.Finish()
	if err != nil {
		log.Error().Err(err).Msgf("❌ GEMINI REQUEST FAILED after %v", time.Since(startTime))
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini response did not include any output text")
	}

	var usage Usage
	if resp.UsageMetadata != nil {
		usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	log.Debug().Msgf("✅ GEMINI GENERATION COMPLETED in %v (tokens=%d)", time.Since(startTime), usage.TotalTokens)

	transaction.SetTag("success", "true")
	return &GenerationResponse{RawOutput: text, Usage: usage}, nil
}

// buildGeminiRequest maps the request onto genai contents plus config.
// The system prompt goes to SystemInstruction; assistant turns use the "model" role.
func buildGeminiRequest(request *GenerationRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	var contents []*genai.Content
	for _, item := range request.InputArray {
		role, content, ok := messageParts(item)
		if !ok {
			continue
		}
		var geminiRole genai.Role = genai.RoleUser
		if role == assistantRole {
			geminiRole = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(content, geminiRole))
	}

	config := &genai.GenerateContentConfig{}
	if request.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemPrompt, genai.RoleUser)
	}
	if request.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(request.Temperature))
	}
	if request.TopP > 0 {
		config.TopP = genai.Ptr(float32(request.TopP))
	}
	if request.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(request.MaxOutputTokens)
	}
	return contents, config
}
