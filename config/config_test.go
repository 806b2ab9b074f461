package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERPER_API_KEY", "serper-test")
	t.Setenv("OPENWEATHERMAP_API_KEY", "owm-test")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_MODEL", "")
	t.Setenv("TEMPERATURE", "")
	t.Setenv("MAX_NEW_TOKENS", "not-a-number")
	t.Setenv("MAYA_OUTPUT_DIR", "")
	t.Setenv("TRANSCRIPT_BOLT_PATH", "")
	t.Setenv("TRANSCRIPT_SINK", "")

	cfg := FromEnv()

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, defaultModel, cfg.Model)
	assert.Equal(t, defaultTemperature, cfg.Temperature)
	assert.Equal(t, defaultMaxTokens, cfg.MaxNewTokens)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, "outputs/transcripts.bolt", cfg.BoltPath)
	assert.Equal(t, 60*time.Second, cfg.Budgets.Search)
	assert.Equal(t, 180*time.Second, cfg.Budgets.Specialist)
	assert.Equal(t, "Senior Music Industry Advisor", cfg.Personas.Advisor.Role)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ListsEveryMissingVariable(t *testing.T) {
	cfg := &Config{Provider: ProviderOpenAI, TranscriptSink: SinkFile}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t,
		"missing required environment variables: OPENAI_API_KEY, SERPER_API_KEY, OPENWEATHERMAP_API_KEY",
		err.Error())
}

func TestValidate_ProviderSpecificKeys(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "gemini needs gemini key",
			cfg:     Config{Provider: ProviderGemini, OpenAIAPIKey: "x", SerperAPIKey: "s", OpenWeatherMapAPIKey: "w", TranscriptSink: SinkFile},
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:    "ollama needs a url",
			cfg:     Config{Provider: ProviderOllama, SerperAPIKey: "s", OpenWeatherMapAPIKey: "w", TranscriptSink: SinkFile},
			wantErr: "OLLAMA_URL",
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "watsonx"},
			wantErr: "unknown LLM_PROVIDER",
		},
		{
			name:    "unknown sink",
			cfg:     Config{Provider: ProviderOpenAI, OpenAIAPIKey: "x", SerperAPIKey: "s", OpenWeatherMapAPIKey: "w", TranscriptSink: "s3"},
			wantErr: "unknown TRANSCRIPT_SINK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSettings_OverlaysPersonasAndBudgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maya.yaml")
	content := `
personas:
  creative:
    role: Lyricist
budgets:
  specialist: 30
  greeting: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := &Config{Personas: DefaultPersonas(), Budgets: DefaultBudgets()}
	require.NoError(t, cfg.LoadSettings(path))

	assert.Equal(t, "Lyricist", cfg.Personas.Creative.Role)
	assert.Equal(t, DefaultPersonas().Creative.Goal, cfg.Personas.Creative.Goal)
	assert.Equal(t, 30*time.Second, cfg.Budgets.Specialist)
	assert.Equal(t, 5*time.Second, cfg.Budgets.Greeting)
	assert.Equal(t, 60*time.Second, cfg.Budgets.Search)
}

func TestLoadSettings_BadFile(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("personas: [unterminated"), 0o644))
	assert.Error(t, cfg.LoadSettings(path))
}
