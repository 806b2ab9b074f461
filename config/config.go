package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	SinkFile = "file"
	SinkBolt = "bolt"

	defaultModel       = "gpt-4.1-mini"
	defaultOllamaURL   = "http://localhost:11434"
	defaultOutputDir   = "outputs"
	defaultTemperature = 0.5
	defaultMaxTokens   = 250
	defaultTopP        = 0.95
)

// Config contains configuration for MAYA agents
type Config struct {
	Provider      string // LLM provider name: openai, gemini or ollama
	Model         string // Model used by every agent
	OpenAIAPIKey  string
	OpenAIBaseURL string // Optional OpenAI-compatible gateway
	GeminiAPIKey  string
	OllamaURL     string

	SerperAPIKey         string // Web search tool
	OpenWeatherMapAPIKey string // Weather tool

	Temperature  float64
	MaxNewTokens int
	TopP         float64

	OutputDir      string // Directory for saved conversations and creative output
	TranscriptSink string // file or bolt
	BoltPath       string

	SentryDSN   string
	LogLevel    string
	MetricsAddr string // Prometheus listen address, empty disables

	Personas Personas
	Budgets  Budgets
}

// Persona describes one agent role
type Persona struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// Personas holds the three MAYA agent personas
type Personas struct {
	Advisor      Persona `yaml:"advisor"`
	TrendAnalyst Persona `yaml:"trend_analyst"`
	Creative     Persona `yaml:"creative"`
}

// Budgets are the advisory time budgets handed to agents per call type.
type Budgets struct {
	Search     time.Duration
	Classify   time.Duration
	Specialist time.Duration
	Synthesis  time.Duration
	Direct     time.Duration
	Greeting   time.Duration
}

// settingsFile is the YAML shape of MAYA_SETTINGS. Budgets are in seconds.
type settingsFile struct {
	Personas Personas `yaml:"personas"`
	Budgets  struct {
		Search     int `yaml:"search"`
		Classify   int `yaml:"classify"`
		Specialist int `yaml:"specialist"`
		Synthesis  int `yaml:"synthesis"`
		Direct     int `yaml:"direct"`
		Greeting   int `yaml:"greeting"`
	} `yaml:"budgets"`
}

// DefaultPersonas returns the stock MAYA crew
func DefaultPersonas() Personas {
	return Personas{
		Advisor: Persona{
			Role:      "Senior Music Industry Advisor",
			Goal:      "Help users navigate the music industry and develop their musical skills, ask other agents for help and call tools when needed",
			Backstory: "I'm MAYA, your dedicated music industry advisor with expertise in trends, artist development, and creative direction",
		},
		TrendAnalyst: Persona{
			Role:      "Music Trend Analyst",
			Goal:      "Provide data-driven insights into music market trends and audience preferences",
			Backstory: "Expert in music analytics and market trends with access to real-time industry data",
		},
		Creative: Persona{
			Role:      "Creative Music Assistant",
			Goal:      "Generate original musical compositions and lyrical content.",
			Backstory: "Experienced in songwriting and music theory, stays updated with current trends.",
		},
	}
}

// DefaultBudgets returns the per-call budgets
func DefaultBudgets() Budgets {
	return Budgets{
		Search:     60 * time.Second,
		Classify:   60 * time.Second,
		Specialist: 180 * time.Second,
		Synthesis:  120 * time.Second,
		Direct:     60 * time.Second,
		Greeting:   200 * time.Second,
	}
}

// Load reads .env (if present), the environment and the optional MAYA_SETTINGS file,
// then validates that every required credential is present.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := FromEnv()
	if path := os.Getenv("MAYA_SETTINGS"); path != "" {
		if err := cfg.LoadSettings(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables with defaults applied.
func FromEnv() *Config {
	cfg := &Config{
		Provider:             strings.ToLower(envOr("LLM_PROVIDER", ProviderOpenAI)),
		Model:                envOr("LLM_MODEL", defaultModel),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		OllamaURL:            envOr("OLLAMA_URL", defaultOllamaURL),
		SerperAPIKey:         os.Getenv("SERPER_API_KEY"),
		OpenWeatherMapAPIKey: os.Getenv("OPENWEATHERMAP_API_KEY"),
		Temperature:          envFloat("TEMPERATURE", defaultTemperature),
		MaxNewTokens:         envInt("MAX_NEW_TOKENS", defaultMaxTokens),
		TopP:                 envFloat("TOP_P", defaultTopP),
		OutputDir:            envOr("MAYA_OUTPUT_DIR", defaultOutputDir),
		TranscriptSink:       strings.ToLower(envOr("TRANSCRIPT_SINK", SinkFile)),
		SentryDSN:            os.Getenv("SENTRY_DSN"),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		MetricsAddr:          os.Getenv("METRICS_ADDR"),
		Personas:             DefaultPersonas(),
		Budgets:              DefaultBudgets(),
	}
	cfg.BoltPath = envOr("TRANSCRIPT_BOLT_PATH", cfg.OutputDir+"/transcripts.bolt")
	return cfg
}

// LoadSettings overlays personas and budgets from a YAML file.
// Fields left empty keep their current values.
func (c *Config) LoadSettings(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	var s settingsFile
	if err := yaml.NewDecoder(f).Decode(&s); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	mergePersona(&c.Personas.Advisor, s.Personas.Advisor)
	mergePersona(&c.Personas.TrendAnalyst, s.Personas.TrendAnalyst)
	mergePersona(&c.Personas.Creative, s.Personas.Creative)

	mergeSeconds(&c.Budgets.Search, s.Budgets.Search)
	mergeSeconds(&c.Budgets.Classify, s.Budgets.Classify)
	mergeSeconds(&c.Budgets.Specialist, s.Budgets.Specialist)
	mergeSeconds(&c.Budgets.Synthesis, s.Budgets.Synthesis)
	mergeSeconds(&c.Budgets.Direct, s.Budgets.Direct)
	mergeSeconds(&c.Budgets.Greeting, s.Budgets.Greeting)
	return nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var missing []string

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	case ProviderOllama:
		if c.OllamaURL == "" {
			missing = append(missing, "OLLAMA_URL")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER: %s (allowed: openai, gemini, ollama)", c.Provider)
	}

	if c.SerperAPIKey == "" {
		missing = append(missing, "SERPER_API_KEY")
	}
	if c.OpenWeatherMapAPIKey == "" {
		missing = append(missing, "OPENWEATHERMAP_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.TranscriptSink != SinkFile && c.TranscriptSink != SinkBolt {
		return fmt.Errorf("unknown TRANSCRIPT_SINK: %s (allowed: file, bolt)", c.TranscriptSink)
	}
	return nil
}

func mergePersona(dst *Persona, src Persona) {
	if src.Role != "" {
		dst.Role = src.Role
	}
	if src.Goal != "" {
		dst.Goal = src.Goal
	}
	if src.Backstory != "" {
		dst.Backstory = src.Backstory
	}
}

func mergeSeconds(dst *time.Duration, seconds int) {
	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return v
}
