package agents

import (
	"context"
	"fmt"

	"github.com/Conceptual-Machines/maya-agents-go/config"
	"github.com/Conceptual-Machines/maya-agents-go/llm"
	"github.com/Conceptual-Machines/maya-agents-go/tools"
)

// Crew is the set of MAYA agents for one session
type Crew struct {
	Advisor      *Agent // MAYA herself: search and weather tools
	TrendAnalyst *Agent // search tool
	Creative     *Agent // no tools
}

// NewCrew wires the three agents to one provider using the configured personas
func NewCrew(cfg *config.Config, provider llm.Provider) *Crew {
	sampling := WithSampling(Sampling{
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxNewTokens,
		TopP:            cfg.TopP,
	})

	search := tools.NewSearchTool(cfg.SerperAPIKey)
	weather := tools.NewWeatherTool(cfg.OpenWeatherMapAPIKey)

	p := cfg.Personas
	return &Crew{
		Advisor: NewAgent(p.Advisor.Role, p.Advisor.Goal, p.Advisor.Backstory, provider, cfg.Model,
			sampling, WithTools(tools.NewToolRegistry(search, weather))),
		TrendAnalyst: NewAgent(p.TrendAnalyst.Role, p.TrendAnalyst.Goal, p.TrendAnalyst.Backstory, provider, cfg.Model,
			sampling, WithTools(tools.NewToolRegistry(search))),
		Creative: NewAgent(p.Creative.Role, p.Creative.Goal, p.Creative.Backstory, provider, cfg.Model,
			sampling),
	}
}

// NewCrewFromConfig resolves the provider through ProviderFactory and builds the crew
func NewCrewFromConfig(ctx context.Context, cfg *config.Config) (*Crew, error) {
	provider, err := llm.NewProviderFactoryFromConfig(cfg).GetProvider(ctx, cfg.Model, cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}
	return NewCrew(cfg, provider), nil
}
