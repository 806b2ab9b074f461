package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/maya-agents-go/llm"
	"github.com/Conceptual-Machines/maya-agents-go/metrics"
	"github.com/Conceptual-Machines/maya-agents-go/prompt"
	"github.com/Conceptual-Machines/maya-agents-go/tools"
	"github.com/rs/zerolog/log"
)

const defaultMaxIterations = 1

// Sampling holds the model parameters shared by every agent call
type Sampling struct {
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
}

// Task is one unit of work for an agent
type Task struct {
	Description    string
	ExpectedOutput string
	// MaxTime is an advisory budget. Execute turns it into a context deadline.
	MaxTime time.Duration
}

// Agent is a role-specialized LLM worker with an optional tool belt
type Agent struct {
	Role      string
	Goal      string
	Backstory string

	provider      llm.Provider
	model         string
	sampling      Sampling
	tools         *tools.ToolRegistry
	maxIterations int
	prompts       *prompt.MayaPromptBuilder
	metrics       *metrics.SentryMetrics
}

// Option customizes an Agent
type Option func(*Agent)

// WithTools gives the agent a tool registry
func WithTools(registry *tools.ToolRegistry) Option {
	return func(a *Agent) { a.tools = registry }
}

// WithSampling sets model parameters
func WithSampling(s Sampling) Option {
	return func(a *Agent) { a.sampling = s }
}

// WithMaxIterations bounds how many tool rounds one task may take
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// NewAgent creates an agent bound to a provider and model
func NewAgent(role, goal, backstory string, provider llm.Provider, model string, opts ...Option) *Agent {
	a := &Agent{
		Role:          role,
		Goal:          goal,
		Backstory:     backstory,
		provider:      provider,
		model:         model,
		maxIterations: defaultMaxIterations,
		prompts:       prompt.NewMayaPromptBuilder(),
		metrics:       metrics.NewSentryMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tools returns the agent's tool registry, nil when it has none
func (a *Agent) Tools() *tools.ToolRegistry {
	return a.tools
}

// Execute runs a task and returns the agent's final text.
// A reply that is a tool call is executed and the model is asked again,
// at most maxIterations times.
func (a *Agent) Execute(ctx context.Context, task Task) (string, error) {
	if task.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.MaxTime)
		defer cancel()
	}

	start := time.Now()
	log.Debug().Str("role", a.Role).Msgf("🤖 Executing task (budget %v)", task.MaxTime)

	input := []map[string]any{
		llm.UserMessage(a.prompts.TaskMessage(task.Description, task.ExpectedOutput)),
	}
	systemPrompt := a.prompts.AgentSystemPrompt(a.Role, a.Goal, a.Backstory, a.toolSpecs())

	var lastToolOutput string
	for iteration := 0; ; iteration++ {
		resp, err := a.provider.Generate(ctx, &llm.GenerationRequest{
			Model:           a.model,
			SystemPrompt:    systemPrompt,
			InputArray:      input,
			Temperature:     a.sampling.Temperature,
			MaxOutputTokens: a.sampling.MaxOutputTokens,
			TopP:            a.sampling.TopP,
		})
		if err != nil {
			a.metrics.RecordAgentCall(ctx, a.Role, time.Since(start), false)
			return "", fmt.Errorf("%s: %w", a.Role, err)
		}
		a.metrics.RecordTokenUsage(ctx, a.provider.Name(), a.model,
			resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)

		call, isToolCall := a.detectToolCall(resp.RawOutput)
		if !isToolCall {
			a.metrics.RecordAgentCall(ctx, a.Role, time.Since(start), true)
			log.Debug().Str("role", a.Role).Msgf("✅ Task completed in %v", time.Since(start))
			return resp.RawOutput, nil
		}

		if iteration >= a.maxIterations {
			log.Warn().Str("role", a.Role).Msg("⚠️  Tool call after iteration limit, using last tool output")
			a.metrics.RecordAgentCall(ctx, a.Role, time.Since(start), lastToolOutput != "")
			if lastToolOutput == "" {
				return "", fmt.Errorf("%s: no final answer within %d tool iterations", a.Role, a.maxIterations)
			}
			return lastToolOutput, nil
		}

		call.Caller = a.Role
		result := a.tools.CallTool(ctx, call)
		lastToolOutput = result.Output
		if result.Error != nil {
			lastToolOutput = ""
			result.Output = fmt.Sprintf("Error: %v", result.Error)
		}

		input = append(input,
			llm.AssistantMessage(resp.RawOutput),
			llm.UserMessage(a.prompts.ToolResultMessage(call.Name, result.Output)),
		)
	}
}

func (a *Agent) detectToolCall(output string) (tools.ToolCall, bool) {
	if a.tools == nil {
		return tools.ToolCall{}, false
	}
	call, ok := tools.ParseToolCall(output)
	if !ok || !a.tools.HasTool(call.Name) {
		return tools.ToolCall{}, false
	}
	return call, true
}

func (a *Agent) toolSpecs() []prompt.ToolSpec {
	if a.tools == nil {
		return nil
	}
	list := a.tools.List()
	specs := make([]prompt.ToolSpec, 0, len(list))
	for _, t := range list {
		specs = append(specs, prompt.ToolSpec{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return specs
}
