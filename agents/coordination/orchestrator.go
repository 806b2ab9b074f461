package coordination

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/maya-agents-go/agents"
	"github.com/Conceptual-Machines/maya-agents-go/config"
	"github.com/Conceptual-Machines/maya-agents-go/conversation"
	"github.com/Conceptual-Machines/maya-agents-go/metrics"
	"github.com/Conceptual-Machines/maya-agents-go/models"
	"github.com/Conceptual-Machines/maya-agents-go/prompt"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

const (
	trendLabel    = "📊 Industry Analysis:\n"
	creativeLabel = "🎵 Creative Input:\n"

	errorMessageFormat = "I apologize, but I encountered an error. Please try again. Error: %s"
)

// Specialist is anything that can execute an agent task
type Specialist interface {
	Execute(ctx context.Context, task agents.Task) (string, error)
}

// History is the part of the turn store a turn reads and commits to
type History interface {
	RecentContext(n int) string
	Append(e conversation.Exchange)
	SetTopic(topic string)
}

// EffectKind names a side effect the caller should apply after a turn
type EffectKind int

const (
	// EffectSaveCreative asks the caller to persist creative output
	EffectSaveCreative EffectKind = iota + 1
)

// Effect is a side effect produced by a successful turn
type Effect struct {
	Kind    EffectKind
	Content string
}

// TurnResult is the outcome of one Run
type TurnResult struct {
	Message   string
	Timestamp time.Time
	// Command is set when the utterance was a reserved token; no model was called
	Command  Command
	Decision Decision
	Effects  []Effect
	// Err is set on the error terminal; Message then carries the apology text
	Err error
}

// Response converts the result into the caller-facing value
func (r *TurnResult) Response() models.Response {
	return models.Response{Message: r.Message, Timestamp: r.Timestamp}
}

// Orchestrator routes one utterance through search, classification,
// specialist fan-out and synthesis, then commits the exchange.
type Orchestrator struct {
	advisor      Specialist
	trendAnalyst Specialist
	creative     Specialist

	prompts       *prompt.MayaPromptBuilder
	budgets       config.Budgets
	contextWindow int
	metrics       *metrics.SentryMetrics
	now           func() time.Time
}

// NewOrchestrator creates an orchestrator over a crew
func NewOrchestrator(crew *agents.Crew, budgets config.Budgets) *Orchestrator {
	return NewOrchestratorWithSpecialists(crew.Advisor, crew.TrendAnalyst, crew.Creative, budgets)
}

// NewOrchestratorWithSpecialists creates an orchestrator from individual specialists
func NewOrchestratorWithSpecialists(advisor, trendAnalyst, creative Specialist, budgets config.Budgets) *Orchestrator {
	return &Orchestrator{
		advisor:       advisor,
		trendAnalyst:  trendAnalyst,
		creative:      creative,
		prompts:       prompt.NewMayaPromptBuilder(),
		budgets:       budgets,
		contextWindow: conversation.DefaultContextWindow,
		metrics:       metrics.NewSentryMetrics(),
		now:           time.Now,
	}
}

// WithClock overrides the time source used for timestamps
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Run processes one utterance. It never returns nil and never panics on agent failure.
func (o *Orchestrator) Run(ctx context.Context, history History, utterance string) *TurnResult {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return &TurnResult{Message: MenuText, Timestamp: o.now(), Command: CommandMenu}
	}

	if cmd := ParseCommand(trimmed); cmd != CommandNone {
		result := &TurnResult{Timestamp: o.now(), Command: cmd}
		switch cmd {
		case CommandMenu:
			result.Message = MenuText
		case CommandExit:
			result.Message = FarewellText
		}
		log.Debug().Str("command", cmd.String()).Msg("🎛️  Reserved command")
		return result
	}

	start := time.Now()
	transaction := sentry.StartTransaction(ctx, "maya.turn")
	defer transaction.Finish()
	ctx = transaction.Context()

	result, err := o.delegate(ctx, transaction, history, utterance)
	if err != nil {
		log.Error().Err(err).Msg("❌ Error in interaction")
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		o.metrics.RecordTurn(ctx, result.Decision.String(), time.Since(start), false)
		return &TurnResult{
			Message:   fmt.Sprintf(errorMessageFormat, err.Error()),
			Timestamp: o.now(),
			Decision:  result.Decision,
			Err:       err,
		}
	}

	history.Append(conversation.Exchange{
		Input:     utterance,
		Output:    result.Message,
		Timestamp: o.now(),
	})
	history.SetTopic(result.Decision.String())
	result.Timestamp = o.now()

	transaction.SetTag("success", "true")
	transaction.SetTag("decision", result.Decision.String())
	o.metrics.RecordTurn(ctx, result.Decision.String(), time.Since(start), true)
	log.Info().Str("decision", result.Decision.String()).Msgf("✅ Turn completed in %v", time.Since(start))
	return result
}

// delegate runs the agent phases. The returned result is never nil so the
// decision reached so far survives an error.
func (o *Orchestrator) delegate(ctx context.Context, transaction *sentry.Span, history History, utterance string) (*TurnResult, error) {
	result := &TurnResult{}
	in := prompt.TurnInput{
		Query:   utterance,
		Context: history.RecentContext(o.contextWindow),
	}

	searchResults, err := o.phase(ctx, transaction, "search", o.advisor, agents.Task{
		Description:    o.prompts.SearchTask(in),
		ExpectedOutput: "Initial search results",
		MaxTime:        o.budgets.Search,
	})
	if err != nil {
		return result, err
	}
	in.SearchResults = searchResults

	classification, err := o.phase(ctx, transaction, "classify", o.advisor, agents.Task{
		Description:    o.prompts.ClassificationTask(in),
		ExpectedOutput: "Analysis decision for delegation",
		MaxTime:        o.budgets.Classify,
	})
	if err != nil {
		return result, err
	}
	result.Decision = ParseDecision(classification)
	log.Debug().Msgf("🔍 Delegation decision: %s (raw: %q)", result.Decision, strings.TrimSpace(classification))

	var responses []string

	if result.Decision.Trend() {
		trend, err := o.phase(ctx, transaction, "trend", o.trendAnalyst, agents.Task{
			Description:    o.prompts.TrendTask(in),
			ExpectedOutput: "Trend analysis and insights",
			MaxTime:        o.budgets.Specialist,
		})
		if err != nil {
			return result, err
		}
		responses = append(responses, trendLabel+trend)
	}

	if result.Decision.Creative() {
		creative, err := o.phase(ctx, transaction, "creative", o.creative, agents.Task{
			Description:    o.prompts.CreativeTask(in),
			ExpectedOutput: "Creative insights and suggestions",
			MaxTime:        o.budgets.Specialist,
		})
		if err != nil {
			return result, err
		}
		responses = append(responses, creativeLabel+creative)
		if strings.Contains(creative, prompt.MusicalContentStart) {
			result.Effects = append(result.Effects, Effect{Kind: EffectSaveCreative, Content: creative})
		}
	}

	var final string
	if len(responses) > 0 {
		final, err = o.phase(ctx, transaction, "synthesis", o.advisor, agents.Task{
			Description:    o.prompts.SynthesisTask(searchResults, responses),
			ExpectedOutput: "Synthesized response",
			MaxTime:        o.budgets.Synthesis,
		})
	} else {
		final, err = o.phase(ctx, transaction, "direct", o.advisor, agents.Task{
			Description:    o.prompts.DirectTask(in),
			ExpectedOutput: "Direct response",
			MaxTime:        o.budgets.Direct,
		})
	}
	if err != nil {
		return result, err
	}

	result.Message = final
	return result, nil
}

func (o *Orchestrator) phase(ctx context.Context, transaction *sentry.Span, name string, specialist Specialist, task agents.Task) (string, error) {
	span := transaction.StartChild("maya." + name)
	defer span.Finish()

	out, err := specialist.Execute(span.Context(), task)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("%s phase: %w", name, err)
	}
	span.Status = sentry.SpanStatusOK
	return out, nil
}
