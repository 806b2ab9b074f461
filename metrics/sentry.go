package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // No-op spans when Sentry is not initialized
	}
}

// RecordTokenUsage records provider token usage on the current transaction
func (m *SentryMetrics) RecordTokenUsage(ctx context.Context, provider, model string, totalTokens, inputTokens, outputTokens int) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.provider", provider)
		transaction.SetTag("llm.model", model)
		transaction.SetData("llm.total_tokens", totalTokens)
		transaction.SetData("llm.input_tokens", inputTokens)
		transaction.SetData("llm.output_tokens", outputTokens)
	}

	span := sentry.StartSpan(ctx, "llm.token_usage")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetTag("total_tokens", fmt.Sprintf("%d", totalTokens))
	span.SetData("total_tokens", totalTokens)
	span.SetData("input_tokens", inputTokens)
	span.SetData("output_tokens", outputTokens)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Token Usage: %s", model)
}

// RecordAgentCall records one agent invocation (a single task execution)
func (m *SentryMetrics) RecordAgentCall(ctx context.Context, role string, duration time.Duration, success bool) {
	AgentInvocationsTotal.WithLabelValues(role, outcome(success)).Inc()

	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "agent.execute")
	defer span.Finish()

	span.SetTag("role", role)
	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("duration_ms", duration.Milliseconds())

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Agent: %s", role)
}

// RecordTurn records a completed or failed turn together with its delegation decision
func (m *SentryMetrics) RecordTurn(ctx context.Context, decision string, duration time.Duration, success bool) {
	TurnsTotal.WithLabelValues(decision, outcome(success)).Inc()

	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "maya.turn")
	defer span.Finish()

	span.SetTag("decision", decision)
	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("duration_ms", duration.Milliseconds())

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Turn: %s", decision)
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
