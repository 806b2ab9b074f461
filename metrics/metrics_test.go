package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAgentCall_IncrementsCounter(t *testing.T) {
	m := NewSentryMetrics()
	before := testutil.ToFloat64(AgentInvocationsTotal.WithLabelValues("Music Trend Analyst", "error"))

	assert.NotPanics(t, func() {
		m.RecordAgentCall(context.Background(), "Music Trend Analyst", 15*time.Millisecond, false)
	})

	after := testutil.ToFloat64(AgentInvocationsTotal.WithLabelValues("Music Trend Analyst", "error"))
	assert.Equal(t, before+1, after)
}

func TestRecordTurn_IncrementsCounter(t *testing.T) {
	m := NewSentryMetrics()
	before := testutil.ToFloat64(TurnsTotal.WithLabelValues("BOTH", "success"))

	m.RecordTurn(context.Background(), "BOTH", time.Second, true)

	assert.Equal(t, before+1, testutil.ToFloat64(TurnsTotal.WithLabelValues("BOTH", "success")))
}

func TestRecordTokenUsage_WithoutSentryClient(t *testing.T) {
	m := NewSentryMetrics()
	assert.NotPanics(t, func() {
		m.RecordTokenUsage(context.Background(), "openai", "gpt-4.1-mini", 30, 20, 10)
	})
}
