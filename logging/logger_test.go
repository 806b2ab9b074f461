package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestSetup_WritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", &buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Str("role", "advisor").Msg("agent ready")
	log.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "agent ready")
	assert.Contains(t, out, "role=")
	assert.NotContains(t, out, "hidden")
}
