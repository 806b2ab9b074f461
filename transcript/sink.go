package transcript

import (
	"fmt"

	"github.com/Conceptual-Machines/maya-agents-go/config"
)

// NewSinkFromConfig picks the sink named by TRANSCRIPT_SINK
func NewSinkFromConfig(cfg *config.Config) (Sink, error) {
	switch cfg.TranscriptSink {
	case "", config.SinkFile:
		return NewFileSink(), nil
	case config.SinkBolt:
		return NewBoltSink(cfg.BoltPath), nil
	default:
		return nil, fmt.Errorf("unknown transcript sink: %s", cfg.TranscriptSink)
	}
}
