package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger is the process-wide logger. It writes to stderr until Setup is called.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Setup configures the process-wide logger with a console writer at the given level.
func Setup(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		FormatCaller: func(i interface{}) string {
			s, _ := i.(string)
			return filepath.Base(s)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
	}

	zerolog.SetGlobalLevel(parseLevel(level))
	logger = zerolog.New(consoleWriter).With().Timestamp().Caller().Logger()

	// Keep zerolog's global logger in sync so log.Info() works everywhere
	log.Logger = logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
