package logger

import (
	"os"

	"github.com/phuslu/log"
)

// Setup configures the process-wide logger. format "console" writes
// human-readable lines, anything else writes JSON to stderr.
func Setup(level, format string) {
	logger := log.Logger{
		Level:      log.ParseLevel(level),
		Caller:     1,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Writer:     &log.IOWriter{Writer: os.Stderr},
	}
	if format == "console" {
		logger.Writer = &log.ConsoleWriter{
			ColorOutput:    true,
			QuoteString:    true,
			EndWithMessage: true,
		}
	}
	log.DefaultLogger = logger
}
