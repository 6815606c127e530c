package logging

import (
	"log/slog"
	"strings"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"
)

// NewLogger builds the process logger. debug forces the debug level,
// otherwise level is parsed as one of debug, info, warn or error.
func NewLogger(level string, debug bool) *dkplog.Logger {
	if debug {
		level = "debug"
	}

	return dkplog.NewLogger(
		dkplog.WithLevel(
			slog.Level(
				dkplog.LogLevelFromStr(strings.ToLower(strings.TrimSpace(level))),
			),
		),
	)
}
