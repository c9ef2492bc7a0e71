package rnotefmt

import (
	"strings"

	"github.com/flxzt/rnotefmt/internal/logging"
)

// SetLogLevel sets the log level by name, one of
// "debug", "info", "warning" or "error".
// Any other name silences logging completely.
func SetLogLevel(level string) {
	var lvl logging.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = logging.LevelDebug
	case "info":
		lvl = logging.LevelInfo
	case "warning":
		lvl = logging.LevelWarning
	case "error":
		lvl = logging.LevelError
	default:
		lvl = logging.LevelNone
	}
	logging.SetLevel(lvl)
}
