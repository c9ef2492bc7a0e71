package logging

import (
	"os"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelNone
)

var logger zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger = zerolog.New(out).With().Timestamp().Logger()

	SetLevel(LevelWarning)
}

// SetLevel sets the minimum level for messages to be written.
func SetLevel(l Level) {
	switch l {
	case LevelDebug:
		logger = logger.Level(zerolog.DebugLevel)
	case LevelInfo:
		logger = logger.Level(zerolog.InfoLevel)
	case LevelWarning:
		logger = logger.Level(zerolog.WarnLevel)
	case LevelError:
		logger = logger.Level(zerolog.ErrorLevel)
	case LevelNone:
		logger = logger.Level(zerolog.Disabled)
	}
}

func Debug(msg string, v ...interface{}) {
	logger.Debug().Msgf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	logger.Info().Msgf(msg, v...)
}

func Warning(msg string, v ...interface{}) {
	logger.Warn().Msgf(msg, v...)
}

func Error(msg string, v ...interface{}) {
	logger.Error().Msgf(msg, v...)
}
