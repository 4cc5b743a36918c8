// Package logger настраивает структурированные журналы zerolog.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLogLevel - переменная окружения с уровнем журнала.
const EnvLogLevel = "MORPHY_LOGLEVEL"

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
	LevelPanic = "PANIC"
)

// Setup задаёт имена служебных полей для всех журналов процесса.
func Setup() {
	zerolog.LevelFieldName = "level_name"
	zerolog.TimestampFieldName = "timestamp"
}

// NewLogger создаёт журнал компонента, пишущий JSON в stderr.
func NewLogger(component string) zerolog.Logger {
	return NewLoggerTo(os.Stderr, component)
}

// NewLoggerTo создаёт журнал компонента с произвольным приёмником.
func NewLoggerTo(w io.Writer, component string) zerolog.Logger {
	level, ok := os.LookupEnv(EnvLogLevel)
	if !ok {
		level = LevelInfo
	}
	return zerolog.New(w).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(ParseLevel(level))
}

// ParseLevel переводит имя уровня в zerolog.Level; неизвестные имена дают INFO.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelPanic:
		return zerolog.PanicLevel
	}
	return zerolog.InfoLevel
}
