package logger

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// ZeroLogger writes JSON lines through zerolog. Default fields (service, env) are
// attached to every entry.
type ZeroLogger struct {
	mu            sync.RWMutex
	writer        io.Writer
	level         Level
	defaultFields Fields
	zl            zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

// NewZeroLogger return a configured instance of ZeroLogger
func NewZeroLogger(writer io.Writer, level Level, defaultFields Fields) *ZeroLogger {
	if defaultFields == nil {
		defaultFields = Fields{}
	}
	l := &ZeroLogger{writer: writer, level: level, defaultFields: defaultFields}
	l.configureLogger()
	return l
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	case LevelOff:
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) configureLogger() {
	props := make(map[string]interface{}, len(l.defaultFields))
	for k, v := range l.defaultFields {
		props[k] = v
	}
	l.zl = zerolog.New(l.writer).With().Fields(props).Timestamp().Logger().Level(toZerologLevel(l.level))
}

func (l *ZeroLogger) logger() *zerolog.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	zl := l.zl
	return &zl
}

func (l *ZeroLogger) Info(message string, properties map[string]interface{}) {
	l.logger().Info().Fields(properties).Msg(message)
}

func (l *ZeroLogger) Warn(message string, properties map[string]interface{}) {
	l.logger().Warn().Fields(properties).Msg(message)
}

// Error reports err at error level
func (l *ZeroLogger) Error(err error, properties map[string]interface{}) {
	l.logger().Error().Fields(properties).Err(err).Msg(err.Error())
}

// Fatal write the log to output and stop the process
func (l *ZeroLogger) Fatal(err error, properties map[string]interface{}) {
	l.logger().Fatal().Fields(properties).Err(err).Msg(err.Error())
}

func (l *ZeroLogger) Debug(message string, properties map[string]interface{}) {
	l.logger().Debug().Fields(properties).Msg(message)
}

func (l *ZeroLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.configureLogger()
}
