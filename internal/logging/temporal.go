package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// TemporalLogger adapts a zerolog logger to the variadic key/value logging
// interface of go.temporal.io/sdk/log, for use as the client and worker
// logger. Keys that are not strings are stringified rather than dropped.
type TemporalLogger struct {
	base zerolog.Logger
}

// NewTemporalLogger wraps base for use in client.Options.Logger.
func NewTemporalLogger(base zerolog.Logger) *TemporalLogger {
	return &TemporalLogger{base: base}
}

// Debug logs a message at debug level.
func (l *TemporalLogger) Debug(msg string, keyvals ...interface{}) {
	l.emit(l.base.Debug(), msg, keyvals)
}

// Info logs a message at info level.
func (l *TemporalLogger) Info(msg string, keyvals ...interface{}) {
	l.emit(l.base.Info(), msg, keyvals)
}

// Warn logs a message at warn level.
func (l *TemporalLogger) Warn(msg string, keyvals ...interface{}) {
	l.emit(l.base.Warn(), msg, keyvals)
}

// Error logs a message at error level.
func (l *TemporalLogger) Error(msg string, keyvals ...interface{}) {
	l.emit(l.base.Error(), msg, keyvals)
}

func (l *TemporalLogger) emit(event *zerolog.Event, msg string, keyvals []interface{}) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keyvals[i])
		}
		event = event.Interface(key, keyvals[i+1])
	}
	// A trailing key without a value still gets logged.
	if len(keyvals)%2 != 0 {
		event = event.Interface("extra", keyvals[len(keyvals)-1])
	}
	event.Msg(msg)
}
