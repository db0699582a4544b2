package procure

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// ZapLogger adapts a zap.Logger to the Logger interface.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func zapFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}

	return out
}

// Debug implements Logger.
func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

// Info implements Logger.
func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

// Warn implements Logger.
func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

// Error implements Logger.
func (l *ZapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

// LogrusLogger adapts a logrus.Logger to the Logger interface.
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewLogrusLogger wraps an existing logrus logger.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{logger: logger}
}

// Debug implements Logger.
func (l *LogrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info implements Logger.
func (l *LogrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn implements Logger.
func (l *LogrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error implements Logger.
func (l *LogrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}

// NoopLogger discards everything.
type NoopLogger struct{}

// NewNoopLogger creates a logger that drops all output.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug implements Logger.
func (l *NoopLogger) Debug(msg string, fields map[string]interface{}) {}

// Info implements Logger.
func (l *NoopLogger) Info(msg string, fields map[string]interface{}) {}

// Warn implements Logger.
func (l *NoopLogger) Warn(msg string, fields map[string]interface{}) {}

// Error implements Logger.
func (l *NoopLogger) Error(msg string, fields map[string]interface{}) {}
