package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging in the app.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	// Sync flushes any buffered log entries.
	Sync() error
}

var (
	_ Logger = &loggerImpl{}
	_ Logger = &NoOpLogger{}
)

type loggerImpl struct {
	zapLogger *zap.Logger
}

// NewLogger creates a new logger.
// If fileName is non-empty, it pipes logs to the given file in addition to stdout.
// isProduction toggles between the zap production and development configs.
// logLevel is parsed per zapcore.ParseLevel, defaulting to info on failure.
func NewLogger(isProduction bool, fileName, logLevel string) (Logger, error) {
	var config zap.Config
	if isProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	config.OutputPaths = []string{"stdout"}
	if fileName != "" {
		config.OutputPaths = append(config.OutputPaths, fileName)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &loggerImpl{
		zapLogger: zapLogger,
	}, nil
}

// Debug implements Logger.
func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, fields...)
}

// Info implements Logger.
func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, fields...)
}

// Warn implements Logger.
func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, fields...)
}

// Error implements Logger.
func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, fields...)
}

// Sync implements Logger.
func (l *loggerImpl) Sync() error {
	return l.zapLogger.Sync()
}

// NoOpLogger is a logger that discards all messages. Useful in tests.
type NoOpLogger struct{}

// Debug implements Logger.
func (l *NoOpLogger) Debug(msg string, fields ...zap.Field) {}

// Info implements Logger.
func (l *NoOpLogger) Info(msg string, fields ...zap.Field) {}

// Warn implements Logger.
func (l *NoOpLogger) Warn(msg string, fields ...zap.Field) {}

// Error implements Logger.
func (l *NoOpLogger) Error(msg string, fields ...zap.Field) {}

// Sync implements Logger.
func (l *NoOpLogger) Sync() error {
	return nil
}
