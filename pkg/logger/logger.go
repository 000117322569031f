package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger printf-style логгер поверх zap.
// Сервисы зависят от собственных интерфейсов Logger (Info/Warn/Error),
// которым этот тип удовлетворяет.
type Logger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// New создает логгер. file пустой - пишем только в stdout,
// иначе дополнительно дублируем записи в файл.
func New(file, level string) (*Logger, error) {
	outputs := []string{"stdout"}
	if file != "" {
		outputs = append(outputs, file)
	}
	return build(outputs, level)
}

// NewFile создает логгер, который пишет только в файл
func NewFile(file, level string) (*Logger, error) {
	if file == "" {
		return nil, fmt.Errorf("logger: file is required")
	}
	return build([]string{file}, level)
}

func build(outputs []string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logger: build zap logger: %w", err)
	}

	return &Logger{base: base, sugar: base.Sugar()}, nil
}

// NewNop возвращает логгер, который ничего не пишет (для тестов)
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{base: base, sugar: base.Sugar()}
}

// With возвращает логгер с постоянными полями
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	sugar := l.sugar.With(keysAndValues...)
	return &Logger{base: sugar.Desugar(), sugar: sugar}
}

// Debug пишет отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Info пишет информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warn пишет предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error пишет ошибку
func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Fatal пишет ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}

// Close сбрасывает буферы
func (l *Logger) Close() error {
	// Sync на stdout возвращает EINVAL на некоторых платформах, игнорируем
	_ = l.base.Sync()
	return nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}
