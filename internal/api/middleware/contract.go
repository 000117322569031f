package middleware

import "time"

// HTTPMetrics интерфейс учета HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
