package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// unmatchedRoute метка для запросов, не попавших ни в один маршрут
const unmatchedRoute = "unmatched"

// statusRecorder запоминает код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware учитывает количество и длительность запросов.
// В метку route пишется шаблон маршрута, а не путь, чтобы не раздувать кардинальность.
func MetricsMiddleware(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			m.ObserveHTTPRequest(r.Method, routeTemplate(r), rec.status, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
