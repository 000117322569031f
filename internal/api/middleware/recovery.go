package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
)

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID, _ := RequestIDFromContext(r.Context())
					log.Error("panic in handler %s %s request_id=%s: %v\n%s",
						r.Method, r.URL.Path, requestID, rec, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
