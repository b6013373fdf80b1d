package server

import (
	"net/http"
	"time"

	"github.com/Leopold1975/feedback_board/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

// loggingMiddleware writes one line per request. Handlers log their own
// failures, so the response body is streamed untouched.
func loggingMiddleware(logg logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				line := "[%s] %s %s -> %d (%d bytes) in %s from %s"
				args := []interface{}{
					middleware.GetReqID(r.Context()),
					r.Method,
					r.URL.RequestURI(),
					status,
					ww.BytesWritten(),
					time.Since(start).String(),
					r.RemoteAddr,
				}

				if status >= http.StatusInternalServerError {
					logg.Errorf(line, args...)

					return
				}

				logg.Infof(line, args...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// noStore keeps pages that depend on the session out of browser caches.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}
