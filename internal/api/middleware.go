package api

import (
	"net/http"
	"time"

	"fjacquet/fsv-csv/internal/logging"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs incoming requests.
func RequestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				logging.Field{Key: logging.FieldMethod, Value: r.Method},
				logging.Field{Key: logging.FieldPath, Value: r.URL.Path},
				logging.Field{Key: logging.FieldHTTPStatus, Value: sw.status},
				logging.Field{Key: logging.FieldRequestID, Value: middleware.GetReqID(r.Context())},
				logging.Field{Key: logging.FieldRemoteAddr, Value: r.RemoteAddr},
				logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
