package logging

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// responseWriter captures the written status code for logging.
type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware logs each request with its status and duration. Panics are
// recovered, logged with the stack and answered with a 500.
func Middleware(logger *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := logger.WithFields(logrus.Fields{
				"remoteAddr": r.RemoteAddr,
				"requestID":  middleware.GetReqID(r.Context()),
			})

			start := time.Now()
			wrapped := wrapResponseWriter(w)

			defer func() {
				if rec := recover(); rec != nil {
					if !wrapped.wroteHeader {
						wrapped.WriteHeader(http.StatusInternalServerError)
					}
					entry.WithField("panic", fmt.Sprint(rec)).WithField("status", http.StatusInternalServerError).Error("recovered panic")
					entry.Errorf("Stack %s", debug.Stack())
				}
			}()

			next.ServeHTTP(wrapped, r)

			if strings.HasPrefix(r.URL.EscapedPath(), "/health") {
				return
			}

			requestLogger := entry.WithFields(logrus.Fields{
				"status":   wrapped.status,
				"method":   r.Method,
				"path":     r.URL.EscapedPath(),
				"duration": time.Since(start),
			})

			msg := fmt.Sprintf("handled: %d", wrapped.status)
			switch {
			case wrapped.status >= 500:
				requestLogger.Error(msg)
			case wrapped.status >= 400:
				requestLogger.Warn(msg)
			default:
				requestLogger.Debug(msg)
			}
		}

		return http.HandlerFunc(fn)
	}
}
