package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/lumber/logger"
)

// LogMaskVal replaces the values of sensitive query parameters.
const LogMaskVal = "xxxxxxx"

// LogRequest logs the request's client IP, method, requested URL and ID
// at INFO using l.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if l is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(l *logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			if val := q.Get("password"); val != "" {
				q.Set("password", LogMaskVal)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if ip, ok := r.Context().Value(ClientIPKey).(string); ok {
				strs = append([]string{ip}, strs...)
			}

			if id, ok := r.Context().Value(RequestIDKey).(string); ok {
				strs = append(strs, id)
			}

			l.Info(strings.Join(strs, " "))
			h.ServeHTTP(w, r)
		})
	}
}

// AccessLog writes an Apache Combined Log Format line per request through l at INFO.
//
// if l is nil, NoopAdapter returns and this middleware does nothing.
func AccessLog(l *logger.Logger) Adapter {
	if l == nil {
		return NoopAdapter
	}

	w := l.Writer(logger.LevelInfo)
	return func(h http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(w, h)
	}
}
