package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/ponto-eletronico/pkg/logger"
	"github.com/go-chi/chi/middleware"
)

// maxLoggedBody caps how much of a request body ends up in a log line.
const maxLoggedBody = 4 << 10

// redactedKeys are the payload keys of this API that never reach the logs.
var redactedKeys = map[string]bool{
	"senha":        true,
	"cpf":          true,
	"token":        true,
	"refreshtoken": true,
}

// LoggingMiddleware writes one line per request through the request-scoped
// logger, so the trace ids set by RequestID are attached. Routes under
// skipPrefixes are not logged.
func LoggingMiddleware(base *slog.Logger, skipPrefixes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range skipPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log := base
			if scoped := logger.From(r.Context()); scoped != logger.LoggerWrapper() {
				log = scoped
			}

			body := captureBody(r)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			log.Log(r.Context(), level, "request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"authenticated", r.Header.Get("Authorization") != "",
				"body", redactBody(body),
				"status_code", status,
				"response_size", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// captureBody reads the request body and puts it back for the handler.
func captureBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	b, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

// redactBody masks redactedKeys at any depth of a JSON body. Anything that is
// not JSON is left out of the log.
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "[non-JSON body omitted]"
	}
	out, err := json.Marshal(redact(doc))
	if err != nil {
		return ""
	}
	if len(out) > maxLoggedBody {
		return string(out[:maxLoggedBody]) + "...[truncated]"
	}
	return string(out)
}

func redact(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, inner := range t {
			if redactedKeys[strings.ToLower(k)] {
				t[k] = "[FILTERED]"
				continue
			}
			t[k] = redact(inner)
		}
	case []interface{}:
		for i, inner := range t {
			t[i] = redact(inner)
		}
	}
	return v
}
