package transport

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/pkg/logger"
	"github.com/go-chi/chi"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteErrors writes an envelope carrying only error messages
func (h *BaseHandler) WriteErrors(w http.ResponseWriter, status int, messages ...string) {
	h.WriteJSON(w, status, Fail(messages...))
}

// WriteError maps err onto the envelope. AppErrors keep their status and
// messages; anything else is logged and reported as an internal error.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	var appErr *internal.AppError
	if stdErrors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error("http error", "status", appErr.StatusCode, "error", appErr)
			h.WriteErrors(w, appErr.StatusCode, internal.MsgInternal)
			return
		}
		h.WriteErrors(w, appErr.StatusCode, appErr.Messages()...)
		return
	}

	h.Logger.Error("http error", "status", http.StatusInternalServerError, "error", err)
	h.WriteErrors(w, http.StatusInternalServerError, internal.MsgInternal)
}

// DecodeJSON reads the request body into dst. Unknown fields are ignored so
// clients may echo back response fields such as id.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return internal.NewValidationError("Corpo da requisição inválido", internal.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}

// PathInt64 parses a numeric URL parameter
func (h *BaseHandler) PathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("Parâmetro "+name+" inválido", internal.ErrCodeValidationFailed).WithCause(err)
	}
	return id, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	return BearerToken(r)
}

func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
