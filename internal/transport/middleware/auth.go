package middleware

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/frahmantamala/ponto-eletronico/pkg/logger"
	"github.com/go-chi/chi"
)

// TokenVerifier resolves a bearer access token into the authenticated employee.
type TokenVerifier interface {
	ValidateAccessToken(token string) (internal.Principal, error)
}

// Authenticate requires a valid bearer token and stores the principal in the
// request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := transport.BearerToken(r)
			if token == "" {
				writeAppError(w, internal.ErrInvalidToken)
				return
			}

			principal, err := verifier.ValidateAccessToken(token)
			if err != nil {
				var appErr *internal.AppError
				if !stdErrors.As(err, &appErr) {
					appErr = internal.ErrInvalidToken
				}
				logger.From(r.Context()).Warn("Authenticate: rejected token", "error", err)
				writeAppError(w, appErr)
				return
			}

			ctx := internal.ContextWithPrincipal(r.Context(), principal)
			ctx = logger.With(ctx, "employeeID", principal.EmployeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the principal holds one of perfis.
func RequireRole(perfis ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.ErrInvalidToken)
				return
			}

			for _, perfil := range perfis {
				if principal.Perfil == perfil {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.From(r.Context()).Warn("Access denied: employee lacks required role",
				"employee_id", principal.EmployeeID,
				"required_roles", perfis,
				"perfil", principal.Perfil)
			writeAppError(w, internal.ErrAccessDenied)
		})
	}
}

// RequireSelfOrRole lets the request through when the employee id in the URL
// parameter param is the principal's own, or when the principal holds one of perfis.
func RequireSelfOrRole(param string, perfis ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.ErrInvalidToken)
				return
			}

			if id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64); err == nil && id == principal.EmployeeID {
				next.ServeHTTP(w, r)
				return
			}
			for _, perfil := range perfis {
				if principal.Perfil == perfil {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.From(r.Context()).Warn("Access denied: employee acting on another account",
				"employee_id", principal.EmployeeID,
				"target", chi.URLParam(r, param),
				"perfil", principal.Perfil)
			writeAppError(w, internal.ErrAccessDenied)
		})
	}
}

func writeAppError(w http.ResponseWriter, err *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(transport.Fail(err.Messages()...))
}
