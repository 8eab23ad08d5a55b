package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/ponto-eletronico/api"
	"github.com/frahmantamala/ponto-eletronico/internal/auth"
	"github.com/frahmantamala/ponto-eletronico/internal/company"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	"github.com/frahmantamala/ponto-eletronico/internal/timeentry"
	"github.com/frahmantamala/ponto-eletronico/internal/transport/middleware"
	"github.com/frahmantamala/ponto-eletronico/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Dependencies groups what RegisterAllRoutes wires into the router. A nil
// handler leaves its routes out. Verifier is only consulted when RequireAuth
// is set.
type Dependencies struct {
	DB               Pinger
	AuthHandler      *auth.Handler
	Verifier         middleware.TokenVerifier
	CompanyHandler   *company.Handler
	EmployeeHandler  *employee.Handler
	TimeEntryHandler *timeentry.Handler
	AllowedOrigins   string
	RequireAuth      bool
	Logger           *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps Dependencies) {
	healthHandler := NewHealthHandler(deps.DB)

	// Apply global middleware
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger, "/health", "/ping", "/swagger"))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	if deps.AuthHandler != nil {
		router.Route("/auth", func(ar chi.Router) {
			ar.Post("/", deps.AuthHandler.Login)
			ar.Post("/refresh", deps.AuthHandler.RefreshToken)
		})
	}

	router.Route("/api", func(r chi.Router) {
		// Public routes
		if deps.EmployeeHandler != nil {
			r.Post("/cadastrar-pf", deps.EmployeeHandler.RegisterPF)
			r.Post("/cadastrar-pj", deps.EmployeeHandler.RegisterPJ)
		}
		if deps.CompanyHandler != nil {
			r.Get("/empresas/cnpj/{cnpj}", deps.CompanyHandler.GetByCNPJ)
		}

		// Routes protected when authentication is required
		r.Group(func(pr chi.Router) {
			if deps.RequireAuth {
				pr.Use(middleware.Authenticate(deps.Verifier))
			}

			if deps.EmployeeHandler != nil {
				if deps.RequireAuth {
					pr.With(middleware.RequireSelfOrRole("id", employee.PerfilAdmin)).
						Put("/funcionarios/{id}", deps.EmployeeHandler.Update)
				} else {
					pr.Put("/funcionarios/{id}", deps.EmployeeHandler.Update)
				}
			}

			if deps.TimeEntryHandler != nil {
				h := deps.TimeEntryHandler
				pr.Route("/lancamentos", func(lr chi.Router) {
					lr.Get("/funcionario/{funcionarioId}", h.ListByFuncionario)
					lr.Post("/", h.Create)
					lr.Get("/{id}", h.Get)
					lr.Put("/{id}", h.Update)

					lr.Group(func(dr chi.Router) {
						if deps.RequireAuth {
							dr.Use(middleware.RequireRole(employee.PerfilAdmin))
						}
						dr.Delete("/{id}", h.Delete)
					})
				})
			}
		})
	})
}
