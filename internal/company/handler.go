package company

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/core/common/validation"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	FindByCNPJ(ctx context.Context, cnpj string) (*Company, error)
	Persist(ctx context.Context, company *Company) (*Company, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetByCNPJ handles GET /api/empresas/cnpj/{cnpj}
func (h *Handler) GetByCNPJ(w http.ResponseWriter, r *http.Request) {
	cnpj := chi.URLParam(r, "cnpj")

	company, err := h.Service.FindByCNPJ(r.Context(), validation.OnlyDigits(cnpj))
	if err != nil {
		h.WriteError(w, err)
		return
	}
	if company == nil {
		h.Logger.Info("GetByCNPJ: company not found", "cnpj", cnpj)
		h.WriteError(w, internal.NewNotFoundError("Empresa não encontrada para o cnpj "+cnpj, internal.ErrCodeCompanyNotFound))
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(company.ToDTO()))
}
