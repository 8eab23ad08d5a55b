package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ponto-eletronico/internal/transport"
)

type AccountAPI interface {
	RegisterPF(ctx context.Context, dto CadastroPFDTO) (*CadastroPFDTO, error)
	RegisterPJ(ctx context.Context, dto CadastroPJDTO) (*CadastroPJDTO, error)
	Update(ctx context.Context, id int64, dto FuncionarioDTO) (*FuncionarioDTO, error)
}

type Handler struct {
	*transport.BaseHandler
	Accounts AccountAPI
}

func NewHandler(baseHandler *transport.BaseHandler, accounts AccountAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Accounts:    accounts,
	}
}

// RegisterPF handles POST /api/cadastrar-pf
func (h *Handler) RegisterPF(w http.ResponseWriter, r *http.Request) {
	var dto CadastroPFDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("RegisterPF: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	out, err := h.Accounts.RegisterPF(r.Context(), dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}

// RegisterPJ handles POST /api/cadastrar-pj
func (h *Handler) RegisterPJ(w http.ResponseWriter, r *http.Request) {
	var dto CadastroPJDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("RegisterPJ: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	out, err := h.Accounts.RegisterPJ(r.Context(), dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}

// Update handles PUT /api/funcionarios/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathInt64(r, "id")
	if err != nil {
		h.WriteError(w, err)
		return
	}

	var dto FuncionarioDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	out, err := h.Accounts.Update(r.Context(), id, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}
