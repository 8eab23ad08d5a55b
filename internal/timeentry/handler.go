package timeentry

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/transport"
)

type LedgerAPI interface {
	List(ctx context.Context, funcionarioID int64, page PageRequest) (*PageDTO, error)
	Get(ctx context.Context, id int64) (*LancamentoDTO, error)
	Create(ctx context.Context, dto LancamentoDTO) (*LancamentoDTO, error)
	Update(ctx context.Context, id int64, dto LancamentoDTO) (*LancamentoDTO, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Ledger     LedgerAPI
	pagination internal.PaginationConfig
}

func NewHandler(baseHandler *transport.BaseHandler, ledger LedgerAPI, pagination internal.PaginationConfig) *Handler {
	if pagination.PageSize <= 0 {
		pagination.PageSize = 10
	}
	if pagination.MaxPageSize < pagination.PageSize {
		pagination.MaxPageSize = 100
	}
	return &Handler{
		BaseHandler: baseHandler,
		Ledger:      ledger,
		pagination:  pagination,
	}
}

// ListByFuncionario handles GET /api/lancamentos/funcionario/{funcionarioId}
func (h *Handler) ListByFuncionario(w http.ResponseWriter, r *http.Request) {
	funcionarioID, err := h.PathInt64(r, "funcionarioId")
	if err != nil {
		h.WriteError(w, err)
		return
	}

	page, err := ParsePageRequest(r.URL.Query(), h.pagination.PageSize, h.pagination.MaxPageSize)
	if err != nil {
		h.Logger.Error("ListByFuncionario: invalid page request", "error", err)
		h.WriteError(w, err)
		return
	}

	out, err := h.Ledger.List(r.Context(), funcionarioID, page)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}

// Get handles GET /api/lancamentos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathInt64(r, "id")
	if err != nil {
		h.WriteError(w, err)
		return
	}

	out, err := h.Ledger.Get(r.Context(), id)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}

// Create handles POST /api/lancamentos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto LancamentoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	out, err := h.Ledger.Create(r.Context(), dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}

// Update handles PUT /api/lancamentos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathInt64(r, "id")
	if err != nil {
		h.WriteError(w, err)
		return
	}

	var dto LancamentoDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	out, err := h.Ledger.Update(r.Context(), id, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*out))
}

// Delete handles DELETE /api/lancamentos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathInt64(r, "id")
	if err != nil {
		h.WriteError(w, err)
		return
	}

	if err := h.Ledger.Delete(r.Context(), id); err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Empty())
}
