package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/ponto-eletronico/internal/transport"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*TokenDTO, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenDTO, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// Login handles POST /auth
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	tokens, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.Logger.Error("Login: authentication failed", "error", err)
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*tokens))
}

// RefreshToken handles POST /auth/refresh
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("RefreshToken: invalid request body", "error", err)
		h.WriteError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(r.Context(), dto.RefreshToken)
	if err != nil {
		h.Logger.Error("RefreshToken: token refresh failed", "error", err)
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.Ok(*tokens))
}
