package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/core/common/validation"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	"github.com/frahmantamala/ponto-eletronico/pkg/password"
)

type Service struct {
	employees      EmployeeFinder
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(employees EmployeeFinder, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		employees:      employees,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate checks email and senha and returns a fresh token pair.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*TokenDTO, error) {
	v := validation.NewValidator()
	v.Field("email", dto.Email).Required("Email não pode ser vazio.").Email("Email inválido.")
	v.Field("senha", dto.Senha).Required("Senha não pode ser vazia.")
	if err := v.Validate(); err != nil {
		return nil, err
	}

	e, findErr := s.employees.FindByEmail(ctx, dto.Email)
	if findErr != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, findErr)
	}
	if e == nil || !password.Matches(e.Senha, dto.Senha) {
		s.logger.Warn("authentication failed", "email", dto.Email)
		return nil, internal.ErrInvalidCredentials
	}

	s.logger.Info("employee authenticated", "employee_id", e.ID, "perfil", e.Perfil)
	return s.issue(e)
}

// RefreshTokens exchanges a refresh token for a new pair. The employee is
// reloaded so that role changes are picked up.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenDTO, error) {
	if refreshToken == "" {
		return nil, internal.NewValidationError("Refresh token não pode ser vazio.", internal.ErrCodeValidationFailed)
	}

	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	e, findErr := s.employees.FindByID(ctx, claims.EmployeeID)
	if findErr != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, findErr)
	}
	if e == nil {
		s.logger.Warn("refresh token for removed employee", "employee_id", claims.EmployeeID)
		return nil, internal.ErrInvalidToken
	}

	return s.issue(e)
}

// ValidateAccessToken resolves an access token into the request principal.
func (s *Service) ValidateAccessToken(tokenString string) (internal.Principal, error) {
	claims, err := s.tokenGenerator.ValidateAccessToken(tokenString)
	if err != nil {
		return internal.Principal{}, err
	}
	return claims.Principal(), nil
}

func (s *Service) issue(e *employee.Employee) (*TokenDTO, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(e)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(e)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	return &TokenDTO{
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}
