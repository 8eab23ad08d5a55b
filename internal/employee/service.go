package employee

import (
	"context"
	"fmt"
	"log/slog"

	employeeDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	FindByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	FindByCPF(ctx context.Context, cpf string) (*employeeDatamodel.Employee, error)
	FindByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	FindByCPFOrEmail(ctx context.Context, cpf, email string) (*employeeDatamodel.Employee, error)
	Save(ctx context.Context, employee *employeeDatamodel.Employee) error
}

// Service is a thin layer over the repository. Lookups return nil, nil on a miss.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Persist(ctx context.Context, employee *Employee) (*Employee, error) {
	s.logger.Info("persisting employee", "email", employee.Email)

	dataEmployee := ToDataModel(employee)
	if err := s.repo.Save(ctx, dataEmployee); err != nil {
		s.logger.Error("failed to persist employee", "email", employee.Email, "error", err)
		return nil, fmt.Errorf("persist employee: %w", err)
	}

	return FromDataModel(dataEmployee), nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*Employee, error) {
	s.logger.Info("finding employee by id", "id", id)
	return s.find(s.repo.FindByID(ctx, id))
}

func (s *Service) FindByCPF(ctx context.Context, cpf string) (*Employee, error) {
	s.logger.Info("finding employee by cpf")
	return s.find(s.repo.FindByCPF(ctx, cpf))
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	s.logger.Info("finding employee by email", "email", email)
	return s.find(s.repo.FindByEmail(ctx, email))
}

func (s *Service) FindByCPFOrEmail(ctx context.Context, cpf, email string) (*Employee, error) {
	s.logger.Info("finding employee by cpf or email", "email", email)
	return s.find(s.repo.FindByCPFOrEmail(ctx, cpf, email))
}

func (s *Service) find(e *employeeDatamodel.Employee, err error) (*Employee, error) {
	if err != nil {
		s.logger.Error("failed to find employee", "error", err)
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if e == nil {
		return nil, nil
	}
	return FromDataModel(e), nil
}
