package company

import (
	"context"
	"fmt"
	"log/slog"

	companyDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/company"
)

type RepositoryAPI interface {
	FindByCNPJ(ctx context.Context, cnpj string) (*companyDatamodel.Company, error)
	Save(ctx context.Context, company *companyDatamodel.Company) error
}

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

// FindByCNPJ returns nil, nil when no company has the given cnpj.
func (s *Service) FindByCNPJ(ctx context.Context, cnpj string) (*Company, error) {
	s.logger.Info("finding company by cnpj", "cnpj", cnpj)

	dataCompany, err := s.repo.FindByCNPJ(ctx, cnpj)
	if err != nil {
		s.logger.Error("failed to find company", "cnpj", cnpj, "error", err)
		return nil, fmt.Errorf("find company by cnpj: %w", err)
	}
	if dataCompany == nil {
		return nil, nil
	}

	return FromDataModel(dataCompany), nil
}

func (s *Service) Persist(ctx context.Context, company *Company) (*Company, error) {
	s.logger.Info("persisting company", "cnpj", company.CNPJ)

	dataCompany := ToDataModel(company)
	if err := s.repo.Save(ctx, dataCompany); err != nil {
		s.logger.Error("failed to persist company", "cnpj", company.CNPJ, "error", err)
		return nil, fmt.Errorf("persist company: %w", err)
	}

	return FromDataModel(dataCompany), nil
}
