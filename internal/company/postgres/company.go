package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/ponto-eletronico/internal/company"
	companyDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/company"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) FindByCNPJ(ctx context.Context, cnpj string) (*companyDatamodel.Company, error) {
	var c companyDatamodel.Company
	err := r.db.WithContext(ctx).Where("cnpj = ?", cnpj).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Save inserts a company without id and updates it otherwise.
func (r *CompanyRepository) Save(ctx context.Context, c *companyDatamodel.Company) error {
	if c.ID == 0 {
		return r.db.WithContext(ctx).Create(c).Error
	}
	return r.db.WithContext(ctx).Save(c).Error
}
