package company

import (
	"time"

	companyDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/company"
)

type Company struct {
	ID          int64     `json:"id"`
	CNPJ        string    `json:"cnpj"`
	RazaoSocial string    `json:"razaoSocial"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func NewCompany(cnpj, razaoSocial string) *Company {
	return &Company{
		CNPJ:        cnpj,
		RazaoSocial: razaoSocial,
	}
}

func (c *Company) ToDTO() EmpresaDTO {
	return EmpresaDTO{
		ID:          c.ID,
		CNPJ:        c.CNPJ,
		RazaoSocial: c.RazaoSocial,
	}
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:          c.ID,
		CNPJ:        c.CNPJ,
		RazaoSocial: c.RazaoSocial,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:          c.ID,
		CNPJ:        c.CNPJ,
		RazaoSocial: c.RazaoSocial,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
