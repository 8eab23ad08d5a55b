package employee

import (
	"strconv"
	"time"

	employeeDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/employee"
)

const (
	PerfilUsuario = "ROLE_USUARIO"
	PerfilAdmin   = "ROLE_ADMIN"
)

type Employee struct {
	ID                  int64
	Nome                string
	Email               string
	CPF                 string
	Senha               string
	Perfil              string
	QtdHorasAlmoco      *float64
	QtdHorasTrabalhoDia *float64
	ValorHora           *float64
	CompanyID           *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (e *Employee) IsAdmin() bool {
	return e.Perfil == PerfilAdmin
}

func (e *Employee) ToFuncionarioDTO() FuncionarioDTO {
	return FuncionarioDTO{
		ID:                  e.ID,
		Nome:                e.Nome,
		Email:               e.Email,
		ValorHora:           formatDecimal(e.ValorHora),
		QtdHorasTrabalhoDia: formatDecimal(e.QtdHorasTrabalhoDia),
		QtdHorasAlmoco:      formatDecimal(e.QtdHorasAlmoco),
	}
}

func (e *Employee) ToCadastroPFDTO(cnpj string) CadastroPFDTO {
	return CadastroPFDTO{
		ID:                  e.ID,
		Nome:                e.Nome,
		Email:               e.Email,
		CPF:                 e.CPF,
		CNPJ:                cnpj,
		ValorHora:           formatDecimal(e.ValorHora),
		QtdHorasTrabalhoDia: formatDecimal(e.QtdHorasTrabalhoDia),
		QtdHorasAlmoco:      formatDecimal(e.QtdHorasAlmoco),
	}
}

func (e *Employee) ToCadastroPJDTO(cnpj, razaoSocial string) CadastroPJDTO {
	return CadastroPJDTO{
		ID:          e.ID,
		Nome:        e.Nome,
		Email:       e.Email,
		CPF:         e.CPF,
		CNPJ:        cnpj,
		RazaoSocial: razaoSocial,
	}
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:                  e.ID,
		Nome:                e.Nome,
		Email:               e.Email,
		CPF:                 e.CPF,
		Senha:               e.Senha,
		Perfil:              e.Perfil,
		QtdHorasAlmoco:      e.QtdHorasAlmoco,
		QtdHorasTrabalhoDia: e.QtdHorasTrabalhoDia,
		ValorHora:           e.ValorHora,
		CompanyID:           e.CompanyID,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                  e.ID,
		Nome:                e.Nome,
		Email:               e.Email,
		CPF:                 e.CPF,
		Senha:               e.Senha,
		Perfil:              e.Perfil,
		QtdHorasAlmoco:      e.QtdHorasAlmoco,
		QtdHorasTrabalhoDia: e.QtdHorasTrabalhoDia,
		ValorHora:           e.ValorHora,
		CompanyID:           e.CompanyID,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func formatDecimal(f *float64) *string {
	if f == nil {
		return nil
	}
	s := strconv.FormatFloat(*f, 'f', -1, 64)
	return &s
}
