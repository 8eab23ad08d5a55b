package company

import "time"

type Company struct {
	ID          int64     `gorm:"primaryKey"`
	CNPJ        string    `gorm:"column:cnpj;uniqueIndex;not null"`
	RazaoSocial string    `gorm:"column:razao_social;not null"`
	CreatedAt   time.Time `gorm:"column:data_criacao;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:data_atualizacao;autoUpdateTime"`
}

func (Company) TableName() string {
	return "empresas"
}
