package employee

import "time"

type Employee struct {
	ID                  int64     `gorm:"primaryKey"`
	Nome                string    `gorm:"column:nome;not null"`
	Email               string    `gorm:"column:email;uniqueIndex;not null"`
	CPF                 string    `gorm:"column:cpf;uniqueIndex;not null"`
	Senha               string    `gorm:"column:senha;not null"`
	Perfil              string    `gorm:"column:perfil;not null"`
	QtdHorasAlmoco      *float64  `gorm:"column:qtd_horas_almoco"`
	QtdHorasTrabalhoDia *float64  `gorm:"column:qtd_horas_trabalho_dia"`
	ValorHora           *float64  `gorm:"column:valor_hora"`
	CompanyID           *int64    `gorm:"column:empresa_id;index"`
	CreatedAt           time.Time `gorm:"column:data_criacao;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:data_atualizacao;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "funcionarios"
}
