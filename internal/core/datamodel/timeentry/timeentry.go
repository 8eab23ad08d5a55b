package timeentry

import "time"

type TimeEntry struct {
	ID            int64     `gorm:"primaryKey"`
	Data          time.Time `gorm:"column:data;not null"`
	Descricao     string    `gorm:"column:descricao"`
	Localizacao   string    `gorm:"column:localizacao"`
	Tipo          string    `gorm:"column:tipo;not null"`
	FuncionarioID int64     `gorm:"column:funcionario_id;index;not null"`
	CreatedAt     time.Time `gorm:"column:data_criacao;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:data_atualizacao;autoUpdateTime"`
}

func (TimeEntry) TableName() string {
	return "lancamentos"
}
