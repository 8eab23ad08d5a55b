package timeentry

import (
	"time"

	timeentryDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/timeentry"
	"github.com/frahmantamala/ponto-eletronico/internal/core/common/validation"
)

type Tipo string

const (
	TipoInicioTrabalho  Tipo = "INICIO_TRABALHO"
	TipoInicioAlmoco    Tipo = "INICIO_ALMOCO"
	TipoTerminoAlmoco   Tipo = "TERMINO_ALMOCO"
	TipoTerminoTrabalho Tipo = "TERMINO_TRABALHO"
)

var tipos = map[Tipo]struct{}{
	TipoInicioTrabalho:  {},
	TipoInicioAlmoco:    {},
	TipoTerminoAlmoco:   {},
	TipoTerminoTrabalho: {},
}

// ParseTipo accepts exactly the four enum names, case sensitive.
func ParseTipo(s string) (Tipo, bool) {
	t := Tipo(s)
	_, ok := tipos[t]
	return t, ok
}

type TimeEntry struct {
	ID            int64
	Data          time.Time
	Descricao     string
	Localizacao   string
	Tipo          Tipo
	FuncionarioID int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (e *TimeEntry) ToDTO() LancamentoDTO {
	id := e.ID
	funcionarioID := e.FuncionarioID
	return LancamentoDTO{
		ID:            &id,
		Data:          validation.FormatTimestamp(e.Data),
		Tipo:          string(e.Tipo),
		Descricao:     e.Descricao,
		Localizacao:   e.Localizacao,
		FuncionarioID: &funcionarioID,
	}
}

func ToDataModel(e *TimeEntry) *timeentryDatamodel.TimeEntry {
	return &timeentryDatamodel.TimeEntry{
		ID:            e.ID,
		Data:          e.Data.UTC(),
		Descricao:     e.Descricao,
		Localizacao:   e.Localizacao,
		Tipo:          string(e.Tipo),
		FuncionarioID: e.FuncionarioID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func FromDataModel(e *timeentryDatamodel.TimeEntry) *TimeEntry {
	return &TimeEntry{
		ID:            e.ID,
		Data:          e.Data.UTC(),
		Descricao:     e.Descricao,
		Localizacao:   e.Localizacao,
		Tipo:          Tipo(e.Tipo),
		FuncionarioID: e.FuncionarioID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
