package timeentry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/ponto-eletronico/internal"
	"github.com/frahmantamala/ponto-eletronico/internal/core/common/validation"
	"github.com/frahmantamala/ponto-eletronico/internal/core/events"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
)

const (
	msgFuncionarioMissing  = "Funcionário não informado"
	msgFuncionarioNotFound = "Funcionário não encontrado. ID inexistente"
	msgEntryNotFound       = "Lançamento não encontrado"
	msgDataRequired        = "Data não pode ser vazia."
	msgDataInvalid         = "Data inválida"
	msgTipoInvalid         = "Tipo inválido"
	msgDescricaoLength     = "Descrição deve conter no máximo 255 caracteres."
	msgLocalizacaoLength   = "Localização deve conter no máximo 255 caracteres."
)

type ServiceAPI interface {
	FindByFuncionarioID(ctx context.Context, funcionarioID int64, page PageRequest) (*Page, error)
	FindByID(ctx context.Context, id int64) (*TimeEntry, error)
	Persist(ctx context.Context, entry *TimeEntry) (*TimeEntry, error)
	Remove(ctx context.Context, id int64) error
}

type EmployeeFinder interface {
	FindByID(ctx context.Context, id int64) (*employee.Employee, error)
}

// Ledger implements the time-clock entry flows on top of Service. Validation
// errors are accumulated and gate every write.
type Ledger struct {
	entries   ServiceAPI
	employees EmployeeFinder
	publisher events.Publisher
	logger    *slog.Logger
}

func NewLedger(entries ServiceAPI, employees EmployeeFinder, publisher events.Publisher, logger *slog.Logger) *Ledger {
	return &Ledger{
		entries:   entries,
		employees: employees,
		publisher: publisher,
		logger:    logger,
	}
}

func (l *Ledger) List(ctx context.Context, funcionarioID int64, page PageRequest) (*PageDTO, error) {
	result, err := l.entries.FindByFuncionarioID(ctx, funcionarioID, page)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	out := result.ToDTO()
	return &out, nil
}

func (l *Ledger) Get(ctx context.Context, id int64) (*LancamentoDTO, error) {
	entry, err := l.entries.FindByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if entry == nil {
		l.logger.Info("time entry not found", "id", id)
		return nil, internal.NewNotFoundError(fmt.Sprintf("Lançamento não encontrado para o id %d", id), internal.ErrCodeTimeEntryNotFound)
	}
	out := entry.ToDTO()
	return &out, nil
}

func (l *Ledger) Create(ctx context.Context, dto LancamentoDTO) (*LancamentoDTO, error) {
	l.logger.Info("adding time entry", "funcionario_id", dto.FuncionarioID, "tipo", dto.Tipo)

	result := validation.NewResult()
	if err := l.validateFuncionario(ctx, dto, result); err != nil {
		return nil, err
	}

	entry := &TimeEntry{}
	if dto.FuncionarioID != nil {
		entry.FuncionarioID = *dto.FuncionarioID
	}
	applyDTO(entry, dto, result)

	if result.HasErrors() {
		l.logger.Error("time entry rejected", "errors", result.Messages())
		return nil, result.Err()
	}

	stored, err := l.entries.Persist(ctx, entry)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	l.publish(ctx, events.NewTimeEntryCreatedEvent(stored.ID, stored.FuncionarioID, string(stored.Tipo), stored.Data))

	out := stored.ToDTO()
	return &out, nil
}

// Update rewrites data, tipo, descricao and localizacao of an entry. The
// entry keeps the employee it was created for.
func (l *Ledger) Update(ctx context.Context, id int64, dto LancamentoDTO) (*LancamentoDTO, error) {
	l.logger.Info("updating time entry", "id", id, "tipo", dto.Tipo)

	result := validation.NewResult()
	if err := l.validateFuncionario(ctx, dto, result); err != nil {
		return nil, err
	}

	entry, err := l.entries.FindByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}
	if entry == nil {
		result.AddError("lancamento", msgEntryNotFound)
		entry = &TimeEntry{}
	}
	applyDTO(entry, dto, result)

	if result.HasErrors() {
		l.logger.Error("time entry update rejected", "id", id, "errors", result.Messages())
		return nil, result.Err()
	}

	stored, err := l.entries.Persist(ctx, entry)
	if err != nil {
		return nil, internal.NewInternalError(internal.MsgInternal, err)
	}

	l.publish(ctx, events.NewTimeEntryUpdatedEvent(stored.ID, stored.FuncionarioID, string(stored.Tipo), stored.Data))

	out := stored.ToDTO()
	return &out, nil
}

func (l *Ledger) Delete(ctx context.Context, id int64) error {
	l.logger.Info("removing time entry", "id", id)

	entry, err := l.entries.FindByID(ctx, id)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if entry == nil {
		l.logger.Info("cannot remove missing time entry", "id", id)
		return internal.NewNotFoundError(fmt.Sprintf("Erro ao remover lançamento. Registro não encontrado para o id %d", id), internal.ErrCodeTimeEntryNotFound)
	}

	if err := l.entries.Remove(ctx, id); err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}

	l.publish(ctx, events.NewTimeEntryRemovedEvent(entry.ID, entry.FuncionarioID, string(entry.Tipo), entry.Data))
	return nil
}

func (l *Ledger) validateFuncionario(ctx context.Context, dto LancamentoDTO, result *validation.Result) error {
	if dto.FuncionarioID == nil {
		result.AddError("funcionario", msgFuncionarioMissing)
		return nil
	}

	l.logger.Info("validating employee", "funcionario_id", *dto.FuncionarioID)
	emp, err := l.employees.FindByID(ctx, *dto.FuncionarioID)
	if err != nil {
		return internal.NewInternalError(internal.MsgInternal, err)
	}
	if emp == nil {
		result.AddError("funcionario", msgFuncionarioNotFound)
	}
	return nil
}

func applyDTO(entry *TimeEntry, dto LancamentoDTO, result *validation.Result) {
	v := validation.NewValidator()
	v.Field("descricao", dto.Descricao).Length(0, 255, msgDescricaoLength)
	v.Field("localizacao", dto.Localizacao).Length(0, 255, msgLocalizacaoLength)
	result.Merge(v.Validate())

	entry.Descricao = dto.Descricao
	entry.Localizacao = dto.Localizacao

	if strings.TrimSpace(dto.Data) == "" {
		result.AddError("data", msgDataRequired)
	} else if data, err := validation.ParseTimestamp(dto.Data); err != nil {
		result.AddError("data", msgDataInvalid)
	} else {
		entry.Data = data
	}

	if tipo, ok := ParseTipo(dto.Tipo); ok {
		entry.Tipo = tipo
	} else {
		result.AddError("tipo", msgTipoInvalid)
	}
}

func (l *Ledger) publish(ctx context.Context, event events.Event) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
