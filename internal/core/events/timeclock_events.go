package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeRegistered = "funcionario.cadastrado"
	EventTypeTimeEntryCreated   = "lancamento.criado"
	EventTypeTimeEntryUpdated   = "lancamento.atualizado"
	EventTypeTimeEntryRemoved   = "lancamento.removido"
)

// Types lists every event type the application emits.
var Types = []string{
	EventTypeEmployeeRegistered,
	EventTypeTimeEntryCreated,
	EventTypeTimeEntryUpdated,
	EventTypeTimeEntryRemoved,
}

type EmployeeRegisteredEvent struct {
	BaseEvent
	EmployeeID int64  `json:"funcionario_id"`
	CompanyID  *int64 `json:"empresa_id,omitempty"`
	Perfil     string `json:"perfil"`
}

func NewEmployeeRegisteredEvent(employeeID int64, companyID *int64, perfil string) *EmployeeRegisteredEvent {
	data := map[string]interface{}{
		"funcionario_id": employeeID,
		"perfil":         perfil,
	}
	if companyID != nil {
		data["empresa_id"] = *companyID
	}

	return &EmployeeRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeRegistered,
			Timestamp: time.Now().UTC(),
			Data:      data,
		},
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Perfil:     perfil,
	}
}

type TimeEntryEvent struct {
	BaseEvent
	TimeEntryID   int64     `json:"lancamento_id"`
	FuncionarioID int64     `json:"funcionario_id"`
	Tipo          string    `json:"tipo"`
	EntryTime     time.Time `json:"data_lancamento"`
}

func newTimeEntryEvent(eventType string, timeEntryID, funcionarioID int64, tipo string, data time.Time) *TimeEntryEvent {
	return &TimeEntryEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"lancamento_id":  timeEntryID,
				"funcionario_id": funcionarioID,
				"tipo":           tipo,
				"data":           data.UTC().Format(time.RFC3339),
			},
		},
		TimeEntryID:   timeEntryID,
		FuncionarioID: funcionarioID,
		Tipo:          tipo,
		EntryTime:     data,
	}
}

func NewTimeEntryCreatedEvent(timeEntryID, funcionarioID int64, tipo string, data time.Time) *TimeEntryEvent {
	return newTimeEntryEvent(EventTypeTimeEntryCreated, timeEntryID, funcionarioID, tipo, data)
}

func NewTimeEntryUpdatedEvent(timeEntryID, funcionarioID int64, tipo string, data time.Time) *TimeEntryEvent {
	return newTimeEntryEvent(EventTypeTimeEntryUpdated, timeEntryID, funcionarioID, tipo, data)
}

func NewTimeEntryRemovedEvent(timeEntryID, funcionarioID int64, tipo string, data time.Time) *TimeEntryEvent {
	return newTimeEntryEvent(EventTypeTimeEntryRemoved, timeEntryID, funcionarioID, tipo, data)
}
