package timeentry

import (
	"context"
	"fmt"
	"log/slog"

	timeentryDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/timeentry"
)

type RepositoryAPI interface {
	FindByID(ctx context.Context, id int64) (*timeentryDatamodel.TimeEntry, error)
	FindByFuncionarioID(ctx context.Context, funcionarioID int64, page PageRequest) ([]*timeentryDatamodel.TimeEntry, int64, error)
	Save(ctx context.Context, entry *timeentryDatamodel.TimeEntry) error
	Delete(ctx context.Context, id int64) error
}

type Page struct {
	Entries       []*TimeEntry
	TotalElements int64
	Request       PageRequest
}

func (p *Page) TotalPages() int {
	if p.Request.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Request.Size) - 1) / int64(p.Request.Size))
}

func (p *Page) ToDTO() PageDTO {
	content := make([]LancamentoDTO, len(p.Entries))
	for i, e := range p.Entries {
		content[i] = e.ToDTO()
	}
	return PageDTO{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		Number:        p.Request.Page,
		Size:          p.Request.Size,
	}
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

func (s *Service) FindByFuncionarioID(ctx context.Context, funcionarioID int64, page PageRequest) (*Page, error) {
	s.logger.Info("finding time entries by employee",
		"funcionario_id", funcionarioID,
		"page", page.Page,
		"size", page.Size,
		"sort", page.Sort,
		"direction", page.Direction)

	rows, total, err := s.repo.FindByFuncionarioID(ctx, funcionarioID, page)
	if err != nil {
		s.logger.Error("failed to list time entries", "funcionario_id", funcionarioID, "error", err)
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	entries := make([]*TimeEntry, len(rows))
	for i, row := range rows {
		entries[i] = FromDataModel(row)
	}

	return &Page{Entries: entries, TotalElements: total, Request: page}, nil
}

// FindByID returns nil, nil when the entry does not exist.
func (s *Service) FindByID(ctx context.Context, id int64) (*TimeEntry, error) {
	s.logger.Info("finding time entry by id", "id", id)

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to find time entry", "id", id, "error", err)
		return nil, fmt.Errorf("find time entry: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return FromDataModel(row), nil
}

func (s *Service) Persist(ctx context.Context, entry *TimeEntry) (*TimeEntry, error) {
	s.logger.Info("persisting time entry", "funcionario_id", entry.FuncionarioID, "tipo", entry.Tipo)

	row := ToDataModel(entry)
	if err := s.repo.Save(ctx, row); err != nil {
		s.logger.Error("failed to persist time entry", "error", err)
		return nil, fmt.Errorf("persist time entry: %w", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	s.logger.Info("removing time entry", "id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to remove time entry", "id", id, "error", err)
		return fmt.Errorf("remove time entry: %w", err)
	}
	return nil
}
