package postgres

import (
	"context"
	"errors"

	timeentryDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/timeentry"
	"github.com/frahmantamala/ponto-eletronico/internal/timeentry"
	"gorm.io/gorm"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) timeentry.RepositoryAPI {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id int64) (*timeentryDatamodel.TimeEntry, error) {
	var e timeentryDatamodel.TimeEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *TimeEntryRepository) FindByFuncionarioID(ctx context.Context, funcionarioID int64, page timeentry.PageRequest) ([]*timeentryDatamodel.TimeEntry, int64, error) {
	byEmployee := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&timeentryDatamodel.TimeEntry{}).Where("funcionario_id = ?", funcionarioID)
	}

	var total int64
	if err := byEmployee().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*timeentryDatamodel.TimeEntry, 0, page.Size)
	if total == 0 {
		return entries, 0, nil
	}

	err := byEmployee().
		Order(page.OrderClause()).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Save inserts an entry without id and updates it otherwise.
func (r *TimeEntryRepository) Save(ctx context.Context, e *timeentryDatamodel.TimeEntry) error {
	if e.ID == 0 {
		return r.db.WithContext(ctx).Create(e).Error
	}
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&timeentryDatamodel.TimeEntry{}, id).Error
}
