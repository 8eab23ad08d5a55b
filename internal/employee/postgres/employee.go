package postgres

import (
	"context"
	"errors"

	employeeDatamodel "github.com/frahmantamala/ponto-eletronico/internal/core/datamodel/employee"
	"github.com/frahmantamala/ponto-eletronico/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) FindByCPF(ctx context.Context, cpf string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "cpf = ?", cpf)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *EmployeeRepository) FindByCPFOrEmail(ctx context.Context, cpf, email string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "cpf = ? OR email = ?", cpf, email)
}

// Save inserts an employee without id and overwrites every column otherwise,
// so cleared optional fields are stored as NULL.
func (r *EmployeeRepository) Save(ctx context.Context, e *employeeDatamodel.Employee) error {
	if e.ID == 0 {
		return r.db.WithContext(ctx).Create(e).Error
	}
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EmployeeRepository) first(ctx context.Context, query string, args ...interface{}) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where(query, args...).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
