package persistence

import (
	"context"
	"errors"

	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements payroll.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new employee repository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *payroll.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Employee, error) {
	var employee payroll.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindByTaxID finds an employee by compact tax identifier
func (r *GormEmployeeRepository) FindByTaxID(ctx context.Context, taxID string) (*payroll.Employee, error) {
	var employee payroll.Employee
	err := r.db.WithContext(ctx).First(&employee, "tax_id = ?", taxID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// FindAll returns all employees ordered by name
func (r *GormEmployeeRepository) FindAll(ctx context.Context) ([]payroll.Employee, error) {
	var employees []payroll.Employee
	err := r.db.WithContext(ctx).Order("full_name asc").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}
