package payroll

import (
	"context"

	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	// Save creates or updates an employee
	Save(ctx context.Context, employee *Employee) error

	// FindByID finds an employee by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByTaxID finds an employee by compact tax identifier
	FindByTaxID(ctx context.Context, taxID string) (*Employee, error)

	// FindAll returns all employees
	FindAll(ctx context.Context) ([]Employee, error)
}

// InstitutionRepository defines the interface for institution persistence
type InstitutionRepository interface {
	// Save creates or updates an institution
	Save(ctx context.Context, institution *Institution) error

	// FindByID finds an institution by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Institution, error)

	// FindAll returns all institutions
	FindAll(ctx context.Context) ([]Institution, error)
}

// PayslipRepository defines the interface for payslip persistence.
// Payslips are immutable results: a recomputation replaces the prior
// payslip for the (employee, period) pair atomically.
type PayslipRepository interface {
	// Replace atomically swaps the stored payslip of the payslip's
	// (employee, period) pair for the given one
	Replace(ctx context.Context, payslip *Payslip) error

	// FindByEmployeeAndPeriod finds one payslip, deductions included
	FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, period string) (*Payslip, error)

	// FindByPeriod returns all payslips of a period, deductions included
	FindByPeriod(ctx context.Context, period string) ([]Payslip, error)
}
