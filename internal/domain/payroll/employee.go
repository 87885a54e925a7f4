package payroll

import (
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/contable/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is the computation-relevant subset of the employee master
// record. Monetary fields are integer pesos. PactedHealthUF, when present,
// is a pacted isapre plan price in UF.
type Employee struct {
	ID                 uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	TaxID              string           `json:"tax_id" gorm:"type:varchar(15);not null;uniqueIndex"`
	FullName           string           `json:"full_name" gorm:"type:varchar(200);not null"`
	BaseSalary         int64            `json:"base_salary" gorm:"not null"`
	PensionFundID      uuid.UUID        `json:"pension_fund_id" gorm:"type:uuid;not null"`
	HealthProviderID   uuid.UUID        `json:"health_provider_id" gorm:"type:uuid;not null"`
	MealAllowance      int64            `json:"meal_allowance" gorm:"not null;default:0"`
	TransportAllowance int64            `json:"transport_allowance" gorm:"not null;default:0"`
	PactedHealthUF     *decimal.Decimal `json:"pacted_health_uf" gorm:"type:decimal(9,4)"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates an employee record, validating the tax identifier
// and storing it in compact form
func NewEmployee(taxID, fullName string, baseSalary int64, pensionFundID, healthProviderID uuid.UUID) (*Employee, error) {
	rut, err := valueobject.NewRUT(taxID)
	if err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, shared.NewValidationError("full_name", "employee name is required")
	}
	if baseSalary <= 0 {
		return nil, shared.NewValidationError("base_salary", "base salary must be positive")
	}
	if pensionFundID == uuid.Nil {
		return nil, shared.NewValidationError("pension_fund_id", "pension fund is required")
	}
	if healthProviderID == uuid.Nil {
		return nil, shared.NewValidationError("health_provider_id", "health provider is required")
	}
	return &Employee{
		ID:               uuid.New(),
		TaxID:            rut.Compact(),
		FullName:         fullName,
		BaseSalary:       baseSalary,
		PensionFundID:    pensionFundID,
		HealthProviderID: healthProviderID,
	}, nil
}

// GrossPay returns base salary plus non-taxable allowances
func (e *Employee) GrossPay() int64 {
	return e.BaseSalary + e.MealAllowance + e.TransportAllowance
}
