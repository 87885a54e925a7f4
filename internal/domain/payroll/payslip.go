package payroll

import (
	"time"

	"github.com/google/uuid"
)

// Deduction labels in the fixed statutory order. The order is significant
// for downstream reporting and is preserved by Payslip.Deductions.
const (
	DeductionPension      = "Pension"
	DeductionHealth       = "Health"
	DeductionUnemployment = "Unemployment Insurance"
	DeductionIncomeTax    = "Income Tax"
)

// Deduction is one labeled deduction line of a payslip
type Deduction struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	PayslipID uuid.UUID `json:"payslip_id" gorm:"type:uuid;not null;index"`
	Position  int       `json:"position" gorm:"not null"`
	Label     string    `json:"label" gorm:"type:varchar(60);not null"`
	Amount    int64     `json:"amount" gorm:"not null"`
}

// TableName returns the table name for GORM
func (Deduction) TableName() string {
	return "payslip_deductions"
}

// Payslip is the immutable result of one payroll calculation for an
// employee and a period. Recomputation produces a new instance that
// replaces the prior one; a payslip is never mutated in place.
type Payslip struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	EmployeeID    uuid.UUID   `json:"employee_id" gorm:"type:uuid;not null;uniqueIndex:idx_payslip_employee_period,priority:1"`
	Period        string      `json:"period" gorm:"type:varchar(7);not null;uniqueIndex:idx_payslip_employee_period,priority:2;index"`
	GrossPay      int64       `json:"gross_pay" gorm:"not null"`
	TaxableIncome int64       `json:"taxable_income" gorm:"not null"`
	IncomeTax     int64       `json:"income_tax" gorm:"not null"`
	NetPay        int64       `json:"net_pay" gorm:"not null"`
	Deductions    []Deduction `json:"deductions" gorm:"foreignKey:PayslipID;references:ID"`
	ComputedAt    time.Time   `json:"computed_at" gorm:"not null"`
}

// TableName returns the table name for GORM
func (Payslip) TableName() string {
	return "payslips"
}

// TotalDeductions sums all deduction lines
func (p *Payslip) TotalDeductions() int64 {
	var total int64
	for _, d := range p.Deductions {
		total += d.Amount
	}
	return total
}

// DeductionAmount returns the amount of the named deduction, zero if the
// line is absent
func (p *Payslip) DeductionAmount(label string) int64 {
	for _, d := range p.Deductions {
		if d.Label == label {
			return d.Amount
		}
	}
	return 0
}

// SocialContributions sums the statutory non-tax deductions (pension,
// health, unemployment insurance)
func (p *Payslip) SocialContributions() int64 {
	return p.DeductionAmount(DeductionPension) +
		p.DeductionAmount(DeductionHealth) +
		p.DeductionAmount(DeductionUnemployment)
}
