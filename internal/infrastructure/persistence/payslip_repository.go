package persistence

import (
	"context"
	"errors"

	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPayslipRepository implements payroll.PayslipRepository using GORM
type GormPayslipRepository struct {
	db *gorm.DB
}

// NewGormPayslipRepository creates a new payslip repository
func NewGormPayslipRepository(db *gorm.DB) *GormPayslipRepository {
	return &GormPayslipRepository{db: db}
}

// Replace atomically swaps the stored payslip of the payslip's
// (employee, period) pair for the given one. The delete and insert run in
// one transaction so a recomputation never leaves the pair without a
// payslip.
func (r *GormPayslipRepository) Replace(ctx context.Context, payslip *payroll.Payslip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior payroll.Payslip
		err := tx.
			Where("employee_id = ? AND period = ?", payslip.EmployeeID, payslip.Period).
			First(&prior).Error
		if err == nil {
			if err := tx.Where("payslip_id = ?", prior.ID).Delete(&payroll.Deduction{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&prior).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(payslip).Error
	})
}

// FindByEmployeeAndPeriod finds one payslip, deductions included
func (r *GormPayslipRepository) FindByEmployeeAndPeriod(ctx context.Context, employeeID uuid.UUID, period string) (*payroll.Payslip, error) {
	var payslip payroll.Payslip
	err := r.db.WithContext(ctx).
		Preload("Deductions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("employee_id = ? AND period = ?", employeeID, period).
		First(&payslip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payslip, nil
}

// FindByPeriod returns all payslips of a period, deductions included
func (r *GormPayslipRepository) FindByPeriod(ctx context.Context, period string) ([]payroll.Payslip, error) {
	var payslips []payroll.Payslip
	err := r.db.WithContext(ctx).
		Preload("Deductions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("period = ?", period).
		Find(&payslips).Error
	if err != nil {
		return nil, err
	}
	return payslips, nil
}
