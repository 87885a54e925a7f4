package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/contable/backoffice/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles payroll runs, payroll centralization and employee
// reference-data maintenance
type Service struct {
	employeeRepo    payroll.EmployeeRepository
	institutionRepo payroll.InstitutionRepository
	payslipRepo     payroll.PayslipRepository
	parameterRepo   tax.ParameterRepository
	bracketRepo     tax.BracketRepository
	accountRepo     ledger.AccountRepository
	voucherRepo     ledger.VoucherRepository
	logger          *zap.Logger
}

// NewService creates a new payroll service
func NewService(
	employeeRepo payroll.EmployeeRepository,
	institutionRepo payroll.InstitutionRepository,
	payslipRepo payroll.PayslipRepository,
	parameterRepo tax.ParameterRepository,
	bracketRepo tax.BracketRepository,
	accountRepo ledger.AccountRepository,
	voucherRepo ledger.VoucherRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		employeeRepo:    employeeRepo,
		institutionRepo: institutionRepo,
		payslipRepo:     payslipRepo,
		parameterRepo:   parameterRepo,
		bracketRepo:     bracketRepo,
		accountRepo:     accountRepo,
		voucherRepo:     voucherRepo,
		logger:          logger,
	}
}

// RowError reports the failure of one employee within a payroll run
type RowError struct {
	EmployeeID uuid.UUID `json:"employee_id"`
	TaxID      string    `json:"tax_id"`
	Error      string    `json:"error"`
}

// RunResult summarizes a payroll run. A run is per-employee atomic: each
// failed employee is reported individually and never blocks the others.
type RunResult struct {
	Period    string            `json:"period"`
	Succeeded []payroll.Payslip `json:"succeeded"`
	Failed    []RowError        `json:"failed"`
}

// RunPayroll computes and stores the payslips of every employee for the
// period. Reference data is loaded once for the whole run, so every
// employee is computed against the same tables.
func (s *Service) RunPayroll(ctx context.Context, period string) (*RunResult, error) {
	tables, err := s.loadTables(ctx, period)
	if err != nil {
		return nil, err
	}

	for _, v := range tax.ValidateBrackets(tables.Brackets, period) {
		s.logger.Warn("Tax bracket table violation", zap.String("period", v.Period), zap.String("detail", v.Detail))
	}

	employees, err := s.employeeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Period: period}
	computedAt := time.Now().UTC()
	for _, employee := range employees {
		payslip, err := payroll.Calculate(employee, period, *tables)
		if err != nil {
			s.logger.Warn("Payslip calculation failed",
				zap.String("tax_id", employee.TaxID),
				zap.String("period", period),
				zap.Error(err))
			result.Failed = append(result.Failed, RowError{
				EmployeeID: employee.ID,
				TaxID:      employee.TaxID,
				Error:      err.Error(),
			})
			continue
		}

		stamp(payslip, computedAt)
		if err := s.payslipRepo.Replace(ctx, payslip); err != nil {
			result.Failed = append(result.Failed, RowError{
				EmployeeID: employee.ID,
				TaxID:      employee.TaxID,
				Error:      err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, *payslip)
	}

	s.logger.Info("Payroll run finished",
		zap.String("period", period),
		zap.Int("succeeded", len(result.Succeeded)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}

// stamp assigns identifiers and the computation time to a freshly
// calculated payslip. Calculation itself stays deterministic; identity is
// a persistence concern.
func stamp(payslip *payroll.Payslip, computedAt time.Time) {
	payslip.ID = uuid.New()
	payslip.ComputedAt = computedAt
	for i := range payslip.Deductions {
		payslip.Deductions[i].ID = uuid.New()
		payslip.Deductions[i].PayslipID = payslip.ID
	}
}

// Centralize posts the period's payroll summary voucher. A period is
// centralized at most once: a second call fails with ErrAlreadyCentralized
// and posts nothing.
func (s *Service) Centralize(ctx context.Context, period string) (*ledger.Voucher, error) {
	exists, err := s.voucherRepo.ExistsByDescription(ctx, ledger.PayrollCentralizationDescription(period))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyCentralized
	}

	payslips, err := s.payslipRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	directory, err := s.accountRepo.Directory(ctx)
	if err != nil {
		return nil, err
	}

	voucher, err := ledger.CentralizePayroll(payslips, period, directory)
	if err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, err
	}

	s.logger.Info("Payroll centralized",
		zap.String("period", period),
		zap.Int("payslips", len(payslips)),
		zap.Int64("gross", voucher.DebitTotal()))
	return voucher, nil
}

func (s *Service) loadTables(ctx context.Context, period string) (*payroll.Tables, error) {
	parameters, err := s.parameterRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	brackets, err := s.bracketRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	institutions, err := s.institutionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &payroll.Tables{
		Parameters:   parameters,
		Brackets:     brackets,
		Institutions: institutions,
	}, nil
}

// GetPayslip returns one stored payslip
func (s *Service) GetPayslip(ctx context.Context, employeeID uuid.UUID, period string) (*payroll.Payslip, error) {
	return s.payslipRepo.FindByEmployeeAndPeriod(ctx, employeeID, period)
}

// ListPayslips returns all stored payslips of a period
func (s *Service) ListPayslips(ctx context.Context, period string) ([]payroll.Payslip, error) {
	return s.payslipRepo.FindByPeriod(ctx, period)
}

// CreateEmployeeRequest represents a request to create an employee
type CreateEmployeeRequest struct {
	TaxID              string           `json:"tax_id" binding:"required,rut"`
	FullName           string           `json:"full_name" binding:"required"`
	BaseSalary         int64            `json:"base_salary" binding:"required"`
	PensionFundID      uuid.UUID        `json:"pension_fund_id" binding:"required"`
	HealthProviderID   uuid.UUID        `json:"health_provider_id" binding:"required"`
	MealAllowance      int64            `json:"meal_allowance"`
	TransportAllowance int64            `json:"transport_allowance"`
	PactedHealthUF     *decimal.Decimal `json:"pacted_health_uf"`
}

// CreateEmployee creates a new employee record
func (s *Service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*payroll.Employee, error) {
	employee, err := payroll.NewEmployee(req.TaxID, req.FullName, req.BaseSalary, req.PensionFundID, req.HealthProviderID)
	if err != nil {
		return nil, err
	}
	employee.MealAllowance = req.MealAllowance
	employee.TransportAllowance = req.TransportAllowance
	employee.PactedHealthUF = req.PactedHealthUF

	if _, err := s.employeeRepo.FindByTaxID(ctx, employee.TaxID); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// ImportOutcome discriminates the per-row results of a bulk import
type ImportOutcome string

const (
	ImportCreated ImportOutcome = "created"
	ImportExists  ImportOutcome = "exists"
	ImportFailed  ImportOutcome = "error"
)

// RowStatusError is the parser's mark for a row it could not produce.
// Marked rows are echoed back in the results and never processed.
const RowStatusError = "error"

// ImportEmployeeRow is one parser-produced employee row. The parser
// pre-classifies rows (new, exists, error); only the error mark is
// binding here, everything else is re-checked against stored data.
// No binding tags: a parser-rejected row may carry arbitrary junk.
type ImportEmployeeRow struct {
	Status             string           `json:"status"`
	Error              string           `json:"error,omitempty"`
	TaxID              string           `json:"tax_id"`
	FullName           string           `json:"full_name"`
	BaseSalary         int64            `json:"base_salary"`
	PensionFundID      uuid.UUID        `json:"pension_fund_id"`
	HealthProviderID   uuid.UUID        `json:"health_provider_id"`
	MealAllowance      int64            `json:"meal_allowance"`
	TransportAllowance int64            `json:"transport_allowance"`
	PactedHealthUF     *decimal.Decimal `json:"pacted_health_uf"`
}

// ImportRowResult reports the outcome of one imported row
type ImportRowResult struct {
	Row     int           `json:"row"`
	TaxID   string        `json:"tax_id,omitempty"`
	Outcome ImportOutcome `json:"outcome"`
	Error   string        `json:"error,omitempty"`
}

// ImportEmployees imports a batch of employee rows. Rows the parser marked
// as error are skipped and echoed back; the rest succeed or fail on their
// own, and an existing tax identifier is reported, not an error.
func (s *Service) ImportEmployees(ctx context.Context, rows []ImportEmployeeRow) []ImportRowResult {
	results := make([]ImportRowResult, 0, len(rows))
	for i, row := range rows {
		if row.Status == RowStatusError {
			reason := row.Error
			if reason == "" {
				reason = "rejected by the import parser"
			}
			results = append(results, ImportRowResult{Row: i, TaxID: row.TaxID, Outcome: ImportFailed, Error: reason})
			continue
		}

		employee, err := s.CreateEmployee(ctx, CreateEmployeeRequest{
			TaxID:              row.TaxID,
			FullName:           row.FullName,
			BaseSalary:         row.BaseSalary,
			PensionFundID:      row.PensionFundID,
			HealthProviderID:   row.HealthProviderID,
			MealAllowance:      row.MealAllowance,
			TransportAllowance: row.TransportAllowance,
			PactedHealthUF:     row.PactedHealthUF,
		})
		switch {
		case err == nil:
			results = append(results, ImportRowResult{Row: i, TaxID: employee.TaxID, Outcome: ImportCreated})
		case errors.Is(err, shared.ErrAlreadyExists):
			results = append(results, ImportRowResult{Row: i, TaxID: row.TaxID, Outcome: ImportExists})
		default:
			results = append(results, ImportRowResult{Row: i, TaxID: row.TaxID, Outcome: ImportFailed, Error: err.Error()})
		}
	}
	return results
}

// ListEmployees returns all employees
func (s *Service) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	return s.employeeRepo.FindAll(ctx)
}

// CreateInstitutionRequest represents a request to create an institution
type CreateInstitutionRequest struct {
	Name                    string           `json:"name" binding:"required"`
	Kind                    string           `json:"kind" binding:"required"`
	ContributionRatePercent *decimal.Decimal `json:"contribution_rate_percent"`
}

// CreateInstitution creates a pension fund or health provider record
func (s *Service) CreateInstitution(ctx context.Context, req CreateInstitutionRequest) (*payroll.Institution, error) {
	institution, err := payroll.NewInstitution(req.Name, payroll.InstitutionKind(req.Kind), req.ContributionRatePercent)
	if err != nil {
		return nil, err
	}
	if err := s.institutionRepo.Save(ctx, institution); err != nil {
		return nil, err
	}
	return institution, nil
}

// ListInstitutions returns all institutions
func (s *Service) ListInstitutions(ctx context.Context) ([]payroll.Institution, error) {
	return s.institutionRepo.FindAll(ctx)
}
