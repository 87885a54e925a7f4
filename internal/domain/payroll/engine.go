package payroll

import (
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/contable/backoffice/internal/domain/tax"
	"github.com/shopspring/decimal"
)

// Statutory rates. The pension deduction is the 10% base plus the fund's
// administrative rate; health has a 7% legal minimum; unemployment
// insurance is the worker's 0.6% share.
var (
	pensionBasePercent = decimal.NewFromInt(10)
	healthMinimumRate  = decimal.RequireFromString("0.07")
	unemploymentRate   = decimal.RequireFromString("0.006")
	oneHundred         = decimal.NewFromInt(100)
)

// Tables bundles the reference data a payroll calculation reads. The
// engine takes them as explicit arguments; it never reaches into ambient
// state and never performs I/O.
type Tables struct {
	Parameters   []tax.PeriodParameter
	Brackets     []tax.TaxBracket
	Institutions []Institution
}

// roundPeso rounds a decimal amount to the nearest integer peso. Every
// intermediate monetary amount is rounded immediately after computation,
// matching statutory practice; deferring rounding produces off-by-one-peso
// mismatches against external audits.
func roundPeso(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Calculate turns an employee record and a period into a payslip.
//
// The result is deterministic for identical inputs: no identifiers or
// timestamps are assigned here, callers stamp those when persisting.
// Errors (MissingParameter, InstitutionNotFound) are fatal to this single
// payslip and are never silently defaulted.
func Calculate(employee Employee, period string, tables Tables) (*Payslip, error) {
	values, err := tax.ResolveParameters(tables.Parameters, period,
		tax.ParamTaxableCeiling, tax.ParamUnitOfAccount, tax.ParamTaxUnit)
	if err != nil {
		return nil, err
	}
	ceiling := roundPeso(values[tax.ParamTaxableCeiling])
	ufValue := values[tax.ParamUnitOfAccount]
	utmValue := values[tax.ParamTaxUnit]

	fund := findInstitution(tables.Institutions, employee.PensionFundID)
	if fund == nil || fund.Kind != InstitutionPensionFund || fund.ContributionRatePercent == nil {
		return nil, shared.NewInstitutionNotFoundError("pension fund", employee.PensionFundID.String())
	}
	health := findInstitution(tables.Institutions, employee.HealthProviderID)
	if health == nil || !health.CanProvideHealth() {
		return nil, shared.NewInstitutionNotFoundError("health provider", employee.HealthProviderID.String())
	}

	taxableBase := employee.BaseSalary
	if taxableBase > ceiling {
		taxableBase = ceiling
	}
	base := decimal.NewFromInt(taxableBase)

	pension := roundPeso(base.Mul(pensionBasePercent.Add(*fund.ContributionRatePercent)).Div(oneHundred))
	healthAmount := healthContribution(employee, base, ufValue)
	unemployment := roundPeso(base.Mul(unemploymentRate))

	incomeTaxBase := employee.BaseSalary - pension - healthAmount - unemployment
	incomeTax := incomeTaxFor(incomeTaxBase, utmValue, tables.Brackets, period)

	deductions := []Deduction{
		{Position: 0, Label: DeductionPension, Amount: pension},
		{Position: 1, Label: DeductionHealth, Amount: healthAmount},
		{Position: 2, Label: DeductionUnemployment, Amount: unemployment},
	}
	if incomeTax > 0 {
		deductions = append(deductions, Deduction{Position: 3, Label: DeductionIncomeTax, Amount: incomeTax})
	}

	gross := employee.GrossPay()
	payslip := &Payslip{
		EmployeeID:    employee.ID,
		Period:        period,
		GrossPay:      gross,
		TaxableIncome: taxableBase,
		IncomeTax:     incomeTax,
		Deductions:    deductions,
	}
	payslip.NetPay = gross - payslip.TotalDeductions()
	return payslip, nil
}

// healthContribution applies the single documented health policy: the
// legal minimum is 7% of the capped taxable base; when the employee has a
// pacted plan in UF, the deduction is the smaller of the pacted amount in
// pesos and that legal minimum.
func healthContribution(employee Employee, taxableBase, ufValue decimal.Decimal) int64 {
	legal := roundPeso(taxableBase.Mul(healthMinimumRate))
	if employee.PactedHealthUF == nil {
		return legal
	}
	pacted := roundPeso(employee.PactedHealthUF.Mul(ufValue))
	if pacted < legal {
		return pacted
	}
	return legal
}

// incomeTaxFor computes the progressive second-category tax for a monthly
// base in pesos. A non-positive base, or a base below every bracket, is
// zero tax.
func incomeTaxFor(basePesos int64, utmValue decimal.Decimal, brackets []tax.TaxBracket, period string) int64 {
	if basePesos <= 0 {
		return 0
	}
	baseUnits := decimal.NewFromInt(basePesos).Div(utmValue)
	bracket := tax.SelectBracket(brackets, period, baseUnits)
	if bracket == nil {
		return 0
	}
	taxUnits := baseUnits.Mul(bracket.Rate).Sub(bracket.RebateUnits)
	amount := roundPeso(taxUnits.Mul(utmValue))
	if amount < 0 {
		return 0
	}
	return amount
}
