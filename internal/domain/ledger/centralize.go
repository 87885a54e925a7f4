package ledger

import (
	"fmt"
	"time"

	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
)

// PayrollCentralizationDescription is the synthesized description key of
// a period's payroll centralization voucher. Callers use it to check that
// no prior centralization exists for the period before posting again.
func PayrollCentralizationDescription(period string) string {
	return fmt.Sprintf("Payroll centralization %s", period)
}

// CentralizePayroll sums a period's payslips into one summary voucher:
// debit Payroll-Expense for total gross, credit Salaries-Payable for
// total net, Withholdings-Payable for the statutory contributions and
// Income-Tax-Payable for the withheld tax. Lines with a zero amount are
// omitted.
//
// An empty batch is ErrNothingToCentralize, never an empty balanced
// voucher. The balance invariant is re-verified over the batch totals
// before construction; a violation surfaces as ImbalanceError with the
// computed delta. The voucher is dated the first day of the period.
func CentralizePayroll(payslips []payroll.Payslip, period string, directory AccountDirectory) (*Voucher, error) {
	if len(payslips) == 0 {
		return nil, shared.ErrNothingToCentralize
	}

	var gross, net, contributions, incomeTax int64
	for i := range payslips {
		gross += payslips[i].GrossPay
		net += payslips[i].NetPay
		contributions += payslips[i].SocialContributions()
		incomeTax += payslips[i].IncomeTax
	}

	// Safety net, not decoration: each payslip guarantees
	// net = gross - deductions, so the batch must balance too.
	if gross != net+contributions+incomeTax {
		return nil, shared.NewImbalanceError(gross, net+contributions+incomeTax)
	}

	expense, err := directory.Resolve(NamePayrollExpense)
	if err != nil {
		return nil, err
	}
	salaries, err := directory.Resolve(NameSalariesPayable)
	if err != nil {
		return nil, err
	}
	withholdings, err := directory.Resolve(NameWithholdingsPayable)
	if err != nil {
		return nil, err
	}
	taxPayable, err := directory.Resolve(NameIncomeTaxPayable)
	if err != nil {
		return nil, err
	}

	entries := []VoucherEntry{
		{AccountID: expense, Debit: gross},
		{AccountID: salaries, Credit: net},
		{AccountID: withholdings, Credit: contributions},
		{AccountID: taxPayable, Credit: incomeTax},
	}
	return NewVoucher(periodStart(period), PayrollCentralizationDescription(period), entries)
}

// periodStart maps a "YYYY-MM" key to the first day of that month. Period
// keys are matched by string equality everywhere; this parse exists only
// to date the summary voucher.
func periodStart(period string) time.Time {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}
	}
	return t
}
