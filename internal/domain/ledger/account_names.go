package ledger

// Account names the voucher synthesizer resolves through the directory.
// This list is the coupling point between computed money and
// chart-of-accounts data: keep it centralized, never scatter the literals.
// Matching is exact but case-insensitive.
const (
	NameAccountsReceivable  = "Accounts-Receivable"
	NameAccountsPayable     = "Accounts-Payable"
	NameSalesRevenue        = "Sales-Revenue"
	NameVATPayable          = "VAT-Payable"
	NameVATReceivable       = "VAT-Receivable"
	NameExpense             = "Expense"
	NameFeesExpense         = "Fees-Expense"
	NameFeesPayable         = "Fees-Payable"
	NameRetentionPayable    = "Retention-Payable"
	NamePayrollExpense      = "Payroll-Expense"
	NameSalariesPayable     = "Salaries-Payable"
	NameWithholdingsPayable = "Withholdings-Payable"
	NameIncomeTaxPayable    = "Income-Tax-Payable"
)

// RequiredAccountNames lists every account name the synthesizer may need.
// Callers can verify a company's chart covers them before posting.
func RequiredAccountNames() []string {
	return []string{
		NameAccountsReceivable,
		NameAccountsPayable,
		NameSalesRevenue,
		NameVATPayable,
		NameVATReceivable,
		NameExpense,
		NameFeesExpense,
		NameFeesPayable,
		NameRetentionPayable,
		NamePayrollExpense,
		NameSalariesPayable,
		NameWithholdingsPayable,
		NameIncomeTaxPayable,
	}
}
