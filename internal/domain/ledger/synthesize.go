package ledger

import "fmt"

// FromInvoice synthesizes the fixed three-line voucher for a sales or
// purchase invoice.
//
// Sale: debit Accounts-Receivable for the total, credit Sales-Revenue for
// the net and VAT-Payable for the tax. Purchase: debit Expense for the
// net and VAT-Receivable for the tax, credit Accounts-Payable for the
// total. A zero tax amount simply drops the VAT line.
//
// Account names resolve through the directory; an unknown name aborts the
// synthesis with AccountNotFoundError. The caller decides what to do with
// the originating invoice (typically keep it and retry posting once the
// account exists).
func FromInvoice(invoice *Invoice, directory AccountDirectory) (*Voucher, error) {
	var entries []VoucherEntry
	switch invoice.Kind {
	case InvoiceSale:
		receivable, err := directory.Resolve(NameAccountsReceivable)
		if err != nil {
			return nil, err
		}
		revenue, err := directory.Resolve(NameSalesRevenue)
		if err != nil {
			return nil, err
		}
		vat, err := directory.Resolve(NameVATPayable)
		if err != nil {
			return nil, err
		}
		entries = []VoucherEntry{
			{AccountID: receivable, Debit: invoice.Total},
			{AccountID: revenue, Credit: invoice.Net},
			{AccountID: vat, Credit: invoice.Tax},
		}
	case InvoicePurchase:
		expense, err := directory.Resolve(NameExpense)
		if err != nil {
			return nil, err
		}
		vat, err := directory.Resolve(NameVATReceivable)
		if err != nil {
			return nil, err
		}
		payable, err := directory.Resolve(NameAccountsPayable)
		if err != nil {
			return nil, err
		}
		entries = []VoucherEntry{
			{AccountID: expense, Debit: invoice.Net},
			{AccountID: vat, Debit: invoice.Tax},
			{AccountID: payable, Credit: invoice.Total},
		}
	default:
		return nil, fmt.Errorf("unknown invoice kind %q", invoice.Kind)
	}

	description := fmt.Sprintf("%s invoice %s %s", invoiceKindLabel(invoice.Kind), invoice.Number, invoice.CounterpartyName)
	return NewVoucher(invoice.Date, description, entries)
}

// FromFeeInvoice synthesizes the voucher for a professional-fee invoice:
// debit Fees-Expense for the gross, credit Retention-Payable for the
// retained tax and Fees-Payable for the net.
func FromFeeInvoice(fee *FeeInvoice, directory AccountDirectory) (*Voucher, error) {
	expense, err := directory.Resolve(NameFeesExpense)
	if err != nil {
		return nil, err
	}
	retention, err := directory.Resolve(NameRetentionPayable)
	if err != nil {
		return nil, err
	}
	payable, err := directory.Resolve(NameFeesPayable)
	if err != nil {
		return nil, err
	}

	entries := []VoucherEntry{
		{AccountID: expense, Debit: fee.Gross},
		{AccountID: retention, Credit: fee.Retention},
		{AccountID: payable, Credit: fee.Net},
	}
	description := fmt.Sprintf("Fee invoice %s %s", fee.Number, fee.IssuerName)
	return NewVoucher(fee.Date, description, entries)
}

func invoiceKindLabel(kind InvoiceKind) string {
	if kind == InvoiceSale {
		return "Sale"
	}
	return "Purchase"
}

// MissingAccounts resolves every required account name against the
// directory and returns the names the chart does not cover. Useful before
// enabling posting for a company.
func MissingAccounts(directory AccountDirectory) []string {
	var missing []string
	for _, name := range RequiredAccountNames() {
		if _, err := directory.Resolve(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}
