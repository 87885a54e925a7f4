package ledger

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for chart-of-accounts persistence
type AccountRepository interface {
	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindAll returns the full chart of accounts
	FindAll(ctx context.Context) ([]Account, error)

	// Directory loads the chart and builds the name directory
	Directory(ctx context.Context) (*ChartDirectory, error)
}

// VoucherRepository defines the interface for voucher persistence.
// Vouchers are append-only; there is no update or delete.
type VoucherRepository interface {
	// Save persists an accepted voucher with its entries
	Save(ctx context.Context, voucher *Voucher) error

	// FindByID finds a voucher by ID, entries included
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)

	// FindAll returns all vouchers, newest first
	FindAll(ctx context.Context) ([]Voucher, error)

	// ExistsByDescription reports whether a voucher with the exact
	// description already exists (the double-centralization guard)
	ExistsByDescription(ctx context.Context, description string) (bool, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll returns all invoices, newest first
	FindAll(ctx context.Context) ([]Invoice, error)

	// FindUnposted returns invoices without a synthesized voucher
	FindUnposted(ctx context.Context) ([]Invoice, error)
}

// FeeInvoiceRepository defines the interface for fee-invoice persistence
type FeeInvoiceRepository interface {
	// Save creates or updates a fee invoice
	Save(ctx context.Context, fee *FeeInvoice) error

	// FindByID finds a fee invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FeeInvoice, error)

	// FindAll returns all fee invoices, newest first
	FindAll(ctx context.Context) ([]FeeInvoice, error)
}
