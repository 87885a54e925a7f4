package ledger

import (
	"time"

	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrEmptyVoucher rejects a voucher whose entries sum to zero: an
// all-zero voucher balances trivially but records nothing.
var ErrEmptyVoucher = shared.NewDomainError("EMPTY_VOUCHER", "Voucher has no nonzero entries")

// VoucherEntry is one debit or credit row of a voucher. Exactly one side
// is expected to be nonzero; rows with both sides zero are no-ops and get
// filtered during construction.
type VoucherEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	VoucherID uuid.UUID `json:"voucher_id" gorm:"type:uuid;not null;index"`
	Position  int       `json:"position" gorm:"not null"`
	AccountID uuid.UUID `json:"account_id" gorm:"type:uuid;not null;index"`
	Debit     int64     `json:"debit" gorm:"not null"`
	Credit    int64     `json:"credit" gorm:"not null"`
}

// TableName returns the table name for GORM
func (VoucherEntry) TableName() string {
	return "voucher_entries"
}

// IsZero reports whether both sides of the row are zero
func (e VoucherEntry) IsZero() bool {
	return e.Debit == 0 && e.Credit == 0
}

// Voucher is a balanced double-entry ledger transaction. Accepted
// vouchers are append-only: correction is a new reversing voucher, never
// a mutation.
type Voucher struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	Description string         `json:"description" gorm:"type:varchar(300);not null;index"`
	Entries     []VoucherEntry `json:"entries" gorm:"foreignKey:VoucherID;references:ID"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (Voucher) TableName() string {
	return "vouchers"
}

// NewVoucher validates and constructs a voucher. This is the single choke
// point for the balance invariant: every voucher in the system passes
// through here, no caller may bypass it.
//
// Zero-value rows are filtered before the check. Construction fails with
// ImbalanceError when debits and credits differ, and with ErrEmptyVoucher
// when the (balanced) sum is zero.
func NewVoucher(date time.Time, description string, entries []VoucherEntry) (*Voucher, error) {
	if description == "" {
		return nil, shared.NewValidationError("description", "voucher description is required")
	}

	rows := make([]VoucherEntry, 0, len(entries))
	for _, e := range entries {
		if e.Debit < 0 || e.Credit < 0 {
			return nil, shared.NewValidationError("entries", "debit and credit amounts must be non-negative")
		}
		if e.IsZero() {
			continue
		}
		rows = append(rows, e)
	}

	var debits, credits int64
	for i := range rows {
		debits += rows[i].Debit
		credits += rows[i].Credit
	}
	if debits != credits {
		return nil, shared.NewImbalanceError(debits, credits)
	}
	if debits == 0 {
		return nil, ErrEmptyVoucher
	}

	id := uuid.New()
	for i := range rows {
		rows[i].ID = uuid.New()
		rows[i].VoucherID = id
		rows[i].Position = i
	}
	return &Voucher{
		ID:          id,
		Date:        date,
		Description: description,
		Entries:     rows,
	}, nil
}

// DebitTotal sums the debit side
func (v *Voucher) DebitTotal() int64 {
	var total int64
	for _, e := range v.Entries {
		total += e.Debit
	}
	return total
}

// CreditTotal sums the credit side
func (v *Voucher) CreditTotal() int64 {
	var total int64
	for _, e := range v.Entries {
		total += e.Credit
	}
	return total
}

// IsBalanced re-checks the invariant on an already constructed voucher
func (v *Voucher) IsBalanced() bool {
	return v.DebitTotal() == v.CreditTotal()
}

// Reversed builds the correcting voucher: same rows with debit and credit
// swapped. The reversal passes through NewVoucher like any other voucher.
func (v *Voucher) Reversed(date time.Time, description string) (*Voucher, error) {
	rows := make([]VoucherEntry, len(v.Entries))
	for i, e := range v.Entries {
		rows[i] = VoucherEntry{
			AccountID: e.AccountID,
			Debit:     e.Credit,
			Credit:    e.Debit,
		}
	}
	return NewVoucher(date, description, rows)
}
