package ledger

import (
	"time"

	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/contable/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// InvoiceKind discriminates sales from purchase invoices
type InvoiceKind string

const (
	InvoiceSale     InvoiceKind = "SALE"
	InvoicePurchase InvoiceKind = "PURCHASE"
)

// IsValid checks if the kind is a known InvoiceKind
func (k InvoiceKind) IsValid() bool {
	return k == InvoiceSale || k == InvoicePurchase
}

// String returns the string representation
func (k InvoiceKind) String() string {
	return string(k)
}

// Invoice is a sales or purchase invoice. Amounts are integer pesos and
// must satisfy Net + Tax == Total.
type Invoice struct {
	ID               uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	Kind             InvoiceKind `json:"kind" gorm:"type:varchar(10);not null;index"`
	Number           string      `json:"number" gorm:"type:varchar(30);not null;uniqueIndex:idx_invoice_kind_number,priority:2"`
	CounterpartyRUT  string      `json:"counterparty_rut" gorm:"type:varchar(15);not null"`
	CounterpartyName string      `json:"counterparty_name" gorm:"type:varchar(200);not null"`
	Date             time.Time   `json:"date" gorm:"not null;index"`
	Net              int64       `json:"net" gorm:"not null"`
	Tax              int64       `json:"tax" gorm:"not null"`
	Total            int64       `json:"total" gorm:"not null"`
	VoucherID        *uuid.UUID  `json:"voucher_id" gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a validated invoice
func NewInvoice(kind InvoiceKind, number, counterpartyRUT, counterpartyName string, date time.Time, net, taxAmount int64) (*Invoice, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", "unknown invoice kind")
	}
	if number == "" {
		return nil, shared.NewValidationError("number", "invoice number is required")
	}
	rut, err := valueobject.NewRUT(counterpartyRUT)
	if err != nil {
		return nil, err
	}
	if net < 0 || taxAmount < 0 {
		return nil, shared.NewValidationError("amounts", "net and tax must be non-negative")
	}
	if net+taxAmount == 0 {
		return nil, shared.NewValidationError("amounts", "invoice total must be positive")
	}
	return &Invoice{
		ID:               uuid.New(),
		Kind:             kind,
		Number:           number,
		CounterpartyRUT:  rut.Compact(),
		CounterpartyName: counterpartyName,
		Date:             date,
		Net:              net,
		Tax:              taxAmount,
		Total:            net + taxAmount,
	}, nil
}

// IsPosted reports whether a ledger voucher has been synthesized for this
// invoice
func (i *Invoice) IsPosted() bool {
	return i.VoucherID != nil
}

// FeeInvoice is a professional-fee invoice (boleta de honorarios): the
// payer retains tax at source, so Gross == Retention + Net.
type FeeInvoice struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Number     string     `json:"number" gorm:"type:varchar(30);not null;uniqueIndex"`
	IssuerRUT  string     `json:"issuer_rut" gorm:"type:varchar(15);not null"`
	IssuerName string     `json:"issuer_name" gorm:"type:varchar(200);not null"`
	Date       time.Time  `json:"date" gorm:"not null;index"`
	Gross      int64      `json:"gross" gorm:"not null"`
	Retention  int64      `json:"retention" gorm:"not null"`
	Net        int64      `json:"net" gorm:"not null"`
	VoucherID  *uuid.UUID `json:"voucher_id" gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (FeeInvoice) TableName() string {
	return "fee_invoices"
}

// NewFeeInvoice creates a validated fee invoice
func NewFeeInvoice(number, issuerRUT, issuerName string, date time.Time, gross, retention int64) (*FeeInvoice, error) {
	if number == "" {
		return nil, shared.NewValidationError("number", "fee invoice number is required")
	}
	rut, err := valueobject.NewRUT(issuerRUT)
	if err != nil {
		return nil, err
	}
	if gross <= 0 {
		return nil, shared.NewValidationError("gross", "gross amount must be positive")
	}
	if retention < 0 || retention > gross {
		return nil, shared.NewValidationError("retention", "retention must be between zero and the gross amount")
	}
	return &FeeInvoice{
		ID:         uuid.New(),
		Number:     number,
		IssuerRUT:  rut.Compact(),
		IssuerName: issuerName,
		Date:       date,
		Gross:      gross,
		Retention:  retention,
		Net:        gross - retention,
	}, nil
}

// IsPosted reports whether a ledger voucher has been synthesized for this
// fee invoice
func (f *FeeInvoice) IsPosted() bool {
	return f.VoucherID != nil
}
