package persistence

import (
	"context"
	"errors"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements ledger.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new invoice repository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	var invoice ledger.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll returns all invoices, newest first
func (r *GormInvoiceRepository) FindAll(ctx context.Context) ([]ledger.Invoice, error) {
	var invoices []ledger.Invoice
	err := r.db.WithContext(ctx).Order("date desc, number desc").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindUnposted returns invoices without a synthesized voucher
func (r *GormInvoiceRepository) FindUnposted(ctx context.Context) ([]ledger.Invoice, error) {
	var invoices []ledger.Invoice
	err := r.db.WithContext(ctx).
		Where("voucher_id IS NULL").
		Order("date asc, number asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// GormFeeInvoiceRepository implements ledger.FeeInvoiceRepository using GORM
type GormFeeInvoiceRepository struct {
	db *gorm.DB
}

// NewGormFeeInvoiceRepository creates a new fee-invoice repository
func NewGormFeeInvoiceRepository(db *gorm.DB) *GormFeeInvoiceRepository {
	return &GormFeeInvoiceRepository{db: db}
}

// Save creates or updates a fee invoice
func (r *GormFeeInvoiceRepository) Save(ctx context.Context, fee *ledger.FeeInvoice) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

// FindByID finds a fee invoice by ID
func (r *GormFeeInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.FeeInvoice, error) {
	var fee ledger.FeeInvoice
	err := r.db.WithContext(ctx).First(&fee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &fee, nil
}

// FindAll returns all fee invoices, newest first
func (r *GormFeeInvoiceRepository) FindAll(ctx context.Context) ([]ledger.FeeInvoice, error) {
	var fees []ledger.FeeInvoice
	err := r.db.WithContext(ctx).Order("date desc, number desc").Find(&fees).Error
	if err != nil {
		return nil, err
	}
	return fees, nil
}
