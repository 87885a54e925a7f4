package persistence

import (
	"context"
	"errors"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVoucherRepository implements ledger.VoucherRepository using GORM.
// Vouchers are append-only, so Save only ever inserts.
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new voucher repository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// Save persists an accepted voucher with its entries in one transaction
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *ledger.Voucher) error {
	return r.db.WithContext(ctx).Create(voucher).Error
}

// FindByID finds a voucher by ID, entries included
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Voucher, error) {
	var voucher ledger.Voucher
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&voucher, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &voucher, nil
}

// FindAll returns all vouchers, newest first, entries included
func (r *GormVoucherRepository) FindAll(ctx context.Context) ([]ledger.Voucher, error) {
	var vouchers []ledger.Voucher
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Order("date desc, created_at desc").
		Find(&vouchers).Error
	if err != nil {
		return nil, err
	}
	return vouchers, nil
}

// ExistsByDescription reports whether a voucher with the exact description
// already exists
func (r *GormVoucherRepository) ExistsByDescription(ctx context.Context, description string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ledger.Voucher{}).
		Where("description = ?", description).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
