package persistence

import (
	"context"
	"errors"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new account repository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var account ledger.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll returns the full chart of accounts ordered by code
func (r *GormAccountRepository) FindAll(ctx context.Context) ([]ledger.Account, error) {
	var accounts []ledger.Account
	err := r.db.WithContext(ctx).Order("code asc").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Directory loads the chart and builds the name directory
func (r *GormAccountRepository) Directory(ctx context.Context) (*ledger.ChartDirectory, error) {
	accounts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.NewChartDirectory(accounts), nil
}
