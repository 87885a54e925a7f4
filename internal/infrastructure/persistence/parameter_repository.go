package persistence

import (
	"context"

	"github.com/contable/backoffice/internal/domain/tax"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParameterRepository implements tax.ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new period-parameter repository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// Save creates or updates a period parameter. The (period, name) pair is
// unique, so a re-import overwrites the stored value.
func (r *GormParameterRepository) Save(ctx context.Context, param *tax.PeriodParameter) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "period"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(param).Error
}

// FindByPeriod returns the parameters of a period
func (r *GormParameterRepository) FindByPeriod(ctx context.Context, period string) ([]tax.PeriodParameter, error) {
	var params []tax.PeriodParameter
	err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("name asc").
		Find(&params).Error
	if err != nil {
		return nil, err
	}
	return params, nil
}

// FindAll returns the full parameter table
func (r *GormParameterRepository) FindAll(ctx context.Context) ([]tax.PeriodParameter, error) {
	var params []tax.PeriodParameter
	err := r.db.WithContext(ctx).Order("period asc, name asc").Find(&params).Error
	if err != nil {
		return nil, err
	}
	return params, nil
}

// GormBracketRepository implements tax.BracketRepository using GORM
type GormBracketRepository struct {
	db *gorm.DB
}

// NewGormBracketRepository creates a new tax-bracket repository
func NewGormBracketRepository(db *gorm.DB) *GormBracketRepository {
	return &GormBracketRepository{db: db}
}

// ReplaceByPeriod swaps the period's bracket table in one transaction:
// the prior rows are deleted before the new ones are inserted, so a
// corrected upload never leaves stale brackets behind
func (r *GormBracketRepository) ReplaceByPeriod(ctx context.Context, period string, brackets []tax.TaxBracket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period = ?", period).Delete(&tax.TaxBracket{}).Error; err != nil {
			return err
		}
		if len(brackets) == 0 {
			return nil
		}
		return tx.Create(&brackets).Error
	})
}

// FindByPeriod returns the brackets of a period ordered by FromUnits
func (r *GormBracketRepository) FindByPeriod(ctx context.Context, period string) ([]tax.TaxBracket, error) {
	var brackets []tax.TaxBracket
	err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("from_units asc").
		Find(&brackets).Error
	if err != nil {
		return nil, err
	}
	return brackets, nil
}

// FindAll returns the full bracket table
func (r *GormBracketRepository) FindAll(ctx context.Context) ([]tax.TaxBracket, error) {
	var brackets []tax.TaxBracket
	err := r.db.WithContext(ctx).Order("period asc, from_units asc").Find(&brackets).Error
	if err != nil {
		return nil, err
	}
	return brackets, nil
}
