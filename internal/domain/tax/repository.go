package tax

import "context"

// ParameterRepository defines the interface for period-parameter persistence
type ParameterRepository interface {
	// Save creates or updates a period parameter
	Save(ctx context.Context, param *PeriodParameter) error

	// FindByPeriod returns the parameters of a period
	FindByPeriod(ctx context.Context, period string) ([]PeriodParameter, error)

	// FindAll returns the full parameter table
	FindAll(ctx context.Context) ([]PeriodParameter, error)
}

// BracketRepository defines the interface for tax-bracket persistence
type BracketRepository interface {
	// ReplaceByPeriod atomically swaps the period's bracket table for the
	// given rows, so a corrected upload never coexists with stale rows
	ReplaceByPeriod(ctx context.Context, period string, brackets []TaxBracket) error

	// FindByPeriod returns the brackets of a period ordered by FromUnits
	FindByPeriod(ctx context.Context, period string) ([]TaxBracket, error)

	// FindAll returns the full bracket table
	FindAll(ctx context.Context) ([]TaxBracket, error)
}
