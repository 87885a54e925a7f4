package tax

import (
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParameterName identifies a named scalar parameter of a period
type ParameterName string

const (
	// ParamUnitOfAccount is the UF value in pesos for the period
	ParamUnitOfAccount ParameterName = "UNIT_OF_ACCOUNT"
	// ParamTaxUnit is the UTM value in pesos for the period
	ParamTaxUnit ParameterName = "TAX_UNIT"
	// ParamTaxableCeiling is the taxable-income ceiling in pesos for
	// pension/health contributions
	ParamTaxableCeiling ParameterName = "TAXABLE_CEILING"
	// ParamVATRate is the VAT rate as a fraction (0.19 for 19%)
	ParamVATRate ParameterName = "VAT_RATE"
)

// IsValid checks if the name is a known ParameterName
func (n ParameterName) IsValid() bool {
	switch n {
	case ParamUnitOfAccount, ParamTaxUnit, ParamTaxableCeiling, ParamVATRate:
		return true
	}
	return false
}

// String returns the string representation
func (n ParameterName) String() string {
	return string(n)
}

// PeriodParameter is one named scalar value for a period ("YYYY-MM").
// Reference data: created out of band, read-only to the computation core,
// one value per (period, name).
type PeriodParameter struct {
	ID     uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	Period string          `json:"period" gorm:"type:varchar(7);not null;uniqueIndex:idx_param_period_name,priority:1"`
	Name   ParameterName   `json:"name" gorm:"type:varchar(30);not null;uniqueIndex:idx_param_period_name,priority:2"`
	Value  decimal.Decimal `json:"value" gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PeriodParameter) TableName() string {
	return "period_parameters"
}

// NewPeriodParameter creates a period parameter
func NewPeriodParameter(period string, name ParameterName, value decimal.Decimal) (*PeriodParameter, error) {
	if period == "" {
		return nil, shared.NewValidationError("period", "period key is required")
	}
	if !name.IsValid() {
		return nil, shared.NewValidationError("name", "unknown parameter name")
	}
	return &PeriodParameter{
		ID:     uuid.New(),
		Period: period,
		Name:   name,
		Value:  value,
	}, nil
}

// ResolveParameters filters the parameter table by exact period key and
// returns a name to value map. The first required name absent for the
// period fails with MissingParameterError; values are never defaulted.
//
// Pure function: callers re-resolve per invocation, so a period's
// parameters may change between calls without stale reads.
func ResolveParameters(params []PeriodParameter, period string, required ...ParameterName) (map[ParameterName]decimal.Decimal, error) {
	values := make(map[ParameterName]decimal.Decimal)
	for _, p := range params {
		if p.Period != period {
			continue
		}
		if _, ok := values[p.Name]; ok {
			// one value per (period, name); first occurrence wins
			continue
		}
		values[p.Name] = p.Value
	}
	for _, name := range required {
		if _, ok := values[name]; !ok {
			return nil, shared.NewMissingParameterError(string(name), period)
		}
	}
	return values, nil
}
