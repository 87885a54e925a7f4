package tax

import (
	"fmt"
	"sort"

	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxBracket is one progressive income-tax bracket for a period, expressed
// in tax units (UTM). A base matches when base > FromUnits and, unless the
// bracket is open-ended (ToUnits nil), base <= ToUnits. Brackets for a
// period must be contiguous and non-overlapping; the last one is open-ended.
type TaxBracket struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	Period      string           `json:"period" gorm:"type:varchar(7);not null;index"`
	FromUnits   decimal.Decimal  `json:"from_units" gorm:"type:decimal(18,4);not null"`
	ToUnits     *decimal.Decimal `json:"to_units" gorm:"type:decimal(18,4)"`
	Rate        decimal.Decimal  `json:"rate" gorm:"type:decimal(9,6);not null"`
	RebateUnits decimal.Decimal  `json:"rebate_units" gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TaxBracket) TableName() string {
	return "tax_brackets"
}

// NewTaxBracket creates one bracket of a period's table
func NewTaxBracket(period string, fromUnits decimal.Decimal, toUnits *decimal.Decimal, rate, rebateUnits decimal.Decimal) (*TaxBracket, error) {
	if period == "" {
		return nil, shared.NewValidationError("period", "period key is required")
	}
	if fromUnits.IsNegative() {
		return nil, shared.NewValidationError("from_units", "bracket lower bound must be non-negative")
	}
	if toUnits != nil && !toUnits.GreaterThan(fromUnits) {
		return nil, shared.NewValidationError("to_units", "bracket upper bound must exceed the lower bound")
	}
	if rate.IsNegative() {
		return nil, shared.NewValidationError("rate", "bracket rate must be non-negative")
	}
	if rebateUnits.IsNegative() {
		return nil, shared.NewValidationError("rebate_units", "bracket rebate must be non-negative")
	}
	return &TaxBracket{
		ID:          uuid.New(),
		Period:      period,
		FromUnits:   fromUnits,
		ToUnits:     toUnits,
		Rate:        rate,
		RebateUnits: rebateUnits,
	}, nil
}

// Matches reports whether the given base in tax units falls in this bracket
func (b *TaxBracket) Matches(baseInUnits decimal.Decimal) bool {
	if !baseInUnits.GreaterThan(b.FromUnits) {
		return false
	}
	return b.ToUnits == nil || baseInUnits.LessThanOrEqual(*b.ToUnits)
}

// IsOpenEnded reports whether this is the terminal bracket
func (b *TaxBracket) IsOpenEnded() bool {
	return b.ToUnits == nil
}

// SelectBracket returns the bracket of the period matching the taxable base
// in tax units, or nil when no taxable base applies (base <= 0). Callers
// treat nil as zero tax.
//
// If the table is malformed and several brackets match, the first in input
// order wins; ValidateBrackets exists to flag such tables at load time.
func SelectBracket(brackets []TaxBracket, period string, baseInUnits decimal.Decimal) *TaxBracket {
	if !baseInUnits.IsPositive() {
		return nil
	}
	for i := range brackets {
		if brackets[i].Period != period {
			continue
		}
		if brackets[i].Matches(baseInUnits) {
			return &brackets[i]
		}
	}
	return nil
}

// BracketViolation describes one contiguity defect found in a period's
// bracket table.
type BracketViolation struct {
	Period string `json:"period"`
	Detail string `json:"detail"`
}

func (v BracketViolation) String() string {
	return fmt.Sprintf("period %s: %s", v.Period, v.Detail)
}

// ValidateBrackets checks a period's brackets for contiguity: the table
// must start at zero, each bracket must begin where the previous one ends,
// and only the last may be open-ended. Violations are returned for
// logging/flagging; SelectBracket still operates on a defective table with
// its first-match fallback.
func ValidateBrackets(brackets []TaxBracket, period string) []BracketViolation {
	var rows []TaxBracket
	for _, b := range brackets {
		if b.Period == period {
			rows = append(rows, b)
		}
	}
	if len(rows) == 0 {
		return []BracketViolation{{Period: period, Detail: "no brackets defined"}}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FromUnits.LessThan(rows[j].FromUnits)
	})

	var violations []BracketViolation
	if !rows[0].FromUnits.IsZero() {
		violations = append(violations, BracketViolation{
			Period: period,
			Detail: fmt.Sprintf("first bracket starts at %s, expected 0", rows[0].FromUnits),
		})
	}
	for i, b := range rows {
		last := i == len(rows)-1
		if last {
			if !b.IsOpenEnded() {
				violations = append(violations, BracketViolation{
					Period: period,
					Detail: fmt.Sprintf("last bracket ends at %s, expected open-ended", b.ToUnits),
				})
			}
			continue
		}
		if b.IsOpenEnded() {
			violations = append(violations, BracketViolation{
				Period: period,
				Detail: fmt.Sprintf("bracket starting at %s is open-ended but not last", b.FromUnits),
			})
			continue
		}
		if !rows[i+1].FromUnits.Equal(*b.ToUnits) {
			violations = append(violations, BracketViolation{
				Period: period,
				Detail: fmt.Sprintf("bracket ending at %s is not contiguous with next starting at %s",
					b.ToUnits, rows[i+1].FromUnits),
			})
		}
	}
	return violations
}
