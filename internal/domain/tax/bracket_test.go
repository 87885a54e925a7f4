package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// testBrackets is a contiguous monthly table in UTM, modeled on the
// statutory second-category scale.
func testBrackets(period string) []TaxBracket {
	return []TaxBracket{
		{Period: period, FromUnits: dec("0"), ToUnits: decPtr("13.5"), Rate: dec("0"), RebateUnits: dec("0")},
		{Period: period, FromUnits: dec("13.5"), ToUnits: decPtr("30"), Rate: dec("0.04"), RebateUnits: dec("0.54")},
		{Period: period, FromUnits: dec("30"), ToUnits: decPtr("50"), Rate: dec("0.08"), RebateUnits: dec("1.74")},
		{Period: period, FromUnits: dec("50"), ToUnits: decPtr("70"), Rate: dec("0.135"), RebateUnits: dec("4.49")},
		{Period: period, FromUnits: dec("70"), ToUnits: nil, Rate: dec("0.23"), RebateUnits: dec("11.14")},
	}
}

func TestSelectBracket(t *testing.T) {
	brackets := testBrackets("2024-06")

	tests := []struct {
		name     string
		base     string
		wantFrom string
	}{
		{"inside exempt bracket", "10", "0"},
		{"upper bound is inclusive", "13.5", "0"},
		{"just past a boundary", "13.51", "13.5"},
		{"mid bracket", "42", "30"},
		{"open-ended bracket", "500", "70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectBracket(brackets, "2024-06", dec(tt.base))
			require.NotNil(t, got)
			assert.True(t, got.FromUnits.Equal(dec(tt.wantFrom)))
		})
	}

	t.Run("zero base returns nil", func(t *testing.T) {
		assert.Nil(t, SelectBracket(brackets, "2024-06", decimal.Zero))
	})

	t.Run("negative base returns nil", func(t *testing.T) {
		assert.Nil(t, SelectBracket(brackets, "2024-06", dec("-3")))
	})

	t.Run("unknown period returns nil", func(t *testing.T) {
		assert.Nil(t, SelectBracket(brackets, "2023-06", dec("42")))
	})

	t.Run("exactly one bracket matches any positive base", func(t *testing.T) {
		for _, base := range []string{"0.01", "13.5", "13.500001", "29.99", "30", "49", "70", "70.01", "9999"} {
			matches := 0
			for i := range brackets {
				if brackets[i].Matches(dec(base)) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "base %s", base)
		}
	})

	t.Run("overlapping table falls back to first match", func(t *testing.T) {
		overlapping := []TaxBracket{
			{Period: "2024-06", FromUnits: dec("0"), ToUnits: decPtr("20"), Rate: dec("0.1"), RebateUnits: dec("0")},
			{Period: "2024-06", FromUnits: dec("0"), ToUnits: decPtr("30"), Rate: dec("0.2"), RebateUnits: dec("0")},
		}
		got := SelectBracket(overlapping, "2024-06", dec("15"))
		require.NotNil(t, got)
		assert.True(t, got.Rate.Equal(dec("0.1")))
	})
}

func TestValidateBrackets(t *testing.T) {
	t.Run("well-formed table has no violations", func(t *testing.T) {
		assert.Empty(t, ValidateBrackets(testBrackets("2024-06"), "2024-06"))
	})

	t.Run("empty table is a violation", func(t *testing.T) {
		violations := ValidateBrackets(nil, "2024-06")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "no brackets")
	})

	t.Run("gap between brackets is flagged", func(t *testing.T) {
		rows := []TaxBracket{
			{Period: "2024-06", FromUnits: dec("0"), ToUnits: decPtr("10")},
			{Period: "2024-06", FromUnits: dec("15"), ToUnits: nil},
		}
		violations := ValidateBrackets(rows, "2024-06")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "not contiguous")
	})

	t.Run("closed terminal bracket is flagged", func(t *testing.T) {
		rows := []TaxBracket{
			{Period: "2024-06", FromUnits: dec("0"), ToUnits: decPtr("10")},
			{Period: "2024-06", FromUnits: dec("10"), ToUnits: decPtr("20")},
		}
		violations := ValidateBrackets(rows, "2024-06")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "open-ended")
	})

	t.Run("nonzero start is flagged", func(t *testing.T) {
		rows := []TaxBracket{
			{Period: "2024-06", FromUnits: dec("5"), ToUnits: nil},
		}
		violations := ValidateBrackets(rows, "2024-06")
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Detail, "expected 0")
	})

	t.Run("non-terminal open-ended bracket is flagged", func(t *testing.T) {
		rows := []TaxBracket{
			{Period: "2024-06", FromUnits: dec("0"), ToUnits: nil},
			{Period: "2024-06", FromUnits: dec("10"), ToUnits: nil},
		}
		violations := ValidateBrackets(rows, "2024-06")
		require.NotEmpty(t, violations)
	})
}
