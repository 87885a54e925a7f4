package tax

import (
	"testing"

	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParameters() []PeriodParameter {
	mk := func(period string, name ParameterName, value string) PeriodParameter {
		p, err := NewPeriodParameter(period, name, decimal.RequireFromString(value))
		if err != nil {
			panic(err)
		}
		return *p
	}
	return []PeriodParameter{
		mk("2024-06", ParamUnitOfAccount, "37250.52"),
		mk("2024-06", ParamTaxUnit, "65770"),
		mk("2024-06", ParamTaxableCeiling, "3176292"),
		mk("2024-06", ParamVATRate, "0.19"),
		mk("2024-07", ParamUnitOfAccount, "37361.49"),
	}
}

func TestResolveParameters(t *testing.T) {
	params := testParameters()

	t.Run("resolves all required names for the period", func(t *testing.T) {
		values, err := ResolveParameters(params, "2024-06",
			ParamUnitOfAccount, ParamTaxUnit, ParamTaxableCeiling)
		require.NoError(t, err)
		assert.True(t, values[ParamTaxUnit].Equal(decimal.RequireFromString("65770")))
		assert.True(t, values[ParamTaxableCeiling].Equal(decimal.RequireFromString("3176292")))
	})

	t.Run("fails on first missing required name", func(t *testing.T) {
		_, err := ResolveParameters(params, "2024-07", ParamUnitOfAccount, ParamTaxUnit)
		require.Error(t, err)
		var missing *shared.MissingParameterError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, string(ParamTaxUnit), missing.Name)
		assert.Equal(t, "2024-07", missing.Period)
	})

	t.Run("unknown period misses every required name", func(t *testing.T) {
		_, err := ResolveParameters(params, "2031-01", ParamVATRate)
		var missing *shared.MissingParameterError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "2031-01", missing.Period)
	})

	t.Run("period keys compare by exact string equality", func(t *testing.T) {
		// "2024-6" is not a match for "2024-06"
		_, err := ResolveParameters(params, "2024-6", ParamUnitOfAccount)
		require.Error(t, err)
	})

	t.Run("no required names yields the full period map", func(t *testing.T) {
		values, err := ResolveParameters(params, "2024-07")
		require.NoError(t, err)
		assert.Len(t, values, 1)
	})

	t.Run("duplicate entry keeps the first value", func(t *testing.T) {
		dup := append(params, PeriodParameter{
			Period: "2024-06",
			Name:   ParamVATRate,
			Value:  decimal.RequireFromString("0.25"),
		})
		values, err := ResolveParameters(dup, "2024-06", ParamVATRate)
		require.NoError(t, err)
		assert.True(t, values[ParamVATRate].Equal(decimal.RequireFromString("0.19")))
	})
}

func TestNewPeriodParameter(t *testing.T) {
	t.Run("rejects empty period", func(t *testing.T) {
		_, err := NewPeriodParameter("", ParamTaxUnit, decimal.NewFromInt(1))
		require.Error(t, err)
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := NewPeriodParameter("2024-06", ParameterName("BOGUS"), decimal.NewFromInt(1))
		require.Error(t, err)
	})
}

func TestParameterName_IsValid(t *testing.T) {
	assert.True(t, ParamUnitOfAccount.IsValid())
	assert.True(t, ParamVATRate.IsValid())
	assert.False(t, ParameterName("").IsValid())
	assert.False(t, ParameterName("SOMETHING").IsValid())
}
