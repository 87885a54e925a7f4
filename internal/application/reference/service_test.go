package reference

import (
	"context"
	"testing"

	"github.com/contable/backoffice/internal/domain/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockBracketRepository struct {
	mock.Mock
}

func (m *MockBracketRepository) ReplaceByPeriod(ctx context.Context, period string, brackets []tax.TaxBracket) error {
	args := m.Called(ctx, period, brackets)
	return args.Error(0)
}

func (m *MockBracketRepository) FindByPeriod(ctx context.Context, period string) ([]tax.TaxBracket, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]tax.TaxBracket), args.Error(1)
}

func (m *MockBracketRepository) FindAll(ctx context.Context) ([]tax.TaxBracket, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tax.TaxBracket), args.Error(1)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func bracketTable(topRate string) []BracketRow {
	return []BracketRow{
		{FromUnits: decimal.Zero, ToUnits: decimalPtr(decimal.NewFromFloat(13.5)), Rate: decimal.Zero},
		{FromUnits: decimal.NewFromFloat(13.5), Rate: decimal.RequireFromString(topRate), RebateUnits: decimal.RequireFromString("0.54")},
	}
}

func TestService_SetBrackets(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the period table as a whole", func(t *testing.T) {
		bracketRepo := new(MockBracketRepository)
		service := NewService(nil, nil, bracketRepo, zap.NewNop())

		var stored [][]tax.TaxBracket
		bracketRepo.On("ReplaceByPeriod", ctx, "2026-03", mock.AnythingOfType("[]tax.TaxBracket")).
			Run(func(args mock.Arguments) {
				stored = append(stored, args.Get(2).([]tax.TaxBracket))
			}).Return(nil)

		violations, err := service.SetBrackets(ctx, SetBracketsRequest{Period: "2026-03", Brackets: bracketTable("0.04")})
		require.NoError(t, err)
		assert.Empty(t, violations)

		// a corrected upload goes through the same replacement, never an append
		violations, err = service.SetBrackets(ctx, SetBracketsRequest{Period: "2026-03", Brackets: bracketTable("0.08")})
		require.NoError(t, err)
		assert.Empty(t, violations)

		require.Len(t, stored, 2)
		require.Len(t, stored[1], 2)
		assert.True(t, stored[1][1].Rate.Equal(decimal.RequireFromString("0.08")))
		bracketRepo.AssertNumberOfCalls(t, "ReplaceByPeriod", 2)
	})

	t.Run("flags a gapped table but still stores it", func(t *testing.T) {
		bracketRepo := new(MockBracketRepository)
		service := NewService(nil, nil, bracketRepo, zap.NewNop())
		bracketRepo.On("ReplaceByPeriod", ctx, "2026-03", mock.AnythingOfType("[]tax.TaxBracket")).Return(nil)

		gapped := []BracketRow{
			{FromUnits: decimal.Zero, ToUnits: decimalPtr(decimal.NewFromFloat(13.5)), Rate: decimal.Zero},
			{FromUnits: decimal.NewFromInt(30), Rate: decimal.RequireFromString("0.08"), RebateUnits: decimal.RequireFromString("1.74")},
		}
		violations, err := service.SetBrackets(ctx, SetBracketsRequest{Period: "2026-03", Brackets: gapped})
		require.NoError(t, err)
		assert.NotEmpty(t, violations)
		bracketRepo.AssertNumberOfCalls(t, "ReplaceByPeriod", 1)
	})

	t.Run("rejects an invalid bracket row", func(t *testing.T) {
		bracketRepo := new(MockBracketRepository)
		service := NewService(nil, nil, bracketRepo, zap.NewNop())

		bad := []BracketRow{{FromUnits: decimal.NewFromInt(-1)}}
		_, err := service.SetBrackets(ctx, SetBracketsRequest{Period: "2026-03", Brackets: bad})
		require.Error(t, err)
		bracketRepo.AssertNotCalled(t, "ReplaceByPeriod", mock.Anything, mock.Anything, mock.Anything)
	})
}
