package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/contable/backoffice/internal/domain/ledger"
	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/contable/backoffice/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ledger.Account{},
		&ledger.Voucher{},
		&ledger.VoucherEntry{},
		&ledger.Invoice{},
		&ledger.FeeInvoice{},
		&payroll.Employee{},
		&payroll.Institution{},
		&payroll.Payslip{},
		&payroll.Deduction{},
		&tax.PeriodParameter{},
		&tax.TaxBracket{},
	)
	require.NoError(t, err)

	return db
}

func TestAccountRepository_Directory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	receivable, err := ledger.NewAccount("1101", ledger.NameAccountsReceivable, ledger.AccountAsset)
	require.NoError(t, err)
	revenue, err := ledger.NewAccount("4101", ledger.NameSalesRevenue, ledger.AccountIncome)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, receivable))
	require.NoError(t, repo.Save(ctx, revenue))

	dir, err := repo.Directory(ctx)
	require.NoError(t, err)

	t.Run("resolves stored names case-insensitively", func(t *testing.T) {
		id, err := dir.Resolve("accounts receivable")
		require.NoError(t, err)
		assert.Equal(t, receivable.ID, id)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := dir.Resolve("Petty Cash")
		var notFound *shared.AccountNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Petty Cash", notFound.Name)
	})
}

func TestVoucherRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVoucherRepository(db)
	ctx := context.Background()

	account := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	voucher, err := ledger.NewVoucher(date, "Sales invoice 42", []ledger.VoucherEntry{
		{AccountID: account, Debit: 119000},
		{AccountID: uuid.New(), Credit: 100000},
		{AccountID: uuid.New(), Credit: 19000},
	})
	require.NoError(t, err)

	t.Run("round-trips entries in position order", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, voucher))

		found, err := repo.FindByID(ctx, voucher.ID)
		require.NoError(t, err)
		require.Len(t, found.Entries, 3)
		assert.Equal(t, account, found.Entries[0].AccountID)
		assert.Equal(t, int64(119000), found.Entries[0].Debit)
		assert.True(t, found.IsBalanced())
	})

	t.Run("exists by description", func(t *testing.T) {
		exists, err := repo.ExistsByDescription(ctx, "Sales invoice 42")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByDescription(ctx, ledger.PayrollCentralizationDescription("2026-03"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing voucher yields not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestInvoiceRepository_FindUnposted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	posted, err := ledger.NewInvoice(ledger.InvoiceSale, "F-100", "76523829-3", "Comercial Andina", date, 100000, 19000)
	require.NoError(t, err)
	voucherID := uuid.New()
	posted.VoucherID = &voucherID

	unposted, err := ledger.NewInvoice(ledger.InvoiceSale, "F-101", "76523829-3", "Comercial Andina", date, 50000, 9500)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, posted))
	require.NoError(t, repo.Save(ctx, unposted))

	found, err := repo.FindUnposted(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, unposted.ID, found[0].ID)
	assert.False(t, found[0].IsPosted())
}

func TestEmployeeRepository_FindByTaxID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	employee, err := payroll.NewEmployee("12.345.678-5", "Carla Soto", 1200000, uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, employee))

	found, err := repo.FindByTaxID(ctx, "12345678-5")
	require.NoError(t, err)
	assert.Equal(t, employee.ID, found.ID)

	_, err = repo.FindByTaxID(ctx, "9007920-4")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPayslipRepository_Replace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPayslipRepository(db)
	ctx := context.Background()

	employeeID := uuid.New()
	build := func(net int64) *payroll.Payslip {
		payslip := &payroll.Payslip{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			Period:        "2026-03",
			GrossPay:      1280000,
			TaxableIncome: 1200000,
			IncomeTax:     3345,
			NetPay:        net,
			ComputedAt:    time.Now().UTC(),
		}
		payslip.Deductions = []payroll.Deduction{
			{ID: uuid.New(), PayslipID: payslip.ID, Position: 0, Label: payroll.DeductionPension, Amount: 137280},
			{ID: uuid.New(), PayslipID: payslip.ID, Position: 1, Label: payroll.DeductionHealth, Amount: 84000},
		}
		return payslip
	}

	first := build(1048175)
	require.NoError(t, repo.Replace(ctx, first))

	second := build(1048175)
	require.NoError(t, repo.Replace(ctx, second))

	found, err := repo.FindByEmployeeAndPeriod(ctx, employeeID, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
	require.Len(t, found.Deductions, 2)
	assert.Equal(t, payroll.DeductionPension, found.Deductions[0].Label)

	// the prior payslip's deductions must be gone with it
	var orphans int64
	require.NoError(t, db.Model(&payroll.Deduction{}).Where("payslip_id = ?", first.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	byPeriod, err := repo.FindByPeriod(ctx, "2026-03")
	require.NoError(t, err)
	assert.Len(t, byPeriod, 1)
}

func TestParameterRepository_SaveOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormParameterRepository(db)
	ctx := context.Background()

	uf, err := tax.NewPeriodParameter("2026-03", tax.ParamUnitOfAccount, decimal.NewFromFloat(37250.52))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, uf))

	revised, err := tax.NewPeriodParameter("2026-03", tax.ParamUnitOfAccount, decimal.NewFromFloat(37300.10))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, revised))

	params, err := repo.FindByPeriod(ctx, "2026-03")
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.True(t, params[0].Value.Equal(decimal.NewFromFloat(37300.10)))
}

func TestBracketRepository_FindByPeriodOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBracketRepository(db)
	ctx := context.Background()

	second := tax.TaxBracket{
		ID:          uuid.New(),
		Period:      "2026-03",
		FromUnits:   decimal.NewFromFloat(13.5),
		Rate:        decimal.NewFromFloat(0.04),
		RebateUnits: decimal.NewFromFloat(0.54),
	}
	first := tax.TaxBracket{
		ID:        uuid.New(),
		Period:    "2026-03",
		FromUnits: decimal.Zero,
		ToUnits:   decimalPtr(decimal.NewFromFloat(13.5)),
		Rate:      decimal.Zero,
	}
	require.NoError(t, repo.ReplaceByPeriod(ctx, "2026-03", []tax.TaxBracket{second, first}))

	brackets, err := repo.FindByPeriod(ctx, "2026-03")
	require.NoError(t, err)
	require.Len(t, brackets, 2)
	assert.True(t, brackets[0].FromUnits.IsZero())
	assert.Empty(t, tax.ValidateBrackets(brackets, "2026-03"))
}

func TestBracketRepository_ReplaceByPeriod(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBracketRepository(db)
	ctx := context.Background()

	table := func(topRate float64) []tax.TaxBracket {
		return []tax.TaxBracket{
			{
				ID:        uuid.New(),
				Period:    "2026-03",
				FromUnits: decimal.Zero,
				ToUnits:   decimalPtr(decimal.NewFromFloat(13.5)),
				Rate:      decimal.Zero,
			},
			{
				ID:          uuid.New(),
				Period:      "2026-03",
				FromUnits:   decimal.NewFromFloat(13.5),
				Rate:        decimal.NewFromFloat(topRate),
				RebateUnits: decimal.NewFromFloat(0.54),
			},
		}
	}
	other := tax.TaxBracket{
		ID:        uuid.New(),
		Period:    "2026-02",
		FromUnits: decimal.Zero,
		Rate:      decimal.Zero,
	}

	require.NoError(t, repo.ReplaceByPeriod(ctx, "2026-02", []tax.TaxBracket{other}))
	require.NoError(t, repo.ReplaceByPeriod(ctx, "2026-03", table(0.04)))

	// a corrected re-upload must not accumulate next to the old rows
	require.NoError(t, repo.ReplaceByPeriod(ctx, "2026-03", table(0.08)))

	brackets, err := repo.FindByPeriod(ctx, "2026-03")
	require.NoError(t, err)
	require.Len(t, brackets, 2)

	selected := tax.SelectBracket(brackets, "2026-03", decimal.NewFromInt(20))
	require.NotNil(t, selected)
	assert.True(t, selected.Rate.Equal(decimal.NewFromFloat(0.08)))

	// other periods keep their tables
	previous, err := repo.FindByPeriod(ctx, "2026-02")
	require.NoError(t, err)
	assert.Len(t, previous, 1)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
