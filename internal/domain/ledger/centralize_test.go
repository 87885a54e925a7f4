package ledger

import (
	"testing"
	"time"

	"github.com/contable/backoffice/internal/domain/payroll"
	"github.com/contable/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayslip(gross, pension, health, unemployment, incomeTax int64) payroll.Payslip {
	deductions := []payroll.Deduction{
		{Position: 0, Label: payroll.DeductionPension, Amount: pension},
		{Position: 1, Label: payroll.DeductionHealth, Amount: health},
		{Position: 2, Label: payroll.DeductionUnemployment, Amount: unemployment},
	}
	if incomeTax > 0 {
		deductions = append(deductions, payroll.Deduction{Position: 3, Label: payroll.DeductionIncomeTax, Amount: incomeTax})
	}
	p := payroll.Payslip{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		Period:     "2024-06",
		GrossPay:   gross,
		IncomeTax:  incomeTax,
		Deductions: deductions,
	}
	p.NetPay = gross - pension - health - unemployment - incomeTax
	return p
}

func TestCentralizePayroll(t *testing.T) {
	directory, ids := testChart()

	payslips := []payroll.Payslip{
		testPayslip(1280000, 137280, 84000, 7200, 3345),
		testPayslip(850000, 97240, 59500, 5100, 0),
	}

	v, err := CentralizePayroll(payslips, "2024-06", directory)
	require.NoError(t, err)

	gross := int64(1280000 + 850000)
	contributions := int64(137280 + 84000 + 7200 + 97240 + 59500 + 5100)
	incomeTax := int64(3345)
	net := gross - contributions - incomeTax

	assert.Equal(t, gross, entryFor(t, v, ids[NamePayrollExpense]).Debit)
	assert.Equal(t, net, entryFor(t, v, ids[NameSalariesPayable]).Credit)
	assert.Equal(t, contributions, entryFor(t, v, ids[NameWithholdingsPayable]).Credit)
	assert.Equal(t, incomeTax, entryFor(t, v, ids[NameIncomeTaxPayable]).Credit)
	assert.True(t, v.IsBalanced())
	assert.Equal(t, PayrollCentralizationDescription("2024-06"), v.Description)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), v.Date)
}

func TestCentralizePayroll_OmitsZeroLines(t *testing.T) {
	directory, ids := testChart()

	// no employee pays income tax this period
	payslips := []payroll.Payslip{
		testPayslip(500000, 57200, 35000, 3000, 0),
	}

	v, err := CentralizePayroll(payslips, "2024-06", directory)
	require.NoError(t, err)
	assert.Len(t, v.Entries, 3)
	for _, e := range v.Entries {
		assert.NotEqual(t, ids[NameIncomeTaxPayable], e.AccountID)
	}
}

func TestCentralizePayroll_EmptyBatch(t *testing.T) {
	directory, _ := testChart()
	_, err := CentralizePayroll(nil, "2024-06", directory)
	assert.ErrorIs(t, err, shared.ErrNothingToCentralize)
}

func TestCentralizePayroll_SurfacesImbalance(t *testing.T) {
	directory, _ := testChart()

	corrupted := testPayslip(1000000, 100000, 70000, 6000, 0)
	corrupted.NetPay += 1 // violates net = gross - deductions

	_, err := CentralizePayroll([]payroll.Payslip{corrupted}, "2024-06", directory)
	var imbalance *shared.ImbalanceError
	require.ErrorAs(t, err, &imbalance)
	assert.Equal(t, int64(-1), imbalance.Delta())
}

func TestCentralizePayroll_MissingAccount(t *testing.T) {
	directory := NewChartDirectory([]Account{
		{ID: uuid.New(), Code: "5101", Name: NamePayrollExpense, Kind: AccountExpense},
	})

	_, err := CentralizePayroll([]payroll.Payslip{testPayslip(500000, 57200, 35000, 3000, 0)}, "2024-06", directory)
	var notFound *shared.AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, NameSalariesPayable, notFound.Name)
}
