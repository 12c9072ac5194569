package payroll

import (
	"testing"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	earnings := []payslip.Earning{
		{Description: "Basic Salary", Amount: d("500"), Taxable: true},
		{Description: "Travel Allowance", Amount: d("100"), Taxable: false},
	}
	deductions := []payslip.Deduction{
		{Description: "Medical Aid", Amount: d("50")},
	}

	totals := Aggregate(earnings, deductions)

	assert.True(t, totals.GrossEarnings.Equal(d("600")))
	assert.True(t, totals.GrossDeductions.Equal(d("50")))
	assert.True(t, totals.TaxableEarnings.Equal(d("500")))
	assert.True(t, totals.NetPay.Equal(d("550")))
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil, nil)

	assert.True(t, totals.GrossEarnings.IsZero())
	assert.True(t, totals.GrossDeductions.IsZero())
	assert.True(t, totals.TaxableEarnings.IsZero())
	assert.True(t, totals.NetPay.IsZero())
}

func TestAggregate_DeductionsExceedEarnings(t *testing.T) {
	earnings := []payslip.Earning{{Description: "Basic Salary", Amount: d("1000"), Taxable: true}}
	deductions := []payslip.Deduction{{Description: "Loan Repayment", Amount: d("1500")}}

	totals := Aggregate(earnings, deductions)

	// Net pay may go negative; flagging that is the caller's concern.
	assert.True(t, totals.NetPay.Equal(decimal.NewFromInt(-500)))
}

func TestAggregate_OvertimeAsPlainEarning(t *testing.T) {
	// Overtime arrives pre-computed upstream (rate x multiplier x hours) as
	// an ordinary taxable line.
	earnings := []payslip.Earning{
		{Description: "Basic Salary", Amount: d("20000"), Taxable: true},
		{Description: "Overtime (1.5x, 10h)", Amount: d("1730.77"), Taxable: true},
	}

	totals := Aggregate(earnings, nil)
	assert.True(t, totals.TaxableEarnings.Equal(d("21730.77")))
	assert.True(t, totals.GrossEarnings.Equal(totals.TaxableEarnings))
}
