package payroll

import (
	"github.com/kudu-hr/payroll-engine-go/internal/domain/payslip"
	"github.com/shopspring/decimal"
)

// Aggregate totals a payslip's earning and deduction lines. The taxable
// subtotal is the tax base; net pay is gross earnings minus gross
// deductions. Overtime is not special here: it arrives pre-computed as
// additional taxable earning lines.
func Aggregate(earnings []payslip.Earning, deductions []payslip.Deduction) payslip.Totals {
	totals := payslip.Totals{
		GrossEarnings:   decimal.Zero,
		GrossDeductions: decimal.Zero,
		TaxableEarnings: decimal.Zero,
	}

	for _, e := range earnings {
		totals.GrossEarnings = totals.GrossEarnings.Add(e.Amount)
		if e.Taxable {
			totals.TaxableEarnings = totals.TaxableEarnings.Add(e.Amount)
		}
	}
	for _, d := range deductions {
		totals.GrossDeductions = totals.GrossDeductions.Add(d.Amount)
	}

	totals.NetPay = totals.GrossEarnings.Sub(totals.GrossDeductions)
	return totals
}
