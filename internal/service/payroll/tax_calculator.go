package payroll

import (
	"log/slog"

	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/shopspring/decimal"
)

// TaxCalculator computes annual income tax from a country's bracket table.
// It is total: malformed input yields zero, never an error, because it runs
// inline on every keystroke of the payslip form.
type TaxCalculator struct {
	logger *slog.Logger
}

func NewTaxCalculator(logger *slog.Logger) *TaxCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaxCalculator{logger: logger}
}

var one = decimal.NewFromInt(1)

// CalculateAnnualTax returns the annual tax payable on annualIncome under
// the given table, after the annual rebate, floored at zero. No rounding
// happens here; callers divide by pay periods and round to currency
// precision.
func (c *TaxCalculator) CalculateAnnualTax(annualIncome decimal.Decimal, table regulation.TaxTable) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// Simplified flat regimes are a single open-ended bracket.
	if table.Flat() {
		tax := annualIncome.Mul(table.Brackets[0].Rate).Sub(table.AnnualRebate)
		if tax.IsNegative() {
			return decimal.Zero
		}
		return tax
	}

	for _, bracket := range table.Brackets {
		if !bracket.Covers(annualIncome) {
			continue
		}
		// The bracket's span starts one unit below From, except at zero.
		offset := decimal.Zero
		if bracket.From.IsPositive() {
			offset = bracket.From.Sub(one)
		}
		tax := annualIncome.Sub(offset).Mul(bracket.Rate).Add(bracket.Base).Sub(table.AnnualRebate)
		if tax.IsNegative() {
			return decimal.Zero
		}
		return tax
	}

	// A well-formed table covers [0, inf), so this is a data defect. Some
	// tables carry a zero-rate bracket below the real threshold; honor it
	// before giving up.
	for _, bracket := range table.Brackets {
		if bracket.Rate.IsZero() && bracket.To != nil && annualIncome.LessThanOrEqual(*bracket.To) {
			return decimal.Zero
		}
	}

	c.logger.Error("no tax bracket covers income, returning zero",
		slog.String("annual_income", annualIncome.String()),
		slog.Int("brackets", len(table.Brackets)),
	)
	return decimal.Zero
}
