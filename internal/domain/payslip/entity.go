package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Earning is a single earning line item. Taxable earnings feed the income
// base for PAYE; non-taxable allowances do not.
type Earning struct {
	Description string
	Amount      decimal.Decimal
	Taxable     bool
}

// Deduction is a single deduction line item. Statutory deductions (PAYE,
// social security) arrive here as ordinary lines; the preparer may override
// the suggested amounts before finalizing.
type Deduction struct {
	Description string
	Amount      decimal.Decimal
}

// Totals are the aggregated payslip amounts. TaxableEarnings, annualized,
// is the tax calculation's input base; period GrossEarnings is the social
// security base.
type Totals struct {
	GrossEarnings   decimal.Decimal
	GrossDeductions decimal.Decimal
	TaxableEarnings decimal.Decimal
	NetPay          decimal.Decimal
}

type Payslip struct {
	ID         string
	CompanyID  string
	EmployeeID string

	// Period is the first day of the payroll month.
	Period time.Time

	Earnings   []Earning
	Deductions []Deduction
	Totals     Totals

	CreatedAt time.Time
	UpdatedAt time.Time
}
