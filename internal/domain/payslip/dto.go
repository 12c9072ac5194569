package payslip

import (
	"time"

	"github.com/kudu-hr/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EarningInput struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Taxable     bool            `json:"taxable"`
}

type DeductionInput struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// DraftCalculationRequest is the interactive recalculation payload sent on
// every edit of the payslip form. Line amounts are taken as-is; a half-typed
// form simply produces conservative zero suggestions.
type DraftCalculationRequest struct {
	EmployeeID string           `json:"employee_id"`
	Earnings   []EarningInput   `json:"earnings"`
	Deductions []DeductionInput `json:"deductions"`
}

func (r *DraftCalculationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SuggestedDeduction is a statutory deduction proposed by the engine. The
// preparer may hand-override the amount, which disables automation for that
// line downstream.
type SuggestedDeduction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type DraftCalculationResponse struct {
	GrossEarnings   decimal.Decimal      `json:"gross_earnings"`
	GrossDeductions decimal.Decimal      `json:"gross_deductions"`
	TaxableEarnings decimal.Decimal      `json:"taxable_earnings"`
	NetPay          decimal.Decimal      `json:"net_pay"`
	Suggested       []SuggestedDeduction `json:"suggested_deductions"`
}

type CreatePayslipRequest struct {
	EmployeeID string           `json:"employee_id"`
	Period     string           `json:"period"` // YYYY-MM
	Earnings   []EarningInput   `json:"earnings"`
	Deductions []DeductionInput `json:"deductions"`
}

func (r *CreatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, err := time.Parse("2006-01", r.Period); err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be YYYY-MM"})
	}
	if len(r.Earnings) == 0 {
		errs = append(errs, validator.ValidationError{Field: "earnings", Message: "at least one earning is required"})
	}
	for _, e := range r.Earnings {
		if e.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "earnings", Message: "amounts must be non-negative"})
			break
		}
	}
	for _, d := range r.Deductions {
		if d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "deductions", Message: "amounts must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Period     string           `json:"period"`
	Earnings   []EarningInput   `json:"earnings"`
	Deductions []DeductionInput `json:"deductions"`

	GrossEarnings   decimal.Decimal `json:"gross_earnings"`
	GrossDeductions decimal.Decimal `json:"gross_deductions"`
	TaxableEarnings decimal.Decimal `json:"taxable_earnings"`
	NetPay          decimal.Decimal `json:"net_pay"`

	CreatedAt time.Time `json:"created_at"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	earnings := make([]EarningInput, 0, len(p.Earnings))
	for _, e := range p.Earnings {
		earnings = append(earnings, EarningInput{Description: e.Description, Amount: e.Amount, Taxable: e.Taxable})
	}
	deductions := make([]DeductionInput, 0, len(p.Deductions))
	for _, d := range p.Deductions {
		deductions = append(deductions, DeductionInput{Description: d.Description, Amount: d.Amount})
	}

	return PayslipResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		Period:          p.Period.Format("2006-01"),
		Earnings:        earnings,
		Deductions:      deductions,
		GrossEarnings:   p.Totals.GrossEarnings,
		GrossDeductions: p.Totals.GrossDeductions,
		TaxableEarnings: p.Totals.TaxableEarnings,
		NetPay:          p.Totals.NetPay,
		CreatedAt:       p.CreatedAt,
	}
}
