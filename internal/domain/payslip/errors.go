package payslip

import "errors"

var (
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrPayslipPeriodExists  = errors.New("payslip already exists for this period")
	ErrInvalidPayslipPeriod = errors.New("invalid payslip period")
)
