package payslip

import "context"

type PayslipRepository interface {
	Create(ctx context.Context, slip Payslip) error
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Payslip, error)
}
