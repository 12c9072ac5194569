package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/payslip"
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/shopspring/decimal"
)

// payPeriodsPerYear is fixed: payroll runs monthly.
var payPeriodsPerYear = decimal.NewFromInt(12)

const taxDeductionLabel = "PAYE"

type Service struct {
	registry     *regulation.Registry
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	payslipRepo  payslip.PayslipRepository

	tax    *TaxCalculator
	social *SocialSecurityCalculator
}

func NewService(
	registry *regulation.Registry,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	payslipRepo payslip.PayslipRepository,
	tax *TaxCalculator,
	social *SocialSecurityCalculator,
) *Service {
	return &Service{
		registry:     registry,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		payslipRepo:  payslipRepo,
		tax:          tax,
		social:       social,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// CalculateDraft aggregates the in-progress payslip lines and proposes the
// statutory deductions for the employee's jurisdiction. Called on every
// edit of the payslip form; always succeeds for transiently invalid input.
func (s *Service) CalculateDraft(ctx context.Context, req payslip.DraftCalculationRequest) (payslip.DraftCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.DraftCalculationResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.DraftCalculationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payslip.DraftCalculationResponse{}, err
	}

	comp, err := s.companyRepo.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return payslip.DraftCalculationResponse{}, err
	}

	profile, err := s.registry.Profile(comp.Country)
	if err != nil {
		return payslip.DraftCalculationResponse{}, err
	}

	totals := Aggregate(toEarnings(req.Earnings), toDeductions(req.Deductions))

	annualTax := s.tax.CalculateAnnualTax(totals.TaxableEarnings.Mul(payPeriodsPerYear), profile.Tax)
	periodTax := annualTax.Div(payPeriodsPerYear).Round(2)
	contribution := s.social.Calculate(totals.GrossEarnings, profile.SocialSecurity).Round(2)

	return payslip.DraftCalculationResponse{
		GrossEarnings:   totals.GrossEarnings,
		GrossDeductions: totals.GrossDeductions,
		TaxableEarnings: totals.TaxableEarnings,
		NetPay:          totals.NetPay,
		Suggested: []payslip.SuggestedDeduction{
			{Description: taxDeductionLabel, Amount: periodTax},
			{Description: profile.SocialSecurity.Name, Amount: contribution},
		},
	}, nil
}

// Create persists a finalized payslip. Totals are recomputed from the
// submitted lines; whatever deduction amounts the preparer settled on are
// stored as-is.
func (s *Service) Create(ctx context.Context, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	period, err := time.Parse("2006-01", req.Period)
	if err != nil {
		return payslip.PayslipResponse{}, payslip.ErrInvalidPayslipPeriod
	}

	earnings := toEarnings(req.Earnings)
	deductions := toDeductions(req.Deductions)

	now := time.Now()
	slip := payslip.Payslip{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: emp.ID,
		Period:     period,
		Earnings:   earnings,
		Deductions: deductions,
		Totals:     Aggregate(earnings, deductions),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.payslipRepo.Create(ctx, slip); err != nil {
		return payslip.PayslipResponse{}, err
	}

	return payslip.NewPayslipResponse(slip), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	slip, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.NewPayslipResponse(slip), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]payslip.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	slips, err := s.payslipRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	out := make([]payslip.PayslipResponse, 0, len(slips))
	for _, slip := range slips {
		out = append(out, payslip.NewPayslipResponse(slip))
	}
	return out, nil
}

func toEarnings(inputs []payslip.EarningInput) []payslip.Earning {
	earnings := make([]payslip.Earning, 0, len(inputs))
	for _, in := range inputs {
		earnings = append(earnings, payslip.Earning{
			Description: in.Description,
			Amount:      in.Amount,
			Taxable:     in.Taxable,
		})
	}
	return earnings
}

func toDeductions(inputs []payslip.DeductionInput) []payslip.Deduction {
	deductions := make([]payslip.Deduction, 0, len(inputs))
	for _, in := range inputs {
		deductions = append(deductions, payslip.Deduction{
			Description: in.Description,
			Amount:      in.Amount,
		})
	}
	return deductions
}
