package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/payslip"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

// earningRow / deductionRow are the jsonb wire shape of the line items.
type earningRow struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Taxable     bool            `json:"taxable"`
}

type deductionRow struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func encodeLines(slip payslip.Payslip) ([]byte, []byte, error) {
	earnings := make([]earningRow, 0, len(slip.Earnings))
	for _, e := range slip.Earnings {
		earnings = append(earnings, earningRow{Description: e.Description, Amount: e.Amount, Taxable: e.Taxable})
	}
	deductions := make([]deductionRow, 0, len(slip.Deductions))
	for _, d := range slip.Deductions {
		deductions = append(deductions, deductionRow{Description: d.Description, Amount: d.Amount})
	}

	earningsRaw, err := json.Marshal(earnings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode earnings: %w", err)
	}
	deductionsRaw, err := json.Marshal(deductions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode deductions: %w", err)
	}
	return earningsRaw, deductionsRaw, nil
}

func decodeLines(earningsRaw, deductionsRaw []byte, slip *payslip.Payslip) error {
	var earnings []earningRow
	if len(earningsRaw) > 0 {
		if err := json.Unmarshal(earningsRaw, &earnings); err != nil {
			return fmt.Errorf("failed to decode earnings: %w", err)
		}
	}
	var deductions []deductionRow
	if len(deductionsRaw) > 0 {
		if err := json.Unmarshal(deductionsRaw, &deductions); err != nil {
			return fmt.Errorf("failed to decode deductions: %w", err)
		}
	}

	slip.Earnings = make([]payslip.Earning, 0, len(earnings))
	for _, e := range earnings {
		slip.Earnings = append(slip.Earnings, payslip.Earning{Description: e.Description, Amount: e.Amount, Taxable: e.Taxable})
	}
	slip.Deductions = make([]payslip.Deduction, 0, len(deductions))
	for _, d := range deductions {
		slip.Deductions = append(slip.Deductions, payslip.Deduction{Description: d.Description, Amount: d.Amount})
	}
	return nil
}

// Create implements payslip.PayslipRepository. One payslip per employee per
// period is enforced by a unique index on (employee_id, period).
func (r *payslipRepositoryImpl) Create(ctx context.Context, slip payslip.Payslip) error {
	q := GetQuerier(ctx, r.db)

	earningsRaw, deductionsRaw, err := encodeLines(slip)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payslips (
			id, company_id, employee_id, period, earnings, deductions,
			gross_earnings, gross_deductions, taxable_earnings, net_pay,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = q.Exec(ctx, query,
		slip.ID, slip.CompanyID, slip.EmployeeID, slip.Period, earningsRaw, deductionsRaw,
		slip.Totals.GrossEarnings, slip.Totals.GrossDeductions, slip.Totals.TaxableEarnings, slip.Totals.NetPay,
		slip.CreatedAt, slip.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payslip.ErrPayslipPeriodExists
		}
		return fmt.Errorf("failed to create payslip: %w", err)
	}
	return nil
}

const payslipColumns = `
	id, company_id, employee_id, period, earnings, deductions,
	gross_earnings, gross_deductions, taxable_earnings, net_pay,
	created_at, updated_at
`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var slip payslip.Payslip
	var earningsRaw, deductionsRaw []byte
	err := row.Scan(
		&slip.ID, &slip.CompanyID, &slip.EmployeeID, &slip.Period, &earningsRaw, &deductionsRaw,
		&slip.Totals.GrossEarnings, &slip.Totals.GrossDeductions, &slip.Totals.TaxableEarnings, &slip.Totals.NetPay,
		&slip.CreatedAt, &slip.UpdatedAt,
	)
	if err != nil {
		return payslip.Payslip{}, err
	}
	if err := decodeLines(earningsRaw, deductionsRaw, &slip); err != nil {
		return payslip.Payslip{}, err
	}
	return slip, nil
}

// GetByID implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1 AND company_id = $2`

	slip, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip with id %s: %w", id, err)
	}

	return slip, nil
}

// ListByEmployee implements payslip.PayslipRepository. Most recent period
// first.
func (r *payslipRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY period DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var slips []payslip.Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip row: %w", err)
		}
		slips = append(slips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slips, nil
}
