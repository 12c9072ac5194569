package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

// CreateRequest implements leave.LeaveRepository. The duration breakdown
// travels with the request row; holiday matches are stored as jsonb.
func (r *leaveRepositoryImpl) CreateRequest(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	matches, err := json.Marshal(req.HolidayMatches)
	if err != nil {
		return fmt.Errorf("failed to encode holiday matches: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id, type, start_date, end_date, reason,
			working_days, leave_hours, leave_days, holiday_count, holiday_matches,
			status, submitted_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.CompanyID, req.Type, req.StartDate, req.EndDate, req.Reason,
		req.WorkingDays, req.LeaveHours, req.LeaveDays, req.HolidayCount, matches,
		req.Status, req.SubmittedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

// GetRequestByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetRequestByID(ctx context.Context, id string, companyID string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, type, start_date, end_date, reason,
		       working_days, leave_hours, leave_days, holiday_count, holiday_matches,
		       status, decided_by, decided_at, rejection_reason,
		       submitted_at, created_at, updated_at
		FROM leave_requests
		WHERE id = $1 AND company_id = $2
	`

	var req leave.Request
	var matchesRaw []byte
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason,
		&req.WorkingDays, &req.LeaveHours, &req.LeaveDays, &req.HolidayCount, &matchesRaw,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request with id %s: %w", id, err)
	}

	if len(matchesRaw) > 0 {
		if err := json.Unmarshal(matchesRaw, &req.HolidayMatches); err != nil {
			return leave.Request{}, fmt.Errorf("failed to decode holiday matches for request %s: %w", id, err)
		}
	}

	return req, nil
}

// UpdateRequest implements leave.LeaveRepository. Only the decision fields
// change after submission.
func (r *leaveRepositoryImpl) UpdateRequest(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = $5
		WHERE id = $6 AND company_id = $7
	`

	tag, err := q.Exec(ctx, query,
		req.Status, req.DecidedBy, req.DecidedAt, req.RejectionReason, req.UpdatedAt,
		req.ID, req.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// CreateRecord implements leave.LeaveRepository. Records are append-only.
func (r *leaveRepositoryImpl) CreateRecord(ctx context.Context, record leave.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_records (id, employee_id, type, start_date, end_date, days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.Type,
		record.StartDate, record.EndDate, record.Days, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create leave record: %w", err)
	}
	return nil
}

// ListRecordsByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListRecordsByEmployee(ctx context.Context, employeeID string) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, start_date, end_date, days, created_at
		FROM leave_records
		WHERE employee_id = $1
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		var rec leave.Record
		err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Type, &rec.StartDate, &rec.EndDate, &rec.Days, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
