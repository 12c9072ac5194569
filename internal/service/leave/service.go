package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/database"
	"github.com/kudu-hr/payroll-engine-go/internal/repository/postgresql"
)

type Service struct {
	db           *database.DB
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository

	duration *DurationCalculator
	balance  *BalanceCalculator

	// runTx wraps the approval write pair in a transaction. Swappable so
	// tests can run the closure without a live pool.
	runTx func(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error
}

func NewService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	duration *DurationCalculator,
	balance *BalanceCalculator,
) *Service {
	return &Service{
		db:           db,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		duration:     duration,
		balance:      balance,
		runTx:        postgresql.WithTransaction,
	}
}

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

// PreviewDuration computes the chargeable breakdown for a possibly mid-edit
// date range. Unparseable dates come through as zero times and yield a zero
// breakdown; the form clears itself rather than erroring.
func (s *Service) PreviewDuration(ctx context.Context, req leave.DurationPreviewRequest) (leave.DurationBreakdownResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.DurationBreakdownResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.DurationBreakdownResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return leave.DurationBreakdownResponse{}, err
	}

	comp, err := s.companyRepo.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return leave.DurationBreakdownResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	breakdown := s.duration.Calculate(comp.Country, emp.AppointmentHours, start, end)
	return leave.NewDurationBreakdownResponse(breakdown), nil
}

// SubmitRequest computes the breakdown for the requested range and files
// the request for approval with the breakdown attached.
func (s *Service) SubmitRequest(ctx context.Context, req leave.SubmitRequestRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !emp.Active() {
		return leave.RequestResponse{}, employee.ErrEmployeeInactive
	}

	leaveType := leave.Type(req.Type)
	if !TypeSelectable(leaveType, emp.Gender) {
		return leave.RequestResponse{}, leave.ErrLeaveTypeNotSelectable
	}

	comp, err := s.companyRepo.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	breakdown := s.duration.Calculate(comp.Country, emp.AppointmentHours, start, end)

	now := time.Now()
	request := leave.Request{
		ID:             uuid.NewString(),
		EmployeeID:     emp.ID,
		CompanyID:      companyID,
		Type:           leaveType,
		StartDate:      start,
		EndDate:        end,
		Reason:         req.Reason,
		WorkingDays:    breakdown.WorkingDays,
		LeaveHours:     breakdown.LeaveHours,
		LeaveDays:      breakdown.LeaveDays,
		HolidayCount:   breakdown.HolidayCount,
		HolidayMatches: breakdown.HolidayMatches,
		Status:         leave.RequestStatusWaitingApproval,
		SubmittedAt:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.leaveRepo.CreateRequest(ctx, request); err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.NewRequestResponse(request), nil
}

// ApproveRequest marks the request approved and appends the taken-leave
// record in the same transaction. The record carries the standardized
// 8-hour-day count from the breakdown computed at submission.
func (s *Service) ApproveRequest(ctx context.Context, requestID string) (leave.RequestResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	var approved leave.Request
	err = s.runTx(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := s.leaveRepo.GetRequestByID(txCtx, requestID, companyID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusWaitingApproval {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		now := time.Now()
		request.Status = leave.RequestStatusApproved
		request.DecidedBy = &userID
		request.DecidedAt = &now
		request.UpdatedAt = now
		if err := s.leaveRepo.UpdateRequest(txCtx, request); err != nil {
			return err
		}

		record := leave.Record{
			ID:         uuid.NewString(),
			EmployeeID: request.EmployeeID,
			Type:       request.Type,
			StartDate:  request.StartDate,
			EndDate:    request.EndDate,
			Days:       request.LeaveDays,
			CreatedAt:  now,
		}
		if err := s.leaveRepo.CreateRecord(txCtx, record); err != nil {
			return err
		}

		approved = request
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.NewRequestResponse(approved), nil
}

func (s *Service) RejectRequest(ctx context.Context, requestID string, reason string) (leave.RequestResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	request, err := s.leaveRepo.GetRequestByID(ctx, requestID, companyID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.Status != leave.RequestStatusWaitingApproval {
		return leave.RequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	now := time.Now()
	request.Status = leave.RequestStatusRejected
	request.DecidedBy = &userID
	request.DecidedAt = &now
	request.UpdatedAt = now
	if reason != "" {
		request.RejectionReason = &reason
	}

	if err := s.leaveRepo.UpdateRequest(ctx, request); err != nil {
		return leave.RequestResponse{}, err
	}

	return leave.NewRequestResponse(request), nil
}

// Balances returns the employee's per-type balances as of the given date.
// asOf defaults to today at the HTTP edge; everything below it is
// deterministic.
func (s *Service) Balances(ctx context.Context, employeeID string, asOf time.Time) ([]leave.BalanceResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	comp, err := s.companyRepo.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return nil, err
	}

	records, err := s.leaveRepo.ListRecordsByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	balances := s.balance.Calculate(emp, records, comp.LeaveSettings, asOf)
	return leave.NewBalanceResponses(balances), nil
}
