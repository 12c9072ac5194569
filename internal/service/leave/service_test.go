package leave

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/pkg/database"
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := s.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type stubCompanyRepo struct {
	companies map[string]company.Company
}

func (s *stubCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

type stubLeaveRepo struct {
	requests map[string]leave.Request
	records  []leave.Record
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{requests: map[string]leave.Request{}}
}

func (s *stubLeaveRepo) CreateRequest(_ context.Context, req leave.Request) error {
	s.requests[req.ID] = req
	return nil
}

func (s *stubLeaveRepo) GetRequestByID(_ context.Context, id string, companyID string) (leave.Request, error) {
	req, ok := s.requests[id]
	if !ok || req.CompanyID != companyID {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (s *stubLeaveRepo) UpdateRequest(_ context.Context, req leave.Request) error {
	if _, ok := s.requests[req.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	s.requests[req.ID] = req
	return nil
}

func (s *stubLeaveRepo) CreateRecord(_ context.Context, record leave.Record) error {
	s.records = append(s.records, record)
	return nil
}

func (s *stubLeaveRepo) ListRecordsByEmployee(_ context.Context, employeeID string) ([]leave.Record, error) {
	var out []leave.Record
	for _, r := range s.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func authedContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"user_id":    userID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestLeaveService(t *testing.T) (*Service, *stubLeaveRepo) {
	t.Helper()
	reg, err := regulation.Load()
	require.NoError(t, err)

	employees := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID:               "emp-1",
			CompanyID:        "company-1",
			Gender:           employee.Male,
			AppointmentHours: d("160"),
			StartDate:        date("2023-01-01"),
			Status:           employee.StatusActive,
		},
		"emp-2": {
			ID:               "emp-2",
			CompanyID:        "company-1",
			Gender:           employee.Female,
			AppointmentHours: d("160"),
			StartDate:        date("2023-01-01"),
			Status:           employee.StatusInactive,
		},
	}}
	companies := &stubCompanyRepo{companies: map[string]company.Company{
		"company-1": {
			ID:      "company-1",
			Country: regulation.CountrySouthAfrica,
			LeaveSettings: company.LeaveSettings{
				leave.TypeAnnual: d("21"),
				leave.TypeSick:   d("30"),
			},
		},
	}}
	leaveRepo := newStubLeaveRepo()

	svc := NewService(nil, leaveRepo, employees, companies, NewDurationCalculator(reg), NewBalanceCalculator())
	// The stubs ignore the querier, so the closure runs without a pool.
	svc.runTx = func(ctx context.Context, _ *database.DB, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	return svc, leaveRepo
}

func TestPreviewDuration_MidEditDates(t *testing.T) {
	svc, _ := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	// A half-typed end date yields a zero breakdown, not an error.
	got, err := svc.PreviewDuration(ctx, leave.DurationPreviewRequest{
		EmployeeID: "emp-1",
		StartDate:  "2024-08-05",
		EndDate:    "2024-08",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, got.WorkingDays)
	assert.True(t, got.LeaveDays.IsZero())
	assert.NotNil(t, got.HolidayMatches)
}

func TestPreviewDuration_ValidRange(t *testing.T) {
	svc, _ := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	// Monday through Friday, no holidays in range.
	got, err := svc.PreviewDuration(ctx, leave.DurationPreviewRequest{
		EmployeeID: "emp-1",
		StartDate:  "2024-08-12",
		EndDate:    "2024-08-16",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, got.WorkingDays)
	assert.True(t, got.LeaveDays.Equal(d("5")))
}

func TestSubmitRequest(t *testing.T) {
	svc, repo := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	got, err := svc.SubmitRequest(ctx, leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       string(leave.TypeAnnual),
		StartDate:  "2024-12-23",
		EndDate:    "2024-12-27",
		Reason:     "Family holiday",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusWaitingApproval, got.Status)
	// 23, 24, 27 are working days; 25 and 26 are holidays.
	assert.Equal(t, 3, got.Breakdown.WorkingDays)
	assert.Equal(t, 2, got.Breakdown.HolidayCount)
	assert.True(t, got.Breakdown.LeaveDays.Equal(d("3")))

	stored, ok := repo.requests[got.ID]
	require.True(t, ok)
	assert.Equal(t, leave.TypeAnnual, stored.Type)
}

func TestSubmitRequest_TypeNotSelectable(t *testing.T) {
	svc, _ := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	_, err := svc.SubmitRequest(ctx, leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       string(leave.TypeMaternity),
		StartDate:  "2024-08-05",
		EndDate:    "2024-08-09",
	})

	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotSelectable)
}

func TestSubmitRequest_InvalidRange(t *testing.T) {
	svc, _ := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	_, err := svc.SubmitRequest(ctx, leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       string(leave.TypeAnnual),
		StartDate:  "2024-08-09",
		EndDate:    "2024-08-05",
	})

	assert.Error(t, err)
}

func TestSubmitRequest_InactiveEmployee(t *testing.T) {
	svc, _ := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	_, err := svc.SubmitRequest(ctx, leave.SubmitRequestRequest{
		EmployeeID: "emp-2",
		Type:       string(leave.TypeAnnual),
		StartDate:  "2024-08-12",
		EndDate:    "2024-08-16",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestApproveRequest(t *testing.T) {
	svc, repo := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "hr-1")

	submitted, err := svc.SubmitRequest(ctx, leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       string(leave.TypeAnnual),
		StartDate:  "2024-08-12",
		EndDate:    "2024-08-16",
	})
	require.NoError(t, err)

	approved, err := svc.ApproveRequest(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, "hr-1", *approved.DecidedBy)

	// Approval appends the taken-leave record carrying the standardized
	// 8-hour-day count from the submission breakdown.
	require.Len(t, repo.records, 1)
	record := repo.records[0]
	assert.Equal(t, "emp-1", record.EmployeeID)
	assert.Equal(t, leave.TypeAnnual, record.Type)
	assert.True(t, record.Days.Equal(submitted.Breakdown.LeaveDays))
	assert.True(t, record.Days.Equal(d("5")))

	// A second decision on the same request is refused and writes nothing.
	_, err = svc.ApproveRequest(ctx, submitted.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	assert.Len(t, repo.records, 1)
}

func TestRejectRequest(t *testing.T) {
	svc, repo := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "hr-1")

	submitted, err := svc.SubmitRequest(ctx, leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       string(leave.TypeAnnual),
		StartDate:  "2024-08-05",
		EndDate:    "2024-08-09",
	})
	require.NoError(t, err)

	rejected, err := svc.RejectRequest(ctx, submitted.ID, "Short staffed")
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.DecidedBy)
	assert.Equal(t, "hr-1", *rejected.DecidedBy)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Short staffed", *rejected.RejectionReason)

	// A second decision on the same request is refused.
	_, err = svc.RejectRequest(ctx, submitted.ID, "Again")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	// No taken-leave record was written.
	assert.Empty(t, repo.records)
}

func TestRejectRequest_NotFound(t *testing.T) {
	svc, _ := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "hr-1")

	_, err := svc.RejectRequest(ctx, "nope", "")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestBalances(t *testing.T) {
	svc, repo := newTestLeaveService(t)
	ctx := authedContext(t, "company-1", "user-1")

	repo.records = append(repo.records, leave.Record{
		EmployeeID: "emp-1",
		Type:       leave.TypeAnnual,
		Days:       d("4"),
	})

	got, err := svc.Balances(ctx, "emp-1", date("2024-01-01"))
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Hired 2023-01-01: exactly one 365-day year by 2024-01-01.
	assert.Equal(t, leave.TypeAnnual, got[0].Type)
	assert.True(t, got[0].Accrued.Equal(d("21")), "got %s", got[0].Accrued)
	assert.True(t, got[0].Taken.Equal(d("4")))
	assert.True(t, got[0].Available.Equal(d("17")))

	assert.Equal(t, leave.TypeSick, got[1].Type)
	assert.True(t, got[1].Available.Equal(d("30")))
}
