package leave

import (
	"time"

	"github.com/kudu-hr/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== DURATION PREVIEW ==========

// DurationPreviewRequest carries a possibly mid-edit date range from the
// leave form. Dates are not validated here on purpose: an unparseable or
// inverted range yields a zero breakdown, not an error.
type DurationPreviewRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *DurationPreviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DurationBreakdownResponse struct {
	WorkingDays    int             `json:"working_days"`
	LeaveHours     decimal.Decimal `json:"leave_hours"`
	LeaveDays      decimal.Decimal `json:"leave_days"`
	HolidayCount   int             `json:"holiday_count"`
	HolidayMatches []string        `json:"holiday_matches"`
}

func NewDurationBreakdownResponse(b DurationBreakdown) DurationBreakdownResponse {
	matches := b.HolidayMatches
	if matches == nil {
		matches = []string{}
	}
	return DurationBreakdownResponse{
		WorkingDays:    b.WorkingDays,
		LeaveHours:     b.LeaveHours,
		LeaveDays:      b.LeaveDays,
		HolidayCount:   b.HolidayCount,
		HolidayMatches: matches,
	}
}

// ========== REQUEST SUBMISSION ==========

type SubmitRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !Type(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is not a known leave type"})
	}
	if !validator.IsValidDate(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidDate(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if validator.IsValidDate(r.StartDate) && validator.IsValidDate(r.EndDate) {
		start, _ := time.Parse("2006-01-02", r.StartDate)
		end, _ := time.Parse("2006-01-02", r.EndDate)
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequestRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Type       Type   `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason,omitempty"`

	Breakdown DurationBreakdownResponse `json:"breakdown"`

	Status          RequestStatus `json:"status"`
	DecidedBy       *string       `json:"decided_by,omitempty"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time     `json:"submitted_at"`
}

func NewRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:         req.ID,
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		StartDate:  req.StartDate.Format("2006-01-02"),
		EndDate:    req.EndDate.Format("2006-01-02"),
		Reason:     req.Reason,
		Breakdown: NewDurationBreakdownResponse(DurationBreakdown{
			WorkingDays:    req.WorkingDays,
			LeaveHours:     req.LeaveHours,
			LeaveDays:      req.LeaveDays,
			HolidayCount:   req.HolidayCount,
			HolidayMatches: req.HolidayMatches,
		}),
		Status:          req.Status,
		DecidedBy:       req.DecidedBy,
		DecidedAt:       req.DecidedAt,
		RejectionReason: req.RejectionReason,
		SubmittedAt:     req.SubmittedAt,
	}
}

// ========== BALANCES ==========

type BalanceResponse struct {
	Type      Type            `json:"type"`
	Accrued   decimal.Decimal `json:"accrued"`
	Taken     decimal.Decimal `json:"taken"`
	Available decimal.Decimal `json:"available"`
}

func NewBalanceResponses(balances []Balance) []BalanceResponse {
	out := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, BalanceResponse{
			Type:      b.Type,
			Accrued:   b.Accrued,
			Taken:     b.Taken,
			Available: b.Available,
		})
	}
	return out
}
