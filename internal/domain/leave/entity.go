package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is the closed set of leave categories.
type Type string

const (
	TypeAnnual      Type = "Annual"
	TypeSick        Type = "Sick"
	TypeMaternity   Type = "Maternity"
	TypePaternity   Type = "Paternity"
	TypeBereavement Type = "Bereavement"
	TypeUnpaid      Type = "Unpaid"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeBereavement, TypeUnpaid:
		return true
	}
	return false
}

// Accrued reports whether the type builds up a balance. Unpaid leave is
// recorded but never accrued.
func (t Type) Accrued() bool {
	return t != TypeUnpaid
}

// Record is one append-only taken-leave entry. Days are always expressed in
// standardized 8-hour-day units regardless of the schedule that produced
// them, and are never negative.
type Record struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Days       decimal.Decimal
	CreatedAt  time.Time
}

type RequestStatus string

const (
	RequestStatusWaitingApproval RequestStatus = "waiting_approval"
	RequestStatusApproved        RequestStatus = "approved"
	RequestStatusRejected        RequestStatus = "rejected"
	RequestStatusCancelled       RequestStatus = "cancelled"
)

// Request is a leave request moving through the approval workflow. The
// duration breakdown computed at submission time travels with it so HR sees
// exactly what the employee saw.
type Request struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       Type

	StartDate time.Time
	EndDate   time.Time
	Reason    string

	WorkingDays    int
	LeaveHours     decimal.Decimal
	LeaveDays      decimal.Decimal
	HolidayCount   int
	HolidayMatches []string

	Status          RequestStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DurationBreakdown is the computed chargeable-duration result for a date
// range. It is ephemeral: recomputed on every call, never cached.
type DurationBreakdown struct {
	WorkingDays    int
	LeaveHours     decimal.Decimal
	LeaveDays      decimal.Decimal
	HolidayCount   int
	HolidayMatches []string
}

// Zero returns an empty breakdown with zero-valued decimals, used for
// invalid or mid-edit date ranges.
func Zero() DurationBreakdown {
	return DurationBreakdown{
		LeaveHours: decimal.Zero,
		LeaveDays:  decimal.Zero,
	}
}

// Balance is the per-type accrued/taken/available triple. Available may be
// negative; over-drawn leave is representable, not rejected here.
type Balance struct {
	Type      Type
	Accrued   decimal.Decimal
	Taken     decimal.Decimal
	Available decimal.Decimal
}
