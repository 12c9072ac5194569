package company

import (
	"time"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/shopspring/decimal"
)

type Company struct {
	ID      string
	Name    string
	Country regulation.Country

	// LeaveSettings maps a leave type to its annual day entitlement. A type
	// absent from the map has zero entitlement and is not accrued.
	LeaveSettings LeaveSettings

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LeaveSettings map[leave.Type]decimal.Decimal

// AnnualDays returns the configured entitlement for a type, zero when the
// type is not configured.
func (s LeaveSettings) AnnualDays(t leave.Type) decimal.Decimal {
	if days, ok := s[t]; ok {
		return days
	}
	return decimal.Zero
}
