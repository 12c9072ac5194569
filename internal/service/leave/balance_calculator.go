package leave

import (
	"time"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Accrual uses a fixed 365-day year: one full entitlement per completed
// year, linear daily pro-ration inside the current one. Leap years are
// deliberately not special-cased; the resulting one-day-per-four-years
// drift matches the ledgers this engine has to reproduce.
var daysPerYear = decimal.NewFromInt(365)

// balanceOrder fixes the output ordering for deterministic rendering.
// Derived from the type set so a non-accruing type can never be listed.
var balanceOrder = accruingTypes()

func accruingTypes() []leave.Type {
	all := []leave.Type{
		leave.TypeAnnual,
		leave.TypeSick,
		leave.TypeMaternity,
		leave.TypePaternity,
		leave.TypeBereavement,
		leave.TypeUnpaid,
	}
	types := make([]leave.Type, 0, len(all))
	for _, t := range all {
		if t.Accrued() {
			types = append(types, t)
		}
	}
	return types
}

// BalanceCalculator computes per-type accrued/taken/available balances.
// asOf is explicit so balances can be recomputed for any point in time and
// tests stay deterministic.
type BalanceCalculator struct{}

func NewBalanceCalculator() *BalanceCalculator {
	return &BalanceCalculator{}
}

// Calculate returns one balance per accruing leave type configured in the
// company's settings. Unpaid leave never accrues and is never listed.
func (c *BalanceCalculator) Calculate(
	emp employee.Employee,
	records []leave.Record,
	settings company.LeaveSettings,
	asOf time.Time,
) []leave.Balance {
	takenByType := make(map[leave.Type]decimal.Decimal, len(records))
	for _, r := range records {
		takenByType[r.Type] = takenByType[r.Type].Add(r.Days)
	}

	balances := make([]leave.Balance, 0, len(settings))
	for _, leaveType := range balanceOrder {
		if _, configured := settings[leaveType]; !configured {
			continue
		}
		annualDays := settings.AnnualDays(leaveType)

		taken := takenByType[leaveType]
		accrued := c.accrue(emp, leaveType, annualDays, asOf).Round(2)

		balances = append(balances, leave.Balance{
			Type:      leaveType,
			Accrued:   accrued,
			Taken:     taken,
			Available: accrued.Sub(taken),
		})
	}
	return balances
}

func (c *BalanceCalculator) accrue(emp employee.Employee, leaveType leave.Type, annualDays decimal.Decimal, asOf time.Time) decimal.Decimal {
	// A terminated employee stops accruing; recorded usage then shows as a
	// deficit rather than silently building entitlement. An employee with
	// no usable start date is treated the same way.
	if !emp.Active() || emp.StartDate.IsZero() {
		return decimal.Zero
	}

	switch leaveType {
	case leave.TypeAnnual:
		if annualDays.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		diffDays := elapsedDays(emp.StartDate, asOf)
		fullYears := diffDays / 365
		remainder := diffDays % 365
		return annualDays.Mul(decimal.NewFromInt(fullYears)).
			Add(annualDays.Mul(decimal.NewFromInt(remainder)).Div(daysPerYear))
	default:
		// Statutory types are not service-linked: full entitlement from
		// day one.
		return annualDays
	}
}

// elapsedDays is the whole-day distance from start to asOf, floored at
// zero for future-dated starts.
func elapsedDays(start, asOf time.Time) int64 {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	days := int64(asOf.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
