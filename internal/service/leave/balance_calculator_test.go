package leave

import (
	"testing"
	"time"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/company"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() company.LeaveSettings {
	return company.LeaveSettings{
		leave.TypeAnnual:      d("21"),
		leave.TypeSick:        d("30"),
		leave.TypeMaternity:   d("90"),
		leave.TypePaternity:   d("10"),
		leave.TypeBereavement: d("5"),
	}
}

func activeEmployee(startDate string) employee.Employee {
	return employee.Employee{
		ID:        "emp-1",
		StartDate: date(startDate),
		Status:    employee.StatusActive,
	}
}

func balanceFor(t *testing.T, balances []leave.Balance, leaveType leave.Type) leave.Balance {
	t.Helper()
	for _, b := range balances {
		if b.Type == leaveType {
			return b
		}
	}
	t.Fatalf("no balance for %s", leaveType)
	return leave.Balance{}
}

func TestBalances_FullYearOfService(t *testing.T) {
	calc := NewBalanceCalculator()

	// Exactly 365 days of service accrues the full annual entitlement.
	got := calc.Calculate(activeEmployee("2023-07-02"), nil, testSettings(), date("2024-07-01"))

	annual := balanceFor(t, got, leave.TypeAnnual)
	assert.True(t, annual.Accrued.Equal(d("21")), "got %s", annual.Accrued)
	assert.True(t, annual.Taken.IsZero())
	assert.True(t, annual.Available.Equal(d("21")))
}

func TestBalances_MidYearProRation(t *testing.T) {
	calc := NewBalanceCalculator()

	// 182 days of service: 21 * 182/365 = 10.4712... rounded to 10.47.
	got := calc.Calculate(activeEmployee("2024-01-01"), nil, testSettings(), date("2024-07-01"))

	annual := balanceFor(t, got, leave.TypeAnnual)
	assert.True(t, annual.Accrued.Equal(d("10.47")), "got %s", annual.Accrued)
}

func TestBalances_MultiYearService(t *testing.T) {
	calc := NewBalanceCalculator()

	// Two full 365-day years plus 100 days: 42 + 21*100/365 = 47.75.
	got := calc.Calculate(activeEmployee("2022-01-01"), nil, testSettings(), date("2024-04-10"))

	annual := balanceFor(t, got, leave.TypeAnnual)
	assert.True(t, annual.Accrued.Equal(d("47.75")), "got %s", annual.Accrued)
}

func TestBalances_StatutoryTypesFromDayOne(t *testing.T) {
	calc := NewBalanceCalculator()

	// Hired yesterday: annual barely accrues, statutory types are whole.
	got := calc.Calculate(activeEmployee("2024-06-30"), nil, testSettings(), date("2024-07-01"))

	assert.True(t, balanceFor(t, got, leave.TypeSick).Accrued.Equal(d("30")))
	assert.True(t, balanceFor(t, got, leave.TypeMaternity).Accrued.Equal(d("90")))
	assert.True(t, balanceFor(t, got, leave.TypePaternity).Accrued.Equal(d("10")))
	assert.True(t, balanceFor(t, got, leave.TypeBereavement).Accrued.Equal(d("5")))
	assert.True(t, balanceFor(t, got, leave.TypeAnnual).Accrued.Equal(d("0.06")))
}

func TestBalances_TakenDaysReduceAvailable(t *testing.T) {
	calc := NewBalanceCalculator()
	records := []leave.Record{
		{Type: leave.TypeAnnual, Days: d("3")},
		{Type: leave.TypeAnnual, Days: d("2.5")},
		{Type: leave.TypeSick, Days: d("1")},
	}

	got := calc.Calculate(activeEmployee("2023-07-02"), records, testSettings(), date("2024-07-01"))

	annual := balanceFor(t, got, leave.TypeAnnual)
	assert.True(t, annual.Taken.Equal(d("5.5")))
	assert.True(t, annual.Available.Equal(d("15.5")))

	sick := balanceFor(t, got, leave.TypeSick)
	assert.True(t, sick.Taken.Equal(d("1")))
	assert.True(t, sick.Available.Equal(d("29")))
}

func TestBalances_InactiveEmployee(t *testing.T) {
	calc := NewBalanceCalculator()
	emp := activeEmployee("2020-01-01")
	emp.Status = employee.StatusInactive
	records := []leave.Record{{Type: leave.TypeAnnual, Days: d("4")}}

	got := calc.Calculate(emp, records, testSettings(), date("2024-07-01"))

	// Nothing accrues; taken days surface as a deficit.
	annual := balanceFor(t, got, leave.TypeAnnual)
	assert.True(t, annual.Accrued.IsZero())
	assert.True(t, annual.Available.Equal(d("-4")))
	assert.True(t, balanceFor(t, got, leave.TypeSick).Accrued.IsZero())
}

func TestBalances_FutureStartDate(t *testing.T) {
	calc := NewBalanceCalculator()

	got := calc.Calculate(activeEmployee("2025-01-01"), nil, testSettings(), date("2024-07-01"))

	assert.True(t, balanceFor(t, got, leave.TypeAnnual).Accrued.IsZero())
}

func TestBalances_ZeroStartDate(t *testing.T) {
	calc := NewBalanceCalculator()
	emp := employee.Employee{ID: "emp-1", Status: employee.StatusActive}

	got := calc.Calculate(emp, nil, testSettings(), date("2024-07-01"))

	assert.True(t, balanceFor(t, got, leave.TypeAnnual).Accrued.IsZero())
	assert.True(t, balanceFor(t, got, leave.TypeSick).Accrued.IsZero())
}

func TestBalances_UnpaidNeverListed(t *testing.T) {
	calc := NewBalanceCalculator()
	settings := testSettings()
	settings[leave.TypeUnpaid] = d("999")
	records := []leave.Record{{Type: leave.TypeUnpaid, Days: d("2")}}

	got := calc.Calculate(activeEmployee("2023-01-01"), records, settings, date("2024-07-01"))

	for _, b := range got {
		assert.NotEqual(t, leave.TypeUnpaid, b.Type)
	}
}

func TestBalances_UnconfiguredTypesSkipped(t *testing.T) {
	calc := NewBalanceCalculator()
	settings := company.LeaveSettings{leave.TypeAnnual: d("21")}

	got := calc.Calculate(activeEmployee("2023-01-01"), nil, settings, date("2024-07-01"))

	require.Len(t, got, 1)
	assert.Equal(t, leave.TypeAnnual, got[0].Type)
}

func TestBalances_DeterministicOrder(t *testing.T) {
	calc := NewBalanceCalculator()

	got := calc.Calculate(activeEmployee("2023-01-01"), nil, testSettings(), date("2024-07-01"))

	require.Len(t, got, 5)
	want := []leave.Type{
		leave.TypeAnnual,
		leave.TypeSick,
		leave.TypeMaternity,
		leave.TypePaternity,
		leave.TypeBereavement,
	}
	for i, b := range got {
		assert.Equal(t, want[i], b.Type)
	}
}

func TestBalances_IdempotentForFixedAsOf(t *testing.T) {
	calc := NewBalanceCalculator()
	emp := activeEmployee("2022-03-15")
	asOf := date("2024-07-01")
	records := []leave.Record{{Type: leave.TypeAnnual, Days: d("7")}}

	first := calc.Calculate(emp, records, testSettings(), asOf)
	second := calc.Calculate(emp, records, testSettings(), asOf)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.True(t, first[i].Accrued.Equal(second[i].Accrued))
		assert.True(t, first[i].Available.Equal(second[i].Available))
	}
}

func TestBalances_AsOfIgnoresTimeOfDay(t *testing.T) {
	calc := NewBalanceCalculator()
	emp := activeEmployee("2023-07-02")

	morning := calc.Calculate(emp, nil, testSettings(), time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC))
	evening := calc.Calculate(emp, nil, testSettings(), time.Date(2024, 7, 1, 23, 59, 0, 0, time.UTC))

	a := balanceFor(t, morning, leave.TypeAnnual)
	b := balanceFor(t, evening, leave.TypeAnnual)
	assert.True(t, a.Accrued.Equal(b.Accrued))
}
