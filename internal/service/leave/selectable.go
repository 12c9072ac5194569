package leave

import (
	"github.com/kudu-hr/payroll-engine-go/internal/domain/employee"
	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
)

// TypeSelectable reports whether an employee may request the given leave
// type: maternity leave is not selectable for male employees, paternity
// leave not for female employees.
func TypeSelectable(t leave.Type, gender employee.Gender) bool {
	switch t {
	case leave.TypeMaternity:
		return gender != employee.Male
	case leave.TypePaternity:
		return gender != employee.Female
	}
	return true
}

// SelectableTypes lists the leave types offered to an employee on the
// request form.
func SelectableTypes(gender employee.Gender) []leave.Type {
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
		if TypeSelectable(t, gender) {
			types = append(types, t)
		}
	}
	return types
}
