package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        string
	CompanyID string
	FullName  string
	Email     string
	Gender    Gender

	// BasicSalary is the monthly salary in the company's currency.
	BasicSalary decimal.Decimal
	// AppointmentHours is the contracted monthly hours; it drives the
	// Namibian six-day-week and daily-leave-hour rules.
	AppointmentHours decimal.Decimal
	StartDate        time.Time
	Status           Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active reports whether the employee still accrues leave.
func (e Employee) Active() bool {
	return e.Status == StatusActive
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)
