package regulation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Country is the closed set of supported jurisdictions. Adding a country
// means adding its data file under data/ and a constant here.
type Country string

const (
	CountrySouthAfrica Country = "South Africa"
	CountryNamibia     Country = "Namibia"
)

func (c Country) Valid() bool {
	switch c {
	case CountrySouthAfrica, CountryNamibia:
		return true
	}
	return false
}

// TaxBracket is one row of a progressive tax table. Base is the cumulative
// tax payable across all lower brackets, precomputed in the data file rather
// than derived at runtime. The top bracket has no upper bound.
type TaxBracket struct {
	From decimal.Decimal
	To   *decimal.Decimal
	Rate decimal.Decimal
	Base decimal.Decimal
}

// Covers reports whether income falls inside this bracket.
func (b TaxBracket) Covers(income decimal.Decimal) bool {
	if income.LessThan(b.From) {
		return false
	}
	return b.To == nil || income.LessThanOrEqual(*b.To)
}

type TaxTable struct {
	Brackets     []TaxBracket
	AnnualRebate decimal.Decimal
}

// Flat reports whether the table is a single open-ended bracket starting at
// zero. Simplified regimes are expressed this way instead of as a full
// progressive table.
func (t TaxTable) Flat() bool {
	return len(t.Brackets) == 1 && t.Brackets[0].From.IsZero() && t.Brackets[0].To == nil
}

// ContributionRule is a flat-rate social security contribution with an
// optional absolute monthly cap. Name is the statutory scheme's short label
// (UIF, SSC) used on payslip deduction lines.
type ContributionRule struct {
	Name         string
	Rate         decimal.Decimal
	MaxDeduction *decimal.Decimal
}

// DailyHourTier maps a minimum monthly appointment-hour threshold to the
// leave hours charged per working day. Tiers are ordered highest threshold
// first; the first matching tier wins.
type DailyHourTier struct {
	MinMonthlyHours decimal.Decimal
	HoursPerDay     decimal.Decimal
}

// WorkWeek captures a jurisdiction's working-week rules.
type WorkWeek struct {
	// SixDayMinHours, when set, is the monthly appointment-hour threshold at
	// which Saturday counts as a working day.
	SixDayMinHours *decimal.Decimal
	DailyHourTiers []DailyHourTier
}

var defaultHoursPerDay = decimal.NewFromInt(8)

// SaturdayWorking reports whether Saturday is a working day for an employee
// with the given monthly appointment hours. Sunday is never a working day.
func (w WorkWeek) SaturdayWorking(appointmentHours decimal.Decimal) bool {
	return w.SixDayMinHours != nil && appointmentHours.GreaterThanOrEqual(*w.SixDayMinHours)
}

// HoursPerDay returns the leave hours charged per working day for an
// employee with the given monthly appointment hours.
func (w WorkWeek) HoursPerDay(appointmentHours decimal.Decimal) decimal.Decimal {
	for _, tier := range w.DailyHourTiers {
		if appointmentHours.GreaterThanOrEqual(tier.MinMonthlyHours) {
			return tier.HoursPerDay
		}
	}
	return defaultHoursPerDay
}

// PublicHoliday is a single calendar entry. ObservedDate is set when the
// holiday falls on a weekend and is shifted to the next working day; both
// dates are then non-working.
type PublicHoliday struct {
	Date         time.Time
	Name         string
	ObservedDate *time.Time
	Notes        string
}

// CountryProfile bundles everything the engine needs to know about one
// jurisdiction. Profiles are immutable after Load.
type CountryProfile struct {
	Country        Country
	Tax            TaxTable
	SocialSecurity ContributionRule
	WorkWeek       WorkWeek
	Holidays       map[int][]PublicHoliday
}

// HolidaysIn returns the holiday list for a calendar year. Years without
// data yield an empty list, never an error.
func (p *CountryProfile) HolidaysIn(year int) []PublicHoliday {
	return p.Holidays[year]
}
