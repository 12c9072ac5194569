package leave

import (
	"time"

	"github.com/kudu-hr/payroll-engine-go/internal/domain/leave"
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/shopspring/decimal"
)

var eightHours = decimal.NewFromInt(8)

// DurationCalculator turns an inclusive date range into the chargeable
// duration for an employee's jurisdiction and schedule: working days,
// leave hours at the applicable daily rate, and leave days normalized to
// 8-hour units so ledgers compare across schedules.
type DurationCalculator struct {
	registry *regulation.Registry
}

func NewDurationCalculator(registry *regulation.Registry) *DurationCalculator {
	return &DurationCalculator{registry: registry}
}

type holidayMatch struct {
	name     string
	observed bool
}

const dateLayout = "2006-01-02"

// Calculate walks every calendar day from startDate to endDate inclusive.
// Holidays win over weekend exclusion: a holiday is reported once, as a
// holiday, and never double-subtracted. An inverted or zero range yields a
// zero breakdown because the request form calls this mid-edit.
func (c *DurationCalculator) Calculate(
	country regulation.Country,
	appointmentHours decimal.Decimal,
	startDate, endDate time.Time,
) leave.DurationBreakdown {
	if startDate.IsZero() || endDate.IsZero() || endDate.Before(startDate) {
		return leave.Zero()
	}

	start := truncateToDay(startDate)
	end := truncateToDay(endDate)

	// Without a profile (unknown country) the defaults apply: five-day
	// week, 8-hour days, no holiday calendar.
	saturdayWorking := false
	hoursPerDay := eightHours
	holidays := map[string]holidayMatch{}
	if profile, err := c.registry.Profile(country); err == nil {
		saturdayWorking = profile.WorkWeek.SaturdayWorking(appointmentHours)
		hoursPerDay = profile.WorkWeek.HoursPerDay(appointmentHours)
		holidays = collectHolidays(profile, start.Year(), end.Year())
	}

	breakdown := leave.Zero()
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)

		if match, ok := holidays[key]; ok {
			breakdown.HolidayCount++
			entry := key + " - " + match.name
			if match.observed {
				entry += " (observed)"
			}
			breakdown.HolidayMatches = append(breakdown.HolidayMatches, entry)
			continue
		}

		switch day.Weekday() {
		case time.Sunday:
			continue
		case time.Saturday:
			if !saturdayWorking {
				continue
			}
		}

		breakdown.WorkingDays++
		breakdown.LeaveHours = breakdown.LeaveHours.Add(hoursPerDay)
	}

	breakdown.LeaveHours = breakdown.LeaveHours.Round(2)
	breakdown.LeaveDays = breakdown.LeaveHours.Div(eightHours).Round(2)
	return breakdown
}

// collectHolidays builds the skip set for every calendar year the range
// touches. Each holiday contributes its original date and, when shifted off
// a weekend, its observed date as well.
func collectHolidays(profile *regulation.CountryProfile, fromYear, toYear int) map[string]holidayMatch {
	holidays := make(map[string]holidayMatch)
	for year := fromYear; year <= toYear; year++ {
		for _, h := range profile.HolidaysIn(year) {
			holidays[h.Date.Format(dateLayout)] = holidayMatch{name: h.Name}
			if h.ObservedDate != nil {
				holidays[h.ObservedDate.Format(dateLayout)] = holidayMatch{name: h.Name, observed: true}
			}
		}
	}
	return holidays
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
