package regulation

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var ErrUnknownCountry = errors.New("unknown country")

// Registry holds the loaded country profiles. It is read-only after Load and
// safe for concurrent use.
type Registry struct {
	profiles map[Country]*CountryProfile
}

// Load parses and validates every embedded country data file. Malformed
// tables are a deployment-time failure, so Load errors out instead of
// degrading.
func Load() (*Registry, error) {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("read regulation data: %w", err)
	}

	reg := &Registry{profiles: make(map[Country]*CountryProfile, len(entries))}
	for _, entry := range entries {
		raw, err := dataFS.ReadFile("data/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		profile, err := parseProfile(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		if _, exists := reg.profiles[profile.Country]; exists {
			return nil, fmt.Errorf("duplicate profile for %s", profile.Country)
		}
		reg.profiles[profile.Country] = profile
	}

	return reg, nil
}

// Profile returns the profile for a supported country.
func (r *Registry) Profile(c Country) (*CountryProfile, error) {
	profile, ok := r.profiles[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, c)
	}
	return profile, nil
}

// Countries lists every loaded jurisdiction.
func (r *Registry) Countries() []Country {
	countries := make([]Country, 0, len(r.profiles))
	for c := range r.profiles {
		countries = append(countries, c)
	}
	return countries
}

// ========== YAML SCHEMA ==========
//
// Amounts and rates are quoted strings so they parse through decimal without
// a float round trip. Dates are YYYY-MM-DD strings.

type rawProfile struct {
	Country        string               `yaml:"country"`
	Tax            rawTaxTable          `yaml:"tax"`
	SocialSecurity rawContribution      `yaml:"social_security"`
	WorkWeek       rawWorkWeek          `yaml:"work_week"`
	Holidays       map[int][]rawHoliday `yaml:"holidays"`
}

type rawTaxTable struct {
	AnnualRebate string       `yaml:"annual_rebate"`
	Brackets     []rawBracket `yaml:"brackets"`
}

type rawBracket struct {
	From string  `yaml:"from"`
	To   *string `yaml:"to"`
	Rate string  `yaml:"rate"`
	Base string  `yaml:"base"`
}

type rawContribution struct {
	Name         string  `yaml:"name"`
	Rate         string  `yaml:"rate"`
	MaxDeduction *string `yaml:"max_deduction"`
}

type rawWorkWeek struct {
	SixDayMinHours *string   `yaml:"six_day_min_hours"`
	DailyHours     []rawTier `yaml:"daily_hours"`
}

type rawTier struct {
	MinMonthlyHours string `yaml:"min_monthly_hours"`
	HoursPerDay     string `yaml:"hours_per_day"`
}

type rawHoliday struct {
	Date     string  `yaml:"date"`
	Name     string  `yaml:"name"`
	Observed *string `yaml:"observed"`
	Notes    string  `yaml:"notes"`
}

func parseProfile(data []byte) (*CountryProfile, error) {
	var raw rawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	country := Country(raw.Country)
	if !country.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, raw.Country)
	}

	tax, err := parseTaxTable(raw.Tax)
	if err != nil {
		return nil, fmt.Errorf("tax table: %w", err)
	}

	contribution, err := parseContribution(raw.SocialSecurity)
	if err != nil {
		return nil, fmt.Errorf("social security: %w", err)
	}

	workWeek, err := parseWorkWeek(raw.WorkWeek)
	if err != nil {
		return nil, fmt.Errorf("work week: %w", err)
	}

	holidays := make(map[int][]PublicHoliday, len(raw.Holidays))
	for year, list := range raw.Holidays {
		parsed := make([]PublicHoliday, 0, len(list))
		for _, h := range list {
			holiday, err := parseHoliday(h)
			if err != nil {
				return nil, fmt.Errorf("holidays %d: %w", year, err)
			}
			parsed = append(parsed, holiday)
		}
		holidays[year] = parsed
	}

	return &CountryProfile{
		Country:        country,
		Tax:            tax,
		SocialSecurity: contribution,
		WorkWeek:       workWeek,
		Holidays:       holidays,
	}, nil
}

func parseTaxTable(raw rawTaxTable) (TaxTable, error) {
	table := TaxTable{AnnualRebate: decimal.Zero}
	if raw.AnnualRebate != "" {
		rebate, err := decimal.NewFromString(raw.AnnualRebate)
		if err != nil {
			return TaxTable{}, fmt.Errorf("annual_rebate: %w", err)
		}
		table.AnnualRebate = rebate
	}

	if len(raw.Brackets) == 0 {
		return TaxTable{}, errors.New("no brackets")
	}

	table.Brackets = make([]TaxBracket, 0, len(raw.Brackets))
	for i, rb := range raw.Brackets {
		bracket, err := parseBracket(rb)
		if err != nil {
			return TaxTable{}, fmt.Errorf("bracket %d: %w", i, err)
		}
		table.Brackets = append(table.Brackets, bracket)
	}

	return table, validateBrackets(table.Brackets)
}

func parseBracket(raw rawBracket) (TaxBracket, error) {
	from, err := decimal.NewFromString(raw.From)
	if err != nil {
		return TaxBracket{}, fmt.Errorf("from: %w", err)
	}
	rate, err := decimal.NewFromString(raw.Rate)
	if err != nil {
		return TaxBracket{}, fmt.Errorf("rate: %w", err)
	}
	base, err := decimal.NewFromString(raw.Base)
	if err != nil {
		return TaxBracket{}, fmt.Errorf("base: %w", err)
	}

	bracket := TaxBracket{From: from, Rate: rate, Base: base}
	if raw.To != nil {
		to, err := decimal.NewFromString(*raw.To)
		if err != nil {
			return TaxBracket{}, fmt.Errorf("to: %w", err)
		}
		bracket.To = &to
	}
	return bracket, nil
}

// validateBrackets enforces ordering and contiguity: the first bracket
// starts at zero, each next bracket starts one unit above the previous cap,
// and only the last bracket is open-ended.
func validateBrackets(brackets []TaxBracket) error {
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("bracket %d: negative rate", i)
		}
		if i == 0 {
			if !b.From.IsZero() {
				return errors.New("first bracket must start at 0")
			}
		} else {
			prev := brackets[i-1]
			if prev.To == nil {
				return fmt.Errorf("bracket %d: previous bracket is open-ended", i)
			}
			if !b.From.Equal(prev.To.Add(one)) {
				return fmt.Errorf("bracket %d: starts at %s, expected %s", i, b.From, prev.To.Add(one))
			}
		}
		if i == len(brackets)-1 && b.To != nil && len(brackets) > 1 {
			return errors.New("last bracket must be open-ended")
		}
	}
	return nil
}

func parseContribution(raw rawContribution) (ContributionRule, error) {
	rate, err := decimal.NewFromString(raw.Rate)
	if err != nil {
		return ContributionRule{}, fmt.Errorf("rate: %w", err)
	}

	rule := ContributionRule{Name: raw.Name, Rate: rate}
	if raw.MaxDeduction != nil {
		max, err := decimal.NewFromString(*raw.MaxDeduction)
		if err != nil {
			return ContributionRule{}, fmt.Errorf("max_deduction: %w", err)
		}
		rule.MaxDeduction = &max
	}
	return rule, nil
}

func parseWorkWeek(raw rawWorkWeek) (WorkWeek, error) {
	week := WorkWeek{}
	if raw.SixDayMinHours != nil {
		min, err := decimal.NewFromString(*raw.SixDayMinHours)
		if err != nil {
			return WorkWeek{}, fmt.Errorf("six_day_min_hours: %w", err)
		}
		week.SixDayMinHours = &min
	}

	week.DailyHourTiers = make([]DailyHourTier, 0, len(raw.DailyHours))
	for i, t := range raw.DailyHours {
		min, err := decimal.NewFromString(t.MinMonthlyHours)
		if err != nil {
			return WorkWeek{}, fmt.Errorf("daily_hours %d: min_monthly_hours: %w", i, err)
		}
		hours, err := decimal.NewFromString(t.HoursPerDay)
		if err != nil {
			return WorkWeek{}, fmt.Errorf("daily_hours %d: hours_per_day: %w", i, err)
		}
		week.DailyHourTiers = append(week.DailyHourTiers, DailyHourTier{
			MinMonthlyHours: min,
			HoursPerDay:     hours,
		})
	}
	return week, nil
}

const dateLayout = "2006-01-02"

func parseHoliday(raw rawHoliday) (PublicHoliday, error) {
	date, err := time.Parse(dateLayout, raw.Date)
	if err != nil {
		return PublicHoliday{}, fmt.Errorf("date %q: %w", raw.Date, err)
	}

	holiday := PublicHoliday{Date: date, Name: raw.Name, Notes: raw.Notes}
	if raw.Observed != nil {
		observed, err := time.Parse(dateLayout, *raw.Observed)
		if err != nil {
			return PublicHoliday{}, fmt.Errorf("observed %q: %w", *raw.Observed, err)
		}
		holiday.ObservedDate = &observed
	}
	return holiday, nil
}
