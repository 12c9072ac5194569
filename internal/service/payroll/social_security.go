package payroll

import (
	"github.com/kudu-hr/payroll-engine-go/internal/regulation"
	"github.com/shopspring/decimal"
)

// SocialSecurityCalculator computes the period social security contribution
// for a gross pay under a country's flat-rate rule.
type SocialSecurityCalculator struct{}

func NewSocialSecurityCalculator() *SocialSecurityCalculator {
	return &SocialSecurityCalculator{}
}

// Calculate returns grossPay x rate, clamped to the rule's cap when one is
// set. Total, no error path.
func (c *SocialSecurityCalculator) Calculate(grossPay decimal.Decimal, rule regulation.ContributionRule) decimal.Decimal {
	if grossPay.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	deduction := grossPay.Mul(rule.Rate)
	if rule.MaxDeduction != nil && deduction.GreaterThan(*rule.MaxDeduction) {
		return *rule.MaxDeduction
	}
	return deduction
}
