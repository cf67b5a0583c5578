package payoff

import (
	"slices"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/money"
)

// RiskLevel grades how close a deferred-interest promotion is to expiring.
type RiskLevel string

const (
	RiskExpired RiskLevel = "EXPIRED"
	RiskHigh    RiskLevel = "HIGH"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskLow     RiskLevel = "LOW"
)

// Risk thresholds and the fallback interest period for purchases with no
// recorded creation date.
const (
	HighRiskDays          = 60
	MediumRiskDays        = 90
	DaysPerPromoMonth     = 30.0
	DefaultInterestPeriod = 365
)

// DeferredStatus is the as-of evaluation of one deferred purchase.
type DeferredStatus struct {
	Purchase             models.DeferredPurchase `json:"purchase"`
	DaysUntilExpiry      int                     `json:"days_until_expiry"`
	MonthsUntilExpiry    float64                 `json:"months_until_expiry"`
	MonthlyPaymentNeeded float64                 `json:"monthly_payment_needed"`
	Expired              bool                    `json:"expired"`
	AtRisk               bool                    `json:"at_risk"`
	Risk                 RiskLevel               `json:"risk"`
	PotentialInterest    float64                 `json:"potential_interest"`
}

// EvaluateDeferred grades a purchase as of asOf. With no time left the whole
// remaining balance is due now rather than dividing by a non-positive span.
func EvaluateDeferred(p models.DeferredPurchase, asOf time.Time) DeferredStatus {
	days := calendar.DaysBetween(asOf, p.PromoEndDate)
	months := float64(days) / DaysPerPromoMonth

	s := DeferredStatus{
		Purchase:          p,
		DaysUntilExpiry:   days,
		MonthsUntilExpiry: months,
		Expired:           days < 0,
	}

	if months <= 0 {
		s.MonthlyPaymentNeeded = p.RemainingBalance
	} else {
		s.MonthlyPaymentNeeded = money.RoundCents(p.RemainingBalance / months)
	}

	switch {
	case s.Expired:
		s.AtRisk = true
	case p.MinMonthlyPayment == nil || *p.MinMonthlyPayment == 0:
		s.AtRisk = true
	default:
		s.AtRisk = *p.MinMonthlyPayment*months < p.RemainingBalance
	}

	switch {
	case s.Expired:
		s.Risk = RiskExpired
	case days < HighRiskDays:
		s.Risk = RiskHigh
	case days < MediumRiskDays:
		s.Risk = RiskMedium
	default:
		s.Risk = RiskLow
	}

	interestDays := DefaultInterestPeriod
	if p.CreatedDate != nil && !p.CreatedDate.IsZero() {
		interestDays = calendar.DaysBetween(*p.CreatedDate, p.PromoEndDate)
	}
	s.PotentialInterest = money.RoundCents(p.PurchaseAmount * p.StandardAPR / 365 * float64(interestDays))
	return s
}

// EvaluateAll grades every purchase, soonest expiry first.
func EvaluateAll(purchases []models.DeferredPurchase, asOf time.Time) []DeferredStatus {
	out := make([]DeferredStatus, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, EvaluateDeferred(p, asOf))
	}
	slices.SortStableFunc(out, func(a, b DeferredStatus) int {
		return a.Purchase.PromoEndDate.Compare(b.Purchase.PromoEndDate)
	})
	return out
}

// ExpiringWithin keeps statuses expiring in [0, days] days.
func ExpiringWithin(statuses []DeferredStatus, days int) []DeferredStatus {
	var out []DeferredStatus
	for _, s := range statuses {
		if s.DaysUntilExpiry >= 0 && s.DaysUntilExpiry <= days {
			out = append(out, s)
		}
	}
	return out
}

// AtRisk keeps statuses that will not be cleared before expiry.
func AtRisk(statuses []DeferredStatus) []DeferredStatus {
	var out []DeferredStatus
	for _, s := range statuses {
		if s.AtRisk {
			out = append(out, s)
		}
	}
	return out
}
