// Package payoff simulates month-by-month card amortization under competing
// prioritization strategies. Every strategy shares one simulation loop and
// differs only in which card receives the extra monthly budget.
package payoff

import (
	"slices"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/money"
)

// Minimum payment policy.
const (
	MinimumPrincipalRate = 0.01
	MinimumFloor         = 25.0
	DefaultMaxMonths     = 360
)

// MinimumKind selects how a card's monthly minimum is derived.
type MinimumKind int

const (
	MinimumCalculated MinimumKind = iota
	MinimumFixed
	MinimumFullBalance
)

// MinimumRule is a card's minimum-payment policy. Amount is used by
// MinimumFixed only.
type MinimumRule struct {
	Kind   MinimumKind
	Amount float64
}

// CardPayoffInfo is the input state of one card.
type CardPayoffInfo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Balance     float64     `json:"balance"`
	APR         float64     `json:"apr" validate:"min=0,max=1"`
	Minimum     MinimumRule `json:"-"`
	CreditLimit float64     `json:"credit_limit" validate:"min=0"`
}

// CardState is the working copy of a card inside one run.
type CardState struct {
	CardPayoffInfo
}

// MonthlyRate is APR / 12.
func (c CardPayoffInfo) MonthlyRate() float64 {
	return c.APR / 12
}

// Utilization is balance over limit; zero when there is no limit.
func (c CardPayoffInfo) Utilization() float64 {
	if c.CreditLimit == 0 {
		return 0
	}
	return c.Balance / c.CreditLimit
}

// CalculateMinimumPayment is the amount due this month. It never exceeds
// balance: a balance below the floor is paid in full rather than overpaid.
func CalculateMinimumPayment(balance, apr float64, rule MinimumRule) float64 {
	if balance <= 0 {
		return 0
	}
	switch rule.Kind {
	case MinimumFullBalance:
		return balance
	case MinimumFixed:
		if rule.Amount > 0 {
			return min(rule.Amount, balance)
		}
	}
	calculated := balance*MinimumPrincipalRate + balance*(apr/12)
	return min(max(calculated, min(MinimumFloor, balance)), balance)
}

// ScheduleEntry is one payment to one card in one month.
type ScheduleEntry struct {
	Date             time.Time `json:"date"`
	CardID           string    `json:"card_id"`
	CardName         string    `json:"card_name"`
	Amount           float64   `json:"amount"`
	Principal        float64   `json:"principal"`
	Interest         float64   `json:"interest"`
	RemainingBalance float64   `json:"remaining_balance"`
	Extra            bool      `json:"extra"`
}

// PayoffResult is the outcome of one strategy. Converged is false when the
// month cap ended the run with balance still outstanding.
type PayoffResult struct {
	Strategy              string          `json:"strategy"`
	Description           string          `json:"description"`
	PayoffDate            time.Time       `json:"payoff_date"`
	MonthsToPayoff        int             `json:"months_to_payoff"`
	TotalInterest         float64         `json:"total_interest"`
	TotalPayments         float64         `json:"total_payments"`
	AverageMonthlyPayment float64         `json:"average_monthly_payment"`
	Schedule              []ScheduleEntry `json:"schedule"`
	CardPayoffOrder       []string        `json:"card_payoff_order"`
	Converged             bool            `json:"converged"`
}

// Options tune a run. AsOf anchors the clock: the first simulated month is the
// 1st of the following month.
type Options struct {
	MonthlyExtra float64
	AsOf         time.Time
	MaxMonths    int
}

func (o Options) maxMonths() int {
	if o.MaxMonths <= 0 {
		return DefaultMaxMonths
	}
	return o.MaxMonths
}

// simulate runs the shared monthly loop. prioritize orders the working set by
// descending priority; a nil prioritize means the extra budget is unused.
func simulate(cards []CardPayoffInfo, extra float64, prioritize Prioritizer, opts Options) PayoffResult {
	working := make([]CardState, 0, len(cards))
	for _, c := range cards {
		if c.Balance > 0 {
			working = append(working, CardState{CardPayoffInfo: c})
		}
	}

	asOf := calendar.Day(opts.AsOf)
	result := PayoffResult{PayoffDate: asOf, Converged: true, CardPayoffOrder: []string{}, Schedule: []ScheduleEntry{}}
	if len(working) == 0 {
		return result
	}

	current := calendar.FirstOfNextMonth(asOf)
	months := 0
	for len(working) > 0 && months < opts.maxMonths() {
		months++

		accrued := make([]float64, len(working))
		for i := range working {
			accrued[i] = working[i].Balance * working[i].MonthlyRate()
			working[i].Balance += accrued[i]
			result.TotalInterest += accrued[i]
		}

		var order []int
		if prioritize != nil {
			order = prioritize(slices.Clone(working))
		}

		for i := range working {
			c := &working[i]
			payment := min(CalculateMinimumPayment(c.Balance, c.APR, c.Minimum), c.Balance)
			interest := min(accrued[i], payment)
			c.Balance -= payment
			result.TotalPayments += payment
			result.Schedule = append(result.Schedule, ScheduleEntry{
				Date:             current,
				CardID:           c.ID,
				CardName:         c.Name,
				Amount:           payment,
				Principal:        payment - interest,
				Interest:         interest,
				RemainingBalance: max(0, c.Balance),
			})
		}

		if extra > 0 {
			for _, idx := range order {
				c := &working[idx]
				if c.Balance <= 0 {
					continue
				}
				payment := min(extra, c.Balance)
				c.Balance -= payment
				result.TotalPayments += payment
				result.Schedule = append(result.Schedule, ScheduleEntry{
					Date:             current,
					CardID:           c.ID,
					CardName:         c.Name,
					Amount:           payment,
					Principal:        payment,
					RemainingBalance: max(0, c.Balance),
					Extra:            true,
				})
				break
			}
		}

		remaining := working[:0]
		for _, c := range working {
			if c.Balance <= money.PayoffEpsilon {
				// A cleared card leaves the working set, so it is recorded once.
				result.CardPayoffOrder = append(result.CardPayoffOrder, c.Name)
				continue
			}
			remaining = append(remaining, c)
		}
		working = remaining

		result.PayoffDate = current
		current = calendar.AddMonthsClamped(current, 1)
	}

	result.MonthsToPayoff = months
	result.Converged = len(working) == 0
	result.TotalInterest = money.RoundCents(result.TotalInterest)
	result.TotalPayments = money.RoundCents(result.TotalPayments)
	result.AverageMonthlyPayment = money.RoundCents(result.TotalPayments / float64(months))
	return result
}
