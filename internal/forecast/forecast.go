// Package forecast synthesizes the future transaction stream: ordinary
// day-of-month rules, special-coded schedules, paydays with their boundary
// markers and shared-expense slices, and credit-card interest accrual.
// It is a pure function of its inputs and performs no persistence.
package forecast

import (
	"slices"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
)

// Defaults applied by Options.Range.
const (
	DefaultMonthsAhead = 12
	DefaultBankChannel = "C"
)

// Options selects the horizon. End wins over MonthsAhead when set.
type Options struct {
	Start       time.Time
	End         time.Time
	MonthsAhead int
	BankChannel string
}

// Range resolves the inclusive [start, end] horizon.
func (o Options) Range() (time.Time, time.Time, error) {
	start := calendar.Day(o.Start)
	end := o.End
	if end.IsZero() {
		months := o.MonthsAhead
		if months <= 0 {
			months = DefaultMonthsAhead
		}
		end = calendar.AddMonthsClamped(start, months)
	}
	end = calendar.Day(end)
	if err := calendar.ValidateRange(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (o Options) bankChannel() string {
	if o.BankChannel == "" {
		return DefaultBankChannel
	}
	return o.BankChannel
}

// Snapshot is the read-only entity state one generation run works from.
type Snapshot struct {
	Rules          []models.RecurringCharge
	Paycheck       *models.PaycheckConfig
	SharedExpenses []models.SharedExpense
	Cards          []models.CreditCard
	History        *History
}

// LinkedRuleIDs are the rules replaced by a shared expense.
func (s Snapshot) LinkedRuleIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, e := range s.SharedExpenses {
		if e.LinkedRecurringID != nil {
			ids[*e.LinkedRecurringID] = struct{}{}
		}
	}
	return ids
}

// Generate projects every sub-generator across the horizon and returns the
// merged stream stably sorted by date. Same-day ties keep generation order:
// ordinary rules, then special schedules, then paydays, then interest.
func Generate(snap Snapshot, opts Options) ([]models.Transaction, error) {
	start, end, err := opts.Range()
	if err != nil {
		return nil, err
	}

	g := &generator{
		snap:   snap,
		start:  start,
		end:    end,
		bank:   opts.bankChannel(),
		linked: snap.LinkedRuleIDs(),
		cards:  make(map[string]models.CreditCard, len(snap.Cards)),
	}
	for _, c := range snap.Cards {
		g.cards[c.ID] = c
	}

	var out []models.Transaction
	out = append(out, g.ordinary()...)
	out = append(out, g.special()...)
	out = append(out, g.paydays()...)
	out = append(out, g.interest(out)...)

	slices.SortStableFunc(out, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

type generator struct {
	snap   Snapshot
	start  time.Time
	end    time.Time
	bank   string
	linked map[string]struct{}
	cards  map[string]models.CreditCard
}

func (g *generator) skipRule(r models.RecurringCharge) bool {
	if !r.IsActive {
		return true
	}
	_, isLinked := g.linked[r.ID]
	return isLinked
}

func ruleTransaction(r models.RecurringCharge, day time.Time, amount float64, channel string) models.Transaction {
	id := r.ID
	return models.Transaction{
		Date:              day,
		Description:       r.Name,
		Amount:            amount,
		Channel:           channel,
		RecurringChargeID: &id,
	}
}

// ordinary expands calendar-day rules by exact day equality. A day past the
// end of a short month simply does not occur that month.
func (g *generator) ordinary() []models.Transaction {
	var out []models.Transaction
	for day := range calendar.Days(g.start, g.end) {
		for _, r := range g.snap.Rules {
			if g.skipRule(r) {
				continue
			}
			s := r.Schedule()
			if s.Kind != models.ScheduleMonthly || s.Day != day.Day() {
				continue
			}
			if g.snap.History.HasRule(r.ID, day) {
				continue
			}
			out = append(out, ruleTransaction(r, day, ResolveAmount(r, g.cards), r.Channel))
		}
	}
	return out
}

// special expands biweekly-anchored and fixed-15th schedules onto the bank
// channel at the rule's literal amount.
func (g *generator) special() []models.Transaction {
	var out []models.Transaction
	for _, r := range g.snap.Rules {
		if g.skipRule(r) {
			continue
		}
		s := r.Schedule()
		var days []time.Time
		switch s.Kind {
		case models.ScheduleBiweeklyAnchored:
			for d := calendar.NextWeekdayOnOrAfter(g.start, s.Weekday); !d.After(g.end); d = calendar.AddDays(d, models.BiweeklyIntervalDays) {
				days = append(days, d)
			}
		case models.ScheduleMonthlyFixedDay:
			for m := range calendar.Months(g.start, g.end) {
				if s.Day > calendar.DaysIn(m.Year(), m.Month()) {
					continue
				}
				d := time.Date(m.Year(), m.Month(), s.Day, 0, 0, 0, 0, time.UTC)
				if !d.Before(g.start) && !d.After(g.end) {
					days = append(days, d)
				}
			}
		default:
			continue
		}
		for _, d := range days {
			if g.snap.History.HasRule(r.ID, d) {
				continue
			}
			out = append(out, ruleTransaction(r, d, r.Amount, g.bank))
		}
	}
	return out
}
