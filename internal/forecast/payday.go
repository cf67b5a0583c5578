package forecast

import (
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
)

// PaydaySchedule lists biweekly paydays and how many fall in each calendar
// month. Counts always cover whole months, so a horizon that starts or ends
// mid-month still sees 2 or 3 paydays for that month.
type PaydaySchedule struct {
	Days     []time.Time
	PerMonth map[string]int
}

// Paydays returns the paydays in [start, end] for a biweekly config, or nil
// for any other frequency. The anchor is the effective date when set, else the
// first PayDayOfWeek on or after start.
func Paydays(cfg models.PaycheckConfig, start, end time.Time) PaydaySchedule {
	if cfg.PayFrequency != models.PayBiweekly {
		return PaydaySchedule{}
	}

	var anchor time.Time
	if cfg.EffectiveDate != nil && !cfg.EffectiveDate.IsZero() {
		anchor = calendar.Day(*cfg.EffectiveDate)
	} else {
		anchor = calendar.NextWeekdayOnOrAfter(start, cfg.PayDayOfWeek)
	}

	from := calendar.FirstOfMonth(start)
	until := calendar.AddDays(calendar.FirstOfNextMonth(end), -1)

	offset := calendar.DaysBetween(anchor, from) % models.BiweeklyIntervalDays
	if offset < 0 {
		offset += models.BiweeklyIntervalDays
	}
	first := from
	if offset > 0 {
		first = calendar.AddDays(from, models.BiweeklyIntervalDays-offset)
	}

	sched := PaydaySchedule{PerMonth: make(map[string]int)}
	for d := first; !d.After(until); d = calendar.AddDays(d, models.BiweeklyIntervalDays) {
		sched.PerMonth[monthKey(d)]++
		if !d.Before(calendar.Day(start)) && !d.After(calendar.Day(end)) {
			sched.Days = append(sched.Days, d)
		}
	}
	return sched
}

// CountInMonth is the number of paydays in the month containing day.
func (s PaydaySchedule) CountInMonth(day time.Time) int {
	return s.PerMonth[monthKey(day)]
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// paydays emits, per payday: the net-pay deposit, one slice per shared
// expense, and the zero-amount LDBPD marker at the end of the prior day.
func (g *generator) paydays() []models.Transaction {
	cfg := g.snap.Paycheck
	if cfg == nil {
		return nil
	}
	sched := Paydays(*cfg, g.start, g.end)
	net := cfg.NetPay()

	var out []models.Transaction
	for _, day := range sched.Days {
		if !g.snap.History.HasDescription(models.PaydayDescription, day) {
			out = append(out, models.Transaction{
				Date:        day,
				Description: models.PaydayDescription,
				Amount:      net,
				Channel:     g.bank,
			})
		}

		count := sched.CountInMonth(day)
		for _, e := range g.snap.SharedExpenses {
			amount := e.SplitAmount(count)
			if amount <= 0 || g.snap.History.HasDescription(e.Name, day) {
				continue
			}
			out = append(out, models.Transaction{
				Date:        day,
				Description: e.Name,
				Amount:      -amount,
				Channel:     g.bank,
			})
		}

		marker := calendar.AddDays(day, -1)
		if marker.Before(g.start) || g.snap.History.HasDescription(models.LDBPDDescription, marker) {
			continue
		}
		out = append(out, models.Transaction{
			Date:        calendar.EndOfDay(marker),
			Description: models.LDBPDDescription,
			Amount:      0,
			Channel:     g.bank,
			Notes:       models.LDBPDNote,
		})
	}
	return out
}
