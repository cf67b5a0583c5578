// Package calendar holds the day-precision date arithmetic shared by the
// forecast and payoff engines. Dates are time.Time values at UTC midnight.
package calendar

import (
	"fmt"
	"iter"
	"time"

	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
)

// Layout is the ISO day format used for dedup keys and CLI input.
const Layout = "2006-01-02"

// Date builds a validated calendar date. Out-of-range months or days return
// ErrInvalidCalendarDate instead of normalizing into a neighbouring month.
func Date(year int, month time.Month, day int) (time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidCalendarDate,
			fmt.Sprintf("month %d out of range", month))
	}
	if day < 1 || day > DaysIn(year, month) {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidCalendarDate,
			fmt.Sprintf("day %d out of range for %04d-%02d", day, year, month))
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// MustDate is Date for literals known to be valid. It panics otherwise.
func MustDate(year int, month time.Month, day int) time.Time {
	d, err := Date(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInvalidCalendarDate, err)
	}
	return t, nil
}

// Day drops the clock portion of t, keeping its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Key formats the day part of t for use in dedup keys.
func Key(t time.Time) string {
	return t.Format(Layout)
}

// EndOfDay is the last second of t's day.
func EndOfDay(t time.Time) time.Time {
	return Day(t).Add(24*time.Hour - time.Second)
}

// DaysIn returns the length of the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddDays moves t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// DaysBetween counts whole days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// FirstOfMonth returns the 1st of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns the 1st of the month after t's.
func FirstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// NextWeekdayOnOrAfter returns the first wd on or after d.
func NextWeekdayOnOrAfter(d time.Time, wd time.Weekday) time.Time {
	d = Day(d)
	ahead := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, ahead)
}

// AddMonthsClamped adds n months, clamping the day to the target month's
// length. Jan 31 + 1 month is Feb 28 (or 29), never Mar 2 or 3.
func AddMonthsClamped(d time.Time, n int) time.Time {
	first := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day()
	if last := DaysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// ValidateRange rejects a horizon whose end precedes its start.
func ValidateRange(start, end time.Time) error {
	if Day(end).Before(Day(start)) {
		return apperrors.WithMessage(apperrors.ErrInvalidDateRange,
			fmt.Sprintf("horizon end %s is before start %s", Key(end), Key(start)))
	}
	return nil
}

// Days yields every day in [start, end] inclusive. An inverted range yields
// nothing; call ValidateRange first when that is a caller error.
func Days(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		last := Day(end)
		for d := Day(start); !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Months yields the 1st of every month touching [start, end].
func Months(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		last := Day(end)
		for m := FirstOfMonth(start); !m.After(last); m = FirstOfNextMonth(m) {
			if !yield(m) {
				return
			}
		}
	}
}

// DayInMonthRolling places day in the month of m. A day past the month's end
// spills the excess into the following month (Dec rolls into Jan).
func DayInMonthRolling(m time.Time, day int) time.Time {
	last := DaysIn(m.Year(), m.Month())
	if day <= last {
		return time.Date(m.Year(), m.Month(), day, 0, 0, 0, 0, time.UTC)
	}
	next := FirstOfNextMonth(m)
	return next.AddDate(0, 0, day-last-1)
}
