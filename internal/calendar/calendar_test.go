package calendar_test

import (
	"testing"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/testutil"
)

func TestDate(t *testing.T) {
	t.Run("valid_leap_day", func(t *testing.T) {
		d, err := calendar.Date(2024, time.February, 29)
		testutil.AssertNoError(t, err)
		if d.Day() != 29 || d.Location() != time.UTC {
			t.Errorf("expected 2024-02-29 UTC, got %v", d)
		}
	})

	t.Run("rejects_non_leap_feb_29", func(t *testing.T) {
		_, err := calendar.Date(2025, time.February, 29)
		testutil.AssertAppError(t, err, "INVALID_CALENDAR_DATE")
	})

	t.Run("rejects_month_13", func(t *testing.T) {
		_, err := calendar.Date(2025, 13, 1)
		testutil.AssertAppError(t, err, "INVALID_CALENDAR_DATE")
	})

	t.Run("parse_rejects_garbage", func(t *testing.T) {
		_, err := calendar.Parse("2025-02-30")
		testutil.AssertAppError(t, err, "INVALID_CALENDAR_DATE")
	})
}

func TestNextWeekdayOnOrAfter(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		wd   time.Weekday
		want time.Time
	}{
		{"same_day", calendar.MustDate(2025, time.June, 6), time.Friday, calendar.MustDate(2025, time.June, 6)},
		{"later_in_week", calendar.MustDate(2025, time.June, 1), time.Friday, calendar.MustDate(2025, time.June, 6)},
		{"wraps_week", calendar.MustDate(2025, time.June, 7), time.Friday, calendar.MustDate(2025, time.June, 13)},
		{"crosses_year", calendar.MustDate(2025, time.December, 31), time.Monday, calendar.MustDate(2026, time.January, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.NextWeekdayOnOrAfter(tt.from, tt.wd)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", calendar.Key(tt.want), calendar.Key(got))
			}
		})
	}
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"jan31_to_feb_non_leap", calendar.MustDate(2025, time.January, 31), 1, calendar.MustDate(2025, time.February, 28)},
		{"jan31_to_feb_leap", calendar.MustDate(2024, time.January, 31), 1, calendar.MustDate(2024, time.February, 29)},
		{"twelve_months", calendar.MustDate(2025, time.June, 15), 12, calendar.MustDate(2026, time.June, 15)},
		{"backwards", calendar.MustDate(2025, time.March, 31), -1, calendar.MustDate(2025, time.February, 28)},
		{"dec_to_jan", calendar.MustDate(2025, time.December, 10), 1, calendar.MustDate(2026, time.January, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.AddMonthsClamped(tt.from, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", calendar.Key(tt.want), calendar.Key(got))
			}
		})
	}
}

func TestDays(t *testing.T) {
	t.Run("inclusive_range", func(t *testing.T) {
		var got []string
		for d := range calendar.Days(calendar.MustDate(2024, time.February, 27), calendar.MustDate(2024, time.March, 1)) {
			got = append(got, calendar.Key(d))
		}
		want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("day %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("inverted_range_is_empty", func(t *testing.T) {
		n := 0
		for range calendar.Days(calendar.MustDate(2025, time.June, 2), calendar.MustDate(2025, time.June, 1)) {
			n++
		}
		if n != 0 {
			t.Errorf("expected no days, got %d", n)
		}
	})

	t.Run("validate_range", func(t *testing.T) {
		err := calendar.ValidateRange(calendar.MustDate(2025, time.June, 2), calendar.MustDate(2025, time.June, 1))
		testutil.AssertAppError(t, err, apperrors.ErrInvalidDateRange.Code)
		testutil.AssertNoError(t, calendar.ValidateRange(calendar.MustDate(2025, time.June, 1), calendar.MustDate(2025, time.June, 1)))
	})
}

func TestDayInMonthRolling(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		got := calendar.DayInMonthRolling(calendar.MustDate(2025, time.March, 1), 28)
		if calendar.Key(got) != "2025-03-28" {
			t.Errorf("expected 2025-03-28, got %s", calendar.Key(got))
		}
	})

	t.Run("rolls_into_next_month", func(t *testing.T) {
		got := calendar.DayInMonthRolling(calendar.MustDate(2025, time.February, 1), 31)
		if calendar.Key(got) != "2025-03-03" {
			t.Errorf("expected 2025-03-03, got %s", calendar.Key(got))
		}
	})

	t.Run("rolls_december_into_january", func(t *testing.T) {
		got := calendar.DayInMonthRolling(calendar.MustDate(2025, time.December, 1), 33)
		if calendar.Key(got) != "2026-01-02" {
			t.Errorf("expected 2026-01-02, got %s", calendar.Key(got))
		}
	})
}

func TestMonthsAndEndOfDay(t *testing.T) {
	n := 0
	for range calendar.Months(calendar.MustDate(2025, time.November, 20), calendar.MustDate(2026, time.January, 2)) {
		n++
	}
	if n != 3 {
		t.Errorf("expected 3 months touched, got %d", n)
	}

	d := calendar.MustDate(2025, time.June, 5)
	eod := calendar.EndOfDay(d)
	if !eod.After(d) || calendar.Key(eod) != "2025-06-05" || eod.Hour() != 23 || eod.Second() != 59 {
		t.Errorf("unexpected end of day %v", eod)
	}
	if got := calendar.DaysBetween(d, calendar.MustDate(2025, time.July, 5)); got != 30 {
		t.Errorf("expected 30 days, got %d", got)
	}
}
