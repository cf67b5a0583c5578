package models

import "time"

// ChargeFrequency tags how often a recurring charge repeats
type ChargeFrequency string

const (
	FrequencyMonthly  ChargeFrequency = "MONTHLY"
	FrequencyBiweekly ChargeFrequency = "BIWEEKLY"
	FrequencyWeekly   ChargeFrequency = "WEEKLY"
	FrequencyYearly   ChargeFrequency = "YEARLY"
	FrequencySpecial  ChargeFrequency = "SPECIAL"
)

// AmountType selects how a charge's amount is resolved
type AmountType string

const (
	AmountFixed             AmountType = "FIXED"
	AmountCreditCardBalance AmountType = "CREDIT_CARD_BALANCE"
	AmountCalculated        AmountType = "CALCULATED"
)

// Stored day-of-month codes for non-calendar schedules.
const (
	DayCodeBiweekly       = 991
	DayCodeFifteenthFirst = 992
	DayCodeFifteenthLast  = 995
	DayCodeSharedFirst    = 996
	DayCodeSharedLast     = 999
	FixedScheduleDay      = 15
	BiweeklyIntervalDays  = 14
	BiweeklyAnchorWeekday = time.Friday
)

// ScheduleKind is the decoded form of a charge's day_of_month column.
type ScheduleKind int

const (
	// ScheduleNone never fires (an inconsistent frequency/day combination).
	ScheduleNone ScheduleKind = iota
	// ScheduleMonthly fires when the calendar day equals Day.
	ScheduleMonthly
	// ScheduleBiweeklyAnchored fires every 14 days from the first Weekday on/after start.
	ScheduleBiweeklyAnchored
	// ScheduleMonthlyFixedDay fires on Day of every month.
	ScheduleMonthlyFixedDay
	// ScheduleSharedExpenseLinked is expanded by the shared-expense split, never on its own.
	ScheduleSharedExpenseLinked
)

func (k ScheduleKind) String() string {
	switch k {
	case ScheduleMonthly:
		return "monthly"
	case ScheduleBiweeklyAnchored:
		return "biweekly"
	case ScheduleMonthlyFixedDay:
		return "monthly_fixed_day"
	case ScheduleSharedExpenseLinked:
		return "shared_expense_linked"
	default:
		return "none"
	}
}

// Schedule is the tagged variant a RecurringCharge expands under.
type Schedule struct {
	Kind    ScheduleKind
	Day     int
	Weekday time.Weekday
}

// RecurringCharge is a rule that expands into dated transactions.
type RecurringCharge struct {
	Base
	Name         string          `gorm:"not null" json:"name" validate:"required"`
	Amount       float64         `gorm:"not null" json:"amount"`
	DayOfMonth   int             `gorm:"not null" json:"day_of_month" validate:"day_code"`
	Channel      string          `gorm:"not null" json:"channel" validate:"channel_code"`
	Frequency    ChargeFrequency `gorm:"not null;default:MONTHLY" json:"frequency" validate:"charge_frequency"`
	AmountType   AmountType      `gorm:"not null;default:FIXED" json:"amount_type" validate:"amount_type"`
	LinkedCardID *string         `gorm:"type:uuid" json:"linked_card_id,omitempty"`
	IsActive     bool            `gorm:"not null" json:"is_active"`
}

// Schedule decodes DayOfMonth and Frequency. Special codes only apply to
// SPECIAL charges and calendar days only apply to everything else.
func (r RecurringCharge) Schedule() Schedule {
	if r.Frequency != FrequencySpecial {
		if r.DayOfMonth >= 1 && r.DayOfMonth <= 31 {
			return Schedule{Kind: ScheduleMonthly, Day: r.DayOfMonth}
		}
		return Schedule{Kind: ScheduleNone}
	}
	switch {
	case r.DayOfMonth == DayCodeBiweekly:
		return Schedule{Kind: ScheduleBiweeklyAnchored, Weekday: BiweeklyAnchorWeekday}
	case r.DayOfMonth >= DayCodeFifteenthFirst && r.DayOfMonth <= DayCodeFifteenthLast:
		return Schedule{Kind: ScheduleMonthlyFixedDay, Day: FixedScheduleDay}
	case r.DayOfMonth >= DayCodeSharedFirst && r.DayOfMonth <= DayCodeSharedLast:
		return Schedule{Kind: ScheduleSharedExpenseLinked}
	}
	return Schedule{Kind: ScheduleNone}
}
