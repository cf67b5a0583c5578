package models

// SplitType selects how a shared monthly amount is divided per paycheck
type SplitType string

const (
	SplitHalf   SplitType = "HALF"
	SplitThird  SplitType = "THIRD"
	SplitCustom SplitType = "CUSTOM"
)

// SharedExpense is a monthly obligation paid in slices on each payday. A linked
// recurring charge is replaced by this expense and never expanded on its own.
type SharedExpense struct {
	Base
	Name              string    `gorm:"not null" json:"name" validate:"required"`
	MonthlyAmount     float64   `gorm:"not null" json:"monthly_amount" validate:"min=0"`
	SplitType         SplitType `gorm:"not null;default:HALF" json:"split_type" validate:"split_type"`
	CustomSplitRatio  *float64  `json:"custom_split_ratio,omitempty"`
	LinkedRecurringID *string   `gorm:"type:uuid" json:"linked_recurring_id,omitempty"`
}

// SplitAmount is the per-payday slice for a month with the given number of
// paydays. A non-positive count is treated as a single payday.
func (s SharedExpense) SplitAmount(paydays int) float64 {
	if paydays <= 0 {
		paydays = 1
	}
	switch {
	case s.SplitType == SplitCustom && s.CustomSplitRatio != nil && *s.CustomSplitRatio > 0:
		return s.MonthlyAmount * *s.CustomSplitRatio / float64(paydays)
	case s.SplitType == SplitThird:
		return s.MonthlyAmount / 3
	default:
		return s.MonthlyAmount / float64(paydays)
	}
}
