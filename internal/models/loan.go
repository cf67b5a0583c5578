package models

import "time"

// Loan represents an installment loan (e.g. a 401k loan) paid from a channel.
type Loan struct {
	Base
	Channel        string     `gorm:"not null;uniqueIndex" json:"channel" validate:"channel_code"`
	Name           string     `gorm:"not null" json:"name" validate:"required"`
	OriginalAmount float64    `gorm:"not null" json:"original_amount" validate:"min=0"`
	CurrentBalance float64    `gorm:"not null" json:"current_balance"`
	InterestRate   float64    `gorm:"not null" json:"interest_rate" validate:"min=0,max=1"`
	PaymentAmount  float64    `gorm:"not null" json:"payment_amount" validate:"min=0"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

// MonthlyInterest is one month of interest on the current balance.
func (l Loan) MonthlyInterest() float64 {
	return l.CurrentBalance * l.InterestRate / 12
}

// RemainingPayments estimates how many payments are left; zero when no
// payment amount is configured.
func (l Loan) RemainingPayments() int {
	if l.PaymentAmount <= 0 {
		return 0
	}
	return int(l.CurrentBalance/l.PaymentAmount) + 1
}
