package models

// MinPaymentType selects how a card's minimum payment is derived
type MinPaymentType string

const (
	MinPaymentFixed       MinPaymentType = "FIXED"
	MinPaymentFullBalance MinPaymentType = "FULL_BALANCE"
	MinPaymentCalculated  MinPaymentType = "CALCULATED"
)

// Minimum payment policy for calculated minimums: 1% of the balance plus one
// month of interest, never less than the floor unless the balance is smaller.
const (
	MinPaymentPrincipalRate = 0.01
	MinPaymentFloor         = 25.0
)

// CreditCard represents a revolving credit line. CurrentBalance is the amount
// owed (positive = debt).
type CreditCard struct {
	Base
	Channel          string         `gorm:"not null;uniqueIndex" json:"channel" validate:"channel_code"`
	Name             string         `gorm:"not null" json:"name" validate:"required"`
	CreditLimit      float64        `gorm:"not null" json:"credit_limit" validate:"min=0"`
	CurrentBalance   float64        `gorm:"not null;default:0" json:"current_balance"`
	InterestRate     float64        `gorm:"not null;default:0" json:"interest_rate" validate:"min=0,max=1"`
	DueDay           int            `json:"due_day,omitempty" validate:"min=0,max=31"`
	MinPaymentType   MinPaymentType `gorm:"not null;default:CALCULATED" json:"min_payment_type" validate:"min_payment_type"`
	MinPaymentAmount float64        `json:"min_payment_amount,omitempty" validate:"min=0"`
}

// AvailableCredit is the unused portion of the limit.
func (c CreditCard) AvailableCredit() float64 {
	return c.CreditLimit - c.CurrentBalance
}

// Utilization is balance over limit; a zero limit reports zero.
func (c CreditCard) Utilization() float64 {
	if c.CreditLimit == 0 {
		return 0
	}
	return c.CurrentBalance / c.CreditLimit
}

// MonthlyInterest is one month of interest on the current balance.
func (c CreditCard) MonthlyInterest() float64 {
	return c.CurrentBalance * c.InterestRate / 12
}

// MinPayment returns the statement minimum for the current balance.
func (c CreditCard) MinPayment() float64 {
	switch c.MinPaymentType {
	case MinPaymentFullBalance:
		return c.CurrentBalance
	case MinPaymentFixed:
		if c.MinPaymentAmount > 0 {
			return c.MinPaymentAmount
		}
	}
	base := c.CurrentBalance*MinPaymentPrincipalRate + c.MonthlyInterest()
	floor := MinPaymentFloor
	if c.CurrentBalance < floor {
		floor = c.CurrentBalance
	}
	if base > floor {
		return base
	}
	return floor
}
