package models

import "time"

// PayFrequency of a paycheck configuration. Only BIWEEKLY is projected.
type PayFrequency string

const (
	PayBiweekly PayFrequency = "BIWEEKLY"
)

// DeductionType selects fixed or percentage-of-gross deductions
type DeductionType string

const (
	DeductionFixed      DeductionType = "FIXED"
	DeductionPercentage DeductionType = "PERCENTAGE"
)

// PaycheckConfig is the gross pay, cadence and anchor of the current paycheck.
type PaycheckConfig struct {
	Base
	GrossAmount   float64             `gorm:"not null" json:"gross_amount" validate:"min=0"`
	PayFrequency  PayFrequency        `gorm:"not null;default:BIWEEKLY" json:"pay_frequency"`
	EffectiveDate *time.Time          `json:"effective_date,omitempty"`
	PayDayOfWeek  time.Weekday        `gorm:"not null;default:5" json:"pay_day_of_week" validate:"min=0,max=6"`
	IsCurrent     bool                `gorm:"not null;index" json:"is_current"`
	Deductions    []PaycheckDeduction `gorm:"foreignKey:PaycheckConfigID;constraint:OnDelete:CASCADE" json:"deductions,omitempty"`
}

// PaycheckDeduction reduces gross pay to net.
type PaycheckDeduction struct {
	Base
	PaycheckConfigID string        `gorm:"type:uuid;not null;index" json:"paycheck_config_id"`
	Name             string        `gorm:"not null" json:"name" validate:"required"`
	AmountType       DeductionType `gorm:"not null;default:FIXED" json:"amount_type"`
	Amount           float64       `gorm:"not null" json:"amount" validate:"min=0"`
}

// Value is the deduction in currency for the given gross amount.
func (d PaycheckDeduction) Value(gross float64) float64 {
	if d.AmountType == DeductionPercentage {
		return gross * d.Amount / 100
	}
	return d.Amount
}

// TotalDeductions sums every deduction line.
func (p PaycheckConfig) TotalDeductions() float64 {
	total := 0.0
	for _, d := range p.Deductions {
		total += d.Value(p.GrossAmount)
	}
	return total
}

// NetPay is gross minus deductions.
func (p PaycheckConfig) NetPay() float64 {
	return p.GrossAmount - p.TotalDeductions()
}

// AnnualGross assumes 26 biweekly paychecks.
func (p PaycheckConfig) AnnualGross() float64 {
	return p.GrossAmount * 26
}

// AnnualNet assumes 26 biweekly paychecks.
func (p PaycheckConfig) AnnualNet() float64 {
	return p.NetPay() * 26
}
