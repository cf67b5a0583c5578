package models

import "time"

// DeferredPurchase is a promotional-financing purchase on a card. If any
// balance remains at PromoEndDate, interest is charged retroactively on the
// original purchase amount.
type DeferredPurchase struct {
	Base
	CreditCardID      string     `gorm:"type:uuid;not null;index" json:"credit_card_id"`
	Description       string     `gorm:"not null" json:"description" validate:"required"`
	PurchaseAmount    float64    `gorm:"not null" json:"purchase_amount" validate:"min=0"`
	RemainingBalance  float64    `gorm:"not null" json:"remaining_balance" validate:"min=0"`
	PromoAPR          float64    `gorm:"not null;default:0" json:"promo_apr"`
	StandardAPR       float64    `gorm:"not null" json:"standard_apr" validate:"min=0,max=1"`
	PromoEndDate      time.Time  `gorm:"not null;index" json:"promo_end_date"`
	MinMonthlyPayment *float64   `json:"min_monthly_payment,omitempty"`
	CreatedDate       *time.Time `json:"created_date,omitempty"`

	CreditCard *CreditCard `gorm:"foreignKey:CreditCardID" json:"credit_card,omitempty"`
}
