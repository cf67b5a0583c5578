package models

import "time"

// Marker descriptions and notes shared by the generator and the store.
const (
	PaydayDescription = "Payday"
	LDBPDDescription  = "LDBPD"
	LDBPDNote         = "Pay period boundary marker"
)

// Transaction is a dated, signed movement on one channel. Generated
// transactions are never posted; posted history doubles as the dedup oracle.
type Transaction struct {
	Base
	Date              time.Time  `gorm:"not null;index" json:"date"`
	Description       string     `gorm:"not null" json:"description"`
	Amount            float64    `gorm:"not null" json:"amount"`
	Channel           string     `gorm:"not null;index" json:"channel" validate:"channel_code"`
	RecurringChargeID *string    `gorm:"type:uuid;index" json:"recurring_charge_id,omitempty"`
	IsPosted          bool       `gorm:"not null;default:false" json:"is_posted"`
	PostedDate        *time.Time `json:"posted_date,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

// IsMarker reports whether the transaction is a zero-amount boundary marker.
func (t Transaction) IsMarker() bool {
	return t.Description == LDBPDDescription && t.Amount == 0
}
