package models

import (
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&CreditCard{},
		&Loan{},
		&RecurringCharge{},
		&PaycheckConfig{},
		&PaycheckDeduction{},
		&SharedExpense{},
		&Transaction{},
		&DeferredPurchase{},
	}
}
