package models

// AccountType represents the type of bank account
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeCash     AccountType = "CASH"
)

// Account represents a bank account (checking, savings, cash) that carries a
// payment channel code.
type Account struct {
	Base
	Name           string      `gorm:"not null;uniqueIndex" json:"name" validate:"required"`
	AccountType    AccountType `gorm:"not null" json:"account_type" validate:"account_type"`
	CurrentBalance float64     `gorm:"not null;default:0" json:"current_balance"`
	Channel        string      `gorm:"index" json:"channel,omitempty" validate:"omitempty,channel_code"`
}
