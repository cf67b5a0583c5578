package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates a checking account on the given channel.
func CreateTestAccount(t *testing.T, db *gorm.DB, channel string, balance float64) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:           fmt.Sprintf("Test Account %d", nextID()),
		AccountType:    models.AccountTypeChecking,
		CurrentBalance: balance,
		Channel:        channel,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCard creates a credit card with a calculated minimum and no due day.
func CreateTestCard(t *testing.T, db *gorm.DB, channel string, balance, limit, apr float64) *models.CreditCard {
	t.Helper()

	card := &models.CreditCard{
		Channel:        channel,
		Name:           fmt.Sprintf("Test Card %d", nextID()),
		CreditLimit:    limit,
		CurrentBalance: balance,
		InterestRate:   apr,
		MinPaymentType: models.MinPaymentCalculated,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestLoan creates a loan with the given balance and payment.
func CreateTestLoan(t *testing.T, db *gorm.DB, channel string, balance, payment float64) *models.Loan {
	t.Helper()

	loan := &models.Loan{
		Channel:        channel,
		Name:           fmt.Sprintf("Test Loan %d", nextID()),
		OriginalAmount: balance,
		CurrentBalance: balance,
		InterestRate:   0.05,
		PaymentAmount:  payment,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateTestRule creates an active fixed-amount monthly charge.
func CreateTestRule(t *testing.T, db *gorm.DB, name string, amount float64, day int, channel string) *models.RecurringCharge {
	t.Helper()

	rule := &models.RecurringCharge{
		Name:       name,
		Amount:     amount,
		DayOfMonth: day,
		Channel:    channel,
		Frequency:  models.FrequencyMonthly,
		AmountType: models.AmountFixed,
		IsActive:   true,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test recurring charge: %v", err)
	}
	return rule
}

// CreateTestSpecialRule creates an active SPECIAL charge with a day code (991..999).
func CreateTestSpecialRule(t *testing.T, db *gorm.DB, name string, amount float64, code int) *models.RecurringCharge {
	t.Helper()

	rule := &models.RecurringCharge{
		Name:       name,
		Amount:     amount,
		DayOfMonth: code,
		Channel:    "C",
		Frequency:  models.FrequencySpecial,
		AmountType: models.AmountFixed,
		IsActive:   true,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test special charge: %v", err)
	}
	return rule
}

// CreateTestPaycheck creates the current biweekly paycheck with fixed deductions.
func CreateTestPaycheck(t *testing.T, db *gorm.DB, gross float64, effective time.Time, deductions ...float64) *models.PaycheckConfig {
	t.Helper()

	cfg := &models.PaycheckConfig{
		GrossAmount:   gross,
		PayFrequency:  models.PayBiweekly,
		EffectiveDate: &effective,
		PayDayOfWeek:  effective.Weekday(),
		IsCurrent:     true,
	}
	for i, amount := range deductions {
		cfg.Deductions = append(cfg.Deductions, models.PaycheckDeduction{
			Name:       fmt.Sprintf("Deduction %d", i+1),
			AmountType: models.DeductionFixed,
			Amount:     amount,
		})
	}
	if err := db.Create(cfg).Error; err != nil {
		t.Fatalf("failed to create test paycheck: %v", err)
	}
	return cfg
}

// CreateTestSharedExpense creates a HALF-split shared expense, optionally
// replacing a recurring charge.
func CreateTestSharedExpense(t *testing.T, db *gorm.DB, name string, monthly float64, linkedRuleID *string) *models.SharedExpense {
	t.Helper()

	expense := &models.SharedExpense{
		Name:              name,
		MonthlyAmount:     monthly,
		SplitType:         models.SplitHalf,
		LinkedRecurringID: linkedRuleID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test shared expense: %v", err)
	}
	return expense
}

// CreateTestPostedTransaction records posted history for dedup tests.
func CreateTestPostedTransaction(t *testing.T, db *gorm.DB, date time.Time, description string, amount float64, channel string, ruleID *string) *models.Transaction {
	t.Helper()

	posted := date
	tx := &models.Transaction{
		Date:              date,
		Description:       description,
		Amount:            amount,
		Channel:           channel,
		RecurringChargeID: ruleID,
		IsPosted:          true,
		PostedDate:        &posted,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
