package services

import (
	"context"
	"testing"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/testutil"
)

func sampleBundle() Bundle {
	payday := calendar.MustDate(2025, time.June, 6)
	return Bundle{
		Accounts: []models.Account{{Name: "Checking", AccountType: models.AccountTypeChecking, CurrentBalance: 2500, Channel: "C"}},
		Cards: []models.CreditCard{{
			Base: models.Base{ID: "0190f1a2-0000-7000-8000-000000000001"}, Channel: "V", Name: "Visa",
			CreditLimit: 5000, CurrentBalance: 1200, InterestRate: 0.24, DueDay: 10, MinPaymentType: models.MinPaymentCalculated,
		}},
		Rules: []models.RecurringCharge{{
			Name: "Visa Payment", Amount: -200, DayOfMonth: 10, Channel: "C",
			Frequency: models.FrequencyMonthly, AmountType: models.AmountCalculated,
			LinkedCardID: strPtr("0190f1a2-0000-7000-8000-000000000001"), IsActive: true,
		}},
		Paycheck: &models.PaycheckConfig{
			GrossAmount: 5000, PayFrequency: models.PayBiweekly, EffectiveDate: &payday, PayDayOfWeek: time.Friday, IsCurrent: true,
			Deductions: []models.PaycheckDeduction{{Name: "Tax", AmountType: models.DeductionPercentage, Amount: 20}},
		},
		SharedExpenses: []models.SharedExpense{{Name: "Lisa Payment", MonthlyAmount: 1200, SplitType: models.SplitHalf}},
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_bundle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db)

		testutil.AssertNoError(t, svc.Import(ctx, sampleBundle()))

		snap, err := NewSnapshotService(db).Load(ctx, calendar.MustDate(2025, time.June, 1), calendar.MustDate(2025, time.June, 30))
		testutil.AssertNoError(t, err)
		if len(snap.Accounts) != 1 || len(snap.Cards) != 1 || len(snap.Rules) != 1 || len(snap.SharedExpenses) != 1 {
			t.Fatalf("bundle not fully imported: %+v", snap)
		}
		if snap.Paycheck == nil {
			t.Fatal("expected a current paycheck")
		}
		testutil.AssertMoney(t, "net pay", snap.Paycheck.NetPay(), 4000)
	})

	t.Run("replaces_current_paycheck", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		old := testutil.CreateTestPaycheck(t, db, 3000, calendar.MustDate(2024, time.January, 5))

		testutil.AssertNoError(t, NewImportService(db).Import(ctx, Bundle{Paycheck: sampleBundle().Paycheck}))

		var reloaded models.PaycheckConfig
		testutil.AssertNoError(t, db.First(&reloaded, "id = ?", old.ID).Error)
		if reloaded.IsCurrent {
			t.Error("expected the previous paycheck to be superseded")
		}
	})

	t.Run("duplicate_channel", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		b := sampleBundle()
		b.Loans = []models.Loan{{Channel: "V", Name: "Car", OriginalAmount: 10000, CurrentBalance: 8000, InterestRate: 0.06, PaymentAmount: 300}}
		err := NewImportService(db).Import(ctx, b)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		var count int64
		db.Model(&models.Account{}).Count(&count)
		if count != 0 {
			t.Errorf("expected nothing imported, got %d accounts", count)
		}
	})

	t.Run("invalid_day_code", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		b := sampleBundle()
		b.Rules[0].DayOfMonth = 45
		testutil.AssertAppError(t, NewImportService(db).Import(ctx, b), "INVALID_INPUT")
	})
}

func TestCheckReferences(t *testing.T) {
	t.Run("valid_links", func(t *testing.T) {
		testutil.AssertNoError(t, checkReferences(sampleBundle()))
	})

	t.Run("malformed_card_link", func(t *testing.T) {
		b := sampleBundle()
		b.Rules[0].LinkedCardID = strPtr("visa")
		testutil.AssertAppError(t, checkReferences(b), "INVALID_INPUT")
	})

	t.Run("malformed_purchase_card", func(t *testing.T) {
		b := sampleBundle()
		b.DeferredPurchases = []models.DeferredPurchase{{CreditCardID: "", Description: "TV", StandardAPR: 0.25}}
		testutil.AssertAppError(t, checkReferences(b), "INVALID_INPUT")
	})
}
