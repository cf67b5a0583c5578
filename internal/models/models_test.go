package models_test

import (
	"testing"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/testutil"
)

func TestCreditCardMinPayment(t *testing.T) {
	tests := []struct {
		name string
		card models.CreditCard
		want float64
	}{
		{
			name: "calculated_large_balance",
			card: models.CreditCard{CurrentBalance: 6000, InterestRate: 0.24, MinPaymentType: models.MinPaymentCalculated},
			want: 60 + 120,
		},
		{
			name: "calculated_hits_floor",
			card: models.CreditCard{CurrentBalance: 500, InterestRate: 0, MinPaymentType: models.MinPaymentCalculated},
			want: 25,
		},
		{
			name: "calculated_small_balance_paid_in_full",
			card: models.CreditCard{CurrentBalance: 10, MinPaymentType: models.MinPaymentCalculated},
			want: 10,
		},
		{
			name: "fixed",
			card: models.CreditCard{CurrentBalance: 3000, MinPaymentType: models.MinPaymentFixed, MinPaymentAmount: 75},
			want: 75,
		},
		{
			name: "fixed_without_amount_falls_back",
			card: models.CreditCard{CurrentBalance: 500, MinPaymentType: models.MinPaymentFixed},
			want: 25,
		},
		{
			name: "full_balance",
			card: models.CreditCard{CurrentBalance: 812.5, MinPaymentType: models.MinPaymentFullBalance},
			want: 812.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertMoney(t, "min payment", tt.card.MinPayment(), tt.want)
		})
	}
}

func TestCreditCardUtilization(t *testing.T) {
	t.Run("zero_limit", func(t *testing.T) {
		c := models.CreditCard{CurrentBalance: 100}
		if c.Utilization() != 0 {
			t.Errorf("expected 0 utilization, got %v", c.Utilization())
		}
	})

	t.Run("half_used", func(t *testing.T) {
		c := models.CreditCard{CurrentBalance: 2500, CreditLimit: 5000}
		if c.Utilization() != 0.5 {
			t.Errorf("expected 0.5 utilization, got %v", c.Utilization())
		}
	})
}

func TestRecurringChargeSchedule(t *testing.T) {
	tests := []struct {
		name string
		rule models.RecurringCharge
		want models.Schedule
	}{
		{"monthly_day", models.RecurringCharge{DayOfMonth: 5, Frequency: models.FrequencyMonthly}, models.Schedule{Kind: models.ScheduleMonthly, Day: 5}},
		{"special_code_on_monthly_never_fires", models.RecurringCharge{DayOfMonth: 992, Frequency: models.FrequencyMonthly}, models.Schedule{Kind: models.ScheduleNone}},
		{"calendar_day_on_special_never_fires", models.RecurringCharge{DayOfMonth: 15, Frequency: models.FrequencySpecial}, models.Schedule{Kind: models.ScheduleNone}},
		{"biweekly_991", models.RecurringCharge{DayOfMonth: 991, Frequency: models.FrequencySpecial}, models.Schedule{Kind: models.ScheduleBiweeklyAnchored, Weekday: models.BiweeklyAnchorWeekday}},
		{"fifteenth_992", models.RecurringCharge{DayOfMonth: 992, Frequency: models.FrequencySpecial}, models.Schedule{Kind: models.ScheduleMonthlyFixedDay, Day: 15}},
		{"fifteenth_995", models.RecurringCharge{DayOfMonth: 995, Frequency: models.FrequencySpecial}, models.Schedule{Kind: models.ScheduleMonthlyFixedDay, Day: 15}},
		{"shared_997", models.RecurringCharge{DayOfMonth: 997, Frequency: models.FrequencySpecial}, models.Schedule{Kind: models.ScheduleSharedExpenseLinked}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Schedule(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPaycheckNetPay(t *testing.T) {
	p := models.PaycheckConfig{
		GrossAmount: 5000,
		Deductions: []models.PaycheckDeduction{
			{AmountType: models.DeductionFixed, Amount: 400},
			{AmountType: models.DeductionPercentage, Amount: 12},
		},
	}
	testutil.AssertMoney(t, "total deductions", p.TotalDeductions(), 1000)
	testutil.AssertMoney(t, "net", p.NetPay(), 4000)
	testutil.AssertMoney(t, "annual net", p.AnnualNet(), 104000)
}

func TestSharedExpenseSplitAmount(t *testing.T) {
	ratio := 0.6
	tests := []struct {
		name    string
		expense models.SharedExpense
		paydays int
		want    float64
	}{
		{"half_two_paydays", models.SharedExpense{MonthlyAmount: 1200, SplitType: models.SplitHalf}, 2, 600},
		{"half_three_paydays", models.SharedExpense{MonthlyAmount: 1200, SplitType: models.SplitHalf}, 3, 400},
		{"third_always_thirds", models.SharedExpense{MonthlyAmount: 1200, SplitType: models.SplitThird}, 2, 400},
		{"custom_ratio", models.SharedExpense{MonthlyAmount: 1000, SplitType: models.SplitCustom, CustomSplitRatio: &ratio}, 2, 300},
		{"zero_paydays_whole_amount", models.SharedExpense{MonthlyAmount: 1200, SplitType: models.SplitHalf}, 0, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertMoney(t, "split", tt.expense.SplitAmount(tt.paydays), tt.want)
		})
	}
}

func TestLoanRemainingPayments(t *testing.T) {
	if got := (models.Loan{CurrentBalance: 1000, PaymentAmount: 300}).RemainingPayments(); got != 4 {
		t.Errorf("expected 4 payments, got %d", got)
	}
	if got := (models.Loan{CurrentBalance: 1000}).RemainingPayments(); got != 0 {
		t.Errorf("expected 0 payments without a payment amount, got %d", got)
	}
}
