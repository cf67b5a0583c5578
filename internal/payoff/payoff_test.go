package payoff_test

import (
	"math"
	"testing"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/payoff"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/testutil"
)

var asOf = calendar.MustDate(2025, time.June, 18)

func twoCards() []payoff.CardPayoffInfo {
	return []payoff.CardPayoffInfo{
		{ID: "a", Name: "A", Balance: 1000, APR: 0.10, CreditLimit: 5000},
		{ID: "b", Name: "B", Balance: 1000, APR: 0.25, CreditLimit: 2000},
	}
}

func TestCalculateMinimumPayment(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		apr     float64
		rule    payoff.MinimumRule
		want    float64
	}{
		{"large_balance_formula", 5000, 0.24, payoff.MinimumRule{}, 50 + 100},
		{"boundary_2500", 2500, 0.18, payoff.MinimumRule{}, 25 + 37.5},
		{"floor", 800, 0.12, payoff.MinimumRule{}, 25},
		{"small_balance_paid_in_full", 12.5, 0.2, payoff.MinimumRule{}, 12.5},
		{"fixed", 3000, 0.2, payoff.MinimumRule{Kind: payoff.MinimumFixed, Amount: 75}, 75},
		{"fixed_capped_at_balance", 40, 0.2, payoff.MinimumRule{Kind: payoff.MinimumFixed, Amount: 75}, 40},
		{"full_balance", 640, 0.2, payoff.MinimumRule{Kind: payoff.MinimumFullBalance}, 640},
		{"zero_balance", 0, 0.2, payoff.MinimumRule{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payoff.CalculateMinimumPayment(tt.balance, tt.apr, tt.rule)
			testutil.AssertMoney(t, "minimum", got, tt.want)
			if got > tt.balance {
				t.Errorf("minimum %v exceeds balance %v", got, tt.balance)
			}
		})
	}
}

func TestAvalancheScenario(t *testing.T) {
	r := payoff.Avalanche.Calculate(twoCards(), payoff.Options{MonthlyExtra: 200, AsOf: asOf})
	if len(r.CardPayoffOrder) == 0 || r.CardPayoffOrder[0] != "B" {
		t.Fatalf("expected B paid off first, got %v", r.CardPayoffOrder)
	}
	if !r.Converged {
		t.Error("expected the run to converge")
	}
	if r.Strategy != "Avalanche" {
		t.Errorf("expected strategy name Avalanche, got %q", r.Strategy)
	}
	if first := r.Schedule[0].Date; !first.Equal(calendar.MustDate(2025, time.July, 1)) {
		t.Errorf("expected first payment on 2025-07-01, got %s", calendar.Key(first))
	}
}

func TestSimulationInvariants(t *testing.T) {
	cards := []payoff.CardPayoffInfo{
		{ID: "1", Name: "Visa", Balance: 4200, APR: 0.2399, CreditLimit: 6000},
		{ID: "2", Name: "Store", Balance: 600, APR: 0.2999, CreditLimit: 1000},
		{ID: "3", Name: "Travel", Balance: 2500, APR: 0.1599, CreditLimit: 10000, Minimum: payoff.MinimumRule{Kind: payoff.MinimumFixed, Amount: 80}},
		{ID: "4", Name: "Paid", Balance: 0, APR: 0.2, CreditLimit: 1000},
	}
	opts := payoff.Options{MonthlyExtra: 300, AsOf: asOf}

	for _, s := range payoff.Strategies() {
		t.Run(s.Key, func(t *testing.T) {
			r := s.Calculate(cards, opts)

			for i, e := range r.Schedule {
				if math.Abs(e.Principal+e.Interest-e.Amount) > 1e-9 {
					t.Errorf("entry %d: principal+interest %v != amount %v", i, e.Principal+e.Interest, e.Amount)
				}
				if e.RemainingBalance < 0 || e.Amount < 0 {
					t.Errorf("entry %d: negative amount or balance", i)
				}
				if e.Extra && e.Interest != 0 {
					t.Errorf("entry %d: extra payment carries interest", i)
				}
			}

			seen := map[string]int{}
			for _, name := range r.CardPayoffOrder {
				seen[name]++
			}
			for _, name := range []string{"Visa", "Store", "Travel"} {
				if seen[name] != 1 {
					t.Errorf("expected %s exactly once in payoff order, got %d", name, seen[name])
				}
			}
			if seen["Paid"] != 0 {
				t.Error("a zero-balance card must not appear in payoff order")
			}

			if r.MonthsToPayoff > payoff.DefaultMaxMonths {
				t.Errorf("exceeded month cap: %d", r.MonthsToPayoff)
			}
			testutil.AssertMoney(t, "average", r.AverageMonthlyPayment, r.TotalPayments/float64(r.MonthsToPayoff))
		})
	}
}

func TestInputNotMutated(t *testing.T) {
	cards := twoCards()
	payoff.CalculateAll(cards, payoff.Options{MonthlyExtra: 200, AsOf: asOf})
	if cards[0].Balance != 1000 || cards[1].Balance != 1000 {
		t.Error("simulation mutated its input")
	}
	a := payoff.Snowball.Calculate(cards, payoff.Options{MonthlyExtra: 200, AsOf: asOf})
	b := payoff.Snowball.Calculate(cards, payoff.Options{MonthlyExtra: 200, AsOf: asOf})
	if a.TotalInterest != b.TotalInterest || a.MonthsToPayoff != b.MonthsToPayoff {
		t.Error("repeated runs diverged")
	}
}

func TestNothingToPay(t *testing.T) {
	cards := []payoff.CardPayoffInfo{{Name: "Zero", Balance: 0}, {Name: "Credit", Balance: -50}}
	for _, r := range payoff.CalculateAll(cards, payoff.Options{MonthlyExtra: 100, AsOf: asOf}) {
		if r.MonthsToPayoff != 0 || r.TotalInterest != 0 || r.TotalPayments != 0 || r.AverageMonthlyPayment != 0 {
			t.Errorf("%s: expected zero-valued result, got %+v", r.Strategy, r)
		}
		if !r.Converged || len(r.Schedule) != 0 || len(r.CardPayoffOrder) != 0 {
			t.Errorf("%s: expected empty converged result", r.Strategy)
		}
		if !r.PayoffDate.Equal(asOf) {
			t.Errorf("%s: expected payoff date to be the as-of date", r.Strategy)
		}
	}
}

func TestMonthCap(t *testing.T) {
	// A fixed minimum below monthly interest never amortizes.
	cards := []payoff.CardPayoffInfo{{Name: "Stuck", Balance: 10000, APR: 0.30, Minimum: payoff.MinimumRule{Kind: payoff.MinimumFixed, Amount: 50}}}
	r := payoff.CashOnHand.Calculate(cards, payoff.Options{AsOf: asOf})
	if r.MonthsToPayoff != payoff.DefaultMaxMonths {
		t.Errorf("expected %d months, got %d", payoff.DefaultMaxMonths, r.MonthsToPayoff)
	}
	if r.Converged {
		t.Error("expected a non-converged result")
	}

	short := payoff.CashOnHand.Calculate(cards, payoff.Options{AsOf: asOf, MaxMonths: 12})
	if short.MonthsToPayoff != 12 || !short.PayoffDate.Equal(calendar.MustDate(2026, time.June, 1)) {
		t.Errorf("expected 12 months ending 2026-06-01, got %d ending %s", short.MonthsToPayoff, calendar.Key(short.PayoffDate))
	}
}

func TestCalculateAll(t *testing.T) {
	results := payoff.CalculateAll(twoCards(), payoff.Options{MonthlyExtra: 200, AsOf: asOf})
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].TotalInterest < results[i-1].TotalInterest {
			t.Fatalf("results not sorted by total interest at %d", i)
		}
	}

	byName := map[string]payoff.PayoffResult{}
	for _, r := range results {
		byName[r.Strategy] = r
	}
	cash := byName["Cash on Hand"]
	for name, r := range byName {
		if r.TotalInterest > cash.TotalInterest {
			t.Errorf("%s paid more interest (%v) than minimums only (%v)", name, r.TotalInterest, cash.TotalInterest)
		}
	}
	if byName["Avalanche"].TotalInterest > byName["Snowball"].TotalInterest {
		t.Error("avalanche should never pay more interest than snowball")
	}
	if results[0].Strategy == "Cash on Hand" {
		t.Error("minimums only should not be the cheapest strategy")
	}
}

func TestSnowballPrefersSmallBalance(t *testing.T) {
	cards := []payoff.CardPayoffInfo{
		{Name: "Big", Balance: 5000, APR: 0.29, CreditLimit: 6000},
		{Name: "Small", Balance: 300, APR: 0.09, CreditLimit: 6000},
	}
	r := payoff.Snowball.Calculate(cards, payoff.Options{MonthlyExtra: 400, AsOf: asOf})
	if r.CardPayoffOrder[0] != "Small" {
		t.Errorf("expected Small first, got %v", r.CardPayoffOrder)
	}
	extra := r.Schedule[2]
	if !extra.Extra || extra.CardName != "Small" {
		t.Errorf("expected the first extra payment to go to Small, got %+v", extra)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"avalanche", "High Utilization", "CASH-ON-HAND"} {
		if _, ok := payoff.Lookup(name); !ok {
			t.Errorf("expected %q to resolve", name)
		}
	}
	if _, ok := payoff.Lookup("yolo"); ok {
		t.Error("expected unknown strategy to fail")
	}
}

func TestPayoffOrderKeepsSameNamedCards(t *testing.T) {
	cards := []payoff.CardPayoffInfo{
		{ID: "v1", Name: "Visa", Balance: 400, APR: 0.20, CreditLimit: 1000},
		{ID: "v2", Name: "Visa", Balance: 900, APR: 0.20, CreditLimit: 1000},
	}
	for _, s := range payoff.Strategies() {
		t.Run(s.Key, func(t *testing.T) {
			r := s.Calculate(cards, payoff.Options{MonthlyExtra: 200, AsOf: asOf})
			if !r.Converged {
				t.Fatalf("expected convergence, got %d months", r.MonthsToPayoff)
			}
			if len(r.CardPayoffOrder) != 2 {
				t.Errorf("expected both cards recorded, got %v", r.CardPayoffOrder)
			}
		})
	}
}
