package payoff

import (
	"cmp"
	"slices"
	"strings"
)

// Prioritizer returns indices into cards, highest payoff priority first.
type Prioritizer func(cards []CardState) []int

// Strategy is a named prioritization policy.
type Strategy struct {
	Name        string
	Key         string
	Description string
	Prioritize  Prioritizer
	// NoExtra forces the monthly extra budget to zero.
	NoExtra bool
}

// Calculate runs the strategy against cards.
func (s Strategy) Calculate(cards []CardPayoffInfo, opts Options) PayoffResult {
	extra := opts.MonthlyExtra
	if s.NoExtra {
		extra = 0
	}
	r := simulate(cards, extra, s.Prioritize, opts)
	r.Strategy = s.Name
	r.Description = s.Description
	return r
}

func orderBy(cards []CardState, less func(a, b CardState) int) []int {
	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return less(cards[a], cards[b])
	})
	return idx
}

var (
	Avalanche = Strategy{
		Name:        "Avalanche",
		Key:         "avalanche",
		Description: "Highest interest rate first - minimizes total interest paid",
		Prioritize: func(cards []CardState) []int {
			return orderBy(cards, func(a, b CardState) int { return cmp.Compare(b.APR, a.APR) })
		},
	}

	Snowball = Strategy{
		Name:        "Snowball",
		Key:         "snowball",
		Description: "Lowest balance first - quick wins for motivation",
		Prioritize: func(cards []CardState) []int {
			return orderBy(cards, func(a, b CardState) int { return cmp.Compare(a.Balance, b.Balance) })
		},
	}

	Hybrid = Strategy{
		Name:        "Hybrid",
		Key:         "hybrid",
		Description: "60% APR + 40% balance weight - balanced approach",
		Prioritize:  hybridPriority,
	}

	HighUtilization = Strategy{
		Name:        "High Utilization",
		Key:         "high-utilization",
		Description: "Highest utilization first - improves credit score fastest",
		Prioritize: func(cards []CardState) []int {
			return orderBy(cards, func(a, b CardState) int { return cmp.Compare(b.Utilization(), a.Utilization()) })
		},
	}

	CashOnHand = Strategy{
		Name:        "Cash on Hand",
		Key:         "cash-on-hand",
		Description: "Minimum payments only - maximizes available cash",
		NoExtra:     true,
	}
)

// Strategies lists every strategy in presentation order.
func Strategies() []Strategy {
	return []Strategy{Avalanche, Snowball, Hybrid, HighUtilization, CashOnHand}
}

// Lookup finds a strategy by key or display name, case-insensitively.
func Lookup(name string) (Strategy, bool) {
	for _, s := range Strategies() {
		if strings.EqualFold(s.Key, name) || strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Strategy{}, false
}

func hybridPriority(cards []CardState) []int {
	maxAPR, maxBalance := 0.0, 0.0
	for _, c := range cards {
		maxAPR = max(maxAPR, c.APR)
		maxBalance = max(maxBalance, c.Balance)
	}
	if maxAPR == 0 {
		maxAPR = 1
	}
	if maxBalance == 0 {
		maxBalance = 1
	}
	score := func(c CardState) float64 {
		return 0.6*(c.APR/maxAPR) + 0.4*(1-c.Balance/maxBalance)
	}
	return orderBy(cards, func(a, b CardState) int { return cmp.Compare(score(b), score(a)) })
}

// CalculateAll runs every strategy and sorts the results by total interest,
// lowest first. Ties keep presentation order.
func CalculateAll(cards []CardPayoffInfo, opts Options) []PayoffResult {
	results := make([]PayoffResult, 0, len(Strategies()))
	for _, s := range Strategies() {
		results = append(results, s.Calculate(cards, opts))
	}
	slices.SortStableFunc(results, func(a, b PayoffResult) int {
		return cmp.Compare(a.TotalInterest, b.TotalInterest)
	})
	return results
}
