// Package balance projects running balances over a date-sorted transaction
// stream and searches that projection for horizon minimums and the first
// overdraft.
package balance

import (
	"maps"
	"slices"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
)

// CardLinks maps a credit-card payment back to the card channel it pays down,
// first by originating rule id, then by description.
type CardLinks struct {
	ByRuleID      map[string]string
	ByDescription map[string]string
}

// NewCardLinks indexes every rule that carries a link to a known card.
func NewCardLinks(cards []models.CreditCard, rules []models.RecurringCharge) CardLinks {
	channelByID := make(map[string]string, len(cards))
	for _, c := range cards {
		channelByID[c.ID] = c.Channel
	}
	links := CardLinks{
		ByRuleID:      make(map[string]string),
		ByDescription: make(map[string]string),
	}
	for _, r := range rules {
		if r.LinkedCardID == nil {
			continue
		}
		code, ok := channelByID[*r.LinkedCardID]
		if !ok {
			continue
		}
		links.ByRuleID[r.ID] = code
		links.ByDescription[r.Name] = code
	}
	return links
}

// Lookup returns the card channel a transaction pays, if any.
func (l CardLinks) Lookup(tx models.Transaction) (string, bool) {
	if tx.RecurringChargeID != nil {
		if code, ok := l.ByRuleID[*tx.RecurringChargeID]; ok {
			return code, true
		}
	}
	code, ok := l.ByDescription[tx.Description]
	return code, ok
}

// Snapshot is the state of every channel right after one transaction.
type Snapshot struct {
	Transaction      models.Transaction `json:"transaction"`
	RunningBalances  map[string]float64 `json:"running_balances"`
	AvailableCredit  map[string]float64 `json:"available_credit"`
	TotalUtilization float64            `json:"total_utilization"`
}

// RunningBalances walks txs in the order given and emits one Snapshot per
// transaction. Card channels carry the amount owed, so a negative amount on a
// card channel raises its balance; every other channel adds the signed amount.
// A payment linked to a card also lowers that card's owed balance. Neither
// txs nor starting is modified.
func RunningBalances(txs []models.Transaction, starting map[string]float64, cards []models.CreditCard, links CardLinks) []Snapshot {
	limits := make(map[string]float64, len(cards))
	totalLimit := 0.0
	for _, c := range cards {
		limits[c.Channel] = c.CreditLimit
		totalLimit += c.CreditLimit
	}

	running := maps.Clone(starting)
	if running == nil {
		running = make(map[string]float64)
	}

	results := make([]Snapshot, 0, len(txs))
	for _, tx := range txs {
		if _, isCard := limits[tx.Channel]; isCard {
			running[tx.Channel] -= tx.Amount
		} else {
			running[tx.Channel] += tx.Amount
		}
		if code, ok := links.Lookup(tx); ok {
			running[code] += tx.Amount
		}

		available := make(map[string]float64, len(cards))
		owed := 0.0
		for _, c := range cards {
			available[c.Channel] = c.CreditLimit - running[c.Channel]
			owed += running[c.Channel]
		}

		results = append(results, Snapshot{
			Transaction:      tx,
			RunningBalances:  maps.Clone(running),
			AvailableCredit:  available,
			TotalUtilization: utilization(owed, totalLimit),
		})
	}
	return results
}

// Utilization is owed over limit across the whole card portfolio.
func Utilization(cards []models.CreditCard) float64 {
	owed, limit := 0.0, 0.0
	for _, c := range cards {
		owed += c.CurrentBalance
		limit += c.CreditLimit
	}
	return utilization(owed, limit)
}

func utilization(owed, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return owed / limit
}

// onChannel returns the transactions on channel that pass keep, stably sorted
// by date.
func onChannel(txs []models.Transaction, channel string, keep func(day time.Time) bool) []models.Transaction {
	var relevant []models.Transaction
	for _, tx := range txs {
		if tx.Channel == channel && keep(calendar.Day(tx.Date)) {
			relevant = append(relevant, tx)
		}
	}
	slices.SortStableFunc(relevant, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return relevant
}

// MinimumBalanceInHorizon finds the lowest balance channel reaches in
// [today, today+horizonDays]. ok is false when no transaction falls in that
// window, in which case the starting balance is returned. The starting balance
// itself counts as a candidate dated today, and ties keep the earliest date.
func MinimumBalanceInHorizon(starting float64, txs []models.Transaction, channel string, today time.Time, horizonDays int) (minBalance float64, at time.Time, ok bool) {
	from := calendar.Day(today)
	to := calendar.AddDays(from, horizonDays)
	relevant := onChannel(txs, channel, func(day time.Time) bool {
		return !day.Before(from) && !day.After(to)
	})
	if len(relevant) == 0 {
		return starting, time.Time{}, false
	}

	balance := starting
	minBalance, at = starting, from
	for _, tx := range relevant {
		balance += tx.Amount
		if balance < minBalance {
			minBalance = balance
			at = calendar.Day(tx.Date)
		}
	}
	return minBalance, at, true
}

// FirstNegativeBalance returns the balance and date at which channel first
// drops below zero, looking only at transactions dated today or later. A
// negative starting balance is reported as already negative today. ok is
// false when the balance never goes negative.
func FirstNegativeBalance(starting float64, txs []models.Transaction, channel string, today time.Time) (balance float64, at time.Time, ok bool) {
	from := calendar.Day(today)
	if starting < 0 {
		return starting, from, true
	}

	balance = starting
	for _, tx := range onChannel(txs, channel, func(day time.Time) bool { return !day.Before(from) }) {
		balance += tx.Amount
		if balance < 0 {
			return balance, calendar.Day(tx.Date), true
		}
	}
	return 0, time.Time{}, false
}
