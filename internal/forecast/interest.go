package forecast

import (
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/balance"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/money"
)

// InterestDelayDays is how long after the due day interest posts.
const InterestDelayDays = 3

// InterestDescription is the label of a card's generated interest charge.
func InterestDescription(cardName string) string {
	return cardName + " Interest"
}

// interest charges each card with an APR and a due day one month of interest
// on its projected owed balance as of the day before the charge. The
// projection starts from the card's current balance and replays card charges,
// linked payments and interest generated earlier in the run.
func (g *generator) interest(projected []models.Transaction) []models.Transaction {
	var cards []models.CreditCard
	for _, c := range g.snap.Cards {
		if c.InterestRate > 0 && c.DueDay > 0 {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		return nil
	}
	links := balance.NewCardLinks(g.snap.Cards, g.snap.Rules)

	var out []models.Transaction
	// Start a month early so a due day rolling out of the prior month is caught.
	from := calendar.AddMonthsClamped(calendar.FirstOfMonth(g.start), -1)
	for month := range calendar.Months(from, g.end) {
		for _, c := range cards {
			day := calendar.DayInMonthRolling(month, c.DueDay+InterestDelayDays)
			if day.Before(g.start) || day.After(g.end) {
				continue
			}

			owed := projectOwed(c, calendar.AddDays(day, -1), projected, out, links)
			if owed <= 0 {
				continue
			}
			charge := money.RoundCents(owed * c.InterestRate / 12)
			desc := InterestDescription(c.Name)
			if charge <= 0 || g.snap.History.HasDescription(desc, day) {
				continue
			}
			out = append(out, models.Transaction{
				Date:        day,
				Description: desc,
				Amount:      -charge,
				Channel:     c.Channel,
			})
		}
	}
	return out
}

func projectOwed(c models.CreditCard, asOf time.Time, projected, accrued []models.Transaction, links balance.CardLinks) float64 {
	owed := c.CurrentBalance
	for _, tx := range projected {
		if calendar.Day(tx.Date).After(asOf) {
			continue
		}
		if tx.Channel == c.Channel {
			owed -= tx.Amount
		}
		if code, ok := links.Lookup(tx); ok && code == c.Channel {
			owed += tx.Amount
		}
	}
	for _, tx := range accrued {
		if tx.Channel == c.Channel && !calendar.Day(tx.Date).After(asOf) {
			owed -= tx.Amount
		}
	}
	return owed
}
