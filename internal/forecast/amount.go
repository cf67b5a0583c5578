package forecast

import "github.com/DASatizabal/personal-budget-manager-sub001/internal/models"

// ResolveAmount is the single dispatch for a rule's amount mode.
// CREDIT_CARD_BALANCE pays the linked card's live balance and CALCULATED pays
// its statement minimum; both fall back to the literal amount when the rule is
// unlinked or the card is unknown.
func ResolveAmount(rule models.RecurringCharge, cardsByID map[string]models.CreditCard) float64 {
	if rule.AmountType == models.AmountFixed || rule.LinkedCardID == nil {
		return rule.Amount
	}
	card, ok := cardsByID[*rule.LinkedCardID]
	if !ok {
		return rule.Amount
	}
	switch rule.AmountType {
	case models.AmountCreditCardBalance:
		return -card.CurrentBalance
	case models.AmountCalculated:
		return -card.MinPayment()
	}
	return rule.Amount
}
