package forecast

import (
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
)

type historyKey struct {
	id  string
	day string
}

// History is the dedup oracle: the (rule id, day) and (description, day)
// pairs already present as posted or scheduled transactions. The zero value
// and a nil *History are both empty.
type History struct {
	byRule        map[historyKey]struct{}
	byDescription map[historyKey]struct{}
}

// NewHistory indexes recorded transactions. Rows with an originating rule are
// keyed by rule id, all others by description.
func NewHistory(recorded []models.Transaction) *History {
	h := &History{}
	for _, tx := range recorded {
		if tx.RecurringChargeID != nil && *tx.RecurringChargeID != "" {
			h.AddRule(*tx.RecurringChargeID, tx.Date)
		} else {
			h.AddDescription(tx.Description, tx.Date)
		}
	}
	return h
}

// AddRule records a (rule id, day) pair.
func (h *History) AddRule(ruleID string, day time.Time) {
	if h.byRule == nil {
		h.byRule = make(map[historyKey]struct{})
	}
	h.byRule[historyKey{ruleID, calendar.Key(day)}] = struct{}{}
}

// AddDescription records a (description, day) pair.
func (h *History) AddDescription(description string, day time.Time) {
	if h.byDescription == nil {
		h.byDescription = make(map[historyKey]struct{})
	}
	h.byDescription[historyKey{description, calendar.Key(day)}] = struct{}{}
}

// HasRule reports whether ruleID already has a transaction on day.
func (h *History) HasRule(ruleID string, day time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h.byRule[historyKey{ruleID, calendar.Key(day)}]
	return ok
}

// HasDescription reports whether description already appears on day.
func (h *History) HasDescription(description string, day time.Time) bool {
	if h == nil {
		return false
	}
	_, ok := h.byDescription[historyKey{description, calendar.Key(day)}]
	return ok
}

// Len is the number of recorded keys.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byRule) + len(h.byDescription)
}
