package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/logger"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/payoff"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/validator"
)

// payoffService feeds stored cards into the payoff simulator.
type payoffService struct {
	snapshots SnapshotStorer
	log       *zap.SugaredLogger
}

// NewPayoffService creates a new PayoffServicer.
func NewPayoffService(snapshots SnapshotStorer) PayoffServicer {
	return &payoffService{snapshots: snapshots, log: logger.Named("payoff")}
}

// CardPayoffInfoFromModel maps a stored card onto the simulator input.
func CardPayoffInfoFromModel(c models.CreditCard) payoff.CardPayoffInfo {
	rule := payoff.MinimumRule{Kind: payoff.MinimumCalculated}
	switch c.MinPaymentType {
	case models.MinPaymentFullBalance:
		rule.Kind = payoff.MinimumFullBalance
	case models.MinPaymentFixed:
		if c.MinPaymentAmount > 0 {
			rule = payoff.MinimumRule{Kind: payoff.MinimumFixed, Amount: c.MinPaymentAmount}
		}
	}
	return payoff.CardPayoffInfo{
		ID:          c.ID,
		Name:        c.Name,
		Balance:     c.CurrentBalance,
		APR:         c.InterestRate,
		Minimum:     rule,
		CreditLimit: c.CreditLimit,
	}
}

// Cards returns every card carrying a balance, validated for simulation.
func (s *payoffService) Cards(ctx context.Context) ([]payoff.CardPayoffInfo, error) {
	stored, err := s.snapshots.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]payoff.CardPayoffInfo, 0, len(stored))
	for _, c := range stored {
		if c.CurrentBalance <= 0 {
			continue
		}
		info := CardPayoffInfoFromModel(c)
		if err := validator.Struct(info); err != nil {
			return nil, err
		}
		cards = append(cards, info)
	}
	return cards, nil
}

func validateOptions(opts payoff.Options) error {
	if opts.MonthlyExtra < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly extra must not be negative")
	}
	if opts.MaxMonths < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "max months must not be negative")
	}
	return nil
}

// Calculate runs a single named strategy.
func (s *payoffService) Calculate(ctx context.Context, strategy string, opts payoff.Options) (*payoff.PayoffResult, error) {
	strat, ok := payoff.Lookup(strategy)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown payoff strategy: "+strategy)
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	cards, err := s.Cards(ctx)
	if err != nil {
		return nil, err
	}
	result := strat.Calculate(cards, opts)
	s.logResult(result)
	return &result, nil
}

// CalculateAll runs every strategy, cheapest first.
func (s *payoffService) CalculateAll(ctx context.Context, opts payoff.Options) ([]payoff.PayoffResult, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	cards, err := s.Cards(ctx)
	if err != nil {
		return nil, err
	}
	results := payoff.CalculateAll(cards, opts)
	for _, r := range results {
		s.logResult(r)
	}
	return results, nil
}

func (s *payoffService) logResult(r payoff.PayoffResult) {
	if !r.Converged {
		s.log.Warnw("Payoff did not converge within month cap",
			"strategy", r.Strategy,
			"months", r.MonthsToPayoff,
		)
		return
	}
	s.log.Debugw("Payoff simulated",
		"strategy", r.Strategy,
		"months", r.MonthsToPayoff,
		"total_interest", r.TotalInterest,
	)
}

// DeferredStatuses grades every deferred-interest purchase as of asOf.
func (s *payoffService) DeferredStatuses(ctx context.Context, asOf time.Time) ([]payoff.DeferredStatus, error) {
	purchases, err := s.snapshots.ListDeferredPurchases(ctx)
	if err != nil {
		return nil, err
	}
	return payoff.EvaluateAll(purchases, asOf), nil
}
