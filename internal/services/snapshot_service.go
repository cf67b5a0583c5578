package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/forecast"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
)

// snapshotService reads entity snapshots from the relational store.
type snapshotService struct {
	db *gorm.DB
}

// NewSnapshotService creates a new SnapshotStorer.
func NewSnapshotService(db *gorm.DB) SnapshotStorer {
	return &snapshotService{db: db}
}

// ListActiveRecurringRules returns active rules in a stable name/id order so
// same-day ties expand deterministically.
func (s *snapshotService) ListActiveRecurringRules(ctx context.Context) ([]models.RecurringCharge, error) {
	var rules []models.RecurringCharge
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC, id ASC").Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return rules, nil
}

// GetCurrentPaycheckConfig returns the current paycheck, or nil when none is
// configured. A missing paycheck is not an error.
func (s *snapshotService) GetCurrentPaycheckConfig(ctx context.Context) (*models.PaycheckConfig, error) {
	var cfg models.PaycheckConfig
	err := s.db.WithContext(ctx).Preload("Deductions", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	}).Where("is_current = ?", true).Order("created_at DESC").First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return &cfg, nil
}

// ListSharedExpenses returns shared expenses ordered by name
func (s *snapshotService) ListSharedExpenses(ctx context.Context) ([]models.SharedExpense, error) {
	var expenses []models.SharedExpense
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return expenses, nil
}

// ListCards returns credit cards ordered by channel
func (s *snapshotService) ListCards(ctx context.Context) ([]models.CreditCard, error) {
	var cards []models.CreditCard
	if err := s.db.WithContext(ctx).Order("channel ASC").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return cards, nil
}

// ListAccounts returns bank accounts ordered by name
func (s *snapshotService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return accounts, nil
}

// ListLoans returns loans ordered by channel
func (s *snapshotService) ListLoans(ctx context.Context) ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.db.WithContext(ctx).Order("channel ASC").Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return loans, nil
}

// ListDeferredPurchases returns promotional purchases, soonest expiry first
func (s *snapshotService) ListDeferredPurchases(ctx context.Context) ([]models.DeferredPurchase, error) {
	var purchases []models.DeferredPurchase
	if err := s.db.WithContext(ctx).Preload("CreditCard").Order("promo_end_date ASC").Find(&purchases).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return purchases, nil
}

// RecordedHistory builds the dedup oracle from every stored transaction, posted
// or scheduled, dated within the horizon.
func (s *snapshotService) RecordedHistory(ctx context.Context, start, end time.Time) (*forecast.History, error) {
	return s.history(ctx, start, end, false)
}

// PostedHistory builds the dedup oracle from posted transactions only, for
// runs that are about to replace the scheduled ones.
func (s *snapshotService) PostedHistory(ctx context.Context, start, end time.Time) (*forecast.History, error) {
	return s.history(ctx, start, end, true)
}

func (s *snapshotService) history(ctx context.Context, start, end time.Time, postedOnly bool) (*forecast.History, error) {
	q := s.db.WithContext(ctx).
		Select("date", "description", "recurring_charge_id").
		Where("date >= ? AND date < ?", calendar.Day(start), calendar.AddDays(end, 1))
	if postedOnly {
		q = q.Where("is_posted = ?", true)
	}
	var recorded []models.Transaction
	if err := q.Find(&recorded).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return forecast.NewHistory(recorded), nil
}

// Load reads every entity list concurrently.
func (s *snapshotService) Load(ctx context.Context, start, end time.Time) (*EntitySnapshot, error) {
	snap := &EntitySnapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Rules, err = s.ListActiveRecurringRules(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Paycheck, err = s.GetCurrentPaycheckConfig(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.SharedExpenses, err = s.ListSharedExpenses(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Cards, err = s.ListCards(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Accounts, err = s.ListAccounts(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Loans, err = s.ListLoans(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.History, err = s.RecordedHistory(ctx, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Forecast narrows the snapshot to what the generator reads.
func (e *EntitySnapshot) Forecast() forecast.Snapshot {
	return forecast.Snapshot{
		Rules:          e.Rules,
		Paycheck:       e.Paycheck,
		SharedExpenses: e.SharedExpenses,
		Cards:          e.Cards,
		History:        e.History,
	}
}

// StartingBalances maps every channel to its current balance: accounts, then
// cards (amount owed), then loans.
func (e *EntitySnapshot) StartingBalances() map[string]float64 {
	balances := make(map[string]float64, len(e.Accounts)+len(e.Cards)+len(e.Loans))
	for _, a := range e.Accounts {
		if a.Channel != "" {
			balances[a.Channel] = a.CurrentBalance
		}
	}
	for _, c := range e.Cards {
		balances[c.Channel] = c.CurrentBalance
	}
	for _, l := range e.Loans {
		balances[l.Channel] = l.CurrentBalance
	}
	return balances
}
