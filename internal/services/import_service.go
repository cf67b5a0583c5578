package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/logger"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/uuid"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/validator"
)

// importService writes a Bundle of entities in a single transaction.
type importService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB) ImportServicer {
	return &importService{db: db, log: logger.Named("import")}
}

// Import validates the whole bundle, then creates it atomically. Entities may
// reference each other by caller-supplied ids.
func (s *importService) Import(ctx context.Context, bundle Bundle) error {
	if err := validator.Struct(bundle); err != nil {
		return err
	}
	if err := checkChannels(bundle); err != nil {
		return err
	}
	if err := checkReferences(bundle); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		creates := []struct {
			n     int
			value any
		}{
			{len(bundle.Accounts), &bundle.Accounts},
			{len(bundle.Cards), &bundle.Cards},
			{len(bundle.Loans), &bundle.Loans},
			{len(bundle.Rules), &bundle.Rules},
			{len(bundle.SharedExpenses), &bundle.SharedExpenses},
			{len(bundle.DeferredPurchases), &bundle.DeferredPurchases},
			{len(bundle.Transactions), &bundle.Transactions},
		}
		for _, c := range creates {
			if c.n == 0 {
				continue
			}
			if err := tx.Create(c.value).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStoreFailure, err)
			}
		}

		if bundle.Paycheck != nil {
			if bundle.Paycheck.IsCurrent {
				if err := tx.Model(&models.PaycheckConfig{}).Where("is_current = ?", true).Update("is_current", false).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrStoreFailure, err)
				}
			}
			if err := tx.Create(bundle.Paycheck).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStoreFailure, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Infow("Imported entities",
		"accounts", len(bundle.Accounts),
		"cards", len(bundle.Cards),
		"loans", len(bundle.Loans),
		"rules", len(bundle.Rules),
		"shared_expenses", len(bundle.SharedExpenses),
		"transactions", len(bundle.Transactions),
	)
	return nil
}

// checkChannels enforces that a channel code names exactly one account, card
// or loan.
func checkChannels(b Bundle) error {
	seen := make(map[string]struct{})
	claim := func(code string) error {
		if code == "" {
			return nil
		}
		if _, dup := seen[code]; dup {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "channel "+code+" is used by more than one account, card or loan")
		}
		seen[code] = struct{}{}
		return nil
	}
	for _, a := range b.Accounts {
		if err := claim(a.Channel); err != nil {
			return err
		}
	}
	for _, c := range b.Cards {
		if err := claim(c.Channel); err != nil {
			return err
		}
	}
	for _, l := range b.Loans {
		if err := claim(l.Channel); err != nil {
			return err
		}
	}
	return nil
}

// checkReferences rejects cross-entity ids that could never match a stored row.
func checkReferences(b Bundle) error {
	var refs []string
	for _, r := range b.Rules {
		if r.LinkedCardID != nil {
			refs = append(refs, *r.LinkedCardID)
		}
	}
	for _, e := range b.SharedExpenses {
		if e.LinkedRecurringID != nil {
			refs = append(refs, *e.LinkedRecurringID)
		}
	}
	for _, p := range b.DeferredPurchases {
		refs = append(refs, p.CreditCardID)
	}
	for _, tx := range b.Transactions {
		if tx.RecurringChargeID != nil {
			refs = append(refs, *tx.RecurringChargeID)
		}
	}
	for _, id := range refs {
		if !uuid.IsValid(id) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid reference id: "+id)
		}
	}
	return nil
}
