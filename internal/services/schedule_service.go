package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	apperrors "github.com/DASatizabal/personal-budget-manager-sub001/internal/errors"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/forecast"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/logger"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/pagination"
)

// scheduleService persists generated horizons as unposted transactions.
type scheduleService struct {
	db        *gorm.DB
	snapshots SnapshotStorer
	log       *zap.SugaredLogger
}

// NewScheduleService creates a new ScheduleServicer.
func NewScheduleService(db *gorm.DB, snapshots SnapshotStorer) ScheduleServicer {
	return &scheduleService{db: db, snapshots: snapshots, log: logger.Named("schedule")}
}

// Regenerate replaces every unposted transaction dated on or after the horizon
// start with a freshly generated horizon. Posted history is kept and acts as
// the dedup oracle for the new run. The delete and the insert commit together,
// so a failed run leaves the previous schedule in place.
func (s *scheduleService) Regenerate(ctx context.Context, opts forecast.Options) (int, error) {
	start, end, err := opts.Range()
	if err != nil {
		return 0, err
	}

	snap, err := s.snapshots.Load(ctx, start, end)
	if err != nil {
		return 0, err
	}
	snap.History, err = s.snapshots.PostedHistory(ctx, start, end)
	if err != nil {
		return 0, err
	}
	txs, err := forecast.Generate(snap.Forecast(), opts)
	if err != nil {
		return 0, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("is_posted = ? AND date >= ?", false, start).
			Delete(&models.Transaction{}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrStoreFailure, err)
		}
		if len(txs) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(txs, 200).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStoreFailure, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Infow("Regenerated schedule",
		"start", calendar.Key(start),
		"end", calendar.Key(end),
		"transactions", len(txs),
	)
	return len(txs), nil
}

// ListTransactions retrieves a paginated, filtered list of stored transactions
// in date order.
func (s *scheduleService) ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Transaction{})
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", calendar.Day(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date < ?", calendar.AddDays(*f.ToDate, 1))
	}
	if f.Channel != nil {
		q = q.Where("channel = ?", *f.Channel)
	}
	if f.Posted != nil {
		q = q.Where("is_posted = ?", *f.Posted)
	}
	return q
}
