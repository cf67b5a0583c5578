package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/balance"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/forecast"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/logger"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
)

// forecastService runs the generator and balance analyzers over store snapshots.
type forecastService struct {
	snapshots SnapshotStorer
	log       *zap.SugaredLogger
}

// NewForecastService creates a new ForecastServicer.
func NewForecastService(snapshots SnapshotStorer) ForecastServicer {
	return &forecastService{snapshots: snapshots, log: logger.Named("forecast")}
}

func (s *forecastService) load(ctx context.Context, opts forecast.Options) (*EntitySnapshot, []models.Transaction, time.Time, time.Time, error) {
	start, end, err := opts.Range()
	if err != nil {
		return nil, nil, time.Time{}, time.Time{}, err
	}
	snap, err := s.snapshots.Load(ctx, start, end)
	if err != nil {
		return nil, nil, start, end, err
	}
	txs, err := forecast.Generate(snap.Forecast(), opts)
	if err != nil {
		return nil, nil, start, end, err
	}
	s.log.Infow("Generated forecast",
		"start", calendar.Key(start),
		"end", calendar.Key(end),
		"rules", len(snap.Rules),
		"recorded", snap.History.Len(),
		"transactions", len(txs),
	)
	return snap, txs, start, end, nil
}

// Generate returns the projected transactions for the horizon.
func (s *forecastService) Generate(ctx context.Context, opts forecast.Options) ([]models.Transaction, error) {
	_, txs, _, _, err := s.load(ctx, opts)
	return txs, err
}

// Project returns the projected transactions with running balances.
func (s *forecastService) Project(ctx context.Context, opts forecast.Options) (*Projection, error) {
	snap, txs, start, end, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	starting := snap.StartingBalances()
	links := balance.NewCardLinks(snap.Cards, snap.Rules)
	return &Projection{
		Start:        start,
		End:          end,
		Starting:     starting,
		Transactions: txs,
		Balances:     balance.RunningBalances(txs, starting, snap.Cards, links),
	}, nil
}

// Summary analyzes every bank-account channel over horizonDays from the
// horizon start: the lowest projected balance and the first overdraft.
func (s *forecastService) Summary(ctx context.Context, opts forecast.Options, horizonDays int) (*Summary, error) {
	snap, txs, start, _, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	starting := snap.StartingBalances()

	summary := &Summary{
		AsOf:        start,
		HorizonDays: horizonDays,
		Utilization: balance.Utilization(snap.Cards),
	}
	for _, a := range snap.Accounts {
		if a.Channel == "" {
			continue
		}
		outlook := ChannelOutlook{Channel: a.Channel, Starting: starting[a.Channel]}

		minBalance, minDate, ok := balance.MinimumBalanceInHorizon(outlook.Starting, txs, a.Channel, start, horizonDays)
		outlook.MinimumBalance = minBalance
		if ok {
			outlook.MinimumDate = &minDate
		}

		if neg, negDate, ok := balance.FirstNegativeBalance(outlook.Starting, txs, a.Channel, start); ok {
			outlook.FirstNegative = &neg
			outlook.FirstNegativeOn = &negDate
			s.log.Warnw("Projected overdraft",
				"channel", a.Channel,
				"balance", neg,
				"date", calendar.Key(negDate),
			)
		}
		summary.Channels = append(summary.Channels, outlook)
	}
	return summary, nil
}
