package services

import (
	"context"
	"time"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/balance"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/forecast"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/pagination"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/payoff"
)

// EntitySnapshot is every entity one engine run reads, loaded together.
type EntitySnapshot struct {
	Rules          []models.RecurringCharge
	Paycheck       *models.PaycheckConfig
	SharedExpenses []models.SharedExpense
	Cards          []models.CreditCard
	Accounts       []models.Account
	Loans          []models.Loan
	History        *forecast.History
}

// SnapshotStorer defines the read path from the entity store to the engines.
type SnapshotStorer interface {
	ListActiveRecurringRules(ctx context.Context) ([]models.RecurringCharge, error)
	GetCurrentPaycheckConfig(ctx context.Context) (*models.PaycheckConfig, error)
	ListSharedExpenses(ctx context.Context) ([]models.SharedExpense, error)
	ListCards(ctx context.Context) ([]models.CreditCard, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListLoans(ctx context.Context) ([]models.Loan, error)
	ListDeferredPurchases(ctx context.Context) ([]models.DeferredPurchase, error)
	RecordedHistory(ctx context.Context, start, end time.Time) (*forecast.History, error)
	PostedHistory(ctx context.Context, start, end time.Time) (*forecast.History, error)
	Load(ctx context.Context, start, end time.Time) (*EntitySnapshot, error)
}

// Projection is a generated horizon with its running balances.
type Projection struct {
	Start        time.Time            `json:"start"`
	End          time.Time            `json:"end"`
	Starting     map[string]float64   `json:"starting_balances"`
	Transactions []models.Transaction `json:"transactions"`
	Balances     []balance.Snapshot   `json:"balances"`
}

// ChannelOutlook is the horizon analysis of one channel.
type ChannelOutlook struct {
	Channel         string     `json:"channel"`
	Starting        float64    `json:"starting_balance"`
	MinimumBalance  float64    `json:"minimum_balance"`
	MinimumDate     *time.Time `json:"minimum_date,omitempty"`
	FirstNegative   *float64   `json:"first_negative_balance,omitempty"`
	FirstNegativeOn *time.Time `json:"first_negative_date,omitempty"`
}

// Summary is the dashboard view of a horizon.
type Summary struct {
	AsOf        time.Time        `json:"as_of"`
	HorizonDays int              `json:"horizon_days"`
	Channels    []ChannelOutlook `json:"channels"`
	Utilization float64          `json:"utilization"`
}

// ForecastServicer defines the contract for cash-flow projection.
type ForecastServicer interface {
	Generate(ctx context.Context, opts forecast.Options) ([]models.Transaction, error)
	Project(ctx context.Context, opts forecast.Options) (*Projection, error)
	Summary(ctx context.Context, opts forecast.Options, horizonDays int) (*Summary, error)
}

// PayoffServicer defines the contract for debt payoff planning.
type PayoffServicer interface {
	Cards(ctx context.Context) ([]payoff.CardPayoffInfo, error)
	Calculate(ctx context.Context, strategy string, opts payoff.Options) (*payoff.PayoffResult, error)
	CalculateAll(ctx context.Context, opts payoff.Options) ([]payoff.PayoffResult, error)
	DeferredStatuses(ctx context.Context, asOf time.Time) ([]payoff.DeferredStatus, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Channel  *string
	Posted   *bool
}

// ScheduleServicer defines the contract for persisting generated horizons.
type ScheduleServicer interface {
	Regenerate(ctx context.Context, opts forecast.Options) (int, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

// Bundle is a set of entities to import in one go.
type Bundle struct {
	Accounts          []models.Account          `json:"accounts" validate:"dive"`
	Cards             []models.CreditCard       `json:"credit_cards" validate:"dive"`
	Loans             []models.Loan             `json:"loans" validate:"dive"`
	Rules             []models.RecurringCharge  `json:"recurring_charges" validate:"dive"`
	Paycheck          *models.PaycheckConfig    `json:"paycheck,omitempty"`
	SharedExpenses    []models.SharedExpense    `json:"shared_expenses" validate:"dive"`
	DeferredPurchases []models.DeferredPurchase `json:"deferred_purchases" validate:"dive"`
	Transactions      []models.Transaction      `json:"transactions" validate:"dive"`
}

// ImportServicer defines the contract for loading entities into the store.
type ImportServicer interface {
	Import(ctx context.Context, bundle Bundle) error
}
