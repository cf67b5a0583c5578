package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/DASatizabal/personal-budget-manager-sub001/internal/calendar"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/forecast"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/logger"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/models"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/money"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/pagination"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/payoff"
	"github.com/DASatizabal/personal-budget-manager-sub001/internal/services"
)

// horizonFlags are the flags shared by every command that generates a horizon.
type horizonFlags struct {
	from   string
	months int
	page   pagination.PageRequest
}

func (h *horizonFlags) register(a *app, fs *flag.FlagSet) {
	fs.StringVar(&h.from, "from", "", "horizon start (YYYY-MM-DD), defaults to today")
	fs.IntVar(&h.months, "months", a.cfg.ForecastMonths, "months to project")
	fs.IntVar(&h.page.Page, "page", 0, "page number")
	fs.IntVar(&h.page.PageSize, "page-size", 0, "rows per page")
}

func (h *horizonFlags) options(a *app) (forecast.Options, error) {
	if err := h.page.Validate(); err != nil {
		return forecast.Options{}, err
	}
	start := a.cfg.Today()
	if h.from != "" {
		var err error
		if start, err = calendar.Parse(h.from); err != nil {
			return forecast.Options{}, err
		}
	}
	return forecast.Options{Start: start, MonthsAhead: h.months, BankChannel: a.cfg.BankChannel}, nil
}

func transactionRow(tx models.Transaction) []string {
	return []string{calendar.Key(tx.Date), tx.Description, tx.Channel, money.Format(tx.Amount)}
}

func runForecast(ctx context.Context, a *app, args []string) error {
	fs, format := newFlagSet("forecast")
	var h horizonFlags
	h.register(a, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := h.options(a)
	if err != nil {
		return err
	}

	txs, err := a.forecast.Generate(ctx, opts)
	if err != nil {
		return err
	}
	page := pagination.Slice(txs, h.page)

	t := table{header: []string{"DATE", "DESCRIPTION", "CHANNEL", "AMOUNT"}}
	for _, tx := range page.Data {
		t.add(transactionRow(tx)...)
	}
	return render(a.out, *format, page, t)
}

func runBalances(ctx context.Context, a *app, args []string) error {
	fs, format := newFlagSet("balances")
	var h horizonFlags
	h.register(a, fs)
	channel := fs.String("channel", a.cfg.BankChannel, "channel whose running balance is shown")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := h.options(a)
	if err != nil {
		return err
	}

	p, err := a.forecast.Project(ctx, opts)
	if err != nil {
		return err
	}
	page := pagination.Slice(p.Balances, h.page)

	t := table{header: []string{"DATE", "DESCRIPTION", "CHANNEL", "AMOUNT", "BALANCE " + *channel, "UTILIZATION"}}
	for _, s := range page.Data {
		row := transactionRow(s.Transaction)
		row = append(row, money.Format(s.RunningBalances[*channel]), strconv.FormatFloat(s.TotalUtilization*100, 'f', 1, 64)+"%")
		t.add(row...)
	}
	return render(a.out, *format, page, t)
}

func runSummary(ctx context.Context, a *app, args []string) error {
	fs, format := newFlagSet("summary")
	var h horizonFlags
	h.register(a, fs)
	days := fs.Int("days", a.cfg.HorizonDays, "days scanned for the lowest balance")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := h.options(a)
	if err != nil {
		return err
	}

	s, err := a.forecast.Summary(ctx, opts, *days)
	if err != nil {
		return err
	}

	t := table{header: []string{"CHANNEL", "STARTING", "MINIMUM", "MINIMUM ON", "FIRST NEGATIVE", "NEGATIVE ON"}}
	for _, c := range s.Channels {
		minOn, neg, negOn := "-", "-", "-"
		if c.MinimumDate != nil {
			minOn = calendar.Key(*c.MinimumDate)
		}
		if c.FirstNegative != nil {
			neg = money.Format(*c.FirstNegative)
			negOn = calendar.Key(*c.FirstNegativeOn)
		}
		t.add(c.Channel, money.Format(c.Starting), money.Format(c.MinimumBalance), minOn, neg, negOn)
	}
	return render(a.out, *format, s, t)
}

func runPayoff(ctx context.Context, a *app, args []string) error {
	fs, format := newFlagSet("payoff")
	extra := fs.Float64("extra", a.cfg.MonthlyExtra, "extra payment per month")
	maxMonths := fs.Int("max-months", a.cfg.MaxMonths, "simulation month cap")
	strategy := fs.String("strategy", "", "run a single strategy and print its schedule")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts := payoff.Options{MonthlyExtra: *extra, AsOf: a.cfg.Today(), MaxMonths: *maxMonths}

	if *strategy != "" {
		r, err := a.payoff.Calculate(ctx, *strategy, opts)
		if err != nil {
			return err
		}
		t := table{header: []string{"DATE", "CARD", "PAYMENT", "PRINCIPAL", "INTEREST", "EXTRA", "REMAINING"}}
		for _, e := range r.Schedule {
			t.add(calendar.Key(e.Date), e.CardName, money.Format(e.Amount), money.Format(e.Principal),
				money.Format(e.Interest), strconv.FormatBool(e.Extra), money.Format(e.RemainingBalance))
		}
		return render(a.out, *format, r, t)
	}

	results, err := a.payoff.CalculateAll(ctx, opts)
	if err != nil {
		return err
	}
	t := table{header: []string{"STRATEGY", "MONTHS", "PAYOFF DATE", "TOTAL INTEREST", "TOTAL PAID", "AVG MONTHLY", "CONVERGED"}}
	for _, r := range results {
		t.add(r.Strategy, strconv.Itoa(r.MonthsToPayoff), calendar.Key(r.PayoffDate), money.Format(r.TotalInterest),
			money.Format(r.TotalPayments), money.Format(r.AverageMonthlyPayment), strconv.FormatBool(r.Converged))
	}
	return render(a.out, *format, results, t)
}

func runDeferred(ctx context.Context, a *app, args []string) error {
	fs, format := newFlagSet("deferred")
	within := fs.Int("within", 0, "only promotions expiring within this many days")
	atRisk := fs.Bool("at-risk", false, "only promotions not cleared by their minimum payment")
	if err := fs.Parse(args); err != nil {
		return err
	}

	statuses, err := a.payoff.DeferredStatuses(ctx, a.cfg.Today())
	if err != nil {
		return err
	}
	if *within > 0 {
		statuses = payoff.ExpiringWithin(statuses, *within)
	}
	if *atRisk {
		statuses = payoff.AtRisk(statuses)
	}

	t := table{header: []string{"PURCHASE", "PROMO END", "DAYS", "REMAINING", "NEEDED/MONTH", "RISK", "POTENTIAL INTEREST"}}
	for _, s := range statuses {
		t.add(s.Purchase.Description, calendar.Key(s.Purchase.PromoEndDate), strconv.Itoa(s.DaysUntilExpiry),
			money.Format(s.Purchase.RemainingBalance), money.Format(s.MonthlyPaymentNeeded), string(s.Risk),
			money.Format(s.PotentialInterest))
	}
	return render(a.out, *format, statuses, t)
}

func runRegenerate(ctx context.Context, a *app, args []string) error {
	fs, _ := newFlagSet("regenerate")
	var h horizonFlags
	h.register(a, fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := h.options(a)
	if err != nil {
		return err
	}

	n, err := a.schedule.Regenerate(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "scheduled %d transactions\n", n)
	return nil
}

func runTransactions(ctx context.Context, a *app, args []string) error {
	fs, format := newFlagSet("transactions")
	var page pagination.PageRequest
	fs.IntVar(&page.Page, "page", 0, "page number")
	fs.IntVar(&page.PageSize, "page-size", 0, "rows per page")
	from := fs.String("from", "", "earliest date (YYYY-MM-DD)")
	to := fs.String("to", "", "latest date (YYYY-MM-DD)")
	channel := fs.String("channel", "", "only this channel")
	posted := fs.String("posted", "", "true or false to filter by posting state")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := page.Validate(); err != nil {
		return err
	}

	var filter services.TransactionFilter
	if *from != "" {
		d, err := calendar.Parse(*from)
		if err != nil {
			return err
		}
		filter.FromDate = &d
	}
	if *to != "" {
		d, err := calendar.Parse(*to)
		if err != nil {
			return err
		}
		filter.ToDate = &d
	}
	if *channel != "" {
		filter.Channel = channel
	}
	if *posted != "" {
		b, err := strconv.ParseBool(*posted)
		if err != nil {
			return fmt.Errorf("invalid -posted value: %w", err)
		}
		filter.Posted = &b
	}

	resp, err := a.schedule.ListTransactions(ctx, page, filter)
	if err != nil {
		return err
	}
	t := table{header: []string{"DATE", "DESCRIPTION", "CHANNEL", "AMOUNT", "POSTED"}}
	for _, tx := range resp.Data {
		t.add(append(transactionRow(tx), strconv.FormatBool(tx.IsPosted))...)
	}
	return render(a.out, *format, resp, t)
}

func runImport(ctx context.Context, a *app, args []string) error {
	fs, _ := newFlagSet("import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: budgetcast import <bundle.json>")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var bundle services.Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return fmt.Errorf("failed to parse bundle: %w", err)
	}
	if err := a.imports.Import(ctx, bundle); err != nil {
		return err
	}
	logger.Get().Infow("Import complete", "file", fs.Arg(0))
	return nil
}
