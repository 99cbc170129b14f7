// Package services composes validation, the ledger store, and the
// aggregation rules into the three ledger use-cases.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// LedgerService is the reporting facade. It is stateless: every call is a
// bounded sequence of store queries against the store's current snapshot, so
// it is safe to share across request goroutines.
type LedgerService struct {
	store  ledger.Store
	events *amqp.Client
}

// NewLedgerService wires the facade. events may be nil; publishing is then
// skipped.
func NewLedgerService(store ledger.Store, events *amqp.Client) *LedgerService {
	return &LedgerService{
		store:  store,
		events: events,
	}
}

// AddTransaction validates and normalizes the candidate, inserts it, and
// returns the store-assigned id. Validation failures propagate untouched so
// callers can discriminate with errors.Is; nothing is inserted on failure.
func (s *LedgerService) AddTransaction(ctx context.Context, date core.Date, amount decimal.Decimal, typ core.TransactionType, category, note string) (int64, error) {
	tx, err := core.NewTransaction(date, amount, typ, category, note)
	if err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	// Best-effort event; the transaction is already durable.
	if s.events != nil {
		if err := s.events.PublishTransactionCreated(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish transaction event",
				"id", id, "error", err)
		}
	}

	return id, nil
}

// ListBetween returns transactions with from <= date <= to, ascending by
// date, insertion order preserved for same-day entries.
func (s *LedgerService) ListBetween(ctx context.Context, from, to core.Date) ([]core.Transaction, error) {
	if err := core.ValidateRange(from, to); err != nil {
		return nil, err
	}
	txs, err := s.store.FindBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Balance is all-time income minus all-time expense, recomputed from the
// store on every call. No running counter is kept.
func (s *LedgerService) Balance(ctx context.Context) (decimal.Decimal, error) {
	income, err := s.store.SumByType(ctx, core.Income)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum income: %w", err)
	}
	expense, err := s.store.SumByType(ctx, core.Expense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expense: %w", err)
	}
	return income.Sub(expense), nil
}

// MonthlyReport computes the income, expense, net, and expense-by-category
// totals for one calendar month. Nothing is cached.
func (s *LedgerService) MonthlyReport(ctx context.Context, year, month int) (core.MonthlyReport, error) {
	if err := core.ValidateYearMonth(year, month); err != nil {
		return core.MonthlyReport{}, err
	}

	income, err := s.store.SumForMonth(ctx, year, month, core.Income)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("sum monthly income: %w", err)
	}
	expense, err := s.store.SumForMonth(ctx, year, month, core.Expense)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("sum monthly expense: %w", err)
	}
	byCategory, err := s.store.SumByCategoryForMonth(ctx, year, month, core.Expense)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("sum expense by category: %w", err)
	}

	return core.NewMonthlyReport(year, month, income, expense, byCategory), nil
}
