package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newService() *LedgerService {
	return NewLedgerService(memory.New(), nil)
}

func add(t *testing.T, svc *LedgerService, date core.Date, amount string, typ core.TransactionType, category string) int64 {
	t.Helper()
	id, err := svc.AddTransaction(context.Background(), date, dec(amount), typ, category, "")
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return id
}

func TestAddTransactionValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	date := core.NewDate(2025, 1, 5)

	cases := []struct {
		name     string
		date     core.Date
		amount   string
		typ      core.TransactionType
		category string
		want     error
	}{
		{"zero amount", date, "0", core.Expense, "Food", core.ErrInvalidAmount},
		{"negative amount", date, "-10", core.Expense, "Food", core.ErrInvalidAmount},
		{"blank category", date, "10", core.Expense, "   ", core.ErrInvalidCategory},
		{"missing date", core.Date{}, "10", core.Expense, "Food", core.ErrMissingField},
		{"missing type", date, "10", "", "Food", core.ErrMissingField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, tc.date, dec(tc.amount), tc.typ, tc.category, "")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	// nothing must have been inserted
	balance, err := svc.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("failed adds leaked into the store, balance %s", balance)
	}
}

func TestAddThenListRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	date := core.NewDate(2025, 4, 12)

	id, err := svc.AddTransaction(ctx, date, dec("12.34"), core.Expense, " Food ", "lunch")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.ListBetween(ctx, date, date)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
	tx := got[0]
	if !tx.Amount.Equal(dec("12.34")) {
		t.Fatalf("amount not exact: %s", tx.Amount)
	}
	if tx.Type != core.Expense || tx.Category.Name() != "Food" || tx.Note != "lunch" {
		t.Fatalf("fields lost: %+v", tx)
	}
}

func TestListBetweenInvalidRange(t *testing.T) {
	svc := newService()
	_, err := svc.ListBetween(context.Background(), core.NewDate(2025, 2, 1), core.NewDate(2025, 1, 1))
	if !errors.Is(err, core.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestBalance(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	balance, err := svc.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("expected zero balance on empty ledger, got %s", balance)
	}

	add(t, svc, core.NewDate(2025, 1, 5), "1000.00", core.Income, "Salary")
	add(t, svc, core.NewDate(2025, 1, 10), "200.50", core.Expense, "Rent")
	add(t, svc, core.NewDate(2025, 1, 15), "49.50", core.Expense, "Food")

	balance, err = svc.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Equal(dec("750.00")) {
		t.Fatalf("expected 750.00, got %s", balance)
	}
}

func TestMonthlyReport(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	add(t, svc, core.NewDate(2025, 1, 5), "1000.00", core.Income, "Salary")
	add(t, svc, core.NewDate(2025, 1, 10), "200.50", core.Expense, "Rent")
	add(t, svc, core.NewDate(2025, 1, 15), "49.50", core.Expense, "Food")
	add(t, svc, core.NewDate(2025, 2, 1), "500.00", core.Expense, "Travel")

	report, err := svc.MonthlyReport(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !report.Income.Equal(dec("1000.00")) {
		t.Fatalf("expected income 1000.00, got %s", report.Income)
	}
	if !report.Expense.Equal(dec("250.00")) {
		t.Fatalf("expected expense 250.00, got %s", report.Expense)
	}
	if !report.Net.Equal(dec("750.00")) {
		t.Fatalf("expected net 750.00, got %s", report.Net)
	}
	if len(report.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(report.ByCategory))
	}
	if report.ByCategory[0].Category.Name() != "Rent" || !report.ByCategory[0].Total.Equal(dec("200.50")) {
		t.Fatalf("expected Rent 200.50 first, got %s %s",
			report.ByCategory[0].Category.Name(), report.ByCategory[0].Total)
	}
	if report.ByCategory[1].Category.Name() != "Food" || !report.ByCategory[1].Total.Equal(dec("49.50")) {
		t.Fatalf("expected Food 49.50 second, got %s %s",
			report.ByCategory[1].Category.Name(), report.ByCategory[1].Total)
	}
}

func TestMonthlyReportInvalidMonth(t *testing.T) {
	svc := newService()
	for _, tc := range []struct{ year, month int }{
		{2025, 13},
		{2025, 0},
		{999, 5},
	} {
		_, err := svc.MonthlyReport(context.Background(), tc.year, tc.month)
		if !errors.Is(err, core.ErrInvalidMonth) {
			t.Fatalf("(%d,%d): expected ErrInvalidMonth, got %v", tc.year, tc.month, err)
		}
	}
}

func TestMonthlyReportGroupsCategoriesCaseInsensitively(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	add(t, svc, core.NewDate(2025, 1, 3), "10.00", core.Expense, "Food")
	add(t, svc, core.NewDate(2025, 1, 4), "5.00", core.Expense, "FOOD")
	add(t, svc, core.NewDate(2025, 1, 5), "2.50", core.Expense, " food ")

	report, err := svc.MonthlyReport(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(report.ByCategory) != 1 {
		t.Fatalf("expected casings to group together, got %d entries", len(report.ByCategory))
	}
	entry := report.ByCategory[0]
	if !entry.Total.Equal(dec("17.50")) {
		t.Fatalf("expected 17.50, got %s", entry.Total)
	}
	if entry.Category.Name() != "Food" {
		t.Fatalf("expected first-entered casing Food, got %q", entry.Category.Name())
	}
}

func TestMonthlyReportIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	add(t, svc, core.NewDate(2025, 1, 5), "1000.00", core.Income, "Salary")
	add(t, svc, core.NewDate(2025, 1, 10), "200.50", core.Expense, "Rent")
	add(t, svc, core.NewDate(2025, 1, 15), "49.50", core.Expense, "Food")
	add(t, svc, core.NewDate(2025, 1, 16), "49.50", core.Expense, "Transport")

	first, err := svc.MonthlyReport(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("first report: %v", err)
	}
	second, err := svc.MonthlyReport(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ with no intervening writes:\n%+v\n%+v", first, second)
	}
}

type failingStore struct {
	memory.Store
	err error
}

func (f *failingStore) SumByType(_ context.Context, _ core.TransactionType) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func TestBalancePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("store unavailable")
	svc := NewLedgerService(&failingStore{err: storeErr}, nil)

	_, err := svc.Balance(context.Background())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
