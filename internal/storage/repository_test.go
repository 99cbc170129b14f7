package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func insert(t *testing.T, repo *SQLiteRepository, date core.Date, amount string, typ core.TransactionType, category, note string) int64 {
	t.Helper()
	tx, err := core.NewTransaction(date, decimal.RequireFromString(amount), typ, category, note)
	if err != nil {
		t.Fatalf("build transaction: %v", err)
	}
	id, err := repo.Insert(context.Background(), tx)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return id
}

func TestInsertAndFindBetween(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	insert(t, repo, core.NewDate(2025, 1, 10), "200.50", core.Expense, "Rent", "")
	insert(t, repo, core.NewDate(2025, 1, 5), "1000.00", core.Income, "Salary", "january pay")
	insert(t, repo, core.NewDate(2025, 1, 10), "49.50", core.Expense, "Food", "")
	insert(t, repo, core.NewDate(2025, 2, 1), "10.00", core.Expense, "Food", "")

	got, err := repo.FindBetween(ctx, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31))
	if err != nil {
		t.Fatalf("find between: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}
	if got[0].Category.Name() != "Salary" {
		t.Fatalf("expected Salary first, got %s", got[0].Category.Name())
	}
	// same day: insertion order, Rent was inserted before Food
	if got[1].Category.Name() != "Rent" || got[2].Category.Name() != "Food" {
		t.Fatalf("same-day order wrong: %s, %s", got[1].Category.Name(), got[2].Category.Name())
	}
	if !got[0].Amount.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("amount changed through storage: %s", got[0].Amount)
	}
	if got[0].Note != "january pay" {
		t.Fatalf("note lost through storage: %q", got[0].Note)
	}
	if got[0].ID == 0 {
		t.Fatalf("id not assigned")
	}
}

func TestSumByType(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	income, err := repo.SumByType(ctx, core.Income)
	if err != nil {
		t.Fatalf("sum on empty store: %v", err)
	}
	if !income.IsZero() {
		t.Fatalf("expected zero on empty store, got %s", income)
	}

	insert(t, repo, core.NewDate(2025, 1, 5), "1000.00", core.Income, "Salary", "")
	insert(t, repo, core.NewDate(2025, 1, 10), "200.50", core.Expense, "Rent", "")
	insert(t, repo, core.NewDate(2025, 3, 2), "0.10", core.Expense, "Food", "")

	income, err = repo.SumByType(ctx, core.Income)
	if err != nil {
		t.Fatalf("sum income: %v", err)
	}
	if !income.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("expected 1000.00, got %s", income)
	}

	expense, err := repo.SumByType(ctx, core.Expense)
	if err != nil {
		t.Fatalf("sum expense: %v", err)
	}
	if !expense.Equal(decimal.RequireFromString("200.60")) {
		t.Fatalf("expected 200.60, got %s", expense)
	}
}

func TestSumForMonthBoundaries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// last day of January stays in January, first of February does not
	insert(t, repo, core.NewDate(2025, 1, 31), "10.00", core.Expense, "Food", "")
	insert(t, repo, core.NewDate(2025, 2, 1), "20.00", core.Expense, "Food", "")
	insert(t, repo, core.NewDate(2024, 12, 31), "40.00", core.Expense, "Food", "")

	jan, err := repo.SumForMonth(ctx, 2025, 1, core.Expense)
	if err != nil {
		t.Fatalf("sum january: %v", err)
	}
	if !jan.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected 10.00 in January, got %s", jan)
	}

	dec24, err := repo.SumForMonth(ctx, 2024, 12, core.Expense)
	if err != nil {
		t.Fatalf("sum december: %v", err)
	}
	if !dec24.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected 40.00 in December, got %s", dec24)
	}
}

func TestSumByCategoryForMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	insert(t, repo, core.NewDate(2025, 1, 3), "10.00", core.Expense, "Food", "")
	insert(t, repo, core.NewDate(2025, 1, 4), "5.50", core.Expense, "FOOD", "")
	insert(t, repo, core.NewDate(2025, 1, 6), "200.50", core.Expense, "Rent", "")
	insert(t, repo, core.NewDate(2025, 1, 7), "1000.00", core.Income, "Salary", "")
	insert(t, repo, core.NewDate(2025, 2, 1), "99.00", core.Expense, "Food", "")

	got, err := repo.SumByCategoryForMonth(ctx, 2025, 1, core.Expense)
	if err != nil {
		t.Fatalf("sum by category: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}

	byKey := make(map[string]core.CategoryTotal)
	for _, ct := range got {
		byKey[ct.Category.Key()] = ct
	}
	food := byKey["food"]
	if !food.Total.Equal(decimal.RequireFromString("15.50")) {
		t.Fatalf("expected food 15.50, got %s", food.Total)
	}
	if food.Category.Name() != "Food" {
		t.Fatalf("expected first-seen casing Food, got %q", food.Category.Name())
	}
	rent := byKey["rent"]
	if !rent.Total.Equal(decimal.RequireFromString("200.50")) {
		t.Fatalf("expected rent 200.50, got %s", rent.Total)
	}
}

func TestExactDecimalAccumulation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// 0.1 repeated; float accumulation would drift
	for i := 0; i < 10; i++ {
		insert(t, repo, core.NewDate(2025, 1, 5), "0.10", core.Expense, "Food", "")
	}

	total, err := repo.SumForMonth(ctx, 2025, 1, core.Expense)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("expected exactly 1.00, got %s", total)
	}
}
