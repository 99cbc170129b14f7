// Package storage is the durable SQLite backend of the ledger.
//
// Amounts are stored as exact decimal text and every aggregation accumulates
// with decimal arithmetic in Go rather than SQL SUM, which would coerce the
// text to floating point and drift.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements ledger.Store.
func (r *SQLiteRepository) Insert(ctx context.Context, tx core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, amount, type, category, category_key, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.Date.String(),
		tx.Amount.String(),
		string(tx.Type),
		tx.Category.Name(),
		tx.Category.Key(),
		tx.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}

// FindBetween implements ledger.Store. Dates are ISO 8601 text, so lexical
// comparison matches chronological order; the id tiebreak keeps same-day
// entries in insertion order.
func (r *SQLiteRepository) FindBetween(ctx context.Context, from, to core.Date) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, amount, type, category, note
		 FROM transactions
		 WHERE date >= ? AND date <= ?
		 ORDER BY date ASC, id ASC`,
		from.String(), to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions between %s and %s: %w", from, to, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// SumByType implements ledger.Store.
func (r *SQLiteRepository) SumByType(ctx context.Context, typ core.TransactionType) (decimal.Decimal, error) {
	return r.sumAmounts(ctx,
		`SELECT amount FROM transactions WHERE type = ?`,
		string(typ))
}

// SumForMonth implements ledger.Store.
func (r *SQLiteRepository) SumForMonth(ctx context.Context, year, month int, typ core.TransactionType) (decimal.Decimal, error) {
	first, next := monthBounds(year, month)
	return r.sumAmounts(ctx,
		`SELECT amount FROM transactions WHERE type = ? AND date >= ? AND date < ?`,
		string(typ), first, next)
}

// SumByCategoryForMonth implements ledger.Store. Rows are scanned in
// insertion order so the first casing seen for a key wins the display string.
func (r *SQLiteRepository) SumByCategoryForMonth(ctx context.Context, year, month int, typ core.TransactionType) ([]core.CategoryTotal, error) {
	first, next := monthBounds(year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, category_key, amount
		 FROM transactions
		 WHERE type = ? AND date >= ? AND date < ?
		 ORDER BY id ASC`,
		string(typ), first, next,
	)
	if err != nil {
		return nil, fmt.Errorf("query category totals for %s: %w", first[:7], err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	display := make(map[string]core.Category)
	var keys []string
	for rows.Next() {
		var name, key, amountStr string
		if err := rows.Scan(&name, &key, &amountStr); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amountStr, err)
		}
		if _, seen := totals[key]; !seen {
			cat, err := core.NewCategory(name)
			if err != nil {
				return nil, fmt.Errorf("rebuild stored category %q: %w", name, err)
			}
			display[key] = cat
			keys = append(keys, key)
		}
		totals[key] = totals[key].Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category totals: %w", err)
	}

	out := make([]core.CategoryTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, core.CategoryTotal{Category: display[key], Total: totals[key]})
	}
	return out, nil
}

func (r *SQLiteRepository) sumAmounts(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query amounts: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return decimal.Zero, fmt.Errorf("scan amount: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse stored amount %q: %w", amountStr, err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("iterate amounts: %w", err)
	}
	return total, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var id int64
	var dateStr, amountStr, typStr, categoryStr, note string
	if err := rows.Scan(&id, &dateStr, &amountStr, &typStr, &categoryStr, &note); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amountStr, err)
	}
	tx, err := core.NewTransaction(date, amount, core.TransactionType(typStr), categoryStr, note)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("rebuild stored transaction %d: %w", id, err)
	}
	tx.ID = id
	return tx, nil
}

// monthBounds returns the half-open [first day, first day of next month) as
// ISO date strings.
func monthBounds(year, month int) (string, string) {
	first := core.NewDate(year, month, 1)
	next := core.Date{Time: first.AddDate(0, 1, 0)}
	return first.String(), next.String()
}
