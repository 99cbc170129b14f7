// Package ledger defines the outbound port the reporting core depends on.
// Backends only have to honor the range and group-by semantics below; the
// core never sees a query language or a connection.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Store is the append-only transaction log.
//
// All sums return zero, never an absence marker, when nothing matches, and
// every amount is accumulated as an exact decimal. Grouping is by the
// category's canonical key; the display casing of a merged group is the one
// of its earliest inserted transaction.
type Store interface {
	// Insert appends a validated transaction and returns the assigned id.
	Insert(ctx context.Context, tx core.Transaction) (int64, error)

	// FindBetween returns transactions with from <= date <= to, ascending by
	// date, insertion order preserved for equal dates.
	FindBetween(ctx context.Context, from, to core.Date) ([]core.Transaction, error)

	// SumByType totals all transactions of the given type across all time.
	SumByType(ctx context.Context, typ core.TransactionType) (decimal.Decimal, error)

	// SumForMonth totals transactions of the given type within one calendar month.
	SumForMonth(ctx context.Context, year, month int, typ core.TransactionType) (decimal.Decimal, error)

	// SumByCategoryForMonth totals per category, restricted to one calendar
	// month and one type. Order of the returned slice is unspecified.
	SumByCategoryForMonth(ctx context.Context, year, month int, typ core.TransactionType) ([]core.CategoryTotal, error)
}
