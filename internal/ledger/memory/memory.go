// Package memory is an in-process ledger.Store. It backs tests and the
// zero-config backend; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// Insert appends the transaction and returns its assigned id.
func (s *Store) Insert(_ context.Context, tx core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.nextID
	s.nextID++
	s.items = append(s.items, tx)
	return tx.ID, nil
}

// FindBetween returns transactions in the inclusive date range, ascending by
// date. The backing slice is append-only, so a stable sort preserves
// insertion order for same-day entries.
func (s *Store) FindBetween(_ context.Context, from, to core.Date) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, tx := range s.items {
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Store) SumByType(_ context.Context, typ core.TransactionType) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, tx := range s.items {
		if tx.Type == typ {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (s *Store) SumForMonth(_ context.Context, year, month int, typ core.TransactionType) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, tx := range s.items {
		if tx.Type == typ && tx.Date.Year() == year && tx.Date.Month() == month {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (s *Store) SumByCategoryForMonth(_ context.Context, year, month int, typ core.TransactionType) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]decimal.Decimal)
	display := make(map[string]core.Category)
	var keys []string
	for _, tx := range s.items {
		if tx.Type != typ || tx.Date.Year() != year || tx.Date.Month() != month {
			continue
		}
		key := tx.Category.Key()
		if _, seen := totals[key]; !seen {
			// first insertion wins the display casing
			display[key] = tx.Category
			keys = append(keys, key)
		}
		totals[key] = totals[key].Add(tx.Amount)
	}

	out := make([]core.CategoryTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, core.CategoryTotal{Category: display[key], Total: totals[key]})
	}
	return out, nil
}
