package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotal is an amount aggregated under one category.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyReport is the derived summary for a specific year+month. It is
// recomputed from the store on every request and never persisted.
type MonthlyReport struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"` // 1-12
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
	ByCategory []CategoryTotal `json:"byCategory"`
}

// NewMonthlyReport assembles the report from the month's totals. The category
// breakdown is ordered by descending total, ties broken by category name
// ascending without regard to case.
func NewMonthlyReport(year, month int, income, expense decimal.Decimal, byCategory []CategoryTotal) MonthlyReport {
	ordered := append([]CategoryTotal(nil), byCategory...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Total.Equal(ordered[j].Total) {
			return ordered[i].Total.GreaterThan(ordered[j].Total)
		}
		return ordered[i].Category.Key() < ordered[j].Category.Key()
	})
	return MonthlyReport{
		Year:       year,
		Month:      month,
		Income:     income,
		Expense:    expense,
		Net:        income.Sub(expense),
		ByCategory: ordered,
	}
}
