package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

type (
	TransactionType string

	// Date is a timezone-naive calendar day.
	Date struct {
		time.Time
	}

	// Category is a trimmed, case-insensitive label. Equality and grouping use
	// the lowercased key; the originally entered casing is kept for display.
	Category struct {
		display string
		key     string
	}

	// Transaction is an immutable ledger entry. The sign of the amount is
	// carried by Type; Amount itself is always positive.
	Transaction struct {
		ID       int64
		Date     Date
		Amount   decimal.Decimal
		Type     TransactionType
		Category Category
		Note     string
	}
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidCategory = errors.New("category cannot be blank")
	ErrInvalidRange    = errors.New("range end is before range start")
	ErrInvalidMonth    = errors.New("invalid year or month")
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t.UTC()}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseTransactionType maps a textual tag to a TransactionType. Matching is
// case-insensitive; anything outside the two tags is rejected.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Income):
		return Income, nil
	case string(Expense):
		return Expense, nil
	case "":
		return "", fmt.Errorf("%w: type", ErrMissingField)
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrMissingField, s)
	}
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	case "":
		return fmt.Errorf("%w: type", ErrMissingField)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMissingField, string(t))
	}
}

// NewCategory trims the name and builds the dual representation. The name must
// not be blank after trimming.
func NewCategory(name string) (Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Category{}, ErrInvalidCategory
	}
	return Category{display: trimmed, key: strings.ToLower(trimmed)}, nil
}

// Name returns the display string with the original casing.
func (c Category) Name() string {
	return c.display
}

// Key returns the canonical lowercased form used for equality and grouping.
func (c Category) Key() string {
	return c.key
}

// Equal compares categories case-insensitively.
func (c Category) Equal(other Category) bool {
	return c.key == other.key
}

func (c Category) IsZero() bool {
	return c.key == ""
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.display)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cat, err := NewCategory(name)
	if err != nil {
		return err
	}
	*c = cat
	return nil
}

// NewTransaction validates and normalizes a candidate entry. It is the only
// way to build a Transaction; the id stays zero until the store assigns one.
func NewTransaction(date Date, amount decimal.Decimal, typ TransactionType, category, note string) (Transaction, error) {
	if date.IsZero() {
		return Transaction{}, fmt.Errorf("%w: date", ErrMissingField)
	}
	if err := typ.Validate(); err != nil {
		return Transaction{}, err
	}
	cat, err := NewCategory(category)
	if err != nil {
		return Transaction{}, err
	}
	if amount.Sign() <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	return Transaction{
		Date:     date,
		Amount:   amount,
		Type:     typ,
		Category: cat,
		Note:     strings.TrimSpace(note),
	}, nil
}

// ValidateRange checks that to does not precede from.
func ValidateRange(from, to Date) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("%w: date", ErrMissingField)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidRange, to, from)
	}
	return nil
}

// ValidateYearMonth checks month is 1-12 and year is a 4-digit calendar year.
func ValidateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidMonth, month)
	}
	if year < 1000 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidMonth, year)
	}
	return nil
}
