// Request parsing utilities shared by the handlers: query parameter
// extraction with validation and the create-transaction payload.

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// createTransactionRequest is the POST /api/transactions payload. The amount
// travels as a JSON string or number; decimal parsing keeps it exact either
// way.
type createTransactionRequest struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
}

// MonthParams holds parsed year/month values from request parameters.
type MonthParams struct {
	Year  int
	Month int
}

const maxBodySize = 1 << 16 // 64KB, transactions are tiny

func decodeCreateRequest(body io.Reader) (createTransactionRequest, error) {
	var req createTransactionRequest
	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		return createTransactionRequest{}, fmt.Errorf("decode request body: %w", err)
	}
	return req, nil
}

// ParseDateRange extracts the from/to query parameters. Both are required
// ISO 8601 dates; range validation itself belongs to the facade.
func ParseDateRange(query url.Values) (core.Date, core.Date, error) {
	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		return core.Date{}, core.Date{}, fmt.Errorf("from and to query parameters are required")
	}
	from, err := core.ParseDate(fromStr)
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	to, err := core.ParseDate(toStr)
	if err != nil {
		return core.Date{}, core.Date{}, err
	}
	return from, to, nil
}

// ParseMonthParams extracts year and month query parameters, defaulting to
// the current month when absent. Malformed values are an error rather than a
// silent fallback.
func ParseMonthParams(query url.Values) (MonthParams, error) {
	now := time.Now()
	params := MonthParams{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if v := query.Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return MonthParams{}, fmt.Errorf("invalid year %q", v)
		}
		params.Year = y
	}
	if v := query.Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return MonthParams{}, fmt.Errorf("invalid month %q", v)
		}
		params.Month = m
	}

	return params, nil
}
