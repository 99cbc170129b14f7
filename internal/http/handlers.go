package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// transactionResponse is the wire shape of one ledger entry. Amounts render
// as decimal strings so nothing is lost to float formatting.
type transactionResponse struct {
	ID       int64           `json:"id"`
	Date     core.Date       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Note     string          `json:"note,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Date:     tx.Date,
		Amount:   tx.Amount,
		Type:     string(tx.Type),
		Category: tx.Category.Name(),
		Note:     tx.Note,
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateRequest(r.Body)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	var date core.Date
	if req.Date != "" {
		date, err = core.ParseDate(req.Date)
		if err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	typ, err := core.ParseTransactionType(req.Type)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := s.svc.AddTransaction(r.Context(), date, req.Amount, typ, req.Category, req.Note)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	from, to, err := ParseDateRange(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	txs, err := s.svc.ListBetween(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	balance, err := s.svc.Balance(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	params, err := ParseMonthParams(r.URL.Query())
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	report, err := s.svc.MonthlyReport(r.Context(), params.Year, params.Month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
