// Package http is the JSON adapter over the reporting facade. It owns status
// mapping, parameter parsing, and request logging; every ledger rule lives
// below it.
package http

import (
	"net/http"

	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

type Server struct {
	svc *services.LedgerService
}

// NewServer builds the HTTP server with all routes registered. Timeouts are
// left for the caller to configure.
func NewServer(addr string, svc *services.LedgerService) *http.Server {
	s := &Server{svc: svc}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/balance", s.handleBalance)
	mux.HandleFunc("/api/reports/monthly", s.handleMonthlyReport)
	mux.HandleFunc("/healthz", s.handleHealth)

	traced := trace.NewMiddleware()

	return &http.Server{
		Addr:    addr,
		Handler: traced.Middleware(mux),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
