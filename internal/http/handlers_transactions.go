package http

import (
	"net/http"
	"strings"

	"finsight/internal/core"
	"finsight/internal/log"
)

type transactionList struct {
	Year         int                `json:"year,omitempty"`
	Month        int                `json:"month,omitempty"`
	Transactions []core.Transaction `json:"transactions"`
}

// GET /api/transactions?year=&month=  (all=1 returns every record)
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("all") == "1" || strings.EqualFold(q.Get("all"), "true") {
		txs, err := s.txs.List(r.Context(), 0, 0)
		if err != nil {
			s.writeServiceError(w, r, log.OpList, err)
			return
		}
		writeJSON(w, http.StatusOK, transactionList{Transactions: txs})
		return
	}

	year, month, err := parseMonthParams(q, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	txs, err := s.txs.List(r.Context(), year, month)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionList{Year: year, Month: int(month), Transactions: txs})
}

// POST /api/transactions
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := NewRequestBodyParser(w, r).NewTransaction()
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	t, err := s.txs.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}

	log.NewStructuredLogger(log.FromContext(r.Context())).
		LogTransactionCreated(r.Context(), t.ID, t.Type.String(), t.Category.String(), t.Amount)
	w.Header().Set("Location", "/api/transactions/"+t.ID)
	writeJSON(w, http.StatusCreated, t)
}

// DELETE /api/transactions/{id}
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}
	if err := s.txs.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction deleted", log.FieldTxID, id)
	w.WriteHeader(http.StatusNoContent)
}
