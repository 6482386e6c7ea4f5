package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"finsight/internal/analysis"
	"finsight/internal/core"
	"finsight/internal/export"
	"finsight/internal/log"
)

// GET /api/export.csv?year=&month=  (without year and month: every record)
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		txs      []core.Transaction
		err      error
		filename = "finsight-all.csv"
	)
	if q.Get("year") == "" && q.Get("month") == "" {
		txs, err = s.txs.List(r.Context(), 0, 0)
	} else {
		var (
			year  int
			month time.Month
		)
		year, month, err = parseMonthParams(q, s.now())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filename = fmt.Sprintf("finsight-%s.csv", analysis.Key(year, month))
		txs, err = s.txs.List(r.Context(), year, month)
	}
	if err != nil {
		s.writeServiceError(w, r, log.OpExport, err)
		return
	}

	// buffer so a failed write can still produce an error status
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, txs, s.currency); err != nil {
		s.writeServiceError(w, r, log.OpExport, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
