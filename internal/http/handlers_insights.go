package http

import (
	"net/http"

	"finsight/internal/analysis"
	"finsight/internal/core"
	"finsight/internal/log"
)

type insightResponse struct {
	analysis.MonthReport
	Currency string `json:"currency"`
}

type nudgeResponse struct {
	Year   int      `json:"year"`
	Month  int      `json:"month"`
	Nudges []string `json:"nudges"`
}

type categoriesResponse struct {
	Income  []core.Category `json:"income"`
	Expense []core.Category `json:"expense"`
}

// GET /api/insights?year=&month=
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParams(r.URL.Query(), s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.insights.Report(r.Context(), year, month)
	if err != nil {
		s.writeServiceError(w, r, log.OpReport, err)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{MonthReport: report, Currency: s.currency})
}

// GET /api/insights/nudges?year=&month=
func (s *Server) handleNudges(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParams(r.URL.Query(), s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	nudges, err := s.insights.Nudges(r.Context(), year, month)
	if err != nil {
		s.writeServiceError(w, r, log.OpReport, err)
		return
	}
	if nudges == nil {
		nudges = []string{}
	}
	writeJSON(w, http.StatusOK, nudgeResponse{Year: year, Month: int(month), Nudges: nudges})
}

// GET /api/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{
		Income:  core.CategoriesFor(core.Income),
		Expense: core.CategoriesFor(core.Expense),
	})
}
