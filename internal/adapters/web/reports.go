package web

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-erp/internal/core"
)

func (h *Handler) getTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.GetTotals(r.Context()))
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetStockLevels(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// getReport handles GET /api/reports?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Either bound may be omitted for an open-ended window.
func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	report, err := h.svc.GetReport(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// getStatement handles GET /api/parties/{code}/statement.
// When format=csv, streams CSV instead of JSON.
func (h *Handler) getStatement(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	result, err := h.svc.GetStatement(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		writeStatementCSV(w, code, result.Lines)
		return
	}
	writeJSON(w, result)
}

func writeStatementCSV(w http.ResponseWriter, code string, lines []core.StatementLine) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement_%s.csv"`, code))
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "description", "debit", "credit", "balance"})
	for _, l := range lines {
		_ = cw.Write([]string{
			l.Date,
			l.Description,
			l.Debit.StringFixed(2),
			l.Credit.StringFixed(2),
			l.Balance.StringFixed(2),
		})
	}
	cw.Flush()
}
