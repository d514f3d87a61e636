package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-erp/internal/app"
)

// ── Invoices ──────────────────────────────────────────────────────────────────

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListInvoices(r.Context()))
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.InvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSONBody(w, created)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.InvoiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := h.svc.UpdateInvoice(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Treasury ──────────────────────────────────────────────────────────────────

func (h *Handler) listTreasury(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListTreasury(r.Context()))
}

func (h *Handler) createTreasury(w http.ResponseWriter, r *http.Request) {
	var req app.TreasuryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := h.svc.CreateTreasury(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSONBody(w, created)
}

func (h *Handler) updateTreasury(w http.ResponseWriter, r *http.Request) {
	var req app.TreasuryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := h.svc.UpdateTreasury(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTreasury(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTreasury(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Transfers ─────────────────────────────────────────────────────────────────

func (h *Handler) listTransfers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListTransfers(r.Context()))
}

func (h *Handler) createTransfer(w http.ResponseWriter, r *http.Request) {
	var req app.TransferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := h.svc.CreateTransfer(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSONBody(w, created)
}

func (h *Handler) updateTransfer(w http.ResponseWriter, r *http.Request) {
	var req app.TransferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := h.svc.UpdateTransfer(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTransfer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransfer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
