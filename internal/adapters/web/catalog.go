package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart-erp/internal/app"
)

// ── Parties ───────────────────────────────────────────────────────────────────

func (h *Handler) listParties(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListParties(r.Context()))
}

func (h *Handler) createParty(w http.ResponseWriter, r *http.Request) {
	var req app.PartyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := h.svc.CreateParty(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSONBody(w, created)
}

func (h *Handler) updateParty(w http.ResponseWriter, r *http.Request) {
	var req app.PartyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := h.svc.UpdateParty(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteParty(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteParty(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Products ──────────────────────────────────────────────────────────────────

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListProducts(r.Context()))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := h.svc.CreateProduct(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSONBody(w, created)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := h.svc.UpdateProduct(r.Context(), req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
