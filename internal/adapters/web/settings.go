package web

import (
	"net/http"

	"smart-erp/internal/core"
)

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.GetCompany(r.Context()))
}

func (h *Handler) setCompany(w http.ResponseWriter, r *http.Request) {
	var info core.CompanyInfo
	if !decodeBody(w, r, &info) {
		return
	}
	if err := h.svc.SetCompany(r.Context(), info); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.ListUsers(r.Context()))
}

func (h *Handler) setUsers(w http.ResponseWriter, r *http.Request) {
	var users []core.User
	if !decodeBody(w, r, &users) {
		return
	}
	if err := h.svc.SetUsers(r.Context(), users); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type backupRequest struct {
	Path string `json:"path,omitempty"`
}

func (h *Handler) exportBackup(w http.ResponseWriter, r *http.Request) {
	var req backupRequest
	if r.ContentLength > 0 && !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.ExportBackup(r.Context(), req.Path)
	if err != nil {
		writeError(w, r, err.Error(), "BACKUP_FAILED", http.StatusInternalServerError)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) importBackup(w http.ResponseWriter, r *http.Request) {
	var req backupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, r, "path is required", "VALIDATION", http.StatusBadRequest)
		return
	}
	if err := h.svc.ImportBackup(r.Context(), req.Path); err != nil {
		writeError(w, r, err.Error(), "RESTORE_FAILED", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
