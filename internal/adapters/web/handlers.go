package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smart-erp/internal/app"
	"smart-erp/internal/logger"
)

const maxBodyBytes = 1 << 20 // 1 MiB, plenty for any invoice payload

// Handler holds the ApplicationService behind every route.
type Handler struct {
	svc app.ApplicationService
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}
	log := logger.WithComponent("web")

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(Metrics)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxBodyBytes))

	r.Get("/api/health", h.health)
	r.Handle("/metrics", promhttp.Handler())

	// ── Dashboard and derived views ───────────────────────────────────────────
	r.Get("/api/totals", h.getTotals)
	r.Get("/api/stock", h.getStock)
	r.Get("/api/reports", h.getReport)
	r.Get("/api/parties/{code}/statement", h.getStatement)

	// ── Parties ───────────────────────────────────────────────────────────────
	r.Route("/api/parties", func(r chi.Router) {
		r.Get("/", h.listParties)
		r.Post("/", h.createParty)
		r.Put("/{id}", h.updateParty)
		r.Delete("/{id}", h.deleteParty)
	})

	// ── Products ──────────────────────────────────────────────────────────────
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	// ── Invoices ──────────────────────────────────────────────────────────────
	r.Route("/api/invoices", func(r chi.Router) {
		r.Get("/", h.listInvoices)
		r.Post("/", h.createInvoice)
		r.Put("/{id}", h.updateInvoice)
		r.Delete("/{id}", h.deleteInvoice)
	})

	// ── Treasury ──────────────────────────────────────────────────────────────
	r.Route("/api/treasury", func(r chi.Router) {
		r.Get("/", h.listTreasury)
		r.Post("/", h.createTreasury)
		r.Put("/{id}", h.updateTreasury)
		r.Delete("/{id}", h.deleteTreasury)
	})

	// ── Transfers ─────────────────────────────────────────────────────────────
	r.Route("/api/transfers", func(r chi.Router) {
		r.Get("/", h.listTransfers)
		r.Post("/", h.createTransfer)
		r.Put("/{id}", h.updateTransfer)
		r.Delete("/{id}", h.deleteTransfer)
	})

	// ── Settings and backup ───────────────────────────────────────────────────
	r.Get("/api/company", h.getCompany)
	r.Put("/api/company", h.setCompany)
	r.Get("/api/users", h.listUsers)
	r.Put("/api/users", h.setUsers)
	r.Post("/api/backup/export", h.exportBackup)
	r.Post("/api/backup/import", h.importBackup)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
