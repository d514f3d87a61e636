// Package store holds the in-memory entity collections and owns all mutation.
// Computation stays in core; the store validates input at the boundary,
// enforces referential integrity, and notifies subscribers after every
// successful change so persistence can save the new state.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"smart-erp/internal/core"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateCode = errors.New("code already in use")
	ErrReferenced    = errors.New("entity is referenced and cannot be deleted")
)

// Change describes one committed mutation, delivered to subscribers.
type Change struct {
	Collection string // "parties", "products", "invoices", "treasury", "transfers", "company", "users"
	Action     string // "create", "update", "delete", "replace"
	ID         string
}

// Listener receives change notifications. Listeners run synchronously after
// the mutation commits and must not mutate the store from the callback.
type Listener func(Change)

// Store is the single holder of application state. All methods are safe for
// concurrent use; reads return copies so engine inputs are never shared
// mutable state.
type Store struct {
	mu        sync.RWMutex
	company   core.CompanyInfo
	users     []core.User
	parties   []core.Party
	products  []core.Product
	invoices  []core.Invoice
	treasury  []core.TreasuryTransaction
	transfers []core.AccountTransfer

	lmu       sync.Mutex
	listeners []Listener
}

func New() *Store {
	return &Store{}
}

// Subscribe registers a listener for committed mutations.
func (s *Store) Subscribe(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(c Change) {
	s.lmu.Lock()
	ls := make([]Listener, len(s.listeners))
	copy(ls, s.listeners)
	s.lmu.Unlock()
	for _, l := range ls {
		l(c)
	}
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *Store) Company() core.CompanyInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

func (s *Store) Users() []core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) Parties() []core.Party {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Party, len(s.parties))
	copy(out, s.parties)
	return out
}

func (s *Store) Products() []core.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Invoices() []core.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *Store) Treasury() []core.TreasuryTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.TreasuryTransaction, len(s.treasury))
	copy(out, s.treasury)
	return out
}

func (s *Store) Transfers() []core.AccountTransfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.AccountTransfer, len(s.transfers))
	copy(out, s.transfers)
	return out
}

func (s *Store) PartyByCode(code string) (core.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if p.Code == code {
			return p, nil
		}
	}
	return core.Party{}, fmt.Errorf("party %q: %w", code, ErrNotFound)
}

func (s *Store) ProductByCode(code string) (core.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Code == code {
			return p, nil
		}
	}
	return core.Product{}, fmt.Errorf("product %q: %w", code, ErrNotFound)
}

// ── Derived views ─────────────────────────────────────────────────────────────

// Totals recomputes the dashboard aggregates from the current collections.
// Full recompute on every call: the only approach that stays correct under
// arbitrary edits and deletes.
func (s *Store) Totals() core.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.ComputeTotals(s.parties, s.products, s.invoices, s.transfers)
}

// Statement returns the running-balance statement for one party.
func (s *Store) Statement(code string) (core.Party, []core.StatementLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if p.Code == code {
			return p, core.Statement(p, s.invoices, s.transfers), nil
		}
	}
	return core.Party{}, nil, fmt.Errorf("party %q: %w", code, ErrNotFound)
}

// Balance returns the scalar balance for one party.
func (s *Store) Balance(code string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.parties {
		if p.Code == code {
			return core.PartyBalance(p, s.invoices, s.transfers), nil
		}
	}
	return decimal.Zero, fmt.Errorf("party %q: %w", code, ErrNotFound)
}

// Report builds the date-windowed rollup over invoices and treasury.
func (s *Store) Report(from, to string) (core.ReportResult, error) {
	if from != "" {
		if err := validDate(from); err != nil {
			return core.ReportResult{}, err
		}
	}
	if to != "" {
		if err := validDate(to); err != nil {
			return core.ReportResult{}, err
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Report(from, to, s.invoices, s.treasury), nil
}

// StockLevel pairs a product with its computed quantity and valuation.
type StockLevel struct {
	Product  core.Product    `json:"product"`
	Quantity int64           `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
	Negative bool            `json:"negative"`
}

// StockLevels computes the inventory position for every product. Negative
// flags oversold stock for the caller to surface.
func (s *Store) StockLevels() []StockLevel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	levels := make([]StockLevel, 0, len(s.products))
	for _, prod := range s.products {
		qty := core.ProductQuantity(prod, s.invoices)
		levels = append(levels, StockLevel{
			Product:  prod,
			Quantity: qty,
			Value:    core.ProductValue(prod, s.invoices),
			Negative: qty < 0,
		})
	}
	return levels
}
