package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smart-erp/internal/core"
)

func validDate(d string) error {
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return fmt.Errorf("invalid date %q: %w", d, err)
	}
	return nil
}

// ── Validation ────────────────────────────────────────────────────────────────
// The engine is total over well-formed input; these checks are the producing
// side's responsibility and run before any collection is touched.

func validateParty(p core.Party) error {
	if p.Code == "" {
		return fmt.Errorf("party code is required")
	}
	if p.Name == "" {
		return fmt.Errorf("party name is required")
	}
	if p.Type != core.PartyCustomer && p.Type != core.PartySupplier {
		return fmt.Errorf("invalid party type %q", p.Type)
	}
	return nil
}

func validateProduct(p core.Product) error {
	if p.Code == "" {
		return fmt.Errorf("product code is required")
	}
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.InitialQty < 0 {
		return fmt.Errorf("initial quantity cannot be negative, got %d", p.InitialQty)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative, got %s", p.Price)
	}
	if p.InitialValue.IsNegative() {
		return fmt.Errorf("initial value cannot be negative, got %s", p.InitialValue)
	}
	return nil
}

func (s *Store) validateInvoice(inv core.Invoice) error {
	switch inv.Type {
	case core.InvoiceSale, core.InvoicePurchase, core.InvoiceSaleReturn, core.InvoicePurchaseReturn:
	default:
		return fmt.Errorf("invalid invoice type %q", inv.Type)
	}
	if err := validDate(inv.Date); err != nil {
		return err
	}
	if !s.partyExists(inv.PartyCode) {
		return fmt.Errorf("party %q: %w", inv.PartyCode, ErrNotFound)
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("invoice must have at least one item")
	}

	sum := decimal.Zero
	for _, it := range inv.Items {
		if it.Qty <= 0 {
			return fmt.Errorf("item quantity must be positive, got %d for %q", it.Qty, it.ProductCode)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("item price cannot be negative, got %s for %q", it.Price, it.ProductCode)
		}
		if !s.productExists(it.ProductCode) {
			return fmt.Errorf("product %q: %w", it.ProductCode, ErrNotFound)
		}
		want := decimal.NewFromInt(it.Qty).Mul(it.Price)
		if !it.Total.Equal(want) {
			return fmt.Errorf("item total %s for %q does not equal qty × price = %s", it.Total, it.ProductCode, want)
		}
		sum = sum.Add(it.Total)
	}
	if !inv.TotalAmount.Equal(sum) {
		return fmt.Errorf("invoice total %s does not equal sum of items %s", inv.TotalAmount, sum)
	}
	if inv.PaidAmount.IsNegative() || inv.PaidAmount.GreaterThan(inv.TotalAmount) {
		return fmt.Errorf("paid amount %s must be between 0 and %s", inv.PaidAmount, inv.TotalAmount)
	}
	return nil
}

func validateTreasury(tx core.TreasuryTransaction) error {
	switch tx.Type {
	case core.TreasuryIncome, core.TreasuryExpense, core.TreasuryPayment:
	default:
		return fmt.Errorf("invalid treasury type %q", tx.Type)
	}
	if err := validDate(tx.Date); err != nil {
		return err
	}
	if tx.Amount.IsZero() {
		return fmt.Errorf("treasury amount cannot be zero")
	}
	if tx.Type == core.TreasuryIncome && tx.Amount.IsNegative() {
		return fmt.Errorf("income amount must be positive, got %s", tx.Amount)
	}
	if tx.Type == core.TreasuryExpense && tx.Amount.IsPositive() {
		return fmt.Errorf("expense amount must be negative, got %s", tx.Amount)
	}
	return nil
}

func (s *Store) validateTransfer(t core.AccountTransfer) error {
	if err := validDate(t.Date); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive, got %s", t.Amount)
	}
	if t.FromPartyCode == t.ToPartyCode {
		return fmt.Errorf("transfer endpoints must differ, both are %q", t.FromPartyCode)
	}
	if !s.partyExists(t.FromPartyCode) {
		return fmt.Errorf("party %q: %w", t.FromPartyCode, ErrNotFound)
	}
	if !s.partyExists(t.ToPartyCode) {
		return fmt.Errorf("party %q: %w", t.ToPartyCode, ErrNotFound)
	}
	return nil
}

func (s *Store) partyExists(code string) bool {
	for _, p := range s.parties {
		if p.Code == code {
			return true
		}
	}
	return false
}

func (s *Store) productExists(code string) bool {
	for _, p := range s.products {
		if p.Code == code {
			return true
		}
	}
	return false
}

// ── Parties ───────────────────────────────────────────────────────────────────

func (s *Store) AddParty(p core.Party) (core.Party, error) {
	if err := validateParty(p); err != nil {
		return core.Party{}, err
	}
	s.mu.Lock()
	if s.partyExists(p.Code) {
		s.mu.Unlock()
		return core.Party{}, fmt.Errorf("party %q: %w", p.Code, ErrDuplicateCode)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.parties = append(s.parties, p)
	s.mu.Unlock()

	s.notify(Change{Collection: "parties", Action: "create", ID: p.ID})
	return p, nil
}

func (s *Store) UpdateParty(p core.Party) error {
	if err := validateParty(p); err != nil {
		return err
	}
	s.mu.Lock()
	idx := -1
	for i, old := range s.parties {
		if old.ID == p.ID {
			idx = i
			continue
		}
		if old.Code == p.Code {
			s.mu.Unlock()
			return fmt.Errorf("party %q: %w", p.Code, ErrDuplicateCode)
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("party id %q: %w", p.ID, ErrNotFound)
	}
	// Renaming the code would orphan ledger rows keyed on the old one.
	if oldCode := s.parties[idx].Code; oldCode != p.Code {
		for _, inv := range s.invoices {
			if inv.PartyCode == oldCode {
				s.mu.Unlock()
				return fmt.Errorf("party %q has invoices, code cannot change: %w", oldCode, ErrReferenced)
			}
		}
		for _, t := range s.transfers {
			if t.FromPartyCode == oldCode || t.ToPartyCode == oldCode {
				s.mu.Unlock()
				return fmt.Errorf("party %q has transfers, code cannot change: %w", oldCode, ErrReferenced)
			}
		}
	}
	s.parties[idx] = p
	s.mu.Unlock()

	s.notify(Change{Collection: "parties", Action: "update", ID: p.ID})
	return nil
}

// DeleteParty removes a party unless an invoice or transfer still references
// its code.
func (s *Store) DeleteParty(id string) error {
	s.mu.Lock()
	idx := -1
	for i, p := range s.parties {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("party id %q: %w", id, ErrNotFound)
	}
	code := s.parties[idx].Code
	for _, inv := range s.invoices {
		if inv.PartyCode == code {
			s.mu.Unlock()
			return fmt.Errorf("party %q has invoices: %w", code, ErrReferenced)
		}
	}
	for _, t := range s.transfers {
		if t.FromPartyCode == code || t.ToPartyCode == code {
			s.mu.Unlock()
			return fmt.Errorf("party %q has transfers: %w", code, ErrReferenced)
		}
	}
	s.parties = append(s.parties[:idx], s.parties[idx+1:]...)
	s.mu.Unlock()

	s.notify(Change{Collection: "parties", Action: "delete", ID: id})
	return nil
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *Store) AddProduct(p core.Product) (core.Product, error) {
	if err := validateProduct(p); err != nil {
		return core.Product{}, err
	}
	s.mu.Lock()
	if s.productExists(p.Code) {
		s.mu.Unlock()
		return core.Product{}, fmt.Errorf("product %q: %w", p.Code, ErrDuplicateCode)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products = append(s.products, p)
	s.mu.Unlock()

	s.notify(Change{Collection: "products", Action: "create", ID: p.ID})
	return p, nil
}

func (s *Store) UpdateProduct(p core.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	s.mu.Lock()
	idx := -1
	for i, old := range s.products {
		if old.ID == p.ID {
			idx = i
			continue
		}
		if old.Code == p.Code {
			s.mu.Unlock()
			return fmt.Errorf("product %q: %w", p.Code, ErrDuplicateCode)
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("product id %q: %w", p.ID, ErrNotFound)
	}
	if oldCode := s.products[idx].Code; oldCode != p.Code {
		for _, inv := range s.invoices {
			for _, it := range inv.Items {
				if it.ProductCode == oldCode {
					s.mu.Unlock()
					return fmt.Errorf("product %q appears on invoice %s, code cannot change: %w", oldCode, inv.InvoiceNo, ErrReferenced)
				}
			}
		}
	}
	s.products[idx] = p
	s.mu.Unlock()

	s.notify(Change{Collection: "products", Action: "update", ID: p.ID})
	return nil
}

func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("product id %q: %w", id, ErrNotFound)
	}
	code := s.products[idx].Code
	for _, inv := range s.invoices {
		for _, it := range inv.Items {
			if it.ProductCode == code {
				s.mu.Unlock()
				return fmt.Errorf("product %q appears on invoice %s: %w", code, inv.InvoiceNo, ErrReferenced)
			}
		}
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.mu.Unlock()

	s.notify(Change{Collection: "products", Action: "delete", ID: id})
	return nil
}

// ── Invoices ──────────────────────────────────────────────────────────────────

// nextInvoiceNo returns one past the highest numeric invoice number of the
// given type. Non-numeric numbers are skipped.
func (s *Store) nextInvoiceNo(typ core.InvoiceType) string {
	var max int64
	for _, inv := range s.invoices {
		if inv.Type != typ {
			continue
		}
		if n, err := strconv.ParseInt(inv.InvoiceNo, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

func (s *Store) AddInvoice(inv core.Invoice) (core.Invoice, error) {
	s.mu.Lock()
	if err := s.validateInvoice(inv); err != nil {
		s.mu.Unlock()
		return core.Invoice{}, err
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.InvoiceNo == "" {
		inv.InvoiceNo = s.nextInvoiceNo(inv.Type)
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
	}
	s.invoices = append(s.invoices, inv)
	s.mu.Unlock()

	s.notify(Change{Collection: "invoices", Action: "create", ID: inv.ID})
	return inv, nil
}

func (s *Store) UpdateInvoice(inv core.Invoice) error {
	s.mu.Lock()
	if err := s.validateInvoice(inv); err != nil {
		s.mu.Unlock()
		return err
	}
	idx := -1
	for i, old := range s.invoices {
		if old.ID == inv.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("invoice id %q: %w", inv.ID, ErrNotFound)
	}
	s.invoices[idx] = inv
	s.mu.Unlock()

	s.notify(Change{Collection: "invoices", Action: "update", ID: inv.ID})
	return nil
}

func (s *Store) DeleteInvoice(id string) error {
	s.mu.Lock()
	idx := -1
	for i, inv := range s.invoices {
		if inv.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("invoice id %q: %w", id, ErrNotFound)
	}
	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)
	s.mu.Unlock()

	s.notify(Change{Collection: "invoices", Action: "delete", ID: id})
	return nil
}

// ── Treasury ──────────────────────────────────────────────────────────────────

func (s *Store) AddTreasury(tx core.TreasuryTransaction) (core.TreasuryTransaction, error) {
	if err := validateTreasury(tx); err != nil {
		return core.TreasuryTransaction{}, err
	}
	s.mu.Lock()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.treasury = append(s.treasury, tx)
	s.mu.Unlock()

	s.notify(Change{Collection: "treasury", Action: "create", ID: tx.ID})
	return tx, nil
}

func (s *Store) UpdateTreasury(tx core.TreasuryTransaction) error {
	if err := validateTreasury(tx); err != nil {
		return err
	}
	s.mu.Lock()
	idx := -1
	for i, old := range s.treasury {
		if old.ID == tx.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("treasury transaction id %q: %w", tx.ID, ErrNotFound)
	}
	s.treasury[idx] = tx
	s.mu.Unlock()

	s.notify(Change{Collection: "treasury", Action: "update", ID: tx.ID})
	return nil
}

func (s *Store) DeleteTreasury(id string) error {
	s.mu.Lock()
	idx := -1
	for i, tx := range s.treasury {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("treasury transaction id %q: %w", id, ErrNotFound)
	}
	s.treasury = append(s.treasury[:idx], s.treasury[idx+1:]...)
	s.mu.Unlock()

	s.notify(Change{Collection: "treasury", Action: "delete", ID: id})
	return nil
}

// ── Transfers ─────────────────────────────────────────────────────────────────

func (s *Store) AddTransfer(t core.AccountTransfer) (core.AccountTransfer, error) {
	s.mu.Lock()
	if err := s.validateTransfer(t); err != nil {
		s.mu.Unlock()
		return core.AccountTransfer{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.transfers = append(s.transfers, t)
	s.mu.Unlock()

	s.notify(Change{Collection: "transfers", Action: "create", ID: t.ID})
	return t, nil
}

func (s *Store) UpdateTransfer(t core.AccountTransfer) error {
	s.mu.Lock()
	if err := s.validateTransfer(t); err != nil {
		s.mu.Unlock()
		return err
	}
	idx := -1
	for i, old := range s.transfers {
		if old.ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("transfer id %q: %w", t.ID, ErrNotFound)
	}
	s.transfers[idx] = t
	s.mu.Unlock()

	s.notify(Change{Collection: "transfers", Action: "update", ID: t.ID})
	return nil
}

func (s *Store) DeleteTransfer(id string) error {
	s.mu.Lock()
	idx := -1
	for i, t := range s.transfers {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("transfer id %q: %w", id, ErrNotFound)
	}
	s.transfers = append(s.transfers[:idx], s.transfers[idx+1:]...)
	s.mu.Unlock()

	s.notify(Change{Collection: "transfers", Action: "delete", ID: id})
	return nil
}

// ── Settings ──────────────────────────────────────────────────────────────────

func (s *Store) SetCompany(c core.CompanyInfo) {
	s.mu.Lock()
	s.company = c
	s.mu.Unlock()
	s.notify(Change{Collection: "company", Action: "update"})
}

func (s *Store) SetUsers(users []core.User) {
	s.mu.Lock()
	s.users = make([]core.User, len(users))
	copy(s.users, users)
	s.mu.Unlock()
	s.notify(Change{Collection: "users", Action: "replace"})
}

// ── Bulk load ─────────────────────────────────────────────────────────────────

// Replace swaps in a full state, used on startup load and backup import.
// notifyChange controls whether subscribers hear about it; the startup load
// passes false so restoring state does not immediately re-save it.
func (s *Store) Replace(company core.CompanyInfo, users []core.User, parties []core.Party,
	products []core.Product, invoices []core.Invoice,
	treasury []core.TreasuryTransaction, transfers []core.AccountTransfer,
	notifyChange bool) {

	s.mu.Lock()
	s.company = company
	s.users = users
	s.parties = parties
	s.products = products
	s.invoices = invoices
	s.treasury = treasury
	s.transfers = transfers
	s.mu.Unlock()

	if notifyChange {
		s.notify(Change{Collection: "all", Action: "replace"})
	}
}
