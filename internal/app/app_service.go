package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"smart-erp/internal/core"
	"smart-erp/internal/logger"
	"smart-erp/internal/persist"
	"smart-erp/internal/store"
)

// Service implements ApplicationService over the entity store, with the
// persistence boundary attached as a change observer: every committed
// mutation saves the full snapshot (save-on-change, last write wins).
type Service struct {
	store   *store.Store
	persist persist.Store
	log     zerolog.Logger
}

var _ ApplicationService = (*Service)(nil)

// NewService wires the facade. ps may be nil for ephemeral (test) use.
func NewService(st *store.Store, ps persist.Store) *Service {
	return &Service{
		store:   st,
		persist: ps,
		log:     logger.WithComponent("app"),
	}
}

// LoadState restores the store from the persistence backend. The restore does
// not notify subscribers, so loading never triggers an immediate re-save.
func (s *Service) LoadState(ctx context.Context) error {
	if s.persist == nil {
		return nil
	}
	snap, err := s.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	s.store.Replace(snap.Company, snap.Users, snap.Parties, snap.Products,
		snap.Invoices, snap.Treasury, snap.Transfers, false)
	s.log.Info().
		Int("parties", len(snap.Parties)).
		Int("invoices", len(snap.Invoices)).
		Msg("state loaded")
	return nil
}

// EnableAutosave subscribes the persistence backend to store changes.
func (s *Service) EnableAutosave(ctx context.Context) {
	if s.persist == nil {
		return
	}
	s.store.Subscribe(func(c store.Change) {
		if err := s.persist.Save(ctx, s.snapshot()); err != nil {
			s.log.Error().Err(err).
				Str("collection", c.Collection).
				Str("action", c.Action).
				Msg("autosave failed")
		}
	})
}

func (s *Service) snapshot() *persist.Snapshot {
	snap := persist.Empty()
	snap.Company = s.store.Company()
	snap.Users = s.store.Users()
	snap.Parties = s.store.Parties()
	snap.Products = s.store.Products()
	snap.Invoices = s.store.Invoices()
	snap.Treasury = s.store.Treasury()
	snap.Transfers = s.store.Transfers()
	return snap
}

// parseAmount parses a request money field. Empty means zero.
func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return d, nil
}

// ── Dashboard / views ─────────────────────────────────────────────────────────

func (s *Service) GetTotals(ctx context.Context) core.Totals {
	return s.store.Totals()
}

func (s *Service) GetStatement(ctx context.Context, code string) (*StatementResult, error) {
	party, lines, err := s.store.Statement(code)
	if err != nil {
		return nil, err
	}
	balance := party.InitialBalance
	if len(lines) > 0 {
		balance = lines[len(lines)-1].Balance
	}
	return &StatementResult{Party: party, Lines: lines, Balance: balance}, nil
}

func (s *Service) GetReport(ctx context.Context, from, to string) (*core.ReportResult, error) {
	r, err := s.store.Report(from, to)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) GetStockLevels(ctx context.Context) (*StockResult, error) {
	return &StockResult{Levels: s.store.StockLevels()}, nil
}

// ── Parties ───────────────────────────────────────────────────────────────────

func (s *Service) ListParties(ctx context.Context) []core.Party {
	return s.store.Parties()
}

func (s *Service) partyFromRequest(req PartyRequest) (core.Party, error) {
	initial, err := parseAmount("initial balance", req.InitialBalance)
	if err != nil {
		return core.Party{}, err
	}
	return core.Party{
		ID:             req.ID,
		Code:           req.Code,
		Name:           req.Name,
		Type:           core.PartyType(req.Type),
		Category:       req.Category,
		InitialBalance: initial,
		Phone:          req.Phone,
	}, nil
}

func (s *Service) CreateParty(ctx context.Context, req PartyRequest) (*core.Party, error) {
	p, err := s.partyFromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := s.store.AddParty(p)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateParty(ctx context.Context, req PartyRequest) error {
	p, err := s.partyFromRequest(req)
	if err != nil {
		return err
	}
	return s.store.UpdateParty(p)
}

func (s *Service) DeleteParty(ctx context.Context, id string) error {
	return s.store.DeleteParty(id)
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *Service) ListProducts(ctx context.Context) []core.Product {
	return s.store.Products()
}

func (s *Service) productFromRequest(req ProductRequest) (core.Product, error) {
	price, err := parseAmount("price", req.Price)
	if err != nil {
		return core.Product{}, err
	}
	initialValue, err := parseAmount("initial value", req.InitialValue)
	if err != nil {
		return core.Product{}, err
	}
	return core.Product{
		ID:           req.ID,
		Code:         req.Code,
		Name:         req.Name,
		InitialQty:   req.InitialQty,
		InitialValue: initialValue,
		Price:        price,
	}, nil
}

func (s *Service) CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error) {
	p, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := s.store.AddProduct(p)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, req ProductRequest) error {
	p, err := s.productFromRequest(req)
	if err != nil {
		return err
	}
	return s.store.UpdateProduct(p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.store.DeleteProduct(id)
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func (s *Service) ListInvoices(ctx context.Context) []core.Invoice {
	return s.store.Invoices()
}

func (s *Service) invoiceFromRequest(req InvoiceRequest) (core.Invoice, error) {
	paid, err := parseAmount("paid amount", req.PaidAmount)
	if err != nil {
		return core.Invoice{}, err
	}
	inv := core.Invoice{
		ID:         req.ID,
		InvoiceNo:  req.InvoiceNo,
		Type:       core.InvoiceType(req.Type),
		Date:       req.Date,
		PartyCode:  req.PartyCode,
		PaidAmount: paid,
		Notes:      req.Notes,
		Template:   req.Template,
	}
	total := decimal.Zero
	for _, it := range req.Items {
		price, err := parseAmount("item price", it.Price)
		if err != nil {
			return core.Invoice{}, err
		}
		lineTotal := decimal.NewFromInt(it.Qty).Mul(price)
		name := ""
		if prod, err := s.store.ProductByCode(it.ProductCode); err == nil {
			name = prod.Name
		}
		inv.Items = append(inv.Items, core.InvoiceItem{
			ProductCode: it.ProductCode,
			ProductName: name,
			Qty:         it.Qty,
			Price:       price,
			Total:       lineTotal,
		})
		total = total.Add(lineTotal)
	}
	inv.TotalAmount = total
	return inv, nil
}

func (s *Service) CreateInvoice(ctx context.Context, req InvoiceRequest) (*core.Invoice, error) {
	inv, err := s.invoiceFromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := s.store.AddInvoice(inv)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateInvoice(ctx context.Context, req InvoiceRequest) error {
	inv, err := s.invoiceFromRequest(req)
	if err != nil {
		return err
	}
	return s.store.UpdateInvoice(inv)
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	return s.store.DeleteInvoice(id)
}

// ── Treasury ──────────────────────────────────────────────────────────────────

func (s *Service) ListTreasury(ctx context.Context) []core.TreasuryTransaction {
	return s.store.Treasury()
}

func (s *Service) treasuryFromRequest(req TreasuryRequest) (core.TreasuryTransaction, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return core.TreasuryTransaction{}, err
	}
	return core.TreasuryTransaction{
		ID:          req.ID,
		Date:        req.Date,
		Description: req.Description,
		Amount:      amount,
		Type:        core.TreasuryType(req.Type),
		PartyCode:   req.PartyCode,
	}, nil
}

func (s *Service) CreateTreasury(ctx context.Context, req TreasuryRequest) (*core.TreasuryTransaction, error) {
	tx, err := s.treasuryFromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := s.store.AddTreasury(tx)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateTreasury(ctx context.Context, req TreasuryRequest) error {
	tx, err := s.treasuryFromRequest(req)
	if err != nil {
		return err
	}
	return s.store.UpdateTreasury(tx)
}

func (s *Service) DeleteTreasury(ctx context.Context, id string) error {
	return s.store.DeleteTreasury(id)
}

// ── Transfers ─────────────────────────────────────────────────────────────────

func (s *Service) ListTransfers(ctx context.Context) []core.AccountTransfer {
	return s.store.Transfers()
}

func transferFromRequest(req TransferRequest) (core.AccountTransfer, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return core.AccountTransfer{}, err
	}
	return core.AccountTransfer{
		ID:            req.ID,
		Date:          req.Date,
		FromPartyCode: req.FromPartyCode,
		ToPartyCode:   req.ToPartyCode,
		Amount:        amount,
		Reason:        req.Reason,
	}, nil
}

func (s *Service) CreateTransfer(ctx context.Context, req TransferRequest) (*core.AccountTransfer, error) {
	t, err := transferFromRequest(req)
	if err != nil {
		return nil, err
	}
	created, err := s.store.AddTransfer(t)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Service) UpdateTransfer(ctx context.Context, req TransferRequest) error {
	t, err := transferFromRequest(req)
	if err != nil {
		return err
	}
	return s.store.UpdateTransfer(t)
}

func (s *Service) DeleteTransfer(ctx context.Context, id string) error {
	return s.store.DeleteTransfer(id)
}

// ── Settings / backup ─────────────────────────────────────────────────────────

func (s *Service) GetCompany(ctx context.Context) core.CompanyInfo {
	return s.store.Company()
}

func (s *Service) SetCompany(ctx context.Context, info core.CompanyInfo) error {
	if info.Name == "" {
		return fmt.Errorf("company name is required")
	}
	s.store.SetCompany(info)
	return nil
}

func (s *Service) ListUsers(ctx context.Context) []core.User {
	return s.store.Users()
}

func (s *Service) SetUsers(ctx context.Context, users []core.User) error {
	for _, u := range users {
		if u.Username == "" {
			return fmt.Errorf("username is required")
		}
		if u.Role != core.RoleAdmin && u.Role != core.RoleAccountant {
			return fmt.Errorf("invalid role %q for user %q", u.Role, u.Username)
		}
	}
	s.store.SetUsers(users)
	return nil
}

func (s *Service) ExportBackup(ctx context.Context, path string) (*BackupResult, error) {
	if path == "" {
		path = persist.DefaultBackupName(time.Now())
	}
	if err := persist.WriteBackup(path, s.snapshot()); err != nil {
		return nil, err
	}
	s.log.Info().Str("path", path).Msg("backup written")
	return &BackupResult{Path: path}, nil
}

func (s *Service) ImportBackup(ctx context.Context, path string) error {
	snap, err := persist.ReadBackup(path)
	if err != nil {
		return err
	}
	// Replace with notification so autosave persists the imported state.
	s.store.Replace(snap.Company, snap.Users, snap.Parties, snap.Products,
		snap.Invoices, snap.Treasury, snap.Transfers, true)
	s.log.Info().Str("path", path).Msg("backup imported")
	return nil
}
