package store_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"smart-erp/internal/core"
	"smart-erp/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seeded(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	if _, err := s.AddParty(core.Party{Code: "C1", Name: "Cairo Wholesale", Type: core.PartyCustomer, InitialBalance: decimal.Zero}); err != nil {
		t.Fatalf("AddParty: %v", err)
	}
	if _, err := s.AddParty(core.Party{Code: "S1", Name: "Delta Supplies", Type: core.PartySupplier, InitialBalance: dec("-100")}); err != nil {
		t.Fatalf("AddParty: %v", err)
	}
	if _, err := s.AddProduct(core.Product{Code: "P1", Name: "Box of screws", InitialQty: 10, Price: dec("5")}); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	return s
}

func saleInvoice(party string, total, paid string, qty int64) core.Invoice {
	price := dec(total).Div(decimal.NewFromInt(qty))
	return core.Invoice{
		Type:      core.InvoiceSale,
		Date:      "2024-06-01",
		PartyCode: party,
		Items: []core.InvoiceItem{{
			ProductCode: "P1", ProductName: "Box of screws",
			Qty: qty, Price: price, Total: dec(total),
		}},
		TotalAmount: dec(total),
		PaidAmount:  dec(paid),
	}
}

func TestAddParty_DuplicateCode(t *testing.T) {
	s := seeded(t)
	_, err := s.AddParty(core.Party{Code: "C1", Name: "Dup", Type: core.PartyCustomer})
	if !errors.Is(err, store.ErrDuplicateCode) {
		t.Errorf("err = %v, want ErrDuplicateCode", err)
	}
}

func TestAddInvoice_AssignsIDAndNumber(t *testing.T) {
	s := seeded(t)
	inv, err := s.AddInvoice(saleInvoice("C1", "500", "0", 10))
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if inv.ID == "" {
		t.Error("invoice ID not assigned")
	}
	if inv.InvoiceNo != "1" {
		t.Errorf("InvoiceNo = %q, want 1", inv.InvoiceNo)
	}

	second, err := s.AddInvoice(saleInvoice("C1", "200", "0", 4))
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if second.InvoiceNo != "2" {
		t.Errorf("second InvoiceNo = %q, want 2", second.InvoiceNo)
	}
}

func TestAddInvoice_Validation(t *testing.T) {
	s := seeded(t)
	tests := []struct {
		name   string
		mutate func(*core.Invoice)
	}{
		{"unknown party", func(i *core.Invoice) { i.PartyCode = "GHOST" }},
		{"unknown product", func(i *core.Invoice) { i.Items[0].ProductCode = "GHOST" }},
		{"zero quantity", func(i *core.Invoice) { i.Items[0].Qty = 0 }},
		{"negative price", func(i *core.Invoice) {
			i.Items[0].Price = dec("-1")
			i.Items[0].Total = dec("-10")
			i.TotalAmount = dec("-10")
			i.PaidAmount = dec("-10")
		}},
		{"total mismatch", func(i *core.Invoice) { i.TotalAmount = dec("999") }},
		{"item total mismatch", func(i *core.Invoice) { i.Items[0].Total = dec("1") }},
		{"paid over total", func(i *core.Invoice) { i.PaidAmount = dec("501") }},
		{"negative paid", func(i *core.Invoice) { i.PaidAmount = dec("-1") }},
		{"bad date", func(i *core.Invoice) { i.Date = "01/06/2024" }},
		{"bad type", func(i *core.Invoice) { i.Type = "REFUND" }},
		{"no items", func(i *core.Invoice) { i.Items = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := saleInvoice("C1", "500", "100", 10)
			tt.mutate(&inv)
			if _, err := s.AddInvoice(inv); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDeleteParty_ReferentialIntegrity(t *testing.T) {
	s := seeded(t)
	if _, err := s.AddInvoice(saleInvoice("C1", "500", "0", 10)); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}

	c1, err := s.PartyByCode("C1")
	if err != nil {
		t.Fatalf("PartyByCode: %v", err)
	}
	if err := s.DeleteParty(c1.ID); !errors.Is(err, store.ErrReferenced) {
		t.Errorf("DeleteParty(C1) = %v, want ErrReferenced", err)
	}

	// S1 has no documents and can go.
	s1, err := s.PartyByCode("S1")
	if err != nil {
		t.Fatalf("PartyByCode: %v", err)
	}
	if err := s.DeleteParty(s1.ID); err != nil {
		t.Errorf("DeleteParty(S1) = %v, want nil", err)
	}
}

func TestDeleteParty_TransferReference(t *testing.T) {
	s := seeded(t)
	if _, err := s.AddTransfer(core.AccountTransfer{
		Date: "2024-06-02", FromPartyCode: "C1", ToPartyCode: "S1", Amount: dec("50"), Reason: "offset",
	}); err != nil {
		t.Fatalf("AddTransfer: %v", err)
	}
	s1, _ := s.PartyByCode("S1")
	if err := s.DeleteParty(s1.ID); !errors.Is(err, store.ErrReferenced) {
		t.Errorf("DeleteParty = %v, want ErrReferenced", err)
	}
}

func TestDeleteProduct_ReferentialIntegrity(t *testing.T) {
	s := seeded(t)
	if _, err := s.AddInvoice(saleInvoice("C1", "500", "0", 10)); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	p1, err := s.ProductByCode("P1")
	if err != nil {
		t.Fatalf("ProductByCode: %v", err)
	}
	if err := s.DeleteProduct(p1.ID); !errors.Is(err, store.ErrReferenced) {
		t.Errorf("DeleteProduct = %v, want ErrReferenced", err)
	}
}

func TestAddTransfer_Validation(t *testing.T) {
	s := seeded(t)
	tests := []struct {
		name string
		t    core.AccountTransfer
	}{
		{"same endpoints", core.AccountTransfer{Date: "2024-06-01", FromPartyCode: "C1", ToPartyCode: "C1", Amount: dec("10")}},
		{"zero amount", core.AccountTransfer{Date: "2024-06-01", FromPartyCode: "C1", ToPartyCode: "S1", Amount: decimal.Zero}},
		{"negative amount", core.AccountTransfer{Date: "2024-06-01", FromPartyCode: "C1", ToPartyCode: "S1", Amount: dec("-10")}},
		{"unknown sender", core.AccountTransfer{Date: "2024-06-01", FromPartyCode: "GHOST", ToPartyCode: "S1", Amount: dec("10")}},
		{"unknown receiver", core.AccountTransfer{Date: "2024-06-01", FromPartyCode: "C1", ToPartyCode: "GHOST", Amount: dec("10")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddTransfer(tt.t); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// Codes are the FK currency of the ledger: once rows reference one, renaming
// it is as destructive as deleting the entity.
func TestUpdateParty_CodeChangeWhileReferenced(t *testing.T) {
	s := seeded(t)
	if _, err := s.AddInvoice(saleInvoice("C1", "100", "0", 20)); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	party, err := s.PartyByCode("C1")
	if err != nil {
		t.Fatalf("PartyByCode: %v", err)
	}

	renamed := party
	renamed.Code = "C9"
	if err := s.UpdateParty(renamed); !errors.Is(err, store.ErrReferenced) {
		t.Errorf("err = %v, want ErrReferenced", err)
	}

	// Other fields stay editable while referenced.
	retitled := party
	retitled.Name = "Cairo Wholesale Ltd"
	if err := s.UpdateParty(retitled); err != nil {
		t.Errorf("UpdateParty name change: %v", err)
	}
}

func TestUpdateProduct_CodeChangeWhileReferenced(t *testing.T) {
	s := seeded(t)
	if _, err := s.AddInvoice(saleInvoice("C1", "100", "0", 20)); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	prod, err := s.ProductByCode("P1")
	if err != nil {
		t.Fatalf("ProductByCode: %v", err)
	}

	renamed := prod
	renamed.Code = "P9"
	if err := s.UpdateProduct(renamed); !errors.Is(err, store.ErrReferenced) {
		t.Errorf("err = %v, want ErrReferenced", err)
	}

	repriced := prod
	repriced.Price = dec("6")
	if err := s.UpdateProduct(repriced); err != nil {
		t.Errorf("UpdateProduct price change: %v", err)
	}
}

func TestUpdateTransfer_ReplacesAndRevalidates(t *testing.T) {
	s := seeded(t)
	tr, err := s.AddTransfer(core.AccountTransfer{
		Date: "2024-06-01", FromPartyCode: "C1", ToPartyCode: "S1", Amount: dec("50"), Reason: "offset",
	})
	if err != nil {
		t.Fatalf("AddTransfer: %v", err)
	}

	tr.Amount = dec("80")
	if err := s.UpdateTransfer(tr); err != nil {
		t.Fatalf("UpdateTransfer: %v", err)
	}
	balance, err := s.Balance("C1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !balance.Equal(dec("-80")) {
		t.Errorf("C1 balance = %s, want -80 after updated transfer", balance)
	}

	bad := tr
	bad.ToPartyCode = "C1"
	if err := s.UpdateTransfer(bad); err == nil {
		t.Error("expected validation error for same endpoints, got nil")
	}

	ghost := tr
	ghost.ID = "missing"
	if err := s.UpdateTransfer(ghost); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAddTreasury_SignRules(t *testing.T) {
	s := seeded(t)
	tests := []struct {
		name      string
		tx        core.TreasuryTransaction
		expectErr bool
	}{
		{"income positive", core.TreasuryTransaction{Date: "2024-06-01", Type: core.TreasuryIncome, Amount: dec("100"), Description: "cash sale"}, false},
		{"income negative", core.TreasuryTransaction{Date: "2024-06-01", Type: core.TreasuryIncome, Amount: dec("-100")}, true},
		{"expense negative", core.TreasuryTransaction{Date: "2024-06-01", Type: core.TreasuryExpense, Amount: dec("-50"), Description: "rent"}, false},
		{"expense positive", core.TreasuryTransaction{Date: "2024-06-01", Type: core.TreasuryExpense, Amount: dec("50")}, true},
		{"payment either sign", core.TreasuryTransaction{Date: "2024-06-01", Type: core.TreasuryPayment, Amount: dec("-75"), PartyCode: "S1"}, false},
		{"zero amount", core.TreasuryTransaction{Date: "2024-06-01", Type: core.TreasuryPayment, Amount: decimal.Zero}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddTreasury(tt.tx)
			if tt.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// A treasury PAYMENT tagged with a party must not move that party's balance.
func TestTreasuryPayment_DoesNotPostToPartyLedger(t *testing.T) {
	s := seeded(t)
	before, err := s.Balance("S1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if _, err := s.AddTreasury(core.TreasuryTransaction{
		Date: "2024-06-01", Type: core.TreasuryPayment, Amount: dec("-500"), PartyCode: "S1", Description: "partial settlement",
	}); err != nil {
		t.Fatalf("AddTreasury: %v", err)
	}
	after, err := s.Balance("S1")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !before.Equal(after) {
		t.Errorf("balance moved from %s to %s, want unchanged", before, after)
	}
}

func TestSubscribe_NotifiedPerMutation(t *testing.T) {
	s := seeded(t)
	var changes []store.Change
	s.Subscribe(func(c store.Change) { changes = append(changes, c) })

	inv, err := s.AddInvoice(saleInvoice("C1", "500", "0", 10))
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if err := s.DeleteInvoice(inv.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}

	if len(changes) != 2 {
		t.Fatalf("got %d notifications, want 2", len(changes))
	}
	if changes[0].Action != "create" || changes[1].Action != "delete" {
		t.Errorf("actions = %s,%s, want create,delete", changes[0].Action, changes[1].Action)
	}
	if changes[0].Collection != "invoices" {
		t.Errorf("collection = %s, want invoices", changes[0].Collection)
	}
}

func TestTotals_RecomputedAfterEdit(t *testing.T) {
	s := seeded(t)
	inv, err := s.AddInvoice(saleInvoice("C1", "1000", "400", 10))
	if err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	if got := s.Totals().CustomerDebt; !got.Equal(dec("600")) {
		t.Fatalf("CustomerDebt = %s, want 600", got)
	}

	// Editing the invoice changes the aggregate on the next recompute.
	inv.PaidAmount = dec("1000")
	if err := s.UpdateInvoice(inv); err != nil {
		t.Fatalf("UpdateInvoice: %v", err)
	}
	if got := s.Totals().CustomerDebt; !got.IsZero() {
		t.Errorf("CustomerDebt after full payment = %s, want 0", got)
	}

	if err := s.DeleteInvoice(inv.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if got := s.Totals().SupplierDebt; !got.Equal(dec("100")) {
		t.Errorf("SupplierDebt = %s, want 100 from S1 opening credit", got)
	}
}

func TestStatement_UnknownParty(t *testing.T) {
	s := seeded(t)
	if _, _, err := s.Statement("GHOST"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStockLevels_FlagsNegative(t *testing.T) {
	s := seeded(t)
	inv := saleInvoice("C1", "100", "0", 20) // sells 20 of 10 on hand
	if _, err := s.AddInvoice(inv); err != nil {
		t.Fatalf("AddInvoice: %v", err)
	}
	levels := s.StockLevels()
	if len(levels) != 1 {
		t.Fatalf("len(levels) = %d, want 1", len(levels))
	}
	if levels[0].Quantity != -10 {
		t.Errorf("Quantity = %d, want -10", levels[0].Quantity)
	}
	if !levels[0].Negative {
		t.Error("Negative flag not set for oversold stock")
	}
}
