package core_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"smart-erp/internal/core"
)

func TestStatement_RunningBalance(t *testing.T) {
	p := core.Party{Code: "C1", InitialBalance: dec("100")}
	invs := []core.Invoice{
		invoice(core.InvoiceSale, "C1", "2024-01-05", "1000", "400"),     // +600
		invoice(core.InvoicePurchase, "C1", "2024-01-10", "300", "100"),  // -200
		invoice(core.InvoiceSaleReturn, "C1", "2024-01-15", "150", "50"), // -100
	}
	transfers := []core.AccountTransfer{
		{ID: "t1", Date: "2024-01-20", FromPartyCode: "C1", ToPartyCode: "C2", Amount: dec("50"), Reason: "settlement"},
	}

	lines := core.Statement(p, invs, transfers)
	if len(lines) != 4 {
		t.Fatalf("len(lines) = %d, want 4", len(lines))
	}

	wantBalances := []string{"700", "500", "400", "350"}
	for i, want := range wantBalances {
		if !lines[i].Balance.Equal(dec(want)) {
			t.Errorf("lines[%d].Balance = %s, want %s", i, lines[i].Balance, want)
		}
	}

	// Final running balance must agree with the scalar computation.
	final := lines[len(lines)-1].Balance
	scalar := core.PartyBalance(p, invs, transfers)
	if !final.Equal(scalar) {
		t.Errorf("final statement balance %s != PartyBalance %s", final, scalar)
	}
}

// The consistency property holds across a randomized-looking mix of entries.
func TestStatement_ConsistentWithPartyBalance(t *testing.T) {
	p := core.Party{Code: "C1", InitialBalance: dec("-42.42")}
	invs := []core.Invoice{
		invoice(core.InvoicePurchaseReturn, "C1", "2024-03-03", "19.99", "0"),
		invoice(core.InvoiceSale, "C1", "2024-01-01", "500", "250.25"),
		invoice(core.InvoiceSale, "C2", "2024-01-02", "777", "0"), // other party
		invoice(core.InvoicePurchase, "C1", "2024-02-02", "100", "0"),
	}
	transfers := []core.AccountTransfer{
		{ID: "t1", Date: "2024-01-15", FromPartyCode: "C3", ToPartyCode: "C1", Amount: dec("60"), Reason: "rebalance"},
		{ID: "t2", Date: "2024-04-01", FromPartyCode: "C1", ToPartyCode: "C2", Amount: dec("10.10"), Reason: "advance"},
	}

	lines := core.Statement(p, invs, transfers)
	if len(lines) == 0 {
		t.Fatal("expected statement lines")
	}
	final := lines[len(lines)-1].Balance
	if scalar := core.PartyBalance(p, invs, transfers); !final.Equal(scalar) {
		t.Errorf("final statement balance %s != PartyBalance %s", final, scalar)
	}
}

func TestStatement_EmptyHistory(t *testing.T) {
	p := core.Party{Code: "C1", InitialBalance: dec("10")}
	if lines := core.Statement(p, nil, nil); len(lines) != 0 {
		t.Errorf("len(lines) = %d, want 0", len(lines))
	}
}

// Rows on the same date keep insertion order: invoices in input order first,
// then transfers in input order.
func TestStatement_StableTieBreak(t *testing.T) {
	p := core.Party{Code: "C1", InitialBalance: decimal.Zero}
	a := invoice(core.InvoiceSale, "C1", "2024-05-01", "100", "0")
	a.InvoiceNo = "1"
	b := invoice(core.InvoiceSale, "C1", "2024-05-01", "200", "0")
	b.InvoiceNo = "2"
	transfers := []core.AccountTransfer{
		{ID: "t1", Date: "2024-05-01", FromPartyCode: "C1", ToPartyCode: "C2", Amount: dec("30"), Reason: "same day"},
	}

	lines := core.Statement(p, []core.Invoice{a, b}, transfers)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0].Description != "Sales invoice 1" {
		t.Errorf("lines[0] = %q, want sales invoice 1 first", lines[0].Description)
	}
	if lines[1].Description != "Sales invoice 2" {
		t.Errorf("lines[1] = %q, want sales invoice 2 second", lines[1].Description)
	}
	if !lines[2].Credit.Equal(dec("30")) {
		t.Errorf("lines[2].Credit = %s, want the transfer last", lines[2].Credit)
	}
}

func TestStatement_DebitCreditColumns(t *testing.T) {
	tests := []struct {
		name   string
		typ    core.InvoiceType
		debit  string
		credit string
	}{
		{"sale is a debit", core.InvoiceSale, "600", "0"},
		{"purchase is a credit", core.InvoicePurchase, "0", "600"},
		{"sale return is a credit", core.InvoiceSaleReturn, "0", "600"},
		{"purchase return is a debit", core.InvoicePurchaseReturn, "600", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := core.Party{Code: "C1", InitialBalance: decimal.Zero}
			lines := core.Statement(p, []core.Invoice{invoice(tt.typ, "C1", "2024-01-01", "1000", "400")}, nil)
			if len(lines) != 1 {
				t.Fatalf("len(lines) = %d, want 1", len(lines))
			}
			if !lines[0].Debit.Equal(dec(tt.debit)) || !lines[0].Credit.Equal(dec(tt.credit)) {
				t.Errorf("debit/credit = %s/%s, want %s/%s", lines[0].Debit, lines[0].Credit, tt.debit, tt.credit)
			}
		})
	}
}
