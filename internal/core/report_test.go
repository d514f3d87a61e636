package core_test

import (
	"testing"

	"smart-erp/internal/core"
)

func TestReport_Buckets(t *testing.T) {
	invs := []core.Invoice{
		invoice(core.InvoiceSale, "C1", "2024-01-10", "1000", "1000"),
		invoice(core.InvoiceSale, "C2", "2024-01-20", "500", "0"),
		invoice(core.InvoicePurchase, "S1", "2024-01-15", "700", "700"),
		invoice(core.InvoiceSaleReturn, "C1", "2024-01-25", "100", "0"),
		invoice(core.InvoicePurchaseReturn, "S1", "2024-01-26", "40", "0"),
	}
	treasury := []core.TreasuryTransaction{
		{ID: "x1", Date: "2024-01-05", Amount: dec("250"), Type: core.TreasuryIncome},
		{ID: "x2", Date: "2024-01-06", Amount: dec("-90"), Type: core.TreasuryExpense},
		{ID: "x3", Date: "2024-01-07", Amount: dec("-60"), Type: core.TreasuryPayment, PartyCode: "S1"},
	}

	r := core.Report("2024-01-01", "2024-01-31", invs, treasury)

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"TotalSales", r.TotalSales.String(), "1500"},
		{"TotalPurchases", r.TotalPurchases.String(), "700"},
		{"TotalSaleReturns", r.TotalSaleReturns.String(), "100"},
		{"TotalPurchaseReturns", r.TotalPurchaseReturns.String(), "40"},
		{"CashIn", r.CashIn.String(), "250"},
		{"CashOut", r.CashOut.String(), "150"},
		{"NetProfit", r.NetProfit.String(), "800"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

// Invoices dated exactly on either window bound are included.
func TestReport_InclusiveBounds(t *testing.T) {
	invs := []core.Invoice{
		invoice(core.InvoiceSale, "C1", "2024-01-01", "10", "0"), // on from
		invoice(core.InvoiceSale, "C1", "2024-01-31", "20", "0"), // on to
		invoice(core.InvoiceSale, "C1", "2023-12-31", "99", "0"), // before
		invoice(core.InvoiceSale, "C1", "2024-02-01", "99", "0"), // after
	}
	r := core.Report("2024-01-01", "2024-01-31", invs, nil)
	if !r.TotalSales.Equal(dec("30")) {
		t.Errorf("TotalSales = %s, want 30", r.TotalSales)
	}
}

func TestReport_OpenBounds(t *testing.T) {
	invs := []core.Invoice{
		invoice(core.InvoiceSale, "C1", "2020-06-01", "5", "0"),
		invoice(core.InvoiceSale, "C1", "2030-06-01", "7", "0"),
	}
	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"no bounds", "", "", "12"},
		{"from only", "2025-01-01", "", "7"},
		{"to only", "", "2025-01-01", "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.Report(tt.from, tt.to, invs, nil)
			if !r.TotalSales.Equal(dec(tt.want)) {
				t.Errorf("TotalSales = %s, want %s", r.TotalSales, tt.want)
			}
		})
	}
}

func TestReport_Empty(t *testing.T) {
	r := core.Report("2024-01-01", "2024-12-31", nil, nil)
	if !r.NetProfit.IsZero() || !r.CashIn.IsZero() || !r.CashOut.IsZero() {
		t.Errorf("empty report not all zero: %+v", r)
	}
}
