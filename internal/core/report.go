package core

import "github.com/shopspring/decimal"

// ReportResult is a time-windowed rollup of invoicing and treasury activity.
// NetProfit is the simple TotalSales − TotalPurchases approximation with no
// cost-of-goods accounting; it is not a GAAP profit figure. Return totals are
// informational and deliberately not folded into NetProfit.
type ReportResult struct {
	From                 string          `json:"from"`
	To                   string          `json:"to"`
	TotalSales           decimal.Decimal `json:"totalSales"`
	TotalPurchases       decimal.Decimal `json:"totalPurchases"`
	TotalSaleReturns     decimal.Decimal `json:"totalSaleReturns"`
	TotalPurchaseReturns decimal.Decimal `json:"totalPurchaseReturns"`
	CashIn               decimal.Decimal `json:"cashIn"`
	CashOut              decimal.Decimal `json:"cashOut"`
	NetProfit            decimal.Decimal `json:"netProfit"`
}

// inWindow reports whether an ISO date falls in [from, to]. Either bound may
// be empty for an open end. Dates are compared lexically, which is exact for
// YYYY-MM-DD.
func inWindow(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// Report aggregates invoice totals by type and treasury amounts by sign over
// the inclusive date range [from, to].
func Report(from, to string, invoices []Invoice, treasury []TreasuryTransaction) ReportResult {
	r := ReportResult{
		From:                 from,
		To:                   to,
		TotalSales:           decimal.Zero,
		TotalPurchases:       decimal.Zero,
		TotalSaleReturns:     decimal.Zero,
		TotalPurchaseReturns: decimal.Zero,
		CashIn:               decimal.Zero,
		CashOut:              decimal.Zero,
	}

	for _, inv := range invoices {
		if !inWindow(inv.Date, from, to) {
			continue
		}
		switch inv.Type {
		case InvoiceSale:
			r.TotalSales = r.TotalSales.Add(inv.TotalAmount)
		case InvoicePurchase:
			r.TotalPurchases = r.TotalPurchases.Add(inv.TotalAmount)
		case InvoiceSaleReturn:
			r.TotalSaleReturns = r.TotalSaleReturns.Add(inv.TotalAmount)
		case InvoicePurchaseReturn:
			r.TotalPurchaseReturns = r.TotalPurchaseReturns.Add(inv.TotalAmount)
		}
	}

	for _, tx := range treasury {
		if !inWindow(tx.Date, from, to) {
			continue
		}
		if tx.Amount.IsNegative() {
			r.CashOut = r.CashOut.Add(tx.Amount.Abs())
		} else {
			r.CashIn = r.CashIn.Add(tx.Amount)
		}
	}

	r.NetProfit = r.TotalSales.Sub(r.TotalPurchases)
	return r
}
