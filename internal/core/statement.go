package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// StatementLine is one row of a party statement. Debit amounts increase the
// party's balance (the party owes more), credit amounts decrease it.
// Balance is the cumulative value after this row.
type StatementLine struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

var invoiceLabels = map[InvoiceType]string{
	InvoiceSale:           "Sales invoice",
	InvoicePurchase:       "Purchase invoice",
	InvoiceSaleReturn:     "Sales return",
	InvoicePurchaseReturn: "Purchase return",
}

// Statement builds the chronological transaction list for one party with a
// running balance column. Rows are ordered by date ascending; rows sharing a
// date keep their insertion order (invoices before transfers, each in input
// order). The final Balance equals PartyBalance for the same inputs.
func Statement(p Party, invoices []Invoice, transfers []AccountTransfer) []StatementLine {
	var lines []StatementLine

	for _, inv := range invoices {
		if inv.PartyCode != p.Code {
			continue
		}
		remaining := inv.Remaining()
		line := StatementLine{
			Date:        inv.Date,
			Description: fmt.Sprintf("%s %s", invoiceLabels[inv.Type], inv.InvoiceNo),
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		switch inv.Type {
		case InvoiceSale, InvoicePurchaseReturn:
			line.Debit = remaining
		case InvoicePurchase, InvoiceSaleReturn:
			line.Credit = remaining
		}
		lines = append(lines, line)
	}

	for _, t := range transfers {
		switch p.Code {
		case t.FromPartyCode:
			lines = append(lines, StatementLine{
				Date:        t.Date,
				Description: fmt.Sprintf("Transfer to %s: %s", t.ToPartyCode, t.Reason),
				Debit:       decimal.Zero,
				Credit:      t.Amount,
			})
		case t.ToPartyCode:
			lines = append(lines, StatementLine{
				Date:        t.Date,
				Description: fmt.Sprintf("Transfer from %s: %s", t.FromPartyCode, t.Reason),
				Debit:       t.Amount,
				Credit:      decimal.Zero,
			})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date < lines[j].Date
	})

	running := p.InitialBalance
	for i := range lines {
		running = running.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].Balance = running
	}
	return lines
}
