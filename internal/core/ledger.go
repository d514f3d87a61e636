package core

import "github.com/shopspring/decimal"

// Totals is the dashboard aggregate: what customers owe, what the company owes
// suppliers, and the current inventory valuation.
type Totals struct {
	CustomerDebt   decimal.Decimal `json:"customerDebt"`
	SupplierDebt   decimal.Decimal `json:"supplierDebt"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}

// PartyBalance derives a party's current balance from its initial balance plus
// every invoice and transfer touching it. SALE and PURCHASE_RETURN add the
// invoice's remaining amount, PURCHASE and SALE_RETURN subtract it. Transfers
// subtract on the sending side and add on the receiving side.
//
// Inputs are never mutated. Collections are applied in input order.
func PartyBalance(p Party, invoices []Invoice, transfers []AccountTransfer) decimal.Decimal {
	balance := p.InitialBalance
	for _, inv := range invoices {
		if inv.PartyCode != p.Code {
			continue
		}
		remaining := inv.Remaining()
		switch inv.Type {
		case InvoiceSale, InvoicePurchaseReturn:
			balance = balance.Add(remaining)
		case InvoicePurchase, InvoiceSaleReturn:
			balance = balance.Sub(remaining)
		}
	}
	for _, t := range transfers {
		if t.FromPartyCode == p.Code {
			balance = balance.Sub(t.Amount)
		}
		if t.ToPartyCode == p.Code {
			balance = balance.Add(t.Amount)
		}
	}
	return balance
}

// ProductQuantity is the current stock level: initial quantity plus PURCHASE
// item quantities minus SALE item quantities. Return invoices do not move
// stock. The result may go negative; oversold stock is surfaced upstream, not
// clamped here.
func ProductQuantity(prod Product, invoices []Invoice) int64 {
	qty := prod.InitialQty
	for _, inv := range invoices {
		switch inv.Type {
		case InvoicePurchase:
			for _, it := range inv.Items {
				if it.ProductCode == prod.Code {
					qty += it.Qty
				}
			}
		case InvoiceSale:
			for _, it := range inv.Items {
				if it.ProductCode == prod.Code {
					qty -= it.Qty
				}
			}
		}
	}
	return qty
}

// ProductValue marks the current quantity to the product's list price. This is
// a spot valuation, not weighted-average cost.
func ProductValue(prod Product, invoices []Invoice) decimal.Decimal {
	return decimal.NewFromInt(ProductQuantity(prod, invoices)).Mul(prod.Price)
}

// ComputeTotals recomputes the dashboard aggregates from scratch. Each party
// with a positive balance contributes to CustomerDebt, otherwise its absolute
// balance goes to SupplierDebt (a zero balance adds zero there).
func ComputeTotals(parties []Party, products []Product, invoices []Invoice, transfers []AccountTransfer) Totals {
	t := Totals{
		CustomerDebt:   decimal.Zero,
		SupplierDebt:   decimal.Zero,
		InventoryValue: decimal.Zero,
	}
	for _, p := range parties {
		balance := PartyBalance(p, invoices, transfers)
		if balance.IsPositive() {
			t.CustomerDebt = t.CustomerDebt.Add(balance)
		} else {
			t.SupplierDebt = t.SupplierDebt.Add(balance.Abs())
		}
	}
	for _, prod := range products {
		t.InventoryValue = t.InventoryValue.Add(ProductValue(prod, invoices))
	}
	return t
}
