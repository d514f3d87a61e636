package core

import "github.com/shopspring/decimal"

type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartySupplier PartyType = "SUPPLIER"
)

// Party is a customer or supplier with a running account balance.
// InitialBalance sign convention: positive = party owes the company (debit),
// negative = the company owes the party (credit). The declared Type is
// informational only; whether money is owed to or by the company is determined
// solely by the sign of the computed balance.
type Party struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           PartyType       `json:"type"`
	Category       string          `json:"category"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Phone          string          `json:"phone,omitempty"`
}

// Product is a SKU with an opening inventory position.
type Product struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	InitialQty   int64           `json:"initialQty"`
	InitialValue decimal.Decimal `json:"initialValue"`
	Price        decimal.Decimal `json:"price"`
}

type InvoiceType string

const (
	InvoiceSale           InvoiceType = "SALE"
	InvoicePurchase       InvoiceType = "PURCHASE"
	InvoiceSaleReturn     InvoiceType = "SALE_RETURN"
	InvoicePurchaseReturn InvoiceType = "PURCHASE_RETURN"
)

// InvoiceItem is one product line on an invoice. Total = Qty × Price; the
// producing side is responsible for keeping that invariant, the engine trusts
// the stored value.
type InvoiceItem struct {
	ID          string          `json:"id"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Qty         int64           `json:"qty"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type Invoice struct {
	ID          string          `json:"id"`
	InvoiceNo   string          `json:"invoiceNo"`
	Type        InvoiceType     `json:"type"`
	Date        string          `json:"date"` // YYYY-MM-DD
	PartyCode   string          `json:"partyCode"`
	Items       []InvoiceItem   `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Notes       string          `json:"notes"`
	Template    string          `json:"template"`
}

// Remaining is the unsettled portion of the invoice, the amount that affects
// the party balance.
func (inv Invoice) Remaining() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.PaidAmount)
}

type TreasuryType string

const (
	TreasuryIncome  TreasuryType = "INCOME"
	TreasuryExpense TreasuryType = "EXPENSE"
	TreasuryPayment TreasuryType = "PAYMENT"
)

// TreasuryTransaction is a cash movement. Amount sign: positive = cash in,
// negative = cash out. A PAYMENT carrying a PartyCode does not post to that
// party's ledger; only invoices and transfers move party balances.
type TreasuryTransaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TreasuryType    `json:"type"`
	PartyCode   string          `json:"partyCode,omitempty"`
}

// AccountTransfer moves balance between two parties' ledgers without touching
// cash.
type AccountTransfer struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	FromPartyCode string          `json:"fromPartyCode"`
	ToPartyCode   string          `json:"toPartyCode"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
}

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
)

// User is a settings record carried through the snapshot. Session handling is
// out of scope; the store only persists these.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"password,omitempty"`
	Role        UserRole `json:"role"`
	Permissions []string `json:"permissions"`
}

// CompanyInfo holds the letterhead data shown on invoices and reports.
type CompanyInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Whatsapp      string `json:"whatsapp"`
	Address       string `json:"address"`
	CommercialReg string `json:"commercialReg"`
	TaxID         string `json:"taxId"`
	Logo          string `json:"logo,omitempty"`
}
