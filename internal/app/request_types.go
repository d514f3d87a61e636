package app

// Money amounts travel as strings in requests and are parsed into decimals at
// this boundary, so adapters never do arithmetic on floats.

type PartyRequest struct {
	ID             string `json:"id,omitempty"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Type           string `json:"type"` // CUSTOMER or SUPPLIER
	Category       string `json:"category"`
	InitialBalance string `json:"initialBalance"`
	Phone          string `json:"phone,omitempty"`
}

type ProductRequest struct {
	ID           string `json:"id,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	InitialQty   int64  `json:"initialQty"`
	InitialValue string `json:"initialValue"`
	Price        string `json:"price"`
}

type InvoiceItemRequest struct {
	ProductCode string `json:"productCode"`
	Qty         int64  `json:"qty"`
	Price       string `json:"price"`
}

// InvoiceRequest carries invoice input. Item totals and the invoice total are
// computed here rather than trusted from the caller, so total = Σ items holds
// by construction.
type InvoiceRequest struct {
	ID         string               `json:"id,omitempty"`
	InvoiceNo  string               `json:"invoiceNo,omitempty"`
	Type       string               `json:"type"`
	Date       string               `json:"date"`
	PartyCode  string               `json:"partyCode"`
	Items      []InvoiceItemRequest `json:"items"`
	PaidAmount string               `json:"paidAmount"`
	Notes      string               `json:"notes,omitempty"`
	Template   string               `json:"template,omitempty"`
}

type TreasuryRequest struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"` // INCOME, EXPENSE, PAYMENT
	PartyCode   string `json:"partyCode,omitempty"`
}

type TransferRequest struct {
	ID            string `json:"id,omitempty"`
	Date          string `json:"date"`
	FromPartyCode string `json:"fromPartyCode"`
	ToPartyCode   string `json:"toPartyCode"`
	Amount        string `json:"amount"`
	Reason        string `json:"reason"`
}
