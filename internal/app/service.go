package app

import (
	"context"

	"smart-erp/internal/core"
)

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from the store and engine. Implementations must
// contain no display logic of any kind.
type ApplicationService interface {
	// GetTotals recomputes the dashboard aggregates.
	GetTotals(ctx context.Context) core.Totals

	// GetStatement returns the running-balance statement for one party code.
	GetStatement(ctx context.Context, code string) (*StatementResult, error)

	// GetReport returns the rollup for the inclusive date window [from, to].
	// Either bound may be empty.
	GetReport(ctx context.Context, from, to string) (*core.ReportResult, error)

	// GetStockLevels returns the computed inventory position per product.
	GetStockLevels(ctx context.Context) (*StockResult, error)

	ListParties(ctx context.Context) []core.Party
	CreateParty(ctx context.Context, req PartyRequest) (*core.Party, error)
	UpdateParty(ctx context.Context, req PartyRequest) error
	DeleteParty(ctx context.Context, id string) error

	ListProducts(ctx context.Context) []core.Product
	CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error)
	UpdateProduct(ctx context.Context, req ProductRequest) error
	DeleteProduct(ctx context.Context, id string) error

	ListInvoices(ctx context.Context) []core.Invoice
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*core.Invoice, error)
	UpdateInvoice(ctx context.Context, req InvoiceRequest) error
	DeleteInvoice(ctx context.Context, id string) error

	ListTreasury(ctx context.Context) []core.TreasuryTransaction
	CreateTreasury(ctx context.Context, req TreasuryRequest) (*core.TreasuryTransaction, error)
	UpdateTreasury(ctx context.Context, req TreasuryRequest) error
	DeleteTreasury(ctx context.Context, id string) error

	ListTransfers(ctx context.Context) []core.AccountTransfer
	CreateTransfer(ctx context.Context, req TransferRequest) (*core.AccountTransfer, error)
	UpdateTransfer(ctx context.Context, req TransferRequest) error
	DeleteTransfer(ctx context.Context, id string) error

	GetCompany(ctx context.Context) core.CompanyInfo
	SetCompany(ctx context.Context, info core.CompanyInfo) error

	ListUsers(ctx context.Context) []core.User
	SetUsers(ctx context.Context, users []core.User) error

	// ExportBackup writes the full state to a JSON file. An empty path picks
	// the conventional dated name in the working directory.
	ExportBackup(ctx context.Context, path string) (*BackupResult, error)

	// ImportBackup replaces the full state from a backup file and persists it.
	ImportBackup(ctx context.Context, path string) error
}
