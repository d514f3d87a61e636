package app

import (
	"github.com/shopspring/decimal"

	"smart-erp/internal/core"
	"smart-erp/internal/store"
)

// StatementResult is a party statement plus the scalar balance it ends on.
type StatementResult struct {
	Party   core.Party           `json:"party"`
	Lines   []core.StatementLine `json:"lines"`
	Balance decimal.Decimal      `json:"balance"`
}

// StockResult lists the computed inventory position per product.
type StockResult struct {
	Levels []store.StockLevel `json:"levels"`
}

// BackupResult reports where a backup landed.
type BackupResult struct {
	Path string `json:"path"`
}
