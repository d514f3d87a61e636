// Package persist is the storage boundary. The engine never touches it: the
// application loads a Snapshot on start, hands collections to the store, and
// saves on change. Backends store one JSON document per collection under a
// stable key, mirroring the snapshot layout the data has always had.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"smart-erp/internal/core"
)

// SchemaVersion is bumped when the snapshot shape changes incompatibly.
// Loaders tolerate missing fields via defaults, so additive changes do not
// need a bump.
const SchemaVersion = 1

// Snapshot is the full persisted application state.
type Snapshot struct {
	SchemaVersion int                        `json:"schemaVersion"`
	Company       core.CompanyInfo           `json:"company"`
	Users         []core.User                `json:"users"`
	Parties       []core.Party               `json:"parties"`
	Products      []core.Product             `json:"products"`
	Invoices      []core.Invoice             `json:"invoices"`
	Treasury      []core.TreasuryTransaction `json:"treasury"`
	Transfers     []core.AccountTransfer     `json:"transfers"`
}

// Empty returns a fresh snapshot with non-nil collections.
func Empty() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		Users:         []core.User{},
		Parties:       []core.Party{},
		Products:      []core.Product{},
		Invoices:      []core.Invoice{},
		Treasury:      []core.TreasuryTransaction{},
		Transfers:     []core.AccountTransfer{},
	}
}

// applyDefaults shapes a loaded snapshot: nil collections become empty and a
// missing version is treated as the current one. Stored data is never trusted
// to carry every field.
func (s *Snapshot) applyDefaults() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	if s.Users == nil {
		s.Users = []core.User{}
	}
	if s.Parties == nil {
		s.Parties = []core.Party{}
	}
	if s.Products == nil {
		s.Products = []core.Product{}
	}
	if s.Invoices == nil {
		s.Invoices = []core.Invoice{}
	}
	if s.Treasury == nil {
		s.Treasury = []core.TreasuryTransaction{}
	}
	if s.Transfers == nil {
		s.Transfers = []core.AccountTransfer{}
	}
}

// Validate rejects snapshots written by a newer schema.
func (s *Snapshot) Validate() error {
	if s.SchemaVersion > SchemaVersion {
		return fmt.Errorf("snapshot schema version %d is newer than supported version %d", s.SchemaVersion, SchemaVersion)
	}
	return nil
}

// Store is the opaque load/save facility. Save replaces the whole state;
// last write wins.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}

// Open selects a backend by driver name.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "sqlite", "":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// snapshotKeys is the persisted collection key set, one row per key.
var snapshotKeys = []string{"meta", "company", "users", "parties", "products", "invoices", "treasury", "transfers"}

type meta struct {
	SchemaVersion int `json:"schemaVersion"`
}

// encodeSnapshot splits a snapshot into per-key JSON documents.
func encodeSnapshot(snap *Snapshot) (map[string][]byte, error) {
	version := snap.SchemaVersion
	if version == 0 {
		version = SchemaVersion
	}
	parts := map[string]any{
		"meta":      meta{SchemaVersion: version},
		"company":   snap.Company,
		"users":     snap.Users,
		"parties":   snap.Parties,
		"products":  snap.Products,
		"invoices":  snap.Invoices,
		"treasury":  snap.Treasury,
		"transfers": snap.Transfers,
	}
	out := make(map[string][]byte, len(parts))
	for key, v := range parts {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}

// decodeSnapshot rebuilds a snapshot from per-key documents. Missing keys fall
// back to defaults so older or partial stores still load.
func decodeSnapshot(parts map[string][]byte) (*Snapshot, error) {
	snap := Empty()
	targets := map[string]any{
		"company":   &snap.Company,
		"users":     &snap.Users,
		"parties":   &snap.Parties,
		"products":  &snap.Products,
		"invoices":  &snap.Invoices,
		"treasury":  &snap.Treasury,
		"transfers": &snap.Transfers,
	}
	if data, ok := parts["meta"]; ok {
		var m meta
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("unmarshal meta: %w", err)
		}
		snap.SchemaVersion = m.SchemaVersion
	}
	for key, target := range targets {
		data, ok := parts[key]
		if !ok || len(data) == 0 {
			continue
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", key, err)
		}
	}
	snap.applyDefaults()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}
