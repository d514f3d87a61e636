package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultBackupName returns the conventional backup file name for today.
func DefaultBackupName(now time.Time) string {
	return fmt.Sprintf("smart_erp_backup_%s.json", now.Format("2006-01-02"))
}

// WriteBackup writes the snapshot as an indented JSON file.
func WriteBackup(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup %s: %w", path, err)
	}
	return nil
}

// ReadBackup loads a backup file, applying the same defaults as the storage
// backends so partial or older backups import cleanly.
func ReadBackup(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse backup %s: %w", path, err)
	}
	snap.applyDefaults()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
