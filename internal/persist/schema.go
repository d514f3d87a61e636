package persist

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SnapshotSchema renders the JSON Schema for the persisted snapshot format.
// Useful for validating backups produced by other tooling against the current
// schema version.
func SnapshotSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := r.Reflect(&Snapshot{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot schema: %w", err)
	}
	return data, nil
}
