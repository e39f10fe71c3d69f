package stages

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/puzzlequest/internal/kv"
	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Export writes c to path as JSONL, one stage per line, atomically.
func Export(c types.Catalog, path string) error {
	records := make([]json.RawMessage, 0, len(c))
	for _, s := range c {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode stage %d: %w", s.ID, err)
		}
		records = append(records, data)
	}
	if err := kv.WriteJSONL(path, records); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	return nil
}

// ReadCatalogFile reads a JSONL catalog written by Export. Lines that are not
// JSON, or that do not describe a fully formed stage, are skipped and
// counted. Duplicate ids make the whole file invalid, and so does a file
// with lines but no usable stage. An empty file is an empty catalog.
func ReadCatalogFile(path string) (types.Catalog, int, error) {
	records, skipped, err := kv.ReadJSONL(path)
	if err != nil {
		return nil, 0, fmt.Errorf("import catalog: %w", err)
	}

	c := make(types.Catalog, 0, len(records))
	for _, rec := range records {
		var s types.Stage
		if err := json.Unmarshal(rec, &s); err != nil {
			skipped++
			continue
		}
		if err := s.Validate(); err != nil {
			skipped++
			continue
		}
		c = append(c, s)
	}

	if len(c) == 0 && skipped > 0 {
		return nil, skipped, fmt.Errorf("import catalog: no stages in %d lines: %w", skipped, types.ErrCatalogCorrupt)
	}
	if err := c.Validate(); err != nil {
		return nil, skipped, fmt.Errorf("import catalog: %w", err)
	}
	return c, skipped, nil
}
