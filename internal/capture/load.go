package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
)

// loadWorkers caps concurrent capture-file reads in LoadAll.
const loadWorkers = 4

// Load reads one capture file: a JSON array of records.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capture file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes capture data. The name is used for error messages and for
// synthesizing IDs of records that don't carry one.
func Parse(name string, data []byte) ([]Record, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding capture file %s: %w", name, err)
	}

	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decoding record %d in %s: %w", i, name, err)
		}
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("%s#%d", name, i)
		}
		rec.raw = raw
		records = append(records, rec)
	}

	slog.Debug("loaded capture file", "path", name, "records", len(records))
	return records, nil
}

// LoadAll loads several capture files concurrently, preserving file order
// in the combined result. The first failure aborts the whole load.
func LoadAll(ctx context.Context, paths []string) ([]Record, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadWorkers)

	perFile := make([][]Record, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := Load(path)
			if err != nil {
				return err
			}
			perFile[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, records := range perFile {
		all = append(all, records...)
	}
	return all, nil
}
