package zones

import (
	"github.com/rtefood/geozones/internal/table"

	"github.com/rs/zerolog/log"
)

// Save writes the base rows back to path and overlays the attribute
// columns the store gained after load (the enriched city column).
// Columns the base already carries keep their original values, rows
// that were skipped at load go out untouched, and geometry is never
// written beyond the boundary text already present in the base.
func Save(path string, base *table.Document, store *Store) error {
	var extra []string
	for _, name := range store.columns {
		if base.ColumnIndex(name) < 0 {
			extra = append(extra, name)
		}
	}

	width := len(base.Columns) + len(extra)
	columns := make([]string, 0, width)
	columns = append(columns, base.Columns...)
	columns = append(columns, extra...)

	byID := make(map[int]*Record, len(store.records))
	for _, rec := range store.records {
		byID[rec.ID] = rec
	}

	rows := make([][]table.Value, len(base.Rows))
	for i := range base.Rows {
		row := make([]table.Value, width)
		copy(row, base.Rows[i])

		if rec, ok := byID[i]; ok {
			for c, name := range extra {
				if v, found := rec.Attrs.Get(name); found {
					row[len(base.Columns)+c] = v
				}
			}
		}
		rows[i] = row
	}

	if err := table.Write(path, &table.Document{Columns: columns, Rows: rows}); err != nil {
		return err
	}

	log.Debug().
		Str("path", path).
		Int("rows", len(rows)).
		Strs("added_columns", extra).
		Msg("Store saved")

	return nil
}
