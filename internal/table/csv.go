package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

func readCSV(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows may be ragged

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &Document{}, nil
	}

	header := records[0]
	if len(header) > 0 {
		// Excel exports prefix the first header cell with a BOM.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	doc := &Document{Columns: header}
	for _, rec := range records[1:] {
		row := make([]Value, len(rec))
		for i, cell := range rec {
			row[i] = parseCell(cell)
		}
		doc.Rows = append(doc.Rows, row)
	}

	return doc, nil
}

func writeCSV(path string, doc *Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(doc.Columns); err != nil {
		return err
	}

	line := make([]string, len(doc.Columns))
	for r := range doc.Rows {
		for i := range doc.Columns {
			line[i] = doc.Cell(r, i).Text()
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
