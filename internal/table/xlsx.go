package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func readXLSX(path string) (*Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &Document{}, nil
	}

	doc := &Document{Columns: rows[0]}
	for _, rec := range rows[1:] {
		row := make([]Value, len(rec))
		for i, cell := range rec {
			row[i] = parseCell(cell)
		}
		doc.Rows = append(doc.Rows, row)
	}

	return doc, nil
}

func writeXLSX(path string, doc *Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return err
	}

	header := make([]interface{}, len(doc.Columns))
	for i, name := range doc.Columns {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for r := range doc.Rows {
		cells := make([]interface{}, len(doc.Columns))
		for i := range doc.Columns {
			switch v := doc.Cell(r, i); v.Kind {
			case KindString:
				cells[i] = v.Str
			case KindNumber:
				cells[i] = v.Num
			default:
				cells[i] = nil
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	return f.SaveAs(path)
}
