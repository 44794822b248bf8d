// Package ingest turns source documents into the neutral shapes the
// extraction core consumes: named tables of rows for workbooks and HTML,
// page texts for prior-year reports.
package ingest

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"aasb_statements/pkg/core/extract"
)

// ReadWorkbook loads every sheet of an xlsx workbook as a table. Sheet
// names carry the statement aliases, so no filtering happens here.
func ReadWorkbook(path string) ([]extract.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()
	return workbookTables(f)
}

// ReadWorkbookFrom loads a workbook from a stream, for uploads.
func ReadWorkbookFrom(r io.Reader) ([]extract.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook stream: %w", err)
	}
	defer f.Close()
	return workbookTables(f)
}

func workbookTables(f *excelize.File) ([]extract.Table, error) {
	var tables []extract.Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		t := extract.Table{Name: sheet}
		for _, cells := range rows {
			t.Rows = append(t.Rows, extract.Row{Cells: cells})
		}
		tables = append(tables, t)
	}
	log.Printf("[Ingest] workbook: %d sheets loaded", len(tables))
	return tables, nil
}
