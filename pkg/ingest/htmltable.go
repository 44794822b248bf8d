package ingest

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aasb_statements/pkg/core/extract"
)

// ParseHTMLTables extracts tables from an HTML export of a workbook or
// report. The table name comes from the caption, the nearest preceding
// element that reads like a statement title, or a single-cell first row.
func ParseHTMLTables(html string) ([]extract.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var tables []extract.Table
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		name := tableName(sel)
		t := extract.Table{Name: name}
		sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}
			t.Rows = append(t.Rows, extract.Row{Cells: cells})
		})
		if len(t.Rows) > 0 {
			tables = append(tables, t)
		}
	})

	log.Printf("[Ingest] html: %d tables parsed", len(tables))
	return tables, nil
}

func tableName(table *goquery.Selection) string {
	if caption := table.Find("caption"); caption.Length() > 0 {
		if text := strings.TrimSpace(caption.Text()); text != "" {
			return text
		}
	}

	if prev := table.Prev(); prev.Length() > 0 {
		text := strings.TrimSpace(prev.Text())
		lower := strings.ToLower(text)
		if strings.Contains(lower, "balance") ||
			strings.Contains(lower, "statement") ||
			strings.Contains(lower, "profit") ||
			strings.Contains(lower, "income") {
			return text
		}
	}

	firstRow := table.Find("tr").First()
	if cells := firstRow.Find("td, th"); cells.Length() == 1 {
		return strings.TrimSpace(cells.Text())
	}
	return ""
}
