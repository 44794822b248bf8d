package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseHTMLTables(t *testing.T) {
	html := `
<h3>Statement of Financial Position</h3>
<table>
  <tr><td>Cash and Cash Equivalents</td><td>110,000</td><td>120,000</td></tr>
  <tr><td>Trade and Other Payables</td><td>(90,000)</td><td>(95,000)</td></tr>
</table>
<table>
  <caption>Consol PL</caption>
  <tr><td>Revenue</td><td>950,000</td><td>1,000,000</td></tr>
</table>`

	tables, err := ParseHTMLTables(html)
	if err != nil {
		t.Fatalf("ParseHTMLTables() error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("parsed %d tables, want 2", len(tables))
	}

	if tables[0].Name != "Statement of Financial Position" {
		t.Errorf("table 0 name = %q", tables[0].Name)
	}
	if len(tables[0].Rows) != 2 || tables[0].Rows[0].Label() != "Cash and Cash Equivalents" {
		t.Errorf("table 0 rows = %+v", tables[0].Rows)
	}

	if tables[1].Name != "Consol PL" {
		t.Errorf("table 1 name = %q", tables[1].Name)
	}
	if got := tables[1].Rows[0].Cells[2]; got != "1,000,000" {
		t.Errorf("rightmost cell = %q", got)
	}
}

func TestParseHTMLSingleCellTitleRow(t *testing.T) {
	html := `<table>
  <tr><td>Balance Sheet</td></tr>
  <tr><td>Cash and Cash Equivalents</td><td>120,000</td></tr>
</table>`

	tables, err := ParseHTMLTables(html)
	if err != nil {
		t.Fatalf("ParseHTMLTables() error: %v", err)
	}
	if len(tables) != 1 || tables[0].Name != "Balance Sheet" {
		t.Fatalf("tables = %+v", tables)
	}
}

func TestLoadPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	content := "Financial Statements\nExample Pty Ltd\fStatement of Profit or Loss\nRevenue 1,000,000\f\n  \f"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := LoadPages(path)
	if err != nil {
		t.Fatalf("LoadPages() error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("loaded %d pages, want 2 (blank pages dropped)", len(pages))
	}
}

func TestLoadPagesDirOrdered(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"page02.txt": "second",
		"page01.txt": "first",
		"notes.md":   "ignored",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	pages, err := LoadPagesDir(dir)
	if err != nil {
		t.Fatalf("LoadPagesDir() error: %v", err)
	}
	if len(pages) != 2 || pages[0] != "first" || pages[1] != "second" {
		t.Errorf("pages = %v", pages)
	}
}

func TestLoadPagesMissingFile(t *testing.T) {
	if _, err := LoadPages(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing report text")
	}
}
