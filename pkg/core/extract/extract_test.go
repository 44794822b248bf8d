// Package extract - Test Suite for row and text line item extraction
package extract

import (
	"errors"
	"strings"
	"testing"

	"aasb_statements/pkg/models"
)

// =============================================================================
// NUMERIC.GO TESTS - Amount parsing for cells, rows, and text lines
// =============================================================================

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		// Positive values
		{"Simple integer", "1234", 1234, true},
		{"With commas", "1,234,567", 1234567, true},
		{"With dollar sign", "$1,234", 1234, true},
		{"Decimal", "1,234.56", 1234.56, true},
		{"Dollar and space", "$ 25,165", 25165, true},

		// Negative values
		{"Parentheses negative", "(1,234)", -1234, true},
		{"Dollar parentheses", "$(1,234)", -1234, true},
		{"Leading minus", "-400,000", -400000, true},

		// Absent markers
		{"Hyphen dash", "-", 0, false},
		{"Nil word", "nil", 0, false},
		{"Nil uppercase", "NIL", 0, false},
		{"N/A", "n/a", 0, false},
		{"NaN token", "NaN", 0, false},
		{"Empty", "", 0, false},
		{"Whitespace", "   ", 0, false},

		// Non-numeric text
		{"Label text", "Total current assets", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRowAmountRightmostWins(t *testing.T) {
	tests := []struct {
		name   string
		cells  []string
		want   float64
		wantOK bool
	}{
		{"Two period columns", []string{"Revenue", "950000", "1000000"}, 1000000, true},
		{"Rightmost blank falls back", []string{"Revenue", "950000", "-"}, 950000, true},
		{"Negative with separators", []string{"Cost of Sales", "", "-400,000"}, -400000, true},
		{"Label only", []string{"Current assets"}, 0, false},
		{"All blanks", []string{"Provisions", "nil", "n/a"}, 0, false},
		{"Label cell is skipped", []string{"2024 Revenue"}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RowAmount(Row{Cells: tt.cells})
			if ok != tt.wantOK {
				t.Fatalf("RowAmount(%v) ok = %v, want %v", tt.cells, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("RowAmount(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   float64
		wantOK bool
	}{
		{"Dollar amount", "Revenue $1,234,567", 1234567, true},
		{"Last token wins", "Revenue 950,000 1,000,000", 1000000, true},
		{"Parenthesized", "Income Tax Expense (85,000)", -85000, true},
		{"Minus prefixed", "Cost of Sales -400,000", -400000, true},
		{"No amount", "Notes to the Financial Statements", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LineAmount(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("LineAmount(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("LineAmount(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

// =============================================================================
// STATEMENTS.GO TESTS - Alias routing and missing statement errors
// =============================================================================

func TestFindStatement(t *testing.T) {
	tables := []Table{
		{Name: "Summary"},
		{Name: "consol pl"},
		{Name: " Balance Sheet "},
	}

	pl, err := FindStatement(tables, StatementIncome)
	if err != nil {
		t.Fatalf("FindStatement(income) error: %v", err)
	}
	if pl.Name != "consol pl" {
		t.Errorf("income statement table = %q, want %q", pl.Name, "consol pl")
	}

	bs, err := FindStatement(tables, StatementBalance)
	if err != nil {
		t.Fatalf("FindStatement(balance) error: %v", err)
	}
	if bs.Name != " Balance Sheet " {
		t.Errorf("balance sheet table = %q", bs.Name)
	}
}

func TestFindStatementMissing(t *testing.T) {
	_, err := FindStatement([]Table{{Name: "Summary"}}, StatementIncome)
	if err == nil {
		t.Fatal("expected error for missing income statement")
	}

	var missing *StatementMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error type = %T, want *StatementMissingError", err)
	}
	if missing.Statement != StatementIncome {
		t.Errorf("missing.Statement = %q, want %q", missing.Statement, StatementIncome)
	}
	if !strings.Contains(err.Error(), "Consol PL") {
		t.Errorf("error should name expected aliases, got: %v", err)
	}
}

// =============================================================================
// ROW_EXTRACTOR.GO TESTS - Rule priority, sign policy, tie-breaks
// =============================================================================

func incomeTable(rows ...[]string) []Table {
	t := Table{Name: "Consol PL"}
	for _, cells := range rows {
		t.Rows = append(t.Rows, Row{Cells: cells})
	}
	return []Table{t}
}

func balanceTable(rows ...[]string) []Table {
	t := Table{Name: "Consol BS"}
	for _, cells := range rows {
		t.Rows = append(t.Rows, Row{Cells: cells})
	}
	return []Table{t}
}

func TestIncomeStatementExtraction(t *testing.T) {
	ds, err := NewRowExtractor(Options{}).IncomeStatement(incomeTable(
		[]string{"Revenue", "950,000", "1,000,000"},
		[]string{"Cost of Sales", "", "-400,000"},
		[]string{"Gross Profit", "", "600,000"},
		[]string{"Other Income", "", "50,000"},
		[]string{"Distribution Costs", "", "(150,000)"},
		[]string{"Administrative Expenses", "", "(200,000)"},
		[]string{"Other Expenses", "", "(25,000)"},
		[]string{"Profit Before Tax", "", "275,000"},
		[]string{"Income Tax Expense", "", "(82,500)"},
		[]string{"Net Profit for the Year", "", "192,500"},
	))
	if err != nil {
		t.Fatalf("IncomeStatement() error: %v", err)
	}

	want := map[models.Category]float64{
		models.Revenue:                1000000,
		models.CostOfSales:            400000,
		models.GrossProfit:            600000,
		models.OtherIncome:            50000,
		models.DistributionCosts:      150000,
		models.AdministrativeExpenses: 200000,
		models.OtherExpenses:          25000,
		models.ProfitBeforeTax:        275000,
		models.IncomeTaxExpense:       82500,
		models.NetProfitLoss:          192500,
	}
	for cat, v := range want {
		got, ok := ds.Get(cat)
		if !ok {
			t.Errorf("%s not populated", cat)
			continue
		}
		if got != v {
			t.Errorf("%s = %v, want %v", cat, got, v)
		}
	}
	if ds.Has(models.EBITDA) {
		t.Error("ebitda should be absent when no EBITDA row exists")
	}
}

func TestDeductionCategoriesStoreMagnitude(t *testing.T) {
	ds, err := NewRowExtractor(Options{}).IncomeStatement(incomeTable(
		[]string{"Cost of Sales", "", "-400,000"},
	))
	if err != nil {
		t.Fatalf("IncomeStatement() error: %v", err)
	}
	got, ok := ds.Get(models.CostOfSales)
	if !ok {
		t.Fatal("cost_of_sales not populated")
	}
	if got != 400000 {
		t.Errorf("cost_of_sales = %v, want 400000 (non-negative magnitude)", got)
	}
}

func TestFirstMatchingRowWins(t *testing.T) {
	ds, err := NewRowExtractor(Options{}).IncomeStatement(incomeTable(
		[]string{"Revenue", "", "1,000,000"},
		[]string{"Revenue from other sources", "", "99,999"},
	))
	if err != nil {
		t.Fatalf("IncomeStatement() error: %v", err)
	}
	if got := ds.Value(models.Revenue); got != 1000000 {
		t.Errorf("revenue = %v, want 1000000 (first matching row wins)", got)
	}
}

func TestRowClaimedByFirstRuleOnly(t *testing.T) {
	// An EBITDA row also containing "profit" must not leak into other
	// categories: the first matching rule claims the whole row.
	ds, err := NewRowExtractor(Options{}).IncomeStatement(incomeTable(
		[]string{"EBITDA (earnings before interest, tax)", "", "310,000"},
		[]string{"Net Profit", "", "192,500"},
	))
	if err != nil {
		t.Fatalf("IncomeStatement() error: %v", err)
	}
	if got := ds.Value(models.EBITDA); got != 310000 {
		t.Errorf("ebitda = %v, want 310000", got)
	}
	if got := ds.Value(models.NetProfitLoss); got != 192500 {
		t.Errorf("net_profit_loss = %v, want 192500", got)
	}
}

func TestBalanceSheetExtraction(t *testing.T) {
	ds, err := NewRowExtractor(Options{}).BalanceSheet(balanceTable(
		[]string{"Cash and Cash Equivalents", "", "120,000"},
		[]string{"Trade and Other Receivables", "", "180,000"},
		[]string{"Inventories", "", "90,000"},
		[]string{"Other Current Assets", "", "10,000"},
		[]string{"Property, Plant and Equipment", "", "700,000"},
		[]string{"Intangible Assets", "", "300,000"},
		[]string{"Other Non-Current Assets", "", "100,000"},
		[]string{"Trade and Other Payables", "", "150,000"},
		[]string{"Provisions", "", "40,000"},
		[]string{"Provisions (non-current)", "", "20,000"},
		[]string{"Borrowings", "", "640,000"},
		[]string{"Share Capital", "", "100,000"},
		[]string{"Reserves", "", "150,000"},
		[]string{"Retained Earnings", "", "300,000"},
	))
	if err != nil {
		t.Fatalf("BalanceSheet() error: %v", err)
	}

	want := map[models.Category]float64{
		models.Cash:                 120000,
		models.Receivables:          180000,
		models.Inventories:          90000,
		models.OtherCurrentAsset:    10000,
		models.PPE:                  700000,
		models.Intangibles:          300000,
		models.OtherNonCurrentAsset: 100000,
		models.Payables:             150000,
		models.ProvisionsCurrent:    40000,
		models.ProvisionsNonCurrent: 20000,
		models.Borrowings:           640000,
		models.ShareCapital:         100000,
		models.Reserves:             150000,
		models.RetainedEarnings:     300000,
	}
	for cat, v := range want {
		got, ok := ds.Get(cat)
		if !ok {
			t.Errorf("%s not populated", cat)
			continue
		}
		if got != v {
			t.Errorf("%s = %v, want %v", cat, got, v)
		}
	}
}

func TestProvisionsPositionalTieBreak(t *testing.T) {
	filler := make([][]string, 0, 20)
	for i := 0; i < 16; i++ {
		filler = append(filler, []string{"heading"})
	}

	t.Run("early ambiguous row is current", func(t *testing.T) {
		ds, err := NewRowExtractor(Options{}).BalanceSheet(balanceTable(
			[]string{"Provisions", "", "40,000"},
		))
		if err != nil {
			t.Fatalf("BalanceSheet() error: %v", err)
		}
		if !ds.Has(models.ProvisionsCurrent) {
			t.Error("ambiguous provisions row before limit should classify as current")
		}
		if ds.Has(models.ProvisionsNonCurrent) {
			t.Error("provisions_non_current should stay absent")
		}
	})

	t.Run("late ambiguous row stays unclassified", func(t *testing.T) {
		rows := append(filler, []string{"Provisions", "", "40,000"})
		ds, err := NewRowExtractor(Options{}).BalanceSheet(balanceTable(rows...))
		if err != nil {
			t.Fatalf("BalanceSheet() error: %v", err)
		}
		if ds.Has(models.ProvisionsCurrent) || ds.Has(models.ProvisionsNonCurrent) {
			t.Error("ambiguous provisions row past the limit should not classify")
		}
	})

	t.Run("explicit non-current label wins over position", func(t *testing.T) {
		ds, err := NewRowExtractor(Options{}).BalanceSheet(balanceTable(
			[]string{"Provisions (non-current)", "", "20,000"},
		))
		if err != nil {
			t.Fatalf("BalanceSheet() error: %v", err)
		}
		if !ds.Has(models.ProvisionsNonCurrent) {
			t.Error("explicit non-current provisions should classify as non-current")
		}
		if ds.Has(models.ProvisionsCurrent) {
			t.Error("provisions_current should stay absent")
		}
	})

	t.Run("override limit", func(t *testing.T) {
		rows := [][]string{
			{"heading"},
			{"heading"},
			{"Provisions", "", "40,000"},
		}
		ds, err := NewRowExtractor(Options{CurrentProvisionRowLimit: 2}).BalanceSheet(balanceTable(rows...))
		if err != nil {
			t.Fatalf("BalanceSheet() error: %v", err)
		}
		if ds.Has(models.ProvisionsCurrent) {
			t.Error("row at index 2 with limit 2 should not classify as current")
		}
	})
}

func TestNonCurrentVariantsBeforeCurrent(t *testing.T) {
	ds, err := NewRowExtractor(Options{}).BalanceSheet(balanceTable(
		[]string{"Related Party Loans (non-current)", "", "75,000"},
		[]string{"Other Non-Current Liabilities", "", "12,000"},
	))
	if err != nil {
		t.Fatalf("BalanceSheet() error: %v", err)
	}
	if !ds.Has(models.RelatedPartyLoanNonCurrent) || ds.Has(models.RelatedPartyLoanCurrent) {
		t.Error("non-current related party loan misclassified as current")
	}
	if !ds.Has(models.OtherNonCurrentLiability) || ds.Has(models.OtherCurrentLiability) {
		t.Error("other non-current liability misclassified as current")
	}
}

func TestRowWithoutAmountConsumesRule(t *testing.T) {
	// A matching row without a value is still claimed; the category stays
	// open for a later row.
	ds, err := NewRowExtractor(Options{}).IncomeStatement(incomeTable(
		[]string{"Revenue"},
		[]string{"Revenue", "", "1,000,000"},
	))
	if err != nil {
		t.Fatalf("IncomeStatement() error: %v", err)
	}
	if got := ds.Value(models.Revenue); got != 1000000 {
		t.Errorf("revenue = %v, want 1000000", got)
	}
}

// =============================================================================
// TEXT_EXTRACTOR.GO TESTS - Section scoping and structural extraction
// =============================================================================

func TestTextLineItemsSectionScoped(t *testing.T) {
	pages := []string{
		"Statement of Profit or Loss\nRevenue 950,000 1,000,000\nCost of Sales (380,000) (400,000)",
		"Statement of Financial Position\nCash and Cash Equivalents 110,000 120,000\nRetained Earnings 280,000 300,000",
		"Notes to the Financial Statements\nRevenue is recognised when control passes, totalling $5,000,000 across segments.",
	}

	income, balance := NewTextExtractor(pages, Options{}).LineItems()

	if got := income.Value(models.Revenue); got != 1000000 {
		t.Errorf("revenue = %v, want 1000000 (last token on line)", got)
	}
	if got := income.Value(models.CostOfSales); got != 400000 {
		t.Errorf("cost_of_sales = %v, want magnitude 400000", got)
	}
	if got := balance.Value(models.Cash); got != 120000 {
		t.Errorf("cash = %v, want 120000", got)
	}
	if got := balance.Value(models.RetainedEarnings); got != 300000 {
		t.Errorf("retained_earnings = %v, want 300000", got)
	}
}

func TestTextKeywordOutsideSectionIgnored(t *testing.T) {
	pages := []string{
		"Notes to the Financial Statements\nRevenue from contracts with customers was $5,000,000.",
	}
	income, balance := NewTextExtractor(pages, Options{}).LineItems()
	if income.Len() != 0 {
		t.Errorf("income dataset should be empty outside statement sections, got %d items", income.Len())
	}
	if balance.Len() != 0 {
		t.Errorf("balance dataset should be empty outside statement sections, got %d items", balance.Len())
	}
}

func TestEntityNameAndReportYear(t *testing.T) {
	pages := []string{
		"Special Purpose Financial Statements\nExample Holdings Pty Ltd\nFor the Year Ended 30 June 2024",
	}
	x := NewTextExtractor(pages, Options{})

	name, ok := x.EntityName()
	if !ok || name != "Example Holdings Pty Ltd" {
		t.Errorf("EntityName() = %q, %v", name, ok)
	}

	year, ok := x.ReportYear()
	if !ok || year != 2024 {
		t.Errorf("ReportYear() = %d, %v, want 2024", year, ok)
	}
}

func TestContents(t *testing.T) {
	pages := []string{
		"Contents\n1. Statement of Profit or Loss 3\n2. Statement of Financial Position 4\n3. Notes to the Financial Statements 6",
	}
	entries := NewTextExtractor(pages, Options{}).Contents()
	if len(entries) != 3 {
		t.Fatalf("Contents() returned %d entries, want 3", len(entries))
	}
	if entries[1].Number != 2 || entries[1].Title != "Statement of Financial Position" || entries[1].Page != 4 {
		t.Errorf("entry 2 = %+v", entries[1])
	}
}

func TestDirectorsAndCompiler(t *testing.T) {
	pages := []string{
		"Directors' Declaration\nThe directors declare that the statements comply.\nMatthew Warnken\nDirector\nGary Wyatt\nDirector",
		"Compilation Report\nWe have compiled the accompanying statements.\n_____________ Date:\nAllan Tuback\nChartered Accountant",
	}
	x := NewTextExtractor(pages, Options{})

	directors := x.Directors()
	if len(directors) != 2 {
		t.Fatalf("Directors() returned %d, want 2: %+v", len(directors), directors)
	}
	if directors[0].Name != "Matthew Warnken" || directors[1].Name != "Gary Wyatt" {
		t.Errorf("directors = %+v", directors)
	}

	compiler, ok := x.CompilerInfo()
	if !ok {
		t.Fatal("CompilerInfo() not found")
	}
	if compiler.Name != "Allan Tuback" || compiler.Title != "Chartered Accountant" {
		t.Errorf("compiler = %+v", compiler)
	}
}

func TestTaxHeadEntityAndContingent(t *testing.T) {
	pages := []string{
		"Note 3 Income Tax\nThe company is part of a tax consolidated group. The head entity: Example Group Pty Ltd elected to form the group.",
		"Other notes\nThe company has a contingent liability under the TENBS arrangement.\nNo provision is recognised.",
	}
	x := NewTextExtractor(pages, Options{})

	head, ok := x.TaxHeadEntity()
	if !ok || !strings.Contains(head, "Example Group") {
		t.Errorf("TaxHeadEntity() = %q, %v", head, ok)
	}

	text, ok := x.ContingentLiability()
	if !ok || !strings.Contains(text, "contingent liability") {
		t.Errorf("ContingentLiability() = %q, %v", text, ok)
	}
}

func TestNotes(t *testing.T) {
	pages := []string{
		"Notes to the Financial Statements\n1. Summary of Significant Accounting Policies\nThe statements are special purpose.\n2. Revenue Recognition\nRevenue is recognised at a point in time.",
	}
	notes := NewTextExtractor(pages, Options{}).Notes()
	if len(notes) != 2 {
		t.Fatalf("Notes() returned %d, want 2", len(notes))
	}
	if notes[0].Number != 1 || notes[0].Heading != "Summary of Significant Accounting Policies" {
		t.Errorf("note 1 = %+v", notes[0])
	}
	if len(notes[1].Content) != 1 {
		t.Errorf("note 2 content = %+v", notes[1].Content)
	}
}
