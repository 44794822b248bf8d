package extract

import (
	"log"

	"aasb_statements/pkg/models"
)

// RowExtractor populates a dataset from spreadsheet tables by applying the
// priority-ordered rule tables to each row's label text.
type RowExtractor struct {
	opts Options
}

// NewRowExtractor creates an extractor. The zero Options value uses the
// default positional heuristics.
func NewRowExtractor(opts Options) *RowExtractor {
	return &RowExtractor{opts: opts}
}

// IncomeStatement extracts income statement categories from the tables.
// Fails with *StatementMissingError when no table matches a recognized
// income statement alias.
func (e *RowExtractor) IncomeStatement(tables []Table) (models.Dataset, error) {
	t, err := FindStatement(tables, StatementIncome)
	if err != nil {
		return models.Dataset{}, err
	}
	ds := e.apply(t, IncomeStatementRules())
	log.Printf("[RowExtractor] income statement %q: %d categories populated", t.Name, ds.Len())
	return ds, nil
}

// BalanceSheet extracts balance sheet categories from the tables.
// Fails with *StatementMissingError when no table matches a recognized
// balance sheet alias.
func (e *RowExtractor) BalanceSheet(tables []Table) (models.Dataset, error) {
	t, err := FindStatement(tables, StatementBalance)
	if err != nil {
		return models.Dataset{}, err
	}
	ds := e.apply(t, BalanceSheetRules(e.opts))
	log.Printf("[RowExtractor] balance sheet %q: %d categories populated", t.Name, ds.Len())
	return ds, nil
}

// apply runs the rule table over every row. The first matching rule claims
// the row whether or not it carries an amount; a claimed row never reaches
// later rules. A populated category skips its rule so the first matching
// row wins and later duplicates are ignored.
func (e *RowExtractor) apply(t *Table, rules []MatchRule) models.Dataset {
	ds := models.NewDataset()
	for index, row := range t.Rows {
		text := row.Text()
		if text == "" {
			continue
		}
		for _, rule := range rules {
			if ds.Has(rule.Category) {
				continue
			}
			if !rule.Match(text, index) {
				continue
			}
			if v, ok := RowAmount(row); ok {
				if rule.Sign == SignMagnitude && v < 0 {
					v = -v
				}
				ds.Set(rule.Category, v)
			}
			break
		}
	}
	return ds
}
