package extract

import (
	"fmt"
	"strings"
)

// Row is one spreadsheet row. The first cell is the label; the remaining
// cells are period columns with the most recent period rightmost.
type Row struct {
	Cells []string `json:"cells"`
}

// Label returns the row's label cell, or "" for an empty row.
func (r Row) Label() string {
	if len(r.Cells) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Cells[0])
}

// Text returns the whole row joined for keyword matching, lowercased.
func (r Row) Text() string {
	return strings.ToLower(strings.Join(r.Cells, " "))
}

// Table is a named sheet of rows handed over by the workbook reader.
type Table struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// StatementType identifies which financial statement a table represents.
type StatementType string

const (
	StatementIncome  StatementType = "INCOME_STATEMENT"
	StatementBalance StatementType = "BALANCE_SHEET"
)

// statementAliases maps each statement to the sheet names it is published
// under. Matching is case-insensitive on the trimmed sheet name.
var statementAliases = map[StatementType][]string{
	StatementIncome:  {"Consol PL", "ConsolPL", "PL", "Profit Loss", "Income Statement"},
	StatementBalance: {"Consol BS", "ConsolBS", "BS", "Balance Sheet", "Statement of Financial Position"},
}

// StatementMissingError reports that no table matched any recognized alias
// for a required statement. It is a structural failure: no dataset can be
// built, so the caller must stop before validation runs.
type StatementMissingError struct {
	Statement StatementType
	Aliases   []string
}

func (e *StatementMissingError) Error() string {
	return fmt.Sprintf("required statement %s not found, expected a sheet named one of: %s",
		e.Statement, strings.Join(e.Aliases, ", "))
}

// FindStatement locates the table for a statement by alias. Aliases are
// tried in order so "Consol PL" is preferred over the looser "PL".
func FindStatement(tables []Table, st StatementType) (*Table, error) {
	for _, alias := range statementAliases[st] {
		for i := range tables {
			if strings.EqualFold(strings.TrimSpace(tables[i].Name), alias) {
				return &tables[i], nil
			}
		}
	}
	return nil, &StatementMissingError{Statement: st, Aliases: statementAliases[st]}
}
