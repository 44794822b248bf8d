package extract

import (
	"strings"

	"aasb_statements/pkg/models"
)

// SignPolicy controls how an extracted amount is stored.
type SignPolicy int

const (
	// SignAsIs keeps the extracted sign.
	SignAsIs SignPolicy = iota
	// SignMagnitude stores the non-negative magnitude. Used for deduction
	// categories; the renderer handles display-time parenthesization.
	SignMagnitude
)

// MatchRule binds a category to a predicate over row text. Rules are
// evaluated in declaration order with early exit on first match per row, and
// a category is claimed at most once (first match wins across rows).
type MatchRule struct {
	Category models.Category
	Match    func(text string, index int) bool
	Sign     SignPolicy
}

// DefaultCurrentProvisionRowLimit is the row index below which an ambiguous
// provisions row is classified as a current provision. Brittle to source
// layout changes but kept for compatibility with existing workbooks.
const DefaultCurrentProvisionRowLimit = 15

// Options tunes the positional heuristics of the rule tables.
type Options struct {
	// CurrentProvisionRowLimit overrides DefaultCurrentProvisionRowLimit
	// when positive.
	CurrentProvisionRowLimit int
}

func (o Options) provisionLimit() int {
	if o.CurrentProvisionRowLimit > 0 {
		return o.CurrentProvisionRowLimit
	}
	return DefaultCurrentProvisionRowLimit
}

func has(text string, keywords ...string) bool {
	for _, k := range keywords {
		if !strings.Contains(text, k) {
			return false
		}
	}
	return true
}

func hasAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func keyword(sign SignPolicy, c models.Category, keywords ...string) MatchRule {
	return MatchRule{
		Category: c,
		Sign:     sign,
		Match: func(text string, _ int) bool {
			return has(text, keywords...)
		},
	}
}

// IncomeStatementRules returns the ordered rule table for income statement
// rows. EBITDA leads so an "EBITDA" summary row is never misread as revenue
// or profit.
func IncomeStatementRules() []MatchRule {
	return []MatchRule{
		keyword(SignAsIs, models.EBITDA, "ebitda"),
		keyword(SignAsIs, models.Revenue, "revenue"),
		{
			Category: models.CostOfSales,
			Sign:     SignMagnitude,
			Match: func(text string, _ int) bool {
				return hasAny(text, "cost of sales", "cost of goods sold")
			},
		},
		keyword(SignAsIs, models.GrossProfit, "gross profit"),
		keyword(SignAsIs, models.OtherIncome, "other income"),
		keyword(SignMagnitude, models.DistributionCosts, "distribution", "cost"),
		keyword(SignMagnitude, models.AdministrativeExpenses, "administrative", "expense"),
		{
			// "other ... expenses" but never an "other income/(expense)" row.
			Category: models.OtherExpenses,
			Sign:     SignMagnitude,
			Match: func(text string, _ int) bool {
				return has(text, "other", "expense") && !strings.Contains(text, "income")
			},
		},
		keyword(SignAsIs, models.ProfitBeforeTax, "profit before tax"),
		keyword(SignMagnitude, models.IncomeTaxExpense, "income tax"),
		{
			Category: models.NetProfitLoss,
			Sign:     SignAsIs,
			Match: func(text string, _ int) bool {
				return has(text, "net") && hasAny(text, "profit", "loss")
			},
		},
	}
}

// BalanceSheetRules returns the ordered rule table for balance sheet rows.
// Non-current variants are listed before their current counterparts so an
// explicit "non-current" label is never claimed by the current rule via the
// "current" substring. An ambiguous provisions row falls back to a
// positional tie-break: rows early in the sheet are treated as current.
func BalanceSheetRules(opts Options) []MatchRule {
	limit := opts.provisionLimit()
	return []MatchRule{
		keyword(SignAsIs, models.Cash, "cash", "equivalent"),
		keyword(SignAsIs, models.Receivables, "trade", "receivable"),
		keyword(SignAsIs, models.Inventories, "inventor"),
		keyword(SignAsIs, models.OtherNonCurrentAsset, "other", "non", "current", "asset"),
		keyword(SignAsIs, models.OtherCurrentAsset, "other", "current", "asset"),
		keyword(SignAsIs, models.PPE, "property", "plant"),
		keyword(SignAsIs, models.Intangibles, "intangible"),
		keyword(SignAsIs, models.Payables, "trade", "payable"),
		keyword(SignAsIs, models.ProvisionsNonCurrent, "provision", "non"),
		{
			Category: models.ProvisionsCurrent,
			Sign:     SignAsIs,
			Match: func(text string, index int) bool {
				return strings.Contains(text, "provision") &&
					(strings.Contains(text, "current") || index < limit)
			},
		},
		keyword(SignAsIs, models.RelatedPartyLoanNonCurrent, "related", "party", "non"),
		keyword(SignAsIs, models.RelatedPartyLoanCurrent, "related", "party", "current"),
		keyword(SignAsIs, models.OtherNonCurrentLiability, "other", "non", "current", "liabilit"),
		keyword(SignAsIs, models.OtherCurrentLiability, "other", "current", "liabilit"),
		keyword(SignAsIs, models.Borrowings, "borrowing"),
		keyword(SignAsIs, models.ShareCapital, "share", "capital"),
		keyword(SignAsIs, models.Reserves, "reserve"),
		keyword(SignAsIs, models.RetainedEarnings, "retained", "earning"),
	}
}
