// Package models defines the normalized financial dataset shared by the
// extraction, derivation and validation stages.
package models

// Category identifies a single financial statement line item.
type Category string

// Income statement categories.
const (
	Revenue                Category = "revenue"
	CostOfSales            Category = "cost_of_sales"
	GrossProfit            Category = "gross_profit"
	OtherIncome            Category = "other_income"
	DistributionCosts      Category = "distribution_costs"
	AdministrativeExpenses Category = "administrative_expenses"
	OtherExpenses          Category = "other_expenses"
	ProfitBeforeTax        Category = "profit_before_tax"
	IncomeTaxExpense       Category = "income_tax_expense"
	NetProfitLoss          Category = "net_profit_loss"
	EBITDA                 Category = "ebitda"
)

// Balance sheet categories.
const (
	Cash                       Category = "cash"
	Receivables                Category = "receivables"
	Inventories                Category = "inventories"
	OtherCurrentAsset          Category = "other_current_asset"
	PPE                        Category = "ppe"
	Intangibles                Category = "intangibles"
	OtherNonCurrentAsset       Category = "other_non_current_asset"
	Payables                   Category = "payables"
	ProvisionsCurrent          Category = "provisions_current"
	ProvisionsNonCurrent       Category = "provisions_non_current"
	RelatedPartyLoanCurrent    Category = "related_party_loan_current"
	RelatedPartyLoanNonCurrent Category = "related_party_loan_non_current"
	OtherCurrentLiability      Category = "other_current_liability"
	Borrowings                 Category = "borrowings"
	OtherNonCurrentLiability   Category = "other_non_current_liability"
	ShareCapital               Category = "share_capital"
	Reserves                   Category = "reserves"
	RetainedEarnings           Category = "retained_earnings"
)

// Group classifies a balance sheet category into one of the five statement
// groupings. Income statement categories are ungrouped.
type Group string

const (
	GroupCurrentAssets         Group = "current_assets"
	GroupNonCurrentAssets      Group = "non_current_assets"
	GroupCurrentLiabilities    Group = "current_liabilities"
	GroupNonCurrentLiabilities Group = "non_current_liabilities"
	GroupEquity                Group = "equity"
	GroupNone                  Group = ""
)

var categoryGroups = map[Category]Group{
	Cash:                       GroupCurrentAssets,
	Receivables:                GroupCurrentAssets,
	Inventories:                GroupCurrentAssets,
	OtherCurrentAsset:          GroupCurrentAssets,
	PPE:                        GroupNonCurrentAssets,
	Intangibles:                GroupNonCurrentAssets,
	OtherNonCurrentAsset:       GroupNonCurrentAssets,
	Payables:                   GroupCurrentLiabilities,
	ProvisionsCurrent:          GroupCurrentLiabilities,
	RelatedPartyLoanCurrent:    GroupCurrentLiabilities,
	OtherCurrentLiability:      GroupCurrentLiabilities,
	ProvisionsNonCurrent:       GroupNonCurrentLiabilities,
	RelatedPartyLoanNonCurrent: GroupNonCurrentLiabilities,
	Borrowings:                 GroupNonCurrentLiabilities,
	OtherNonCurrentLiability:   GroupNonCurrentLiabilities,
	ShareCapital:               GroupEquity,
	Reserves:                   GroupEquity,
	RetainedEarnings:           GroupEquity,
}

// Group returns the balance sheet grouping for the category, or GroupNone for
// income statement categories.
func (c Category) Group() Group {
	return categoryGroups[c]
}

// IncomeStatementCategories lists all income statement categories in
// presentation order.
func IncomeStatementCategories() []Category {
	return []Category{
		Revenue, CostOfSales, GrossProfit, OtherIncome,
		DistributionCosts, AdministrativeExpenses, OtherExpenses,
		ProfitBeforeTax, IncomeTaxExpense, NetProfitLoss, EBITDA,
	}
}

// BalanceSheetCategories lists all balance sheet categories in presentation
// order (current assets through equity).
func BalanceSheetCategories() []Category {
	return []Category{
		Cash, Receivables, Inventories, OtherCurrentAsset,
		PPE, Intangibles, OtherNonCurrentAsset,
		Payables, ProvisionsCurrent, RelatedPartyLoanCurrent, OtherCurrentLiability,
		ProvisionsNonCurrent, RelatedPartyLoanNonCurrent, Borrowings, OtherNonCurrentLiability,
		ShareCapital, Reserves, RetainedEarnings,
	}
}

// GroupCategories returns the categories belonging to a balance sheet group.
func GroupCategories(g Group) []Category {
	var out []Category
	for _, c := range BalanceSheetCategories() {
		if categoryGroups[c] == g {
			out = append(out, c)
		}
	}
	return out
}

// Dataset maps categories to extracted line item values for one reporting
// period. A missing key means the line item is absent; zero is a stored
// value. Absence and zero stay distinct until the default-to-zero pass in
// calc.ApplyDefaults.
type Dataset struct {
	Items map[Category]float64 `json:"items"`
}

// NewDataset returns an empty dataset.
func NewDataset() Dataset {
	return Dataset{Items: make(map[Category]float64)}
}

// Has reports whether the category was populated.
func (d Dataset) Has(c Category) bool {
	_, ok := d.Items[c]
	return ok
}

// Get returns the stored value and whether it was populated.
func (d Dataset) Get(c Category) (float64, bool) {
	v, ok := d.Items[c]
	return v, ok
}

// Value returns the stored value, or zero when absent. Callers that must
// distinguish absence from zero use Get.
func (d Dataset) Value(c Category) float64 {
	return d.Items[c]
}

// Set stores a value for the category.
func (d Dataset) Set(c Category, v float64) {
	d.Items[c] = v
}

// Clone returns an independent copy. Extracted datasets are immutable once
// handed to the validator; corrections go through a clone.
func (d Dataset) Clone() Dataset {
	out := NewDataset()
	for c, v := range d.Items {
		out.Items[c] = v
	}
	return out
}

// Len returns the number of populated categories.
func (d Dataset) Len() int {
	return len(d.Items)
}

// Totals holds the derived group totals for a balance sheet. Totals are
// always computed by summation over the dataset, never extracted and never
// carried from a stale copy.
type Totals struct {
	CurrentAssets         float64 `json:"total_current_assets"`
	NonCurrentAssets      float64 `json:"total_non_current_assets"`
	Assets                float64 `json:"total_assets"`
	CurrentLiabilities    float64 `json:"total_current_liabilities"`
	NonCurrentLiabilities float64 `json:"total_non_current_liabilities"`
	Liabilities           float64 `json:"total_liabilities"`
	Equity                float64 `json:"total_equity"`
	LiabilitiesAndEquity  float64 `json:"total_liabilities_and_equity"`
}

// Director is one entry in the directors' declaration roster.
type Director struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Compiler is the compilation report signatory.
type Compiler struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Note is a note to the financial statements recovered from the prior-year
// report.
type Note struct {
	Number  int      `json:"number"`
	Heading string   `json:"heading"`
	Content []string `json:"content,omitempty"`
}

// SectionEntry is one contents-page entry (section title and page number).
type SectionEntry struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Page   int    `json:"page"`
}
