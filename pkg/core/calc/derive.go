// Package calc fills missing line items from accounting identities and
// computes group totals over a normalized dataset.
package calc

import (
	"fmt"

	"aasb_statements/pkg/models"
)

// DeriveIncome fills absent income statement categories using, in order:
//
//  1. gross_profit = revenue - cost_of_sales
//  2. profit_before_tax = gross_profit + other_income - distribution_costs
//     - administrative_expenses - other_expenses
//  3. net_profit_loss = profit_before_tax - income_tax_expense
//  4. ebitda = profit_before_tax, a last-resort approximation when no
//     interest, depreciation or amortization breakdown is available
//
// A formula only runs when its target is absent. The gross profit formula
// needs both operands present; the profit before tax formula treats absent
// operands as zero. The input is never mutated; the filled copy is returned
// together with notes describing each derivation, so callers can surface the
// EBITDA approximation instead of presenting it as computed.
func DeriveIncome(ds models.Dataset) (models.Dataset, []string) {
	out := ds.Clone()
	var notes []string

	if !out.Has(models.GrossProfit) && out.Has(models.Revenue) && out.Has(models.CostOfSales) {
		v := out.Value(models.Revenue) - out.Value(models.CostOfSales)
		out.Set(models.GrossProfit, v)
		notes = append(notes, fmt.Sprintf("gross_profit derived as revenue - cost_of_sales = %.2f", v))
	}

	if !out.Has(models.ProfitBeforeTax) {
		v := out.Value(models.GrossProfit) + out.Value(models.OtherIncome) -
			out.Value(models.DistributionCosts) - out.Value(models.AdministrativeExpenses) -
			out.Value(models.OtherExpenses)
		out.Set(models.ProfitBeforeTax, v)
		notes = append(notes, fmt.Sprintf("profit_before_tax derived from gross profit and operating items = %.2f", v))
	}

	if !out.Has(models.NetProfitLoss) && out.Has(models.ProfitBeforeTax) {
		v := out.Value(models.ProfitBeforeTax) - out.Value(models.IncomeTaxExpense)
		out.Set(models.NetProfitLoss, v)
		notes = append(notes, fmt.Sprintf("net_profit_loss derived as profit_before_tax - income_tax_expense = %.2f", v))
	}

	if !out.Has(models.EBITDA) && out.Has(models.ProfitBeforeTax) {
		v := out.Value(models.ProfitBeforeTax)
		out.Set(models.EBITDA, v)
		notes = append(notes, "ebitda approximated as profit_before_tax: no interest, depreciation or amortization breakdown available")
	}

	return out, notes
}

// ApplyDefaults returns a copy with every still-absent category set to zero.
// Runs after derivation and before totals, never before rollforward and
// derivation correctness have been checked against the extracted values.
func ApplyDefaults(ds models.Dataset) models.Dataset {
	out := ds.Clone()
	for _, c := range models.IncomeStatementCategories() {
		if !out.Has(c) {
			out.Set(c, 0)
		}
	}
	for _, c := range models.BalanceSheetCategories() {
		if !out.Has(c) {
			out.Set(c, 0)
		}
	}
	return out
}

// ComputeTotals derives the balance sheet group totals by summation.
// Totals are recomputed from the dataset on every call and never carried
// from a stale copy.
func ComputeTotals(ds models.Dataset) models.Totals {
	sum := func(g models.Group) float64 {
		var s float64
		for _, c := range models.GroupCategories(g) {
			s += ds.Value(c)
		}
		return s
	}

	t := models.Totals{
		CurrentAssets:         sum(models.GroupCurrentAssets),
		NonCurrentAssets:      sum(models.GroupNonCurrentAssets),
		CurrentLiabilities:    sum(models.GroupCurrentLiabilities),
		NonCurrentLiabilities: sum(models.GroupNonCurrentLiabilities),
		Equity:                sum(models.GroupEquity),
	}
	t.Assets = t.CurrentAssets + t.NonCurrentAssets
	t.Liabilities = t.CurrentLiabilities + t.NonCurrentLiabilities
	t.LiabilitiesAndEquity = t.Liabilities + t.Equity
	return t
}
