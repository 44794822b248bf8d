package validate

import (
	"fmt"
	"math"
	"strings"

	"aasb_statements/pkg/core/calc"
	"aasb_statements/pkg/models"
)

// Input carries everything one validation pass inspects. Current is the
// merged, defaulted current-year dataset; Prior is the dataset recovered
// from the prior-year report.
type Input struct {
	Current models.Dataset
	Prior   models.Dataset

	PriorRetainedEarnings float64

	Directors []models.Director
	Compiler  models.Compiler

	TaxHeadEntity           string
	ContingentLiabilityText string

	Notes []models.Note
}

// Validator runs the fixed reconciliation battery. It holds only
// configuration; every call returns a fresh Report.
type Validator struct {
	cfg Config
}

// New creates a validator with the given expectations.
func New(cfg Config) *Validator {
	return &Validator{cfg: cfg.withDefaults()}
}

// Validate runs the ordered battery of independent checks. Each check
// contributes zero or one issue, and no check short-circuits another, so a
// single pass reports the complete picture. Totals are recomputed from the
// dataset on each call, never carried from a stale copy.
func (v *Validator) Validate(in Input) Report {
	var r Report

	totals := calc.ComputeTotals(in.Current)
	v.checkBalance(&r, totals)
	v.checkRollforward(&r, in)
	v.checkTaxConsolidation(&r, in.TaxHeadEntity)
	v.checkContingentLiability(&r, in.ContingentLiabilityText)
	v.checkDirectorRoster(&r, in.Directors)
	v.checkCompiler(&r, in.Compiler)
	v.checkZeroCash(&r, in.Current)
	v.checkZeroTax(&r, in.Current)

	return r
}

// checkBalance enforces total assets = total liabilities + total equity.
func (v *Validator) checkBalance(r *Report, totals models.Totals) {
	diff := totals.Assets - totals.LiabilitiesAndEquity
	if math.Abs(diff) < DollarTolerance {
		return
	}
	r.add(Issue{
		Severity: SeverityFatal,
		Code:     CodeBalanceMismatch,
		Message: fmt.Sprintf(
			"balance sheet does not balance: total assets $%.0f, total liabilities + equity $%.0f, difference $%.0f",
			totals.Assets, totals.LiabilitiesAndEquity, diff),
		Delta: delta(diff),
	})
}

// checkRollforward enforces ending retained earnings = opening retained
// earnings + net profit/(loss) for the period.
func (v *Validator) checkRollforward(r *Report, in Input) {
	currentRE := in.Current.Value(models.RetainedEarnings)
	netProfit := in.Current.Value(models.NetProfitLoss)
	expectedRE := in.PriorRetainedEarnings + netProfit

	diff := currentRE - expectedRE
	if math.Abs(diff) < DollarTolerance {
		return
	}
	r.add(Issue{
		Severity: SeverityFatal,
		Code:     CodeRollforwardMismatch,
		Message: fmt.Sprintf(
			"retained earnings rollforward mismatch: prior RE $%.0f, net profit/(loss) $%.0f, expected RE $%.0f, actual RE $%.0f, difference $%.0f",
			in.PriorRetainedEarnings, netProfit, expectedRE, currentRE, diff),
		Delta: delta(diff),
	})
}

// checkTaxConsolidation always queries when a head entity was supplied:
// there is no reliable automated comparison for this free-text disclosure.
func (v *Validator) checkTaxConsolidation(r *Report, headEntity string) {
	if headEntity == "" {
		return
	}
	r.add(Issue{
		Severity: SeverityQuery,
		Code:     CodeTaxConsolidation,
		Message: fmt.Sprintf(
			"tax consolidation disclosure names head entity %q, confirm it matches the prior year disclosure", headEntity),
	})
}

// checkContingentLiability queries whenever the prior year carried a
// contingent liability disclosure, quoting the opening of the prior text.
func (v *Validator) checkContingentLiability(r *Report, priorText string) {
	if priorText == "" {
		return
	}
	excerpt := priorText
	if runes := []rune(excerpt); len(runes) > 200 {
		excerpt = string(runes[:200]) + "..."
	}
	r.add(Issue{
		Severity: SeverityQuery,
		Code:     CodeContingentLiability,
		Message: fmt.Sprintf(
			"prior year had a contingent liability disclosure, confirm the current filing retains equivalent wording: %s", excerpt),
	})
}

// checkDirectorRoster compares supplied signatories against the expected
// roster and requires confirmation before the declaration sign date is
// updated.
func (v *Validator) checkDirectorRoster(r *Report, directors []models.Director) {
	supplied := make(map[string]bool, len(directors))
	names := make([]string, 0, len(directors))
	for _, d := range directors {
		supplied[d.Name] = true
		names = append(names, d.Name)
	}

	var missing, extra []string
	expected := make(map[string]bool, len(v.cfg.ExpectedDirectors))
	for _, name := range v.cfg.ExpectedDirectors {
		expected[name] = true
		if !supplied[name] {
			missing = append(missing, name)
		}
	}
	for _, name := range names {
		if !expected[name] {
			extra = append(extra, name)
		}
	}

	if len(missing) == 0 && len(extra) == 0 {
		return
	}
	r.add(Issue{
		Severity: SeverityQuery,
		Code:     CodeDirectorRoster,
		Message: fmt.Sprintf(
			"director roster differs from expected declaration: expected [%s], found [%s], missing [%s], extra [%s], confirm before updating sign date",
			strings.Join(v.cfg.ExpectedDirectors, ", "), strings.Join(names, ", "),
			strings.Join(missing, ", "), strings.Join(extra, ", ")),
	})
}

// checkCompiler re-verifies credentials when the expected compiler name is
// not part of the supplied signatory name.
func (v *Validator) checkCompiler(r *Report, compiler models.Compiler) {
	if strings.Contains(compiler.Name, v.cfg.ExpectedCompiler) {
		return
	}
	r.add(Issue{
		Severity: SeverityQuery,
		Code:     CodeCompilerCredentials,
		Message: fmt.Sprintf(
			"compilation signatory %q (title %q) does not match expected %q, verify credentials",
			compiler.Name, compiler.Title, v.cfg.ExpectedCompiler),
	})
}

func (v *Validator) checkZeroCash(r *Report, ds models.Dataset) {
	if ds.Value(models.Cash) != 0 {
		return
	}
	r.add(Issue{
		Severity: SeverityWarning,
		Code:     CodeZeroCash,
		Message:  "cash balance is $0, confirm closure of legacy accounts",
	})
}

func (v *Validator) checkZeroTax(r *Report, ds models.Dataset) {
	if ds.Value(models.IncomeTaxExpense) != 0 {
		return
	}
	r.add(Issue{
		Severity: SeverityWarning,
		Code:     CodeZeroTax,
		Message:  "no income tax expense recognised, ensure the tax note explains the absence of recognition",
	})
}
