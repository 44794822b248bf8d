// Package validate runs the reconciliation battery over a merged
// current/prior dataset and classifies every finding by severity.
package validate

// DollarTolerance is the absolute monetary tolerance for every equality
// check, absorbing floating point and rounding noise from source documents.
const DollarTolerance = 1.0

// Severity ranks a validation finding.
type Severity string

const (
	// SeverityFatal halts generation entirely.
	SeverityFatal Severity = "FATAL"
	// SeverityQuery requires explicit human sign-off before proceeding.
	SeverityQuery Severity = "QUERY"
	// SeverityWarning is informational only.
	SeverityWarning Severity = "WARNING"
)

// Issue codes, stable for automated consumers. Messages carry the
// human-readable detail.
const (
	CodeBalanceMismatch     = "BALANCE_MISMATCH"
	CodeRollforwardMismatch = "ROLLFORWARD_MISMATCH"
	CodeTaxConsolidation    = "TAX_CONSOLIDATION_CONFIRM"
	CodeContingentLiability = "CONTINGENT_LIABILITY_CONFIRM"
	CodeDirectorRoster      = "DIRECTOR_ROSTER_MISMATCH"
	CodeCompilerCredentials = "COMPILER_CREDENTIALS_CONFIRM"
	CodeZeroCash            = "ZERO_CASH"
	CodeZeroTax             = "ZERO_TAX"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Delta    *float64 `json:"delta,omitempty"`
}

// Report is the immutable result of one validate call. No state is shared
// across runs, so validators are safe to reuse and to exercise in parallel
// tests.
type Report struct {
	Fatals   []Issue `json:"fatals"`
	Queries  []Issue `json:"queries"`
	Warnings []Issue `json:"warnings"`
}

// OK reports whether generation may proceed: true iff there are no Fatal
// issues. Queries still need human sign-off before rendering.
func (r Report) OK() bool {
	return len(r.Fatals) == 0
}

// All returns every issue in severity order.
func (r Report) All() []Issue {
	out := make([]Issue, 0, len(r.Fatals)+len(r.Queries)+len(r.Warnings))
	out = append(out, r.Fatals...)
	out = append(out, r.Queries...)
	out = append(out, r.Warnings...)
	return out
}

func (r *Report) add(i Issue) {
	switch i.Severity {
	case SeverityFatal:
		r.Fatals = append(r.Fatals, i)
	case SeverityQuery:
		r.Queries = append(r.Queries, i)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, i)
	}
}

func delta(v float64) *float64 {
	return &v
}
