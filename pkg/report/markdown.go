// Package report renders a run result as Markdown for review before the
// external typesetting step.
package report

import (
	"fmt"
	"sort"
	"strings"

	"aasb_statements/pkg/core/pipeline"
	"aasb_statements/pkg/core/utils"
	"aasb_statements/pkg/core/validate"
	"aasb_statements/pkg/models"
)

// Render produces the review document for one run: statements, totals,
// derivation notes, and the full validation report.
func Render(result *pipeline.Result) string {
	var b strings.Builder

	title := result.EntityName
	if title == "" {
		title = "Financial Statements"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Run `%s`\n\n", result.RunID)

	b.WriteString("## Statement of Profit or Loss\n\n")
	writeItems(&b, result.Current, models.IncomeStatementCategories())

	b.WriteString("\n## Statement of Financial Position\n\n")
	writeItems(&b, result.Current, models.BalanceSheetCategories())

	b.WriteString("\n| Total | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total current assets | %s |\n", money(result.Totals.CurrentAssets))
	fmt.Fprintf(&b, "| Total assets | %s |\n", money(result.Totals.Assets))
	fmt.Fprintf(&b, "| Total liabilities | %s |\n", money(result.Totals.Liabilities))
	fmt.Fprintf(&b, "| Total equity | %s |\n", money(result.Totals.Equity))
	fmt.Fprintf(&b, "| Total liabilities and equity | %s |\n", money(result.Totals.LiabilitiesAndEquity))

	if len(result.DerivationNotes) > 0 {
		b.WriteString("\n## Derivation Notes\n\n")
		for _, note := range result.DerivationNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	b.WriteString("\n## Validation\n\n")
	if result.Report.OK() {
		b.WriteString("No fatal issues.\n")
	} else {
		b.WriteString("**Generation halted: fatal issues present.**\n")
	}
	writeIssues(&b, "Fatal", result.Report.Fatals)
	writeIssues(&b, "Queries", result.Report.Queries)
	writeIssues(&b, "Warnings", result.Report.Warnings)

	if result.Augmentation.Applied && result.Augmentation.Findings != nil {
		f := result.Augmentation.Findings
		fmt.Fprintf(&b, "\n## Model Review (%s)\n\n", result.Augmentation.Model)
		fmt.Fprintf(&b, "Consistent: %v (confidence %.2f)\n\n", f.Consistent, f.Confidence)
		for _, issue := range f.Issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		if f.Analysis != "" {
			fmt.Fprintf(&b, "\n%s\n", f.Analysis)
		}
		if len(f.SuggestedValues) > 0 {
			b.WriteString("\nSuggested values (advisory only, not applied):\n\n| Category | Amount |\n|---|---:|\n")
			cats := make([]string, 0, len(f.SuggestedValues))
			for c := range f.SuggestedValues {
				cats = append(cats, string(c))
			}
			sort.Strings(cats)
			for _, c := range cats {
				fmt.Fprintf(&b, "| %s | %s |\n", c, money(f.SuggestedValues[models.Category(c)]))
			}
		}
	} else if result.Augmentation.Skipped && result.Augmentation.Reason != "" {
		fmt.Fprintf(&b, "\nModel review skipped: %s\n", result.Augmentation.Reason)
	}

	return b.String()
}

// RenderValidated renders and confirms the output parses as Markdown.
func RenderValidated(result *pipeline.Result) (string, error) {
	md := utils.CleanMarkdown(Render(result))
	if !utils.ValidateMarkdown(md) {
		return "", fmt.Errorf("rendered report is not valid markdown")
	}
	return md, nil
}

func writeItems(b *strings.Builder, ds models.Dataset, cats []models.Category) {
	b.WriteString("| Line item | Amount |\n|---|---:|\n")
	for _, c := range cats {
		fmt.Fprintf(b, "| %s | %s |\n", c, money(ds.Value(c)))
	}
}

func writeIssues(b *strings.Builder, heading string, issues []validate.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", heading)
	for _, i := range issues {
		fmt.Fprintf(b, "- `%s` %s\n", i.Code, i.Message)
	}
}

func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	// insert thousands separators
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "($" + string(out) + ")"
	}
	return "$" + string(out)
}
