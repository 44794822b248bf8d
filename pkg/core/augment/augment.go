// Package augment is the optional AI layer consulted after the
// deterministic checks. It is advisory only: findings never overwrite
// extracted values and never contribute to Fatal issues, and every failure
// degrades to "augmentation skipped".
package augment

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"aasb_statements/pkg/core/llm"
	"aasb_statements/pkg/core/utils"
	"aasb_statements/pkg/models"
)

// Findings is the structured verdict returned by the model review.
type Findings struct {
	Consistent bool     `json:"consistent"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
	Analysis   string   `json:"analysis"`
	// SuggestedValues proposes amounts for categories the extraction left
	// at zero. They are reported for the reviewer and never merged into
	// the validated dataset.
	SuggestedValues map[models.Category]float64 `json:"suggested_values,omitempty"`
}

// Outcome reports what the augmentation pass did. Skipped outcomes carry
// the reason so runs can record why no review is attached.
type Outcome struct {
	Applied  bool      `json:"applied"`
	Skipped  bool      `json:"skipped"`
	Reason   string    `json:"reason,omitempty"`
	Model    string    `json:"model,omitempty"`
	Findings *Findings `json:"findings,omitempty"`
}

// Augmenter reviews a defaulted dataset. Implementations must not return
// errors; trouble is reported through a skipped Outcome.
type Augmenter interface {
	Augment(ctx context.Context, ds models.Dataset, totals models.Totals) Outcome
}

// Disabled is the no-op augmenter used when no API key is configured.
type Disabled struct{}

func (Disabled) Augment(context.Context, models.Dataset, models.Totals) Outcome {
	return Outcome{Skipped: true, Reason: "augmentation disabled"}
}

// DefaultTimeout bounds one model call.
const DefaultTimeout = 30 * time.Second

// LLMAugmenter reviews the dataset with a model, walking a fallback chain
// until one model returns a parseable verdict.
type LLMAugmenter struct {
	Provider llm.Provider
	// Models is the fallback chain, tried in order.
	Models []string
	// Timeout bounds each model call, DefaultTimeout when zero.
	Timeout time.Duration
}

// NewLLMAugmenter builds an augmenter over the given provider with the
// standard fallback chain.
func NewLLMAugmenter(provider llm.Provider) *LLMAugmenter {
	return &LLMAugmenter{
		Provider: provider,
		Models:   []string{llm.ModelGrokFast, llm.ModelGPTMini, llm.ModelGeminiFlash, llm.ModelGPTNano},
	}
}

const systemPrompt = `You are a financial statement reviewer. You are given the line items and totals of a special purpose financial statement. Review the internal relationships and respond with JSON only: {"consistent": bool, "confidence": 0-1, "issues": [string], "analysis": string, "suggested_values": {category: number}}. Suggest values only for the categories listed as absent or zero, and only when the other line items imply them.`

// Augment asks each model in the chain to review the dataset. The first
// parseable verdict wins. On timeout, transport error, or malformed output
// from every model, the outcome is skipped, never an error.
func (a *LLMAugmenter) Augment(ctx context.Context, ds models.Dataset, totals models.Totals) Outcome {
	if a.Provider == nil {
		return Outcome{Skipped: true, Reason: "no provider configured"}
	}

	prompt := buildPrompt(ds, totals)
	instructions := a.Provider.AdaptInstructions(systemPrompt)
	timeout := a.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	var lastErr error
	for _, model := range a.Models {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		raw, err := a.Provider.GenerateResponse(callCtx, prompt, instructions, map[string]interface{}{
			"model": model,
		})
		cancel()
		if err != nil {
			log.Printf("[Augment] model %s failed: %v", model, err)
			lastErr = err
			continue
		}

		var findings Findings
		if _, err := utils.SmartParse(utils.CleanMarkdown(raw), &findings); err != nil {
			log.Printf("[Augment] model %s returned unparseable output: %v", model, err)
			lastErr = err
			continue
		}

		return Outcome{Applied: true, Model: model, Findings: &findings}
	}

	reason := "all models failed"
	if lastErr != nil {
		reason = fmt.Sprintf("all models failed, last error: %v", lastErr)
	}
	return Outcome{Skipped: true, Reason: reason}
}

func buildPrompt(ds models.Dataset, totals models.Totals) string {
	var b strings.Builder
	b.WriteString("Line items:\n")

	cats := make([]string, 0, ds.Len())
	for c := range ds.Items {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Fprintf(&b, "  %s: %.2f\n", c, ds.Items[models.Category(c)])
	}

	fmt.Fprintf(&b, "Totals:\n  total_current_assets: %.2f\n  total_assets: %.2f\n  total_liabilities: %.2f\n  total_equity: %.2f\n  total_liabilities_and_equity: %.2f\n",
		totals.CurrentAssets, totals.Assets, totals.Liabilities, totals.Equity, totals.LiabilitiesAndEquity)

	var zero []string
	for _, c := range models.IncomeStatementCategories() {
		if ds.Value(c) == 0 {
			zero = append(zero, string(c))
		}
	}
	for _, c := range models.BalanceSheetCategories() {
		if ds.Value(c) == 0 {
			zero = append(zero, string(c))
		}
	}
	if len(zero) > 0 {
		b.WriteString("Absent or zero categories:\n")
		for _, c := range zero {
			fmt.Fprintf(&b, "  %s\n", c)
		}
	}
	return b.String()
}
