// Package pipeline runs the end-to-end flow for one engagement: ingest
// shapes in, normalized dataset and validation report out.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"aasb_statements/pkg/core/augment"
	"aasb_statements/pkg/core/calc"
	"aasb_statements/pkg/core/extract"
	"aasb_statements/pkg/core/validate"
	"aasb_statements/pkg/models"
)

// Sources carries one run's inputs: the current-year workbook tables and
// the decoded pages of the prior-year report.
type Sources struct {
	Tables     []extract.Table
	PriorPages []string
}

// Result is everything one run produced. Datasets are defaulted and their
// totals computed; the validation report decides what the caller may do
// with them.
type Result struct {
	RunID   string        `json:"run_id"`
	Elapsed time.Duration `json:"elapsed"`

	EntityName string `json:"entity_name,omitempty"`
	PriorYear  int    `json:"prior_year,omitempty"`

	Current models.Dataset `json:"current"`
	Totals  models.Totals  `json:"totals"`

	Prior      models.Totals  `json:"prior_totals"`
	PriorItems models.Dataset `json:"prior"`
	PriorRE    float64        `json:"prior_retained_earnings"`

	DerivationNotes []string `json:"derivation_notes,omitempty"`

	Directors     []models.Director     `json:"directors,omitempty"`
	Compiler      models.Compiler       `json:"compiler"`
	TaxHeadEntity string                `json:"tax_head_entity,omitempty"`
	Contingent    string                `json:"contingent_liability,omitempty"`
	Notes         []models.Note         `json:"notes,omitempty"`
	Sections      []models.SectionEntry `json:"sections,omitempty"`

	Report       validate.Report `json:"report"`
	Augmentation augment.Outcome `json:"augmentation"`
}

// Config assembles an orchestrator.
type Config struct {
	Extract    extract.Options
	Validation validate.Config
	// Augmenter reviews clean runs; nil disables augmentation.
	Augmenter augment.Augmenter
}

// Orchestrator owns the stage sequence. It keeps no per-run state, so one
// instance serves many runs.
type Orchestrator struct {
	extractor *extract.RowExtractor
	validator *validate.Validator
	augmenter augment.Augmenter
	opts      extract.Options
}

func New(cfg Config) *Orchestrator {
	augmenter := cfg.Augmenter
	if augmenter == nil {
		augmenter = augment.Disabled{}
	}
	return &Orchestrator{
		extractor: extract.NewRowExtractor(cfg.Extract),
		validator: validate.New(cfg.Validation),
		augmenter: augmenter,
		opts:      cfg.Extract,
	}
}

// Run executes extraction, derivation, defaulting, validation, and the
// optional augmentation review. A structural failure (required statement
// missing) returns an error before any dataset exists; validation findings
// never do, they live in Result.Report.
func (o *Orchestrator) Run(ctx context.Context, src Sources) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	log.Printf("[Pipeline] run %s: %d tables, %d prior pages", result.RunID, len(src.Tables), len(src.PriorPages))

	// Stage 1: current year from the workbook.
	income, err := o.extractor.IncomeStatement(src.Tables)
	if err != nil {
		return nil, fmt.Errorf("extracting income statement: %w", err)
	}
	balance, err := o.extractor.BalanceSheet(src.Tables)
	if err != nil {
		return nil, fmt.Errorf("extracting balance sheet: %w", err)
	}

	// Stage 2: prior year and signatory metadata from the report text.
	text := extract.NewTextExtractor(src.PriorPages, o.opts)
	priorIncome, priorBalance := text.LineItems()
	if name, ok := text.EntityName(); ok {
		result.EntityName = name
	}
	if year, ok := text.ReportYear(); ok {
		result.PriorYear = year
	}
	result.Directors = text.Directors()
	if compiler, ok := text.CompilerInfo(); ok {
		result.Compiler = compiler
	}
	if head, ok := text.TaxHeadEntity(); ok {
		result.TaxHeadEntity = head
	}
	if contingent, ok := text.ContingentLiability(); ok {
		result.Contingent = contingent
	}
	result.Notes = text.Notes()
	result.Sections = text.Contents()

	result.PriorRE = priorBalance.Value(models.RetainedEarnings)

	// Stage 3: derive, default, total. Derivation works on the extracted
	// values; defaulting runs after so absence still means absence during
	// the identity fill.
	derived, notes := calc.DeriveIncome(income)
	result.DerivationNotes = notes

	result.Current = calc.ApplyDefaults(merge(derived, balance))
	result.Totals = calc.ComputeTotals(result.Current)

	result.PriorItems = calc.ApplyDefaults(merge(priorIncome, priorBalance))
	result.Prior = calc.ComputeTotals(result.PriorItems)

	// Stage 4: the deterministic battery.
	result.Report = o.validator.Validate(validate.Input{
		Current:                 result.Current,
		Prior:                   result.PriorItems,
		PriorRetainedEarnings:   result.PriorRE,
		Directors:               result.Directors,
		Compiler:                result.Compiler,
		TaxHeadEntity:           result.TaxHeadEntity,
		ContingentLiabilityText: result.Contingent,
		Notes:                   result.Notes,
	})

	// Stage 5: advisory review, never on the fatal path. Findings attach
	// to the result but change nothing the validator decided.
	if result.Report.OK() {
		result.Augmentation = o.augmenter.Augment(ctx, result.Current, result.Totals)
	} else {
		result.Augmentation = augment.Outcome{Skipped: true, Reason: "fatal validation issues present"}
	}

	result.Elapsed = time.Since(start)
	log.Printf("[Pipeline] run %s done in %s: ok=%v fatals=%d queries=%d warnings=%d",
		result.RunID, result.Elapsed, result.Report.OK(),
		len(result.Report.Fatals), len(result.Report.Queries), len(result.Report.Warnings))
	return result, nil
}

// merge combines the income and balance datasets for one period. The two
// statements share no categories, so collisions cannot occur.
func merge(a, b models.Dataset) models.Dataset {
	out := a.Clone()
	for c, v := range b.Items {
		out.Set(c, v)
	}
	return out
}
