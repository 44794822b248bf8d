package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"aasb_statements/pkg/core/agent"
	"aasb_statements/pkg/core/augment"
	"aasb_statements/pkg/core/extract"
	"aasb_statements/pkg/core/pipeline"
	"aasb_statements/pkg/core/validate"
	"aasb_statements/pkg/ingest"
	"aasb_statements/pkg/report"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	workbookPath := flag.String("workbook", "", "current-year xlsx workbook")
	reportPath := flag.String("report", "", "prior-year report text (form-feed pages)")
	reportDir := flag.String("report-dir", "", "directory of per-page .txt files (alternative to -report)")
	validationPath := flag.String("validation", "config/validation.hjson", "validation config (HJSON)")
	modelsPath := flag.String("models", "config/models.yaml", "model routing config")
	outPath := flag.String("out", "", "write the markdown report here instead of stdout")
	review := flag.Bool("review", false, "run the model review on clean results")
	flag.Parse()

	if *workbookPath == "" {
		log.Fatal("Error: -workbook is required")
	}
	if *reportPath == "" && *reportDir == "" {
		log.Fatal("Error: one of -report or -report-dir is required")
	}

	tables, err := ingest.ReadWorkbook(*workbookPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	var pages []string
	if *reportDir != "" {
		pages, err = ingest.LoadPagesDir(*reportDir)
	} else {
		pages, err = ingest.LoadPages(*reportPath)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	validationCfg, err := validate.LoadConfig(*validationPath)
	if err != nil {
		fmt.Printf("[WARNING] Failed to load validation config: %v\n", err)
		fmt.Println("  Falling back to default roster")
	}

	var augmenter augment.Augmenter = augment.Disabled{}
	if *review {
		modelCfg, err := agent.LoadConfig(*modelsPath)
		if err != nil {
			fmt.Printf("[WARNING] Failed to load model config: %v\n", err)
		}
		mgr := agent.NewManager(modelCfg)
		reviewer := augment.NewLLMAugmenter(mgr.GetProvider("review"))
		if chain := mgr.TaskModels("review", "review_fallback"); len(chain) > 0 {
			reviewer.Models = chain
		}
		augmenter = reviewer
	}

	orch := pipeline.New(pipeline.Config{
		Extract:    extract.Options{CurrentProvisionRowLimit: validationCfg.CurrentProvisionRowLimit},
		Validation: validationCfg,
		Augmenter:  augmenter,
	})

	result, err := orch.Run(context.Background(), pipeline.Sources{Tables: tables, PriorPages: pages})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	md, err := report.RenderValidated(result)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(md), 0644); err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("Report written to %s\n", *outPath)
	} else {
		fmt.Println(md)
	}

	if !result.Report.OK() {
		os.Exit(1)
	}
}
