package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"aasb_statements/pkg/core/extract"
	"aasb_statements/pkg/core/pipeline"
	"aasb_statements/pkg/core/validate"
	"aasb_statements/pkg/ingest"
)

// Job names one engagement's inputs.
type Job struct {
	Name     string `yaml:"name"`
	Workbook string `yaml:"workbook"`
	Report   string `yaml:"report"`
}

type JobList struct {
	Validation string `yaml:"validation"`
	Jobs       []Job  `yaml:"jobs"`
}

// JobResult is one line of the batch summary.
type JobResult struct {
	Name     string `json:"name"`
	RunID    string `json:"run_id,omitempty"`
	OK       bool   `json:"ok"`
	Fatals   int    `json:"fatals"`
	Queries  int    `json:"queries"`
	Warnings int    `json:"warnings"`
	Error    string `json:"error,omitempty"`
}

func main() {
	// Load environment
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found, using environment variables")
	}

	jobsPath := "config/batch_jobs.yaml"
	if len(os.Args) > 1 {
		jobsPath = os.Args[1]
	}

	data, err := os.ReadFile(jobsPath)
	if err != nil {
		log.Fatalf("Error: reading job list: %v", err)
	}
	var list JobList
	if err := yaml.Unmarshal(data, &list); err != nil {
		log.Fatalf("Error: parsing job list: %v", err)
	}
	if len(list.Jobs) == 0 {
		log.Fatal("Error: job list is empty")
	}

	var validationCfg validate.Config
	if list.Validation != "" {
		validationCfg, err = validate.LoadConfig(list.Validation)
		if err != nil {
			fmt.Printf("[WARNING] Failed to load validation config: %v\n", err)
		}
	}

	orch := pipeline.New(pipeline.Config{
		Extract:    extract.Options{CurrentProvisionRowLimit: validationCfg.CurrentProvisionRowLimit},
		Validation: validationCfg,
	})
	ctx := context.Background()

	results := make([]JobResult, 0, len(list.Jobs))
	failed := 0
	for _, job := range list.Jobs {
		fmt.Printf("\n=== %s ===\n", job.Name)
		jr := runJob(ctx, orch, job)
		if jr.Error != "" || !jr.OK {
			failed++
		}
		results = append(results, jr)
	}

	fmt.Printf("\n=== Batch summary: %d jobs, %d flagged ===\n", len(results), failed)
	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	out.Encode(results)

	if failed > 0 {
		os.Exit(1)
	}
}

func runJob(ctx context.Context, orch *pipeline.Orchestrator, job Job) JobResult {
	jr := JobResult{Name: job.Name}

	tables, err := ingest.ReadWorkbook(job.Workbook)
	if err != nil {
		jr.Error = err.Error()
		return jr
	}
	pages, err := ingest.LoadPages(job.Report)
	if err != nil {
		jr.Error = err.Error()
		return jr
	}

	result, err := orch.Run(ctx, pipeline.Sources{Tables: tables, PriorPages: pages})
	if err != nil {
		jr.Error = err.Error()
		return jr
	}

	jr.RunID = result.RunID
	jr.OK = result.Report.OK()
	jr.Fatals = len(result.Report.Fatals)
	jr.Queries = len(result.Report.Queries)
	jr.Warnings = len(result.Report.Warnings)
	fmt.Printf("  ok=%v fatals=%d queries=%d warnings=%d\n", jr.OK, jr.Fatals, jr.Queries, jr.Warnings)
	return jr
}
