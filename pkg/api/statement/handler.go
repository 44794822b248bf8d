package statement

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"aasb_statements/pkg/core/agent"
	"aasb_statements/pkg/core/augment"
	"aasb_statements/pkg/core/extract"
	"aasb_statements/pkg/core/pipeline"
	"aasb_statements/pkg/core/validate"
	"aasb_statements/pkg/ingest"
	"aasb_statements/pkg/report"
)

var agentManager *agent.Manager
var orchestrator *pipeline.Orchestrator

// maxUploadBytes caps one multipart request. Special purpose workbooks
// are small; anything larger is a mistake.
const maxUploadBytes = 32 << 20

// InitHandler wires the shared orchestrator. The augmenter follows the
// manager's review task provider; a nil manager disables review.
func InitHandler(mgr *agent.Manager, validationCfg validate.Config) {
	agentManager = mgr

	var augmenter augment.Augmenter = augment.Disabled{}
	if mgr != nil {
		reviewer := augment.NewLLMAugmenter(mgr.GetProvider("review"))
		if chain := mgr.TaskModels("review", "review_fallback"); len(chain) > 0 {
			reviewer.Models = chain
		}
		augmenter = reviewer
	}
	orchestrator = pipeline.New(pipeline.Config{
		Extract:    extract.Options{CurrentProvisionRowLimit: validationCfg.CurrentProvisionRowLimit},
		Validation: validationCfg,
		Augmenter:  augmenter,
	})
}

type generateResponse struct {
	Result   *pipeline.Result `json:"result"`
	Markdown string           `json:"markdown,omitempty"`
}

// jsonTable mirrors extract.Table for clients that already decoded their
// workbook, such as the UI collaborator.
type jsonTable struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

type generateRequest struct {
	Tables []jsonTable `json:"tables"`
	Pages  []string    `json:"pages"`
	Render string      `json:"render,omitempty"`
}

// HandleGenerate accepts either a multipart form with the current-year
// workbook under "workbook" (xlsx, or an HTML export when "format" is
// "html") and the prior-year report text under "report" (form-feed
// separated pages), or a JSON body with pre-decoded tables and pages.
// Validation findings ride inside the result; only a missing statement is
// an error status.
func HandleGenerate(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var tables []extract.Table
	var pages []string
	render := ""

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		for _, t := range req.Tables {
			table := extract.Table{Name: t.Name}
			for _, cells := range t.Rows {
				table.Rows = append(table.Rows, extract.Row{Cells: cells})
			}
			tables = append(tables, table)
		}
		pages = req.Pages
		render = req.Render
	} else {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, fmt.Sprintf("Invalid multipart form: %v", err), http.StatusBadRequest)
			return
		}
		var err error
		if tables, err = readTables(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if pages, err = readPages(r); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		render = r.FormValue("render")
	}

	fmt.Printf("[STATEMENT] Generate: %d tables, %d prior pages\n", len(tables), len(pages))

	result, err := orchestrator.Run(r.Context(), pipeline.Sources{Tables: tables, PriorPages: pages})
	if err != nil {
		var missing *extract.StatementMissingError
		if errors.As(err, &missing) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := generateResponse{Result: result}
	if render == "markdown" {
		md, err := report.RenderValidated(result)
		if err != nil {
			http.Error(w, fmt.Sprintf("Rendering report: %v", err), http.StatusInternalServerError)
			return
		}
		resp.Markdown = md
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleValidationConfig reports the roster the validator checks against.
func HandleValidationConfig(cfg validate.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

func readTables(r *http.Request) ([]extract.Table, error) {
	file, _, err := r.FormFile("workbook")
	if err != nil {
		return nil, fmt.Errorf("missing workbook upload: %w", err)
	}
	defer file.Close()

	if r.FormValue("format") == "html" {
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("reading workbook upload: %w", err)
		}
		return ingest.ParseHTMLTables(string(data))
	}
	return ingest.ReadWorkbookFrom(file)
}

func readPages(r *http.Request) ([]string, error) {
	file, _, err := r.FormFile("report")
	if err != nil {
		return nil, fmt.Errorf("missing report upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading report upload: %w", err)
	}
	return ingest.SplitPages(string(data)), nil
}
