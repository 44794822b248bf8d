package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"aasb_statements/pkg/api/config"
	"aasb_statements/pkg/api/statement"
	"aasb_statements/pkg/core/agent"
	"aasb_statements/pkg/core/validate"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize manager from config
	agentCfg, err := agent.LoadConfig("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load model config: %v\n", err)
		fmt.Println("  Falling back to defaults")
	}
	agentMgr := agent.NewManager(agentCfg)

	validationCfg, err := validate.LoadConfig("config/validation.hjson")
	if err != nil {
		fmt.Printf("[WARNING] Failed to load validation config: %v\n", err)
		fmt.Println("  Falling back to default roster")
	}

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Statement endpoints
	statement.InitHandler(agentMgr, validationCfg)
	http.HandleFunc("/api/statement/generate", statement.HandleGenerate)
	http.HandleFunc("/api/statement/validation-config", statement.HandleValidationConfig(validationCfg))

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/statement/generate")
	fmt.Println("  - GET  /api/statement/validation-config")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
