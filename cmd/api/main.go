package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"customer_ops_assessment/pkg/api/assessment"
	"customer_ops_assessment/pkg/core/agent"
	"customer_ops_assessment/pkg/core/assess"
	"customer_ops_assessment/pkg/core/config"
	"customer_ops_assessment/pkg/core/refdata"
)

const (
	registryPath  = "config/companies.yaml"
	modelsPath    = "config/models.yaml"
	routingPath   = "config/routing.yaml"
	promptsDir    = "config/prompts"
	referenceRoot = "reference/customer_ops"
)

func main() {
	// Load environment variables
	godotenv.Load()

	registry, err := config.Load(registryPath)
	if err != nil {
		log.Fatalf("Failed to load company registry: %v", err)
	}
	store := refdata.NewStore(referenceRoot)
	assessment.InitHandler(registry, store, assess.DefaultPolicy())

	// The advisory workflow is optional: without model config the
	// assessment endpoints still serve.
	if workflows, err := buildWorkflows(registry); err != nil {
		fmt.Printf("[WARNING] Advisory workflow disabled: %v\n", err)
	} else {
		assessment.InitAdvise(workflows)
		http.HandleFunc("/api/advise", assessment.HandleAdvise)
	}

	http.HandleFunc("/api/health", assessment.HandleHealth)
	http.HandleFunc("/api/assessment", assessment.HandleAssessment)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Customer ops assessment API listening on :%s\n", port)
	fmt.Printf("  companies: %v\n", registry.IDs())
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func buildWorkflows(registry *config.Registry) (map[string]*agent.Workflow, error) {
	configData, err := os.ReadFile(modelsPath)
	if err != nil {
		return nil, err
	}
	var agentCfg agent.Config
	if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
		return nil, err
	}
	mgr := agent.NewManager(agentCfg)

	routes, err := agent.LoadRoutes(routingPath)
	if err != nil {
		return nil, err
	}
	router := agent.NewRouter(routes, mgr)

	workflows := make(map[string]*agent.Workflow)
	for _, id := range registry.IDs() {
		workflow, err := agent.NewWorkflow(mgr, router, promptsDir, filepath.Join(referenceRoot, id))
		if err != nil {
			return nil, err
		}
		workflows[id] = workflow
	}
	return workflows, nil
}
