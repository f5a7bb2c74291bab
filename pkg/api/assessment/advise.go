package assessment

import (
	"encoding/json"
	"log"
	"net/http"

	"customer_ops_assessment/pkg/core/agent"
)

var workflows map[string]*agent.Workflow

// InitAdvise registers one routing workflow per configured company.
func InitAdvise(w map[string]*agent.Workflow) {
	workflows = w
}

type AdviseRequest struct {
	Objective string `json:"objective"`
	Agent     string `json:"agent"`
	Company   string `json:"company"`
}

type AdviseResponse struct {
	Company   string `json:"company"`
	Narrative string `json:"narrative"`
}

// HandleAdvise runs the LLM routing workflow for a free-form objective
// grounded on the company's reference tables.
func HandleAdvise(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AdviseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Objective == "" {
		http.Error(w, "objective is required", http.StatusBadRequest)
		return
	}
	company := req.Company
	if company == "" {
		company = DefaultCompany
	}
	workflow, ok := workflows[company]
	if !ok {
		http.Error(w, "unknown company "+company, http.StatusBadRequest)
		return
	}

	narrative, err := workflow.Run(r.Context(), req.Objective, req.Agent)
	if err != nil {
		log.Printf("[ADVISE] workflow failed for %s: %v", company, err)
		http.Error(w, "Advisory run failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AdviseResponse{Company: company, Narrative: narrative})
}
