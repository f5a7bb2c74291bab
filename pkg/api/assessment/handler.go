// Package assessment exposes the customer-ops assessment over HTTP.
package assessment

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"customer_ops_assessment/pkg/core/assess"
	"customer_ops_assessment/pkg/core/config"
	"customer_ops_assessment/pkg/core/refdata"
)

// DefaultCompany is assessed when the request names none.
const DefaultCompany = "athenahealth"

var (
	registry *config.Registry
	store    *refdata.Store
	policy   assess.Policy
)

func InitHandler(reg *config.Registry, st *refdata.Store, pol assess.Policy) {
	registry = reg
	store = st
	policy = pol
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// HandleAssessment runs the full assessment for ?company= (default
// athenahealth) and returns the structured JSON. No LLM required.
func HandleAssessment(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	company := r.URL.Query().Get("company")
	if company == "" {
		company = DefaultCompany
	}

	cfg, err := registry.Company(company)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := assess.Run(cfg, store, policy)
	if err != nil {
		var cfgErr *refdata.ConfigError
		if errors.As(err, &cfgErr) {
			log.Printf("[ASSESSMENT] configuration error for %s: %v", company, err)
		} else {
			log.Printf("[ASSESSMENT] failed for %s: %v", company, err)
		}
		http.Error(w, fmt.Sprintf("Assessment failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("[ASSESSMENT] encode failed: %v", err)
	}
}
