package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"customer_ops_assessment/pkg/core/utils"
)

// Workflow answers free-form optimization objectives: it routes the
// objective to an agent, grounds the prompt with the company's
// reference tables and returns a cleaned markdown narrative.
type Workflow struct {
	mgr          *Manager
	router       *Router
	prompts      map[string]string
	referenceDir string
}

// NewWorkflow loads one system prompt per route from promptsDir
// (<name>.system.txt). A route without a prompt file is a
// configuration error.
func NewWorkflow(mgr *Manager, router *Router, promptsDir string, referenceDir string) (*Workflow, error) {
	prompts := make(map[string]string, len(router.routes))
	for _, route := range router.routes {
		path := filepath.Join(promptsDir, route.Name+".system.txt")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load system prompt for agent %s: %w", route.Name, err)
		}
		prompts[route.Name] = strings.TrimSpace(string(data))
	}
	return &Workflow{
		mgr:          mgr,
		router:       router,
		prompts:      prompts,
		referenceDir: referenceDir,
	}, nil
}

// Run executes one objective. agentName forces a route when non-empty;
// otherwise the router decides.
func (w *Workflow) Run(ctx context.Context, objective string, agentName string) (string, error) {
	runID := uuid.NewString()

	if agentName == "" {
		agentName = w.router.Choose(ctx, objective)
	}
	systemPrompt, ok := w.prompts[agentName]
	if !ok {
		return "", fmt.Errorf("no system prompt for agent %q", agentName)
	}
	fmt.Printf("[WORKFLOW %s] agent=%s\n", runID, agentName)

	prompt := objective
	if refContext := FormatReferenceContext(w.referenceDir); refContext != "" {
		prompt = objective + "\n\n" + refContext +
			"\nUse the provided benchmarks and lever definitions to ground recommendations."
	}

	reply, err := w.mgr.ExecutePrompt(ctx, agentName, prompt, systemPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("agent %s failed: %w", agentName, err)
	}

	return utils.CleanMarkdown(reply), nil
}

// FormatReferenceContext renders every reference document in dir as a
// labelled, pretty-printed block. Unreadable files are skipped.
func FormatReferenceContext(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".json" || ext == ".hjson" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	parts := []string{"=== CUSTOMER OPS REFERENCE (Benchmarks & Levers) ===\n"}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Printf("[WORKFLOW] failed to read reference %s: %v\n", name, err)
			continue
		}
		var doc interface{}
		if err := utils.DecodeLenientJSON(string(data), &doc); err != nil {
			fmt.Printf("[WORKFLOW] failed to parse reference %s: %v\n", name, err)
			continue
		}
		pretty, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			continue
		}
		label := strings.TrimSuffix(name, filepath.Ext(name))
		parts = append(parts, fmt.Sprintf("\n--- %s ---\n", label), string(pretty), "\n")
	}

	if len(parts) == 1 {
		return ""
	}
	return strings.Join(parts, "\n")
}
