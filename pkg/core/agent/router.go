package agent

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"customer_ops_assessment/pkg/core/utils"
)

// Route binds an agent name to the keywords and description used for
// objective routing. The last route in the config is the catch-all.
type Route struct {
	Name        string   `yaml:"name"`
	Keywords    []string `yaml:"keywords"`
	Description string   `yaml:"description"`
}

type routingFile struct {
	Routing struct {
		Agents []Route `yaml:"agents"`
	} `yaml:"routing"`
}

// LoadRoutes reads the routing table from a YAML file.
func LoadRoutes(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routing config: %w", err)
	}
	var file routingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse routing config: %w", err)
	}
	if len(file.Routing.Agents) == 0 {
		return nil, fmt.Errorf("routing config %s defines no agents", path)
	}
	return file.Routing.Agents, nil
}

// Router picks the agent for an objective: keyword pass first, then a
// single low-temperature model call, catch-all on any failure.
type Router struct {
	routes []Route
	mgr    *Manager
}

func NewRouter(routes []Route, mgr *Manager) *Router {
	return &Router{routes: routes, mgr: mgr}
}

// routeDecision is the JSON schema the routing model is asked to emit.
type routeDecision struct {
	Agent string `json:"agent"`
}

func (r *Router) Choose(ctx context.Context, objective string) string {
	objectiveLower := strings.ToLower(objective)

	// First pass: keyword matches. Routes with no keywords (the
	// catch-all) never match here.
	for _, route := range r.routes {
		for _, keyword := range route.Keywords {
			if keyword != "" && strings.Contains(objectiveLower, strings.ToLower(keyword)) {
				return route.Name
			}
		}
	}

	// Second pass: ask the routing model.
	name, err := r.chooseByModel(ctx, objective)
	if err != nil {
		fmt.Printf("[ROUTER] model routing failed, using catch-all: %v\n", err)
		return r.catchAll()
	}
	return name
}

func (r *Router) chooseByModel(ctx context.Context, objective string) (string, error) {
	var descriptions []string
	var names []string
	for i, route := range r.routes {
		keywords := "(default fallback)"
		if len(route.Keywords) > 0 {
			keywords = strings.Join(route.Keywords, ", ")
		}
		descriptions = append(descriptions, fmt.Sprintf("%d. **%s**: %s\n   Keywords: %s", i+1, route.Name, route.Description, keywords))
		names = append(names, fmt.Sprintf("%q", route.Name))
	}

	systemPrompt := fmt.Sprintf(`You are an intelligent routing agent.

Available agents:
%s

Your task: Analyze the objective and respond with ONLY a JSON object of the form {"agent": <name>} where <name> is one of %s.

Be specific: match the objective to the agent whose description and keywords best fit the task.
If no specialized agent matches, choose the catch-all/default agent.`,
		strings.Join(descriptions, "\n"), strings.Join(names, " or "))

	reply, err := r.mgr.ExecutePrompt(ctx, "router", "Objective: "+objective, systemPrompt, map[string]interface{}{
		"temperature":     0.1,
		"response_format": "json",
	})
	if err != nil {
		return "", err
	}

	// Model replies occasionally arrive truncated or fenced; repair
	// before decoding.
	var decision routeDecision
	if err := utils.DecodeModelJSON(reply, &decision); err != nil {
		return "", fmt.Errorf("unparseable routing reply: %w", err)
	}

	decided := strings.ToLower(strings.TrimSpace(decision.Agent))
	for _, route := range r.routes {
		if strings.ToLower(route.Name) == decided {
			return route.Name, nil
		}
	}
	return "", fmt.Errorf("routing reply named unknown agent %q", decision.Agent)
}

func (r *Router) catchAll() string {
	return r.routes[len(r.routes)-1].Name
}
