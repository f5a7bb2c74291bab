package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// cannedProvider returns a fixed reply (or error) for every prompt.
type cannedProvider struct {
	reply   string
	err     error
	prompts []string
}

func (p *cannedProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}

func (p *cannedProvider) AdaptInstructions(raw string) string { return raw }

func testRoutes() []Route {
	return []Route{
		{
			Name:        "customer_ops_optimizer",
			Keywords:    []string{"offshoring", "fte", "ticket deflection"},
			Description: "Customer operations workforce optimization",
		},
		{
			Name:        "catchall",
			Description: "General questions",
		},
	}
}

func routerWith(p *cannedProvider) *Router {
	mgr := NewManager(Config{ActiveProvider: "stub"})
	mgr.registerProvider("stub", p)
	return NewRouter(testRoutes(), mgr)
}

func TestChooseByKeyword(t *testing.T) {
	stub := &cannedProvider{err: errors.New("model must not be called")}
	r := routerWith(stub)

	name := r.Choose(context.Background(), "What is our Offshoring gap in support?")
	if name != "customer_ops_optimizer" {
		t.Errorf("expected keyword route, got %q", name)
	}
	if len(stub.prompts) != 0 {
		t.Error("keyword match must short-circuit the model call")
	}
}

func TestChooseByModel(t *testing.T) {
	stub := &cannedProvider{reply: `{"agent": "customer_ops_optimizer"}`}
	r := routerWith(stub)

	name := r.Choose(context.Background(), "How should we restructure onboarding?")
	if name != "customer_ops_optimizer" {
		t.Errorf("expected model-decided route, got %q", name)
	}
	if len(stub.prompts) != 1 {
		t.Errorf("expected exactly one model call, got %d", len(stub.prompts))
	}
}

func TestChooseByModelRepairsTruncatedJSON(t *testing.T) {
	// Truncated reply, as models under a token cap sometimes produce.
	stub := &cannedProvider{reply: `{"agent": "customer_ops_optimizer"`}
	r := routerWith(stub)

	if name := r.Choose(context.Background(), "General planning question"); name != "customer_ops_optimizer" {
		t.Errorf("expected repaired route, got %q", name)
	}
}

func TestChooseFallsBackOnModelError(t *testing.T) {
	stub := &cannedProvider{err: errors.New("upstream 500")}
	r := routerWith(stub)

	if name := r.Choose(context.Background(), "Unrelated objective"); name != "catchall" {
		t.Errorf("expected catch-all on model error, got %q", name)
	}
}

func TestChooseFallsBackOnUnknownAgent(t *testing.T) {
	stub := &cannedProvider{reply: `{"agent": "made_up_agent"}`}
	r := routerWith(stub)

	if name := r.Choose(context.Background(), "Unrelated objective"); name != "catchall" {
		t.Errorf("expected catch-all on unknown agent, got %q", name)
	}
}

func TestLoadRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	body := `
routing:
  agents:
    - name: customer_ops_optimizer
      keywords: [offshoring, fte]
      description: Workforce optimization
    - name: catchall
      keywords: []
      description: Fallback
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write routing config: %v", err)
	}

	routes, err := LoadRoutes(path)
	if err != nil {
		t.Fatalf("LoadRoutes failed: %v", err)
	}
	if len(routes) != 2 || routes[0].Name != "customer_ops_optimizer" {
		t.Errorf("unexpected routes %+v", routes)
	}
	if len(routes[0].Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %v", routes[0].Keywords)
	}
}

func TestLoadRoutesEmptyIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routing.yaml")
	if err := os.WriteFile(path, []byte("routing:\n  agents: []\n"), 0644); err != nil {
		t.Fatalf("write routing config: %v", err)
	}
	if _, err := LoadRoutes(path); err == nil {
		t.Error("expected an error for an empty routing table")
	}
}

func TestManagerProviderResolution(t *testing.T) {
	stub := &cannedProvider{}
	other := &cannedProvider{}
	mgr := NewManager(Config{
		ActiveProvider: "stub",
		Agents: map[string]AgentConfig{
			"special": {Provider: "other"},
		},
	})
	mgr.registerProvider("stub", stub)
	mgr.registerProvider("other", other)

	if got := mgr.GetProvider("special"); got != other {
		t.Error("agent-level provider override should win")
	}
	if got := mgr.GetProvider("anything_else"); got != stub {
		t.Error("active provider should serve agents without an override")
	}
	if err := mgr.SetGlobalProvider("no_such"); err == nil {
		t.Error("expected an error for an unknown provider")
	}
	if err := mgr.SetGlobalProvider("other"); err != nil {
		t.Errorf("SetGlobalProvider failed: %v", err)
	}
	if mgr.GetActiveProvider() != "other" {
		t.Errorf("active provider not updated, got %q", mgr.GetActiveProvider())
	}
}
