package agent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePrompts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prompts := map[string]string{
		"customer_ops_optimizer.system.txt": "You are a customer operations advisor.",
		"catchall.system.txt":               "You answer general questions.",
	}
	for name, body := range prompts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("write prompt %s: %v", name, err)
		}
	}
	return dir
}

func writeReference(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "role_benchmarks.json"),
		[]byte(`{"customer_support": {"label": "Customer Support"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "commentary.hjson"),
		[]byte("{\n  // note\n  customer_support: {\n    theme: Runs heavy\n  }\n}"), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-reference files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestWorkflow(t *testing.T, stub *cannedProvider, referenceDir string) *Workflow {
	t.Helper()
	mgr := NewManager(Config{ActiveProvider: "stub"})
	mgr.registerProvider("stub", stub)
	wf, err := NewWorkflow(mgr, NewRouter(testRoutes(), mgr), writePrompts(t), referenceDir)
	if err != nil {
		t.Fatalf("NewWorkflow failed: %v", err)
	}
	return wf
}

func TestWorkflowRunGroundsPrompt(t *testing.T) {
	stub := &cannedProvider{reply: "```markdown\n# Plan\nShift Tier-1 offshore.\n```"}
	wf := newTestWorkflow(t, stub, writeReference(t))

	// "fte" keyword forces the optimizer route without a model call.
	narrative, err := wf.Run(context.Background(), "Cut FTE cost in support", "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if narrative != "# Plan\nShift Tier-1 offshore." {
		t.Errorf("narrative not cleaned: %q", narrative)
	}
	if len(stub.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(stub.prompts))
	}
	prompt := stub.prompts[0]
	if !strings.Contains(prompt, "=== CUSTOMER OPS REFERENCE (Benchmarks & Levers) ===") {
		t.Error("prompt should embed the reference context")
	}
	if !strings.Contains(prompt, "--- role_benchmarks ---") {
		t.Error("prompt should label each reference table")
	}
	if !strings.Contains(prompt, "Runs heavy") {
		t.Error("hjson reference tables should be rendered too")
	}
	if strings.Contains(prompt, "scratch") {
		t.Error("non-reference files must not leak into the prompt")
	}
}

func TestWorkflowRunForcedAgent(t *testing.T) {
	stub := &cannedProvider{reply: "General answer."}
	wf := newTestWorkflow(t, stub, t.TempDir())

	narrative, err := wf.Run(context.Background(), "Cut FTE cost in support", "catchall")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if narrative != "General answer." {
		t.Errorf("unexpected narrative %q", narrative)
	}
	// Empty reference dir: the objective goes through ungrounded.
	if stub.prompts[0] != "Cut FTE cost in support" {
		t.Errorf("unexpected prompt %q", stub.prompts[0])
	}
}

func TestWorkflowRunUnknownAgent(t *testing.T) {
	wf := newTestWorkflow(t, &cannedProvider{reply: "x"}, t.TempDir())
	if _, err := wf.Run(context.Background(), "objective", "no_such_agent"); err == nil {
		t.Error("expected an error for an agent without a system prompt")
	}
}

func TestNewWorkflowMissingPrompt(t *testing.T) {
	mgr := NewManager(Config{})
	router := NewRouter(testRoutes(), mgr)
	if _, err := NewWorkflow(mgr, router, t.TempDir(), t.TempDir()); err == nil {
		t.Error("expected an error when a route has no system prompt file")
	}
}

func TestFormatReferenceContextEmpty(t *testing.T) {
	if got := FormatReferenceContext(t.TempDir()); got != "" {
		t.Errorf("empty dir should yield empty context, got %q", got)
	}
	if got := FormatReferenceContext(filepath.Join(t.TempDir(), "absent")); got != "" {
		t.Errorf("missing dir should yield empty context, got %q", got)
	}
}
