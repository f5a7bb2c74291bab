package deploy

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func stageDir(t *testing.T) (string, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	contents := map[string]string{
		"index.html":      "<html>ops</html>",
		"assessment.json": `{"company": {}}`,
	}
	if err := os.MkdirAll(filepath.Join(dir, "assets"), 0755); err != nil {
		t.Fatal(err)
	}
	contents["assets/app.js"] = "console.log('ready')"
	for name, body := range contents {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, contents
}

func TestCollectFiles(t *testing.T) {
	dir, contents := stageDir(t)

	files, err := CollectFiles(dir)
	if err != nil {
		t.Fatalf("CollectFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	// Sorted by slash-form relative path.
	if files[0].File != "assessment.json" || files[1].File != "assets/app.js" || files[2].File != "index.html" {
		t.Errorf("unexpected order: %v, %v, %v", files[0].File, files[1].File, files[2].File)
	}
	for _, f := range files {
		body := contents[f.File]
		if f.Size != len(body) {
			t.Errorf("%s: size %d, want %d", f.File, f.Size, len(body))
		}
		if want := fmt.Sprintf("%x", sha1.Sum([]byte(body))); f.SHA != want {
			t.Errorf("%s: sha %s, want %s", f.File, f.SHA, want)
		}
	}
}

func newTestClient(t *testing.T, handler http.Handler) *VercelClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewVercelClient("test-token", "")
	client.BaseURL = srv.URL
	return client
}

func TestEnsureProjectExisting(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.Method == "GET" && r.URL.Path == "/v9/projects/ops-assessment" {
			json.NewEncoder(w).Encode(map[string]string{"id": "prj_123"})
			return
		}
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))

	id, err := client.EnsureProject("ops-assessment")
	if err != nil {
		t.Fatalf("EnsureProject failed: %v", err)
	}
	if id != "prj_123" {
		t.Errorf("unexpected project id %q", id)
	}
}

func TestEnsureProjectCreates(t *testing.T) {
	var created bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/v9/projects/ops-assessment":
			http.NotFound(w, r)
		case r.Method == "POST" && r.URL.Path == "/v10/projects":
			created = true
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			if payload["name"] != "ops-assessment" {
				t.Errorf("unexpected create payload %v", payload)
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "prj_new"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	id, err := client.EnsureProject("ops-assessment")
	if err != nil {
		t.Fatalf("EnsureProject failed: %v", err)
	}
	if !created || id != "prj_new" {
		t.Errorf("expected project creation, got id %q (created=%v)", id, created)
	}
}

func TestDeployUploadsMissingAndRetries(t *testing.T) {
	dir, _ := stageDir(t)
	files, err := CollectFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	missingSHA := files[0].SHA

	var deployCalls int
	uploads := map[string]bool{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/v13/deployments":
			deployCalls++
			if deployCalls == 1 {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]interface{}{"missing": []string{missingSHA}},
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{
				"id": "dpl_1", "url": "ops-assessment.vercel.app",
			})
		case r.Method == "POST" && r.URL.Path == "/v2/files":
			if r.Header.Get("Content-Type") != "application/octet-stream" {
				t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
			}
			uploads[r.Header.Get("x-vercel-digest")] = true
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	url, err := client.Deploy("ops-assessment", files)
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if url != "ops-assessment.vercel.app" {
		t.Errorf("unexpected deployment url %q", url)
	}
	if deployCalls != 2 {
		t.Errorf("expected create + retry, got %d calls", deployCalls)
	}
	if !uploads[missingSHA] {
		t.Error("the missing file was never uploaded")
	}
}

func TestDeployFailsWithoutMissingList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": "forbidden"}}`))
	}))

	if _, err := client.Deploy("ops-assessment", nil); err == nil {
		t.Error("expected an error on a non-retryable failure")
	}
}

func TestWaitReady(t *testing.T) {
	var polls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		state := "BUILDING"
		if polls >= 2 {
			state = "READY"
		}
		json.NewEncoder(w).Encode(map[string]string{"readyState": state})
	}))

	if err := client.WaitReady("ops-assessment.vercel.app", 30*time.Second); err != nil {
		t.Fatalf("WaitReady failed: %v", err)
	}
	if polls < 2 {
		t.Errorf("expected at least 2 polls, got %d", polls)
	}
}

func TestWaitReadyErrorState(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"readyState": "ERROR"})
	}))

	if err := client.WaitReady("ops-assessment.vercel.app", 10*time.Second); err == nil {
		t.Error("expected an error for an ERROR deployment state")
	}
}

func TestWithTeamParam(t *testing.T) {
	var gotTeam string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTeam = r.URL.Query().Get("teamId")
		json.NewEncoder(w).Encode(map[string]string{"id": "prj_1"})
	}))
	defer srv.Close()

	client := NewVercelClient("tok", "team_abc")
	client.BaseURL = srv.URL
	if _, err := client.EnsureProject("ops-assessment"); err != nil {
		t.Fatalf("EnsureProject failed: %v", err)
	}
	if gotTeam != "team_abc" {
		t.Errorf("teamId not propagated, got %q", gotTeam)
	}
}
