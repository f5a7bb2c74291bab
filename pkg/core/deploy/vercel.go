// Package deploy publishes a static assessment artifact directory to
// Vercel through the REST API, bypassing the CLI's --scope bug in
// non-interactive mode.
package deploy

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const defaultAPIBaseURL = "https://api.vercel.com"

// VercelClient talks to the Vercel REST API. BaseURL is configurable
// for tests.
type VercelClient struct {
	BaseURL    string
	Token      string
	TeamID     string
	httpClient *http.Client
}

func NewVercelClient(token, teamID string) *VercelClient {
	return &VercelClient{
		BaseURL:    defaultAPIBaseURL,
		Token:      token,
		TeamID:     teamID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// TokenFromAuthFile reads the Vercel token written by `vercel login`
// to ~/.vercel/auth.json.
func TokenFromAuthFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".vercel", "auth.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("no Vercel token at %s (run `npx vercel login` first): %w", path, err)
	}
	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &auth); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if auth.Token == "" {
		return "", fmt.Errorf("no token field in %s", path)
	}
	return auth.Token, nil
}

// DeployFile is one file staged for deployment.
type DeployFile struct {
	File string `json:"file"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`

	localPath string
}

// CollectFiles walks dir and returns every regular file with its SHA-1
// digest, sorted by relative path.
func CollectFiles(dir string) ([]DeployFile, error) {
	var files []DeployFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, DeployFile{
			File:      filepath.ToSlash(rel),
			SHA:       fmt.Sprintf("%x", sha1.Sum(data)),
			Size:      len(data),
			localPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].File < files[j].File })
	return files, nil
}

// EnsureProject creates the project if it does not exist and returns
// its ID.
func (c *VercelClient) EnsureProject(name string) (string, error) {
	var proj struct {
		ID string `json:"id"`
	}
	status, body, err := c.do("GET", "/v9/projects/"+name, "application/json", nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusOK {
		if err := json.Unmarshal(body, &proj); err != nil {
			return "", fmt.Errorf("failed to parse project response: %w", err)
		}
		return proj.ID, nil
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"name":      name,
		"framework": nil, // static site
	})
	status, body, err = c.do("POST", "/v10/projects", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("project create failed (%d): %s", status, truncate(body, 500))
	}
	if err := json.Unmarshal(body, &proj); err != nil {
		return "", fmt.Errorf("failed to parse project response: %w", err)
	}
	return proj.ID, nil
}

type deploymentResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error struct {
		Missing []string `json:"missing"`
	} `json:"error"`
	Missing []string `json:"missing"`
}

// Deploy creates a production deployment from the staged files,
// uploading any the API reports missing, and returns the deployment URL.
func (c *VercelClient) Deploy(projectName string, files []DeployFile) (string, error) {
	dep, status, body, err := c.createDeployment(projectName, files)
	if err != nil {
		return "", err
	}
	if status == http.StatusOK {
		return dep.URL, nil
	}

	missing := dep.Error.Missing
	if len(missing) == 0 {
		missing = dep.Missing
	}
	if len(missing) == 0 {
		return "", fmt.Errorf("deployment failed (%d): %s", status, truncate(body, 500))
	}

	bySHA := make(map[string]DeployFile, len(files))
	for _, f := range files {
		bySHA[f.SHA] = f
	}
	for _, sha := range missing {
		f, ok := bySHA[sha]
		if !ok {
			return "", fmt.Errorf("API requested unknown file sha %s", sha)
		}
		if err := c.uploadFile(f); err != nil {
			return "", fmt.Errorf("upload failed for %s: %w", f.File, err)
		}
	}

	dep, status, body, err = c.createDeployment(projectName, files)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("deployment retry failed (%d): %s", status, truncate(body, 500))
	}
	return dep.URL, nil
}

// WaitReady polls the deployment until its readyState is READY.
func (c *VercelClient) WaitReady(deploymentURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		status, body, err := c.do("GET", "/v13/deployments/get?url="+url.QueryEscape(deploymentURL), "application/json", nil)
		if err == nil && status == http.StatusOK {
			var dep struct {
				ReadyState string `json:"readyState"`
			}
			if json.Unmarshal(body, &dep) == nil {
				switch dep.ReadyState {
				case "READY":
					return nil
				case "ERROR", "CANCELED":
					return fmt.Errorf("deployment ended in state %s", dep.ReadyState)
				}
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("deployment %s not ready after %s", deploymentURL, timeout)
		}
		time.Sleep(2 * time.Second)
	}
}

func (c *VercelClient) createDeployment(projectName string, files []DeployFile) (*deploymentResponse, int, []byte, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"name":  projectName,
		"files": files,
		"projectSettings": map[string]interface{}{
			"framework": nil,
		},
		"target": "production",
	})
	status, body, err := c.do("POST", "/v13/deployments", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, nil, err
	}
	var dep deploymentResponse
	json.Unmarshal(body, &dep)
	return &dep, status, body, nil
}

func (c *VercelClient) uploadFile(f DeployFile) error {
	data, err := os.ReadFile(f.localPath)
	if err != nil {
		return err
	}
	req, err := http.NewRequest("POST", c.BaseURL+c.withTeam("/v2/files"), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("x-vercel-digest", f.SHA)
	req.Header.Set("x-vercel-size", strconv.Itoa(len(data)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return nil
}

func (c *VercelClient) do(method, path, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequest(method, c.BaseURL+c.withTeam(path), body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func (c *VercelClient) withTeam(path string) string {
	if c.TeamID == "" {
		return path
	}
	sep := "?"
	for _, r := range path {
		if r == '?' {
			sep = "&"
		}
	}
	return path + sep + "teamId=" + url.QueryEscape(c.TeamID)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
