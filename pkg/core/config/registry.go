// Package config holds the per-company assessment configuration: which
// reference documents a company resolves to, which functions it assesses,
// its productivity capture rate, and its peer set. The registry is loaded
// once from YAML and treated as immutable; callers pass the resolved
// CompanyConfig through the computation rather than consulting a global.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// Peer is one comparison company with its public financials.
type Peer struct {
	Name       string `yaml:"name"`
	RevenueUSD int64  `yaml:"revenue_usd"`
	Employees  int    `yaml:"employees"`
	Note       string `yaml:"note"`
}

// CompanyConfig binds a company id to its reference-data file set.
type CompanyConfig struct {
	ID                      string   `yaml:"-"`
	RolesFile               string   `yaml:"roles_file"`
	CommentaryFile          string   `yaml:"commentary_file"`
	BenchmarksFile          string   `yaml:"benchmarks_file"`
	AIHorizonsFile          string   `yaml:"ai_horizons_file"`
	OffshoringFile          string   `yaml:"offshoring_file"`
	RoleCostsFile           string   `yaml:"role_costs_file"`
	UseCasesFile            string   `yaml:"use_cases_file"`
	FuncKeys                []string `yaml:"func_keys"`
	ProductivityCaptureRate float64  `yaml:"productivity_capture_rate"`
	Peers                   []Peer   `yaml:"peers"`
}

type registryFile struct {
	Companies map[string]CompanyConfig `yaml:"companies"`
}

// Registry is the immutable set of configured companies.
type Registry struct {
	companies map[string]CompanyConfig
}

// Load reads the company registry from a YAML file.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read company registry: %w", err)
	}
	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse company registry: %w", err)
	}
	if len(file.Companies) == 0 {
		return nil, fmt.Errorf("company registry %s defines no companies", path)
	}
	companies := make(map[string]CompanyConfig, len(file.Companies))
	for id, cfg := range file.Companies {
		if err := validate(id, cfg); err != nil {
			return nil, err
		}
		cfg.ID = id
		companies[id] = cfg
	}
	return &Registry{companies: companies}, nil
}

func validate(id string, cfg CompanyConfig) error {
	required := map[string]string{
		"roles_file":      cfg.RolesFile,
		"commentary_file": cfg.CommentaryFile,
		"benchmarks_file": cfg.BenchmarksFile,
	}
	for field, v := range required {
		if v == "" {
			return fmt.Errorf("company %q: %s is required", id, field)
		}
	}
	if len(cfg.FuncKeys) == 0 {
		return fmt.Errorf("company %q: func_keys is required", id)
	}
	if cfg.ProductivityCaptureRate < 0 || cfg.ProductivityCaptureRate > 1 {
		return fmt.Errorf("company %q: productivity_capture_rate %v out of range [0,1]",
			id, cfg.ProductivityCaptureRate)
	}
	return nil
}

// Company resolves an id to its configuration.
func (r *Registry) Company(id string) (CompanyConfig, error) {
	cfg, ok := r.companies[id]
	if !ok {
		return CompanyConfig{}, fmt.Errorf("unknown company %q (known: %v)", id, r.IDs())
	}
	return cfg, nil
}

// IDs lists the configured company ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.companies))
	for id := range r.companies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
