package refdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// ConfigError marks a fatal configuration failure: a reference document that
// is missing, unreadable, or structurally invalid. The engine never degrades
// around these; the whole invocation fails.
type ConfigError struct {
	Resource string
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s: %v", e.Resource, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Store reads reference documents from a directory. It holds no state beyond
// the directory path, so a Store is safe for concurrent use.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// load decodes one reference document into v. Documents are JSON by default;
// a .hjson extension selects the lenient Hjson parser so hand-maintained
// tables can carry comments.
func (s *Store) load(name string, v interface{}) error {
	path := filepath.Join(s.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Resource: name, Err: err}
	}
	if strings.HasSuffix(name, ".hjson") {
		if err := hjson.Unmarshal(raw, v); err != nil {
			return &ConfigError{Resource: name, Err: err}
		}
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ConfigError{Resource: name, Err: err}
	}
	return nil
}

// LoadBenchmarks reads a role benchmark document.
func (s *Store) LoadBenchmarks(name string) (BenchmarkDoc, error) {
	doc := BenchmarkDoc{}
	if err := s.load(name, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadHorizons reads an AI-horizons document.
func (s *Store) LoadHorizons(name string) (HorizonsDoc, error) {
	doc := HorizonsDoc{}
	if err := s.load(name, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadOffshoring reads an offshoring targets document.
func (s *Store) LoadOffshoring(name string) (OffshoringDoc, error) {
	doc := OffshoringDoc{}
	if err := s.load(name, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadCosts reads a role cost document.
func (s *Store) LoadCosts(name string) (CostsDoc, error) {
	doc := CostsDoc{}
	if err := s.load(name, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadOverrides reads the company roles document (metadata + overrides).
func (s *Store) LoadOverrides(name string) (*OverridesDoc, error) {
	doc := &OverridesDoc{}
	if err := s.load(name, doc); err != nil {
		return nil, err
	}
	if doc.Metadata.Company == "" {
		return nil, &ConfigError{Resource: name, Err: fmt.Errorf("metadata.company is required")}
	}
	return doc, nil
}

// LoadCommentary reads a commentary document.
func (s *Store) LoadCommentary(name string) (CommentaryDoc, error) {
	doc := CommentaryDoc{}
	if err := s.load(name, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadUseCases reads the AI use-case catalog.
func (s *Store) LoadUseCases(name string) ([]UseCase, error) {
	doc := UseCasesDoc{}
	if err := s.load(name, &doc); err != nil {
		return nil, err
	}
	return doc.UseCases, nil
}
