package refdata

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ReferenceStore = (*Store)(nil)

// SourceEmbedded names the built-in tables.
const SourceEmbedded = "embedded"

// OverrideFileName is the override looked up in the config directory.
const OverrideFileName = "reference.toml"

// Validator checks loaded tables before they become current.
type Validator func(*domain.ReferenceData) error

// Options configures a Store.
type Options struct {
	// Path is an optional TOML or YAML override file.
	Path string

	// Validate is applied to every load; nil accepts anything.
	Validate Validator
}

// Store holds the current reference data and reloads it on demand.
type Store struct {
	mu       sync.RWMutex
	current  *domain.ReferenceData
	path     string
	validate Validator
}

// NewStore loads and validates the tables. It fails if the override file
// cannot be read or the merged tables do not validate.
func NewStore(opts Options) (*Store, error) {
	s := &Store{validate: opts.Validate}
	if opts.Path != "" {
		abs, err := filepath.Abs(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("resolve reference path: %w", err)
		}
		s.path = abs
	}

	ref, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current = ref
	return s, nil
}

// Current returns the active tables. Callers must not modify them.
func (s *Store) Current() *domain.ReferenceData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload re-reads the override file. On failure the previous tables stay current.
func (s *Store) Reload() error {
	ref, err := s.load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = ref
	s.mu.Unlock()

	logger.Debug("Reference data reloaded from %s", s.Source())
	return nil
}

// Source describes where the tables came from.
func (s *Store) Source() string {
	if s.path == "" {
		return SourceEmbedded
	}
	return SourceEmbedded + " + " + s.path
}

// Path returns the override file, or empty when only defaults are used.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (*domain.ReferenceData, error) {
	doc, err := defaults()
	if err != nil {
		return nil, err
	}

	if s.path != "" {
		format, err := FormatOf(s.path)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read reference file: %w", err)
		}
		over, err := decode(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(s.path), err)
		}
		doc = merge(doc, over)
	}

	ref, err := doc.build()
	if err != nil {
		return nil, err
	}
	if s.validate != nil {
		if err := s.validate(ref); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

// FindOverride returns the override file in dir if one exists.
func FindOverride(dir string) string {
	for _, name := range []string{OverrideFileName, "reference.yaml", "reference.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
