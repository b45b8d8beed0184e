// ABOUTME: Source catalog loads the list of default feed sources from a bundled resource
// ABOUTME: Supports JSON (embedded default) and YAML files; any schema violation fails the load

package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"digests-reader/core/domain"
	coreerrors "digests-reader/core/errors"
	"digests-reader/core/interfaces"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the name of the embedded catalog resource
const DefaultPath = "sources.json"

//go:embed sources.json
var bundled embed.FS

// Catalog reads feed sources from a file in an fs.FS
type Catalog struct {
	fsys   fs.FS
	path   string
	logger interfaces.Logger
}

// New creates a catalog reading path from fsys
func New(fsys fs.FS, path string, logger interfaces.Logger) *Catalog {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Catalog{
		fsys:   fsys,
		path:   path,
		logger: logger,
	}
}

// Bundled returns the catalog compiled into the binary
func Bundled(logger interfaces.Logger) *Catalog {
	return New(bundled, DefaultPath, logger)
}

// FromFile returns a catalog backed by a file on disk
func FromFile(filePath string, logger interfaces.Logger) *Catalog {
	return New(os.DirFS(filepath.Dir(filePath)), filepath.Base(filePath), logger)
}

// Load reads and validates every source in the catalog.
// Any failure is reported as a *errors.CatalogLoadError.
func (c *Catalog) Load() ([]domain.Source, error) {
	c.logger.Debug("Loading bundled sources", map[string]interface{}{
		"path": c.path,
	})

	data, err := fs.ReadFile(c.fsys, c.path)
	if err != nil {
		return nil, c.fail(err)
	}

	sources, err := decode(c.path, data)
	if err != nil {
		return nil, c.fail(err)
	}

	seen := make(map[string]int, len(sources))
	for i, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, c.fail(fmt.Errorf("record %d: %w", i, err))
		}
		key := domain.NormalizeURL(s.URL)
		if first, dup := seen[key]; dup {
			return nil, c.fail(fmt.Errorf("record %d: duplicate of record %d (%s)", i, first, s.URL))
		}
		seen[key] = i
	}

	c.logger.Debug("Loaded bundled sources", map[string]interface{}{
		"path":  c.path,
		"count": len(sources),
	})

	return sources, nil
}

func (c *Catalog) fail(err error) error {
	c.logger.Error("Failed to load source catalog", map[string]interface{}{
		"path":  c.path,
		"error": err.Error(),
	})
	return &coreerrors.CatalogLoadError{Path: c.path, Err: err}
}

// decode parses data as a list of {title, url} records, rejecting unknown fields
func decode(name string, data []byte) ([]domain.Source, error) {
	var sources []domain.Source

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sources); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sources); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if dec.More() {
			return nil, errors.New("invalid JSON: trailing data after catalog")
		}
	}

	if sources == nil {
		return nil, errors.New("catalog must be a list of sources")
	}

	return sources, nil
}
