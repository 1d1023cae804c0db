// Package file provides a directory-backed graph store: one document per
// customer, JSON or YAML, named <customer_id>.<ext>. Useful for local
// development and for seeding other stores from version-controlled configs.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/switchboard-dev/switchboard/pkg/ports"
	"github.com/switchboard-dev/switchboard/pkg/schema"
)

// extensions are probed in order on Load.
var extensions = []string{".json", ".yaml", ".yml"}

// GraphStore implements ports.GraphStore over a directory of documents.
// Writes always produce JSON; YAML documents are read-only inputs.
type GraphStore struct {
	dir string
}

// NewGraphStore creates a store rooted at dir, creating it if needed.
func NewGraphStore(dir string) (*GraphStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create graph directory: %w", err)
	}
	return &GraphStore{dir: dir}, nil
}

func (s *GraphStore) path(customerID, ext string) string {
	return filepath.Join(s.dir, customerID+ext)
}

// Save writes the graph as <customer_id>.json.
func (s *GraphStore) Save(ctx context.Context, g *schema.Graph) error {
	data, err := g.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := os.WriteFile(s.path(g.CustomerID, ".json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write graph document: %w", err)
	}
	return nil
}

// Load reads and validates the customer's document, trying JSON then YAML.
func (s *GraphStore) Load(ctx context.Context, customerID string) (*schema.Graph, error) {
	for _, ext := range extensions {
		data, err := os.ReadFile(s.path(customerID, ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read graph document: %w", err)
		}
		if ext == ".json" {
			return schema.Parse(data)
		}
		return schema.ParseYAML(data)
	}
	return nil, ports.ErrGraphNotFound
}

// Delete removes the customer's document, whatever its extension.
func (s *GraphStore) Delete(ctx context.Context, customerID string) error {
	for _, ext := range extensions {
		err := os.Remove(s.path(customerID, ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete graph document: %w", err)
		}
	}
	return nil
}

// List returns customer ids derived from document file names.
func (s *GraphStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list graph directory: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		for _, known := range extensions {
			if ext == known {
				ids = append(ids, strings.TrimSuffix(name, ext))
				break
			}
		}
	}
	return ids, nil
}
