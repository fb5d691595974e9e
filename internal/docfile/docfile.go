// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docfile stores context documents on disk, one JSON file per
// entity. It implements the caller-side recovery policy for unreadable
// documents: a file that fails to parse is replaced with a fresh empty
// document for the same entity instead of blocking the user. The prior
// bytes are discarded; that data loss is the accepted tradeoff of the
// policy, not a bug.
package docfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/context-engine/internal/contextdoc"
	"github.com/pdiddy/context-engine/pkg/types"
)

// Path returns the document file path for an entity.
func Path(cfg types.DocumentConfig, entityID string, entityType types.EntityType) string {
	return filepath.Join(cfg.ContextDir, fmt.Sprintf("%s-%s.json", entityType, entityID))
}

// Save writes the document to its entity's file, creating the context
// directory if needed.
func Save(cfg types.DocumentConfig, doc *types.ContextDocument) error {
	if err := os.MkdirAll(cfg.ContextDir, 0o755); err != nil {
		return fmt.Errorf("creating context directory: %w", err)
	}
	data, err := contextdoc.Marshal(doc)
	if err != nil {
		return err
	}
	path := Path(cfg, doc.EntityID, doc.EntityType)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads and parses an entity's document. Parse failures surface as
// *contextdoc.ParseError; missing files surface as os.ErrNotExist.
func Load(cfg types.DocumentConfig, entityID string, entityType types.EntityType) (*types.ContextDocument, error) {
	path := Path(cfg, entityID, entityType)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return contextdoc.Unmarshal(data)
}

// LoadOrCreate loads an entity's document, substituting a fresh empty one
// when the file is missing or unparseable. The second return reports whether
// a substitution happened, so callers can warn about discarded content.
// I/O failures other than not-exist still surface as errors.
func LoadOrCreate(cfg types.DocumentConfig, entityID string, entityType types.EntityType) (*types.ContextDocument, bool, error) {
	doc, err := Load(cfg, entityID, entityType)
	if err == nil {
		return doc, false, nil
	}

	var parseErr *contextdoc.ParseError
	if errors.Is(err, os.ErrNotExist) || errors.As(err, &parseErr) {
		return contextdoc.New(entityID, entityType), true, nil
	}
	return nil, false, err
}

// List returns the document file names in the context directory, sorted. A
// missing directory lists as empty.
func List(cfg types.DocumentConfig) ([]string, error) {
	entries, err := os.ReadDir(cfg.ContextDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading context directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
