// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is the catalog form of a stored template: metadata without the
// document payload.
type ExportEntry struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	IsGlobal    bool   `json:"is_global" yaml:"is_global"`
	ProjectID   string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
}

// ExportYAML writes the template catalog for the given project scope as
// YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, projectID string) error {
	templates, err := s.List(ctx, projectID)
	if err != nil {
		return err
	}

	entries := make([]ExportEntry, 0, len(templates))
	for _, tpl := range templates {
		entries = append(entries, ExportEntry{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			IsGlobal:    tpl.IsGlobal,
			ProjectID:   tpl.ProjectID,
			CreatedAt:   tpl.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   tpl.UpdatedAt.Format(time.RFC3339),
		})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing template catalog: %w", err)
	}
	return nil
}
