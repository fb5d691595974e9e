// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template persists named, reusable context documents in a SQLite
// database and applies them to target entities.
package template

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/context-engine/internal/contextdoc"
	"github.com/pdiddy/context-engine/pkg/types"
)

const dbFile = "templates.db"

// ErrNotFound reports a template ID with no matching row.
var ErrNotFound = errors.New("template not found")

// Store manages the template SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the template database at
// templatesDir/templates.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.TemplatesDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating templates directory: %w", err)
	}

	dbPath := filepath.Join(cfg.TemplatesDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			payload TEXT NOT NULL,
			is_global INTEGER NOT NULL DEFAULT 0,
			project_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_name ON templates(name)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_project ON templates(project_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores a document as a named template and returns the stored record.
// A non-global template is scoped to projectID; global templates ignore it.
func (s *Store) Save(ctx context.Context, name, description string, isGlobal bool, projectID string, doc *types.ContextDocument) (*types.ContextTemplate, error) {
	payload, err := contextdoc.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("saving template %q: %w", name, err)
	}

	now := time.Now().UTC()
	tpl := &types.ContextTemplate{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Payload:     string(payload),
		IsGlobal:    isGlobal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !isGlobal {
		tpl.ProjectID = projectID
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO templates (id, name, description, payload, is_global, project_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tpl.ID, tpl.Name, tpl.Description, tpl.Payload,
		boolToInt(tpl.IsGlobal), nullable(tpl.ProjectID),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting template %q: %w", name, err)
	}
	return tpl, nil
}

// Get returns the template with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*types.ContextTemplate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, payload, is_global, project_id, created_at, updated_at
		 FROM templates WHERE id = ?`, id)
	tpl, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", id, err)
	}
	return tpl, nil
}

// List returns global templates plus those scoped to projectID, name
// ascending. An empty projectID lists globals only.
func (s *Store) List(ctx context.Context, projectID string) ([]types.ContextTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, payload, is_global, project_id, created_at, updated_at
		 FROM templates
		 WHERE is_global = 1 OR project_id = ?
		 ORDER BY name ASC, created_at ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []types.ContextTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template row: %w", err)
		}
		templates = append(templates, *tpl)
	}
	return templates, rows.Err()
}

// Delete removes the template with the given ID, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

// Apply loads a template and retargets its document to the given entity.
func (s *Store) Apply(ctx context.Context, id, targetID string, targetType types.EntityType) (*types.ContextDocument, error) {
	tpl, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return contextdoc.ApplyTemplate(tpl, targetID, targetType)
}

// scanner abstracts sql.Row and sql.Rows for scanTemplate.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row scanner) (*types.ContextTemplate, error) {
	var (
		tpl       types.ContextTemplate
		isGlobal  int
		projectID sql.NullString
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.Payload,
		&isGlobal, &projectID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	tpl.IsGlobal = isGlobal != 0
	tpl.ProjectID = projectID.String
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		tpl.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		tpl.UpdatedAt = t
	}
	return &tpl, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
