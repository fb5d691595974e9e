// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/context-engine/internal/contextdoc"
	"github.com/pdiddy/context-engine/pkg/types"
)

// --- test helpers ---

func testConfig(t *testing.T) types.DocumentConfig {
	t.Helper()
	return types.DocumentConfig{ContextDir: filepath.Join(t.TempDir(), "contexts")}
}

func TestSaveAndLoad(t *testing.T) {
	cfg := testConfig(t)

	doc := contextdoc.New("task-1", types.EntityTask)
	doc = contextdoc.ReplaceSectionContent(doc, "mission", types.Text("persisted mission"))
	if err := Save(cfg, doc); err != nil {
		t.Fatal(err)
	}

	got, err := Load(cfg, "task-1", types.EntityTask)
	if err != nil {
		t.Fatal(err)
	}
	mission, ok := contextdoc.FindSection(got, types.SectionMission)
	if !ok || mission.Content != types.Text("persisted mission") {
		t.Fatalf("unexpected mission section: %+v", mission)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := testConfig(t)

	_, err := Load(cfg, "ghost", types.EntityProject)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist, got %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.ContextDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := Path(cfg, "task-1", types.EntityTask)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfg, "task-1", types.EntityTask)
	var parseErr *contextdoc.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want *contextdoc.ParseError, got %v", err)
	}
}

func TestLoadOrCreateRecovery(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, cfg types.DocumentConfig)
	}{
		{
			name:  "missing file",
			setup: func(t *testing.T, cfg types.DocumentConfig) {},
		},
		{
			name: "corrupt file",
			setup: func(t *testing.T, cfg types.DocumentConfig) {
				if err := os.MkdirAll(cfg.ContextDir, 0o755); err != nil {
					t.Fatal(err)
				}
				path := Path(cfg, "task-1", types.EntityTask)
				if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.setup(t, cfg)

			doc, recovered, err := LoadOrCreate(cfg, "task-1", types.EntityTask)
			if err != nil {
				t.Fatal(err)
			}
			if !recovered {
				t.Fatal("expected recovery substitution")
			}
			if doc.EntityID != "task-1" || doc.EntityType != types.EntityTask {
				t.Fatalf("fresh document has wrong entity: %s %s", doc.EntityType, doc.EntityID)
			}
			if len(doc.Sections) != 6 {
				t.Fatalf("fresh document has %d sections", len(doc.Sections))
			}
		})
	}
}

func TestLoadOrCreateExisting(t *testing.T) {
	cfg := testConfig(t)
	doc := contextdoc.New("task-1", types.EntityTask)
	doc = contextdoc.ReplaceSectionContent(doc, "scope", types.Text("existing scope"))
	if err := Save(cfg, doc); err != nil {
		t.Fatal(err)
	}

	got, recovered, err := LoadOrCreate(cfg, "task-1", types.EntityTask)
	if err != nil {
		t.Fatal(err)
	}
	if recovered {
		t.Fatal("unexpected recovery for a readable document")
	}
	scope, _ := contextdoc.FindSection(got, types.SectionScope)
	if scope.Content != types.Text("existing scope") {
		t.Fatalf("existing content lost: %+v", scope)
	}
}

func TestList(t *testing.T) {
	cfg := testConfig(t)

	names, err := List(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("want empty listing for missing directory, got %v", names)
	}

	for _, id := range []string{"b-2", "a-1"} {
		if err := Save(cfg, contextdoc.New(id, types.EntityTask)); err != nil {
			t.Fatal(err)
		}
	}

	names, err = List(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"task-a-1.json", "task-b-2.json"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Fatalf("want %v, got %v", want, names)
	}
}
