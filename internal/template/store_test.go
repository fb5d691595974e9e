// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/context-engine/internal/contextdoc"
	"github.com/pdiddy/context-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.StoreConfig{TemplatesDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleDocument() *types.ContextDocument {
	doc := contextdoc.New("template-placeholder", types.EntityProject)
	doc = contextdoc.ReplaceSectionContent(doc, "mission", types.Text("Standard kickoff mission"))
	doc = contextdoc.ReplaceSectionContent(doc, "tech", types.TagList{"Go", "SQLite"})
	return doc
}

func mustSave(t *testing.T, store *Store, name string, global bool, projectID string) *types.ContextTemplate {
	t.Helper()
	tpl, err := store.Save(context.Background(), name, "", global, projectID, sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	return tpl
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)

	tpl, err := store.Save(context.Background(), "Kickoff", "standard project start", true, "", sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	if tpl.ID == "" {
		t.Fatal("expected generated template ID")
	}

	got, err := store.Get(context.Background(), tpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Kickoff" || got.Description != "standard project start" || !got.IsGlobal {
		t.Fatalf("unexpected template: %+v", got)
	}
	if got.Payload != tpl.Payload {
		t.Fatal("payload changed across save/get")
	}
}

func TestGetNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListScoping(t *testing.T) {
	store := testStore(t)
	mustSave(t, store, "Global", true, "")
	mustSave(t, store, "ProjectA", false, "proj-a")
	mustSave(t, store, "ProjectB", false, "proj-b")

	got, err := store.List(context.Background(), "proj-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 templates, got %d", len(got))
	}
	if got[0].Name != "Global" || got[1].Name != "ProjectA" {
		t.Fatalf("unexpected listing order: %s, %s", got[0].Name, got[1].Name)
	}

	globalsOnly, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(globalsOnly) != 1 || globalsOnly[0].Name != "Global" {
		t.Fatalf("unexpected global listing: %+v", globalsOnly)
	}
}

func TestDelete(t *testing.T) {
	store := testStore(t)
	tpl := mustSave(t, store, "Doomed", true, "")

	if err := store.Delete(context.Background(), tpl.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(context.Background(), tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(context.Background(), tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound on double delete, got %v", err)
	}
}

func TestApply(t *testing.T) {
	store := testStore(t)
	tpl := mustSave(t, store, "Starter", true, "")

	doc, err := store.Apply(context.Background(), tpl.ID, "task-42", types.EntityTask)
	if err != nil {
		t.Fatal(err)
	}
	if doc.EntityID != "task-42" || doc.EntityType != types.EntityTask {
		t.Fatalf("entity not rewritten: %s %s", doc.EntityType, doc.EntityID)
	}
	if doc.Metadata.TemplateID != tpl.ID || doc.Metadata.TemplateName != "Starter" {
		t.Fatalf("template provenance missing: %+v", doc.Metadata)
	}

	mission, ok := contextdoc.FindSection(doc, types.SectionMission)
	if !ok || mission.Content != types.Text("Standard kickoff mission") {
		t.Fatalf("section content not preserved: %+v", mission)
	}
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	mustSave(t, store, "Catalog Entry", true, "")

	var buf strings.Builder
	if err := store.ExportYAML(context.Background(), &buf, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Catalog Entry") {
		t.Fatalf("catalog missing template name:\n%s", out)
	}
	if strings.Contains(out, "payload") {
		t.Fatalf("catalog should not include payloads:\n%s", out)
	}
}
