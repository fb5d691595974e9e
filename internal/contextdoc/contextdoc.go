// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contextdoc implements the context document content model: canonical
// construction, section lookup and mutation, and the JSON at-rest codec.
// Mutating operations return a new document value; callers treat documents as
// immutable snapshots.
package contextdoc

import (
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/context-engine/pkg/types"
)

// defaultSection describes one entry of the canonical default section set.
type defaultSection struct {
	typ     types.SectionType
	label   string
	content types.Content
}

// defaultSections is the canonical default set, in creation order. Every
// fresh document starts with exactly these six sections, so the scorer and
// serializer never see a document with zero sections. Constraints and custom
// sections are added on demand via AddSection.
var defaultSections = []defaultSection{
	{types.SectionMission, "Mission", types.Text("")},
	{types.SectionScope, "Scope", types.Text("")},
	{types.SectionTech, "Tech Stack", types.TagList(nil)},
	{types.SectionCasting, "Casting", types.PersonaList(nil)},
	{types.SectionDeliverables, "Deliverables", types.TagList(nil)},
	{types.SectionStrategyTags, "Strategy Tags", types.TagList(nil)},
}

// New builds an empty context document for the given entity with the
// canonical default sections, all visible. Default section IDs equal their
// type name, which keeps them stable across documents and unique within one.
func New(entityID string, entityType types.EntityType) *types.ContextDocument {
	now := time.Now().UTC()
	sections := make([]types.Section, 0, len(defaultSections))
	for i, d := range defaultSections {
		sections = append(sections, types.Section{
			ID:      string(d.typ),
			Type:    d.typ,
			Label:   d.label,
			Content: d.content,
			Order:   i,
			Visible: true,
		})
	}
	return &types.ContextDocument{
		Version:    types.SchemaVersion,
		EntityID:   entityID,
		EntityType: entityType,
		Sections:   sections,
		Metadata: types.DocumentMetadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// FindSection returns the first section of the given type, if any.
func FindSection(doc *types.ContextDocument, typ types.SectionType) (types.Section, bool) {
	for _, s := range doc.Sections {
		if s.Type == typ {
			return s, true
		}
	}
	return types.Section{}, false
}

// ReplaceSectionContent returns a copy of doc with the targeted section's
// content replaced and UpdatedAt refreshed. An unknown section ID is a
// no-op returning the input document: stale callers must not be able to
// corrupt the document, so missing IDs are tolerated rather than rejected.
func ReplaceSectionContent(doc *types.ContextDocument, sectionID string, content types.Content) *types.ContextDocument {
	return mutateSection(doc, sectionID, func(s *types.Section) {
		s.Content = content
	})
}

// SetVisibility returns a copy of doc with the targeted section's visibility
// set and UpdatedAt refreshed. Unknown section IDs are a no-op.
func SetVisibility(doc *types.ContextDocument, sectionID string, visible bool) *types.ContextDocument {
	return mutateSection(doc, sectionID, func(s *types.Section) {
		s.Visible = visible
	})
}

// AddSection returns a copy of doc with a new section appended after the
// current highest order. Intended for constraints and custom sections, which
// are not part of the default set.
func AddSection(doc *types.ContextDocument, typ types.SectionType, label string, content types.Content) *types.ContextDocument {
	out := clone(doc)
	maxOrder := -1
	for _, s := range out.Sections {
		if s.Order > maxOrder {
			maxOrder = s.Order
		}
	}
	out.Sections = append(out.Sections, types.Section{
		ID:      uuid.NewString(),
		Type:    typ,
		Label:   label,
		Content: content,
		Order:   maxOrder + 1,
		Visible: true,
	})
	out.Metadata.UpdatedAt = time.Now().UTC()
	return out
}

// mutateSection applies fn to the section with the given ID in a copy of
// doc. If no section matches, the original document is returned unchanged,
// including its UpdatedAt.
func mutateSection(doc *types.ContextDocument, sectionID string, fn func(*types.Section)) *types.ContextDocument {
	idx := -1
	for i, s := range doc.Sections {
		if s.ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return doc
	}
	out := clone(doc)
	fn(&out.Sections[idx])
	out.Metadata.UpdatedAt = time.Now().UTC()
	return out
}

// clone deep-copies the document's section slice; Content values are shared,
// which is safe because mutations always replace content wholesale.
func clone(doc *types.ContextDocument) *types.ContextDocument {
	out := *doc
	out.Sections = make([]types.Section, len(doc.Sections))
	copy(out.Sections, doc.Sections)
	return &out
}
