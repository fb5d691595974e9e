// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contextdoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/context-engine/pkg/types"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	doc := New("task-7", types.EntityTask)
	doc = ReplaceSectionContent(doc, "mission", types.Text("Build the wall <safely> & fast"))
	doc = ReplaceSectionContent(doc, "tech", types.TagList{"Python", "SQL"})
	doc = ReplaceSectionContent(doc, "casting", types.PersonaList{
		{ID: "persona-1", Name: "Ada", Role: types.RolePrimaryAgent, Description: "lead"},
		{ID: "persona-2", Name: "Bev", Role: types.RoleReviewer},
	})

	data, err := Marshal(doc)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, doc.EntityID, got.EntityID)
	assert.Equal(t, doc.EntityType, got.EntityType)
	require.Len(t, got.Sections, len(doc.Sections))

	mission, _ := FindSection(got, types.SectionMission)
	assert.Equal(t, types.Text("Build the wall <safely> & fast"), mission.Content)
	tech, _ := FindSection(got, types.SectionTech)
	assert.Equal(t, types.TagList{"Python", "SQL"}, tech.Content)
	casting, _ := FindSection(got, types.SectionCasting)
	assert.Equal(t, types.PersonaList{
		{ID: "persona-1", Name: "Ada", Role: types.RolePrimaryAgent, Description: "lead"},
		{ID: "persona-2", Name: "Bev", Role: types.RoleReviewer},
	}, casting.Content)
}

func TestUnmarshalFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed JSON", raw: `{"version": "1.0",`},
		{name: "missing version", raw: `{"entity_id": "t-1", "sections": [{"id": "mission", "type": "mission", "visible": true}]}`},
		{name: "missing entity id", raw: `{"version": "1.0", "sections": [{"id": "mission", "type": "mission", "visible": true}]}`},
		{name: "no sections", raw: `{"version": "1.0", "entity_id": "t-1", "sections": []}`},
		{name: "empty section id", raw: `{"version": "1.0", "entity_id": "t-1", "sections": [{"id": "", "type": "mission"}]}`},
		{name: "duplicate section id", raw: `{"version": "1.0", "entity_id": "t-1", "sections": [{"id": "a", "type": "mission"}, {"id": "a", "type": "scope"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.raw))
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
		})
	}
}

func TestUnmarshalUnknownVersion(t *testing.T) {
	raw := `{"version": "9.9", "entity_id": "t-1", "entity_type": "task",
		"sections": [{"id": "mission", "type": "mission", "label": "Mission",
		"content": "hello", "order": 0, "visible": true}]}`

	doc, err := Unmarshal([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "9.9", doc.Version)
}

func TestUnmarshalContentShapeSniffing(t *testing.T) {
	raw := `{"version": "1.0", "entity_id": "t-1", "entity_type": "task", "sections": [
		{"id": "a", "type": "mission", "content": "text", "visible": true},
		{"id": "b", "type": "tech", "content": ["x", "y"], "visible": true},
		{"id": "c", "type": "casting", "content": [{"id": "p1", "name": "Ada", "role": "reviewer"}], "visible": true},
		{"id": "d", "type": "scope", "content": 42, "visible": true},
		{"id": "e", "type": "custom", "visible": true}
	]}`

	doc, err := Unmarshal([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, types.Text("text"), doc.Sections[0].Content)
	assert.Equal(t, types.TagList{"x", "y"}, doc.Sections[1].Content)
	assert.Equal(t, types.PersonaList{{ID: "p1", Name: "Ada", Role: types.RoleReviewer}}, doc.Sections[2].Content)
	// Unrecognized shapes degrade to empty content instead of failing.
	assert.Nil(t, doc.Sections[3].Content)
	assert.Nil(t, doc.Sections[4].Content)
}
