// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"time"
)

// SchemaVersion is the document schema version written by this build.
// Readers tolerate unknown future values with best-effort parsing.
const SchemaVersion = "1.0"

// EntityType identifies which kind of project entity owns a context document.
// It is descriptive only; the core never validates it against an external store.
type EntityType string

const (
	EntityProject  EntityType = "project"
	EntityTask     EntityType = "task"
	EntityMaterial EntityType = "material"
	EntityLabor    EntityType = "labor"
)

// SectionType is the fixed vocabulary of context section kinds. Every type
// except SectionCustom is expected at most once per document by convention;
// custom sections are unlimited.
type SectionType string

const (
	SectionMission      SectionType = "mission"
	SectionScope        SectionType = "scope"
	SectionTech         SectionType = "tech"
	SectionCasting      SectionType = "casting"
	SectionDeliverables SectionType = "deliverables"
	SectionStrategyTags SectionType = "strategy_tags"
	SectionConstraints  SectionType = "constraints"
	SectionCustom       SectionType = "custom"
)

// PersonaRole classifies a persona's relationship to the described entity.
type PersonaRole string

const (
	RolePrimaryAgent PersonaRole = "primary_agent"
	RoleTargetUser   PersonaRole = "target_user"
	RoleStakeholder  PersonaRole = "stakeholder"
	RoleReviewer     PersonaRole = "reviewer"
)

// Persona describes one actor in a casting section.
type Persona struct {
	// ID is a stable identifier for the persona within its section.
	ID string `json:"id" yaml:"id"`

	// Name is the persona's display name.
	Name string `json:"name" yaml:"name"`

	// Role classifies the persona: primary_agent, target_user, stakeholder, reviewer.
	Role PersonaRole `json:"role" yaml:"role"`

	// Description optionally elaborates on the persona's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Content is the tagged union of section content shapes. Exactly three
// variants exist: Text, TagList, and PersonaList. The section's Type field
// and its content shape are not mechanically linked, so consumers must
// type-switch on the concrete variant before use and degrade to a no-op
// when the shape does not match expectations.
type Content interface {
	isContent()
}

// Text is free-form string content, used by mission, scope, constraints,
// and custom sections.
type Text string

// TagList is an ordered list of short string entries, used by tech,
// deliverables, and strategy_tags sections.
type TagList []string

// PersonaList is an ordered list of personas, used by the casting section.
type PersonaList []Persona

func (Text) isContent()        {}
func (TagList) isContent()     {}
func (PersonaList) isContent() {}

// Section is one labeled block of content within a context document.
type Section struct {
	// ID is unique within the owning document.
	ID string `json:"id" yaml:"id"`

	// Type is the section's kind from the fixed vocabulary.
	Type SectionType `json:"type" yaml:"type"`

	// Label is the human-readable display name, independent of Type.
	Label string `json:"label" yaml:"label"`

	// Content is the section's payload. Nil means empty.
	Content Content `json:"content" yaml:"content"`

	// Order is the sort key for display and export.
	Order int `json:"order" yaml:"order"`

	// Visible controls whether the section participates in export and
	// scoring. Hidden sections are retained but skipped.
	Visible bool `json:"visible" yaml:"visible"`
}

// DocumentMetadata carries document timestamps and template provenance.
type DocumentMetadata struct {
	// CreatedAt is set at construction and never changes afterward.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is refreshed on every content mutation.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// TemplateID records the template this document was applied from, if any.
	TemplateID string `json:"template_id,omitempty" yaml:"template_id,omitempty"`

	// TemplateName records the applied template's display name, if any.
	TemplateName string `json:"template_name,omitempty" yaml:"template_name,omitempty"`
}

// ContextDocument is the root entity: a structured AI-context document owned
// by exactly one project entity. Mutating operations return a new value
// rather than editing in place.
type ContextDocument struct {
	// Version is the schema version tag.
	Version string `json:"version" yaml:"version"`

	// EntityID is the opaque identifier of the owning entity.
	EntityID string `json:"entity_id" yaml:"entity_id"`

	// EntityType discriminates the owning entity's kind.
	EntityType EntityType `json:"entity_type" yaml:"entity_type"`

	// Sections is the ordered section sequence. IDs are unique within the
	// document; order matters for display and export, not for scoring.
	Sections []Section `json:"sections" yaml:"sections"`

	// Metadata holds timestamps and template provenance.
	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`
}

// sectionJSON is the wire form of Section: content travels as its natural
// JSON shape (string, string array, or object array) instead of a
// discriminated envelope, matching what external tooling stores.
type sectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Label   string          `json:"label"`
	Content json.RawMessage `json:"content,omitempty"`
	Order   int             `json:"order"`
	Visible bool            `json:"visible"`
}

// MarshalJSON encodes the section with content in its natural JSON shape.
func (s Section) MarshalJSON() ([]byte, error) {
	out := sectionJSON{
		ID:      s.ID,
		Type:    s.Type,
		Label:   s.Label,
		Order:   s.Order,
		Visible: s.Visible,
	}
	if s.Content != nil {
		raw, err := json.Marshal(s.Content)
		if err != nil {
			return nil, err
		}
		out.Content = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the section, sniffing the content shape. Content
// that matches none of the three variants is dropped rather than failing
// the document; downstream consumers treat it as empty.
func (s *Section) UnmarshalJSON(data []byte) error {
	var in sectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ID = in.ID
	s.Type = in.Type
	s.Label = in.Label
	s.Order = in.Order
	s.Visible = in.Visible
	s.Content = decodeContent(in.Content)
	return nil
}

// decodeContent sniffs a raw JSON value into one of the three content
// variants. Unknown shapes decode to nil.
func decodeContent(raw json.RawMessage) Content {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return Text(text)
	}

	// An empty array decodes as an empty TagList; arrays of objects fall
	// through to PersonaList.
	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return TagList(tags)
	}

	var personas []Persona
	if err := json.Unmarshal(raw, &personas); err == nil {
		return PersonaList(personas)
	}

	return nil
}
