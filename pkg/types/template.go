// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ContextTemplate is a named, reusable context document stored for later
// application to other entities. The document travels as its serialized
// JSON payload so the store never depends on the document schema.
type ContextTemplate struct {
	// ID is the template's stable identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the display name shown when listing templates.
	Name string `json:"name" yaml:"name"`

	// Description optionally explains what the template is for.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Payload is the serialized ContextDocument this template carries.
	Payload string `json:"payload" yaml:"payload"`

	// IsGlobal marks templates available to every project.
	IsGlobal bool `json:"is_global" yaml:"is_global"`

	// ProjectID scopes a non-global template to one project.
	ProjectID string `json:"project_id,omitempty" yaml:"project_id,omitempty"`

	// CreatedAt is when the template was first saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the template was last overwritten.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}
