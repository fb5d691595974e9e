// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contextdoc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/context-engine/pkg/types"
)

// ParseError reports a stored document that could not be decoded or that
// decoded to a shape missing required fields. Callers branch on it with
// errors.As to apply the fall-back-to-empty recovery policy.
type ParseError struct {
	// Reason describes what was wrong with the stored bytes.
	Reason string

	// Err is the underlying decode error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing context document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing context document: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Marshal encodes a document as indented JSON for at-rest storage.
func Marshal(doc *types.ContextDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding context document: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a stored document. Malformed JSON or a document missing
// its required fields yields a *ParseError; the documented caller policy is
// to substitute a fresh empty document for the same entity, accepting the
// data loss, rather than surfacing the failure to the end user.
//
// Unknown schema versions are accepted as-is: decoding is best effort and
// unrecognized fields are ignored.
func Unmarshal(raw []byte) (*types.ContextDocument, error) {
	var doc types.ContextDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}
	if doc.Version == "" {
		return nil, &ParseError{Reason: "missing version"}
	}
	if doc.EntityID == "" {
		return nil, &ParseError{Reason: "missing entity_id"}
	}
	if len(doc.Sections) == 0 {
		return nil, &ParseError{Reason: "no sections"}
	}
	seen := make(map[string]bool, len(doc.Sections))
	for _, s := range doc.Sections {
		if s.ID == "" {
			return nil, &ParseError{Reason: "section with empty id"}
		}
		if seen[s.ID] {
			return nil, &ParseError{Reason: fmt.Sprintf("duplicate section id %q", s.ID)}
		}
		seen[s.ID] = true
	}
	return &doc, nil
}

// ApplyTemplate deserializes a template's payload and retargets it to the
// given entity. Section content and order are preserved; entity identity,
// template provenance, and UpdatedAt are rewritten.
func ApplyTemplate(tpl *types.ContextTemplate, targetID string, targetType types.EntityType) (*types.ContextDocument, error) {
	doc, err := Unmarshal([]byte(tpl.Payload))
	if err != nil {
		return nil, fmt.Errorf("applying template %s: %w", tpl.ID, err)
	}
	doc.EntityID = targetID
	doc.EntityType = targetType
	doc.Metadata.TemplateID = tpl.ID
	doc.Metadata.TemplateName = tpl.Name
	doc.Metadata.UpdatedAt = time.Now().UTC()
	return doc, nil
}
