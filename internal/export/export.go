// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders context documents into the XML-like markup consumed
// by LLM tooling. Serialization is deterministic and total: any document
// built from the three content variants produces well-formed markup, and
// content that matches no variant is skipped rather than failing the export.
//
// The element vocabulary (element names matching section types, the persona
// role/name attributes) is the wire contract for external tooling and must
// stay stable across versions.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/context-engine/pkg/types"
)

// Mode selects the serialization flavor.
type Mode string

const (
	// ModeCompact emits the minimal form for inline prompt embedding:
	// visible sections only, no declaration, no comments.
	ModeCompact Mode = "compact"

	// ModeFull emits the annotated file-export form: an XML declaration,
	// a generated-at header, and a descriptive comment per section.
	ModeFull Mode = "full"
)

// escaper encodes the reserved markup characters. The ampersand mapping is
// listed first so Replacer never double-escapes.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var unescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&amp;", "&",
)

// Escape entity-escapes a string for element or attribute content.
func Escape(s string) string { return escaper.Replace(s) }

// Unescape is the exact inverse of Escape for strings Escape produced.
func Unescape(s string) string { return unescaper.Replace(s) }

// Serialize renders the document in the given mode. Unknown modes render
// compact. The result is always well-formed; an empty or default document
// yields a bare root element.
func Serialize(doc *types.ContextDocument, mode Mode) string {
	var b strings.Builder

	if mode == ModeFull {
		b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		fmt.Fprintf(&b, "<!-- AI context for %s %s, updated %s -->\n",
			commentSafe(string(doc.EntityType)), commentSafe(doc.EntityID),
			doc.Metadata.UpdatedAt.UTC().Format(time.RFC3339))
	}

	fmt.Fprintf(&b, "<context entity=\"%s\" type=\"%s\" version=\"%s\">\n",
		Escape(doc.EntityID), Escape(string(doc.EntityType)), Escape(doc.Version))

	for _, section := range visibleByOrder(doc) {
		writeSection(&b, section, mode)
	}

	b.WriteString("</context>\n")
	return b.String()
}

// visibleByOrder returns the visible sections sorted by Order ascending,
// preserving document order on ties.
func visibleByOrder(doc *types.ContextDocument) []types.Section {
	sections := make([]types.Section, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		if s.Visible {
			sections = append(sections, s)
		}
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}

func writeSection(b *strings.Builder, section types.Section, mode Mode) {
	element := elementName(section)

	// Content whose shape contradicts the section type emits nothing;
	// the model is not structurally enforced at the boundary, so the
	// serializer degrades instead of producing a misleading element.
	if section.Content != nil && isListType(section.Type) != isListContent(section.Content) {
		return
	}

	// Absent content renders as the empty form of the nominal shape: list
	// sections emit an empty element, text sections are omitted.
	if section.Content == nil && isListType(section.Type) {
		section.Content = types.TagList(nil)
	}

	switch content := section.Content.(type) {
	case types.Text:
		// Empty text sections are omitted entirely, not emitted empty.
		if strings.TrimSpace(string(content)) == "" {
			return
		}
		annotate(b, section, mode)
		fmt.Fprintf(b, "  <%s>%s</%s>\n", element, Escape(string(content)), element)

	case types.TagList:
		annotate(b, section, mode)
		fmt.Fprintf(b, "  <%s>\n", element)
		for _, tag := range content {
			fmt.Fprintf(b, "    <item>%s</item>\n", Escape(tag))
		}
		fmt.Fprintf(b, "  </%s>\n", element)

	case types.PersonaList:
		annotate(b, section, mode)
		fmt.Fprintf(b, "  <%s>\n", element)
		for _, p := range content {
			if p.Description == "" {
				fmt.Fprintf(b, "    <persona role=\"%s\" name=\"%s\"/>\n",
					Escape(string(p.Role)), Escape(p.Name))
				continue
			}
			fmt.Fprintf(b, "    <persona role=\"%s\" name=\"%s\">%s</persona>\n",
				Escape(string(p.Role)), Escape(p.Name), Escape(p.Description))
		}
		fmt.Fprintf(b, "  </%s>\n", element)
	}
	// Content outside the three variants (including nil) emits nothing.
}

// annotate writes the full-mode section comment.
func annotate(b *strings.Builder, section types.Section, mode Mode) {
	if mode != ModeFull {
		return
	}
	fmt.Fprintf(b, "  <!-- %s -->\n", commentSafe(section.Label))
}

// elementName maps a section to its element. Custom sections all share the
// "custom" element; the label comment distinguishes them in full mode.
func elementName(section types.Section) string {
	switch section.Type {
	case types.SectionMission, types.SectionScope, types.SectionTech,
		types.SectionCasting, types.SectionDeliverables,
		types.SectionStrategyTags, types.SectionConstraints,
		types.SectionCustom:
		return string(section.Type)
	}
	return string(types.SectionCustom)
}

// isListType reports whether a section type conventionally carries list
// content.
func isListType(typ types.SectionType) bool {
	switch typ {
	case types.SectionTech, types.SectionCasting, types.SectionDeliverables, types.SectionStrategyTags:
		return true
	}
	return false
}

// isListContent reports whether content is one of the two list variants.
func isListContent(content types.Content) bool {
	switch content.(type) {
	case types.TagList, types.PersonaList:
		return true
	}
	return false
}

// commentSafe keeps arbitrary text legal inside an XML comment, where "--"
// is forbidden. A single replacement pass can leave new "--" pairs behind
// for runs of three or more dashes, so replace until none remain.
func commentSafe(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}
