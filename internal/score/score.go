// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score implements the BMAD quality engine: a pure function from a
// context document to a 0-100 score with per-principle breakdown and up to
// three actionable suggestions. Scoring reads only the document and the
// rubric table; it never touches the clock or any other ambient state.
package score

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/context-engine/pkg/types"
)

// maxSuggestions caps the suggestion list; extra findings are dropped in
// section order without prioritization.
const maxSuggestions = 3

// Rubric is the static scoring rule for one section type.
type Rubric struct {
	// Principle is the BMAD principle this section type contributes to.
	Principle types.Principle

	// MaxLength is the character budget for text content. Zero means no
	// budget. Exceeding it by any amount scores 70; there are no tiers.
	MaxLength int

	// MinItems is the recommended minimum entry count for list content.
	// Zero means any non-empty list scores full.
	MinItems int
}

// Rubrics maps each section type to its rubric. The table is read-only
// configuration; pass an alternative table to NewEngine to change weights
// without touching the algorithm.
type Rubrics map[types.SectionType]Rubric

// DefaultRubrics is the canonical rubric table.
var DefaultRubrics = Rubrics{
	types.SectionMission:      {Principle: types.PrincipleMotivated, MaxLength: 500},
	types.SectionScope:        {Principle: types.PrincipleBrief, MaxLength: 1000},
	types.SectionConstraints:  {Principle: types.PrincipleBrief, MaxLength: 800},
	types.SectionTech:         {Principle: types.PrincipleDetailed, MinItems: 1},
	types.SectionDeliverables: {Principle: types.PrincipleDetailed, MinItems: 2},
	types.SectionCustom:       {Principle: types.PrincipleDetailed},
	types.SectionCasting:      {Principle: types.PrincipleAligned, MinItems: 1},
	types.SectionStrategyTags: {Principle: types.PrincipleAligned, MinItems: 2},
}

// Engine scores documents against a fixed rubric table.
type Engine struct {
	rubrics Rubrics
}

// NewEngine builds a scorer over the given rubric table. A nil table uses
// DefaultRubrics.
func NewEngine(rubrics Rubrics) *Engine {
	if rubrics == nil {
		rubrics = DefaultRubrics
	}
	return &Engine{rubrics: rubrics}
}

// Score evaluates a document. Hidden sections are excluded entirely; a
// section whose type has no rubric, or whose content shape matches none of
// the three variants, contributes nothing. Each principle's score is the
// maximum over its sections; one well-formed section per principle is enough
// to max that principle out. The total is the rounded mean of the four.
func (e *Engine) Score(doc *types.ContextDocument) types.Score {
	byPrinciple := map[types.Principle]int{
		types.PrincipleBrief:     0,
		types.PrincipleMotivated: 0,
		types.PrincipleAligned:   0,
		types.PrincipleDetailed:  0,
	}
	var suggestions []string

	for _, section := range doc.Sections {
		if !section.Visible {
			continue
		}
		rubric, ok := e.rubrics[section.Type]
		if !ok {
			continue
		}
		score, suggestion, scored := scoreSection(section, rubric)
		if !scored {
			continue
		}
		if score > byPrinciple[rubric.Principle] {
			byPrinciple[rubric.Principle] = score
		}
		if suggestion != "" {
			suggestions = append(suggestions, suggestion)
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	principles := types.PrincipleScores{
		Brief:     byPrinciple[types.PrincipleBrief],
		Motivated: byPrinciple[types.PrincipleMotivated],
		Aligned:   byPrinciple[types.PrincipleAligned],
		Detailed:  byPrinciple[types.PrincipleDetailed],
	}
	sum := principles.Brief + principles.Motivated + principles.Aligned + principles.Detailed
	total := int(math.Round(float64(sum) / 4))

	return types.Score{
		Total:       total,
		Principles:  principles,
		Suggestions: suggestions,
	}
}

// scoreSection applies the rubric to one section. The third return is false
// when the content shape does not match what the section type expects, in
// which case the section contributes nothing: the type field and the content
// shape are not mechanically linked, so mismatches skip instead of crashing.
func scoreSection(section types.Section, rubric Rubric) (int, string, bool) {
	if isListType(section.Type) {
		switch content := section.Content.(type) {
		case types.TagList:
			return scoreList(section, rubric, len(content))
		case types.PersonaList:
			return scoreList(section, rubric, len(content))
		case nil:
			// Absent content scores like an empty list.
			return scoreList(section, rubric, 0)
		default:
			return 0, "", false
		}
	}

	switch content := section.Content.(type) {
	case types.Text:
		return scoreText(section, rubric, string(content))
	case nil:
		return scoreText(section, rubric, "")
	default:
		return 0, "", false
	}
}

func scoreText(section types.Section, rubric Rubric, text string) (int, string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Sprintf("Fill in the %s section to strengthen the %s principle.",
			section.Label, rubric.Principle), true
	}
	if length := utf8.RuneCountInString(text); rubric.MaxLength > 0 && length > rubric.MaxLength {
		return 70, fmt.Sprintf("Shorten the %s section: %d characters exceeds the %d character budget.",
			section.Label, length, rubric.MaxLength), true
	}
	return 100, "", true
}

func scoreList(section types.Section, rubric Rubric, count int) (int, string, bool) {
	if count == 0 {
		return 0, fmt.Sprintf("Add entries to the %s section to strengthen the %s principle.",
			section.Label, rubric.Principle), true
	}
	if rubric.MinItems > 0 && count < rubric.MinItems {
		return 50, fmt.Sprintf("The %s section has %d/%d recommended entries.",
			section.Label, count, rubric.MinItems), true
	}
	return 100, "", true
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
