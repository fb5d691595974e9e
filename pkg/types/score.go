// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Principle is one of the four BMAD quality principles a section type
// contributes to.
type Principle string

const (
	PrincipleBrief     Principle = "brief"
	PrincipleMotivated Principle = "motivated"
	PrincipleAligned   Principle = "aligned"
	PrincipleDetailed  Principle = "detailed"
)

// PrincipleScores holds the 0-100 score for each BMAD principle.
type PrincipleScores struct {
	// Brief rewards concise framing sections (scope, constraints).
	Brief int `json:"brief" yaml:"brief"`

	// Motivated rewards a stated mission.
	Motivated int `json:"motivated" yaml:"motivated"`

	// Aligned rewards casting and strategy tags.
	Aligned int `json:"aligned" yaml:"aligned"`

	// Detailed rewards tech stack, deliverables, and custom detail.
	Detailed int `json:"detailed" yaml:"detailed"`
}

// Score is the BMAD quality report for one context document.
type Score struct {
	// Total is the rounded mean of the four principle scores, 0-100.
	Total int `json:"total" yaml:"total"`

	// Principles breaks the score down per principle.
	Principles PrincipleScores `json:"principles" yaml:"principles"`

	// Suggestions lists up to three actionable improvements, in the order
	// the offending sections appear in the document.
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}
