// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/context-engine/internal/contextdoc"
	"github.com/pdiddy/context-engine/internal/docfile"
	"github.com/pdiddy/context-engine/pkg/types"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace a section's content or toggle its visibility",
	Long: `Set mutates one section of an entity's context document. Exactly one of
--text, --tags, --personas, --show, or --hide must be given. Text content
replaces the section wholesale; --tags takes a comma-separated list;
--personas takes role:name pairs, comma-separated.

A section ID that does not exist in the document is tolerated: the document
is left unchanged and the command reports it without failing.`,
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	entityID, _ := cmd.Flags().GetString("entity")
	rawType, _ := cmd.Flags().GetString("type")
	sectionID, _ := cmd.Flags().GetString("section")

	if entityID == "" || sectionID == "" {
		return fmt.Errorf("--entity and --section are required")
	}
	entityType, err := parseEntityType(rawType)
	if err != nil {
		return err
	}

	cfg := documentConfig(cmd)
	doc, recovered, err := docfile.LoadOrCreate(cfg, entityID, entityType)
	if err != nil {
		return err
	}
	if recovered {
		fmt.Fprintf(os.Stderr, "warning: no readable document for %s %s, starting fresh\n", entityType, entityID)
	}

	updated, err := applyMutation(cmd, doc, sectionID)
	if err != nil {
		return err
	}
	if updated == doc {
		fmt.Fprintf(os.Stderr, "warning: section %q not found, document unchanged\n", sectionID)
		return nil
	}

	if err := docfile.Save(cfg, updated); err != nil {
		return err
	}
	fmt.Printf("updated section %q\n", sectionID)
	return nil
}

// applyMutation picks the mutation from the flags. It returns the input
// document unchanged when the section ID is unknown.
func applyMutation(cmd *cobra.Command, doc *types.ContextDocument, sectionID string) (*types.ContextDocument, error) {
	text, _ := cmd.Flags().GetString("text")
	tags, _ := cmd.Flags().GetString("tags")
	personas, _ := cmd.Flags().GetString("personas")
	show, _ := cmd.Flags().GetBool("show")
	hide, _ := cmd.Flags().GetBool("hide")

	set := 0
	for _, given := range []bool{cmd.Flags().Changed("text"), cmd.Flags().Changed("tags"),
		cmd.Flags().Changed("personas"), show, hide} {
		if given {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of --text, --tags, --personas, --show, --hide is required")
	}

	switch {
	case cmd.Flags().Changed("text"):
		return contextdoc.ReplaceSectionContent(doc, sectionID, types.Text(text)), nil
	case cmd.Flags().Changed("tags"):
		return contextdoc.ReplaceSectionContent(doc, sectionID, types.TagList(splitList(tags))), nil
	case cmd.Flags().Changed("personas"):
		list, err := parsePersonas(personas)
		if err != nil {
			return nil, err
		}
		return contextdoc.ReplaceSectionContent(doc, sectionID, list), nil
	case show:
		return contextdoc.SetVisibility(doc, sectionID, true), nil
	default:
		return contextdoc.SetVisibility(doc, sectionID, false), nil
	}
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parsePersonas parses role:name pairs into a persona list. Persona IDs are
// derived from position, which keeps repeated invocations deterministic.
func parsePersonas(raw string) (types.PersonaList, error) {
	var list types.PersonaList
	for i, part := range splitList(raw) {
		role, name, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("persona %q: expected role:name", part)
		}
		switch r := types.PersonaRole(strings.TrimSpace(role)); r {
		case types.RolePrimaryAgent, types.RoleTargetUser, types.RoleStakeholder, types.RoleReviewer:
			list = append(list, types.Persona{
				ID:   fmt.Sprintf("persona-%d", i+1),
				Name: strings.TrimSpace(name),
				Role: r,
			})
		default:
			return nil, fmt.Errorf("persona %q: unknown role %q", part, role)
		}
	}
	return list, nil
}

func init() {
	setCmd.Flags().String("entity", "", "entity identifier (required)")
	setCmd.Flags().String("type", "project", "entity type: project, task, material, labor")
	setCmd.Flags().String("section", "", "section ID to mutate (required)")
	setCmd.Flags().String("text", "", "replace with text content")
	setCmd.Flags().String("tags", "", "replace with a comma-separated tag list")
	setCmd.Flags().String("personas", "", "replace with role:name personas, comma-separated")
	setCmd.Flags().Bool("show", false, "make the section visible")
	setCmd.Flags().Bool("hide", false, "hide the section from export and scoring")

	rootCmd.AddCommand(setCmd)
}
