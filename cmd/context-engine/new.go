// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/context-engine/internal/contextdoc"
	"github.com/pdiddy/context-engine/internal/docfile"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty context document for an entity",
	Long: `New creates a context document with the canonical default sections
(mission, scope, tech stack, casting, deliverables, strategy tags), all
visible and empty, and writes it to the context directory. An existing
document for the same entity is left untouched unless --force is given.`,
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	entityID, _ := cmd.Flags().GetString("entity")
	rawType, _ := cmd.Flags().GetString("type")
	force, _ := cmd.Flags().GetBool("force")

	if entityID == "" {
		return fmt.Errorf("--entity is required")
	}
	entityType, err := parseEntityType(rawType)
	if err != nil {
		return err
	}

	cfg := documentConfig(cmd)
	path := docfile.Path(cfg, entityID, entityType)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("document already exists at %s (use --force to overwrite)", path)
		}
	}

	doc := contextdoc.New(entityID, entityType)
	if err := docfile.Save(cfg, doc); err != nil {
		return err
	}
	fmt.Printf("created %s (%d sections)\n", path, len(doc.Sections))
	return nil
}

func init() {
	newCmd.Flags().String("entity", "", "entity identifier (required)")
	newCmd.Flags().String("type", "project", "entity type: project, task, material, labor")
	newCmd.Flags().Bool("force", false, "overwrite an existing document")

	rootCmd.AddCommand(newCmd)
}
