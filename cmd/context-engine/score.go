// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/context-engine/internal/docfile"
	"github.com/pdiddy/context-engine/internal/score"
	"github.com/pdiddy/context-engine/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the BMAD quality report for an entity's context document",
	Long: `Score evaluates the document against the BMAD rubric (Brief / Motivated /
Aligned / Detailed) and prints the total, the per-principle breakdown, and
up to three suggestions. Hidden sections are excluded from scoring.`,
	RunE: runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	entityID, _ := cmd.Flags().GetString("entity")
	rawType, _ := cmd.Flags().GetString("type")

	if entityID == "" {
		return fmt.Errorf("--entity is required")
	}
	entityType, err := parseEntityType(rawType)
	if err != nil {
		return err
	}

	doc, err := docfile.Load(documentConfig(cmd), entityID, entityType)
	if err != nil {
		return err
	}

	result := score.NewEngine(nil).Score(doc)

	jsonOut, _ := cmd.Flags().GetBool("json")
	yamlOut, _ := cmd.Flags().GetBool("yaml")
	switch {
	case jsonOut:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case yamlOut:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		printScore(result)
		return nil
	}
}

func printScore(result types.Score) {
	fmt.Printf("total      %3d/100\n", result.Total)
	fmt.Printf("brief      %3d\n", result.Principles.Brief)
	fmt.Printf("motivated  %3d\n", result.Principles.Motivated)
	fmt.Printf("aligned    %3d\n", result.Principles.Aligned)
	fmt.Printf("detailed   %3d\n", result.Principles.Detailed)
	if len(result.Suggestions) > 0 {
		fmt.Println("\nsuggestions:")
		for _, s := range result.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}

func init() {
	scoreCmd.Flags().String("entity", "", "entity identifier (required)")
	scoreCmd.Flags().String("type", "project", "entity type: project, task, material, labor")
	scoreCmd.Flags().Bool("json", false, "output the report as JSON")
	scoreCmd.Flags().Bool("yaml", false, "output the report as YAML")

	rootCmd.AddCommand(scoreCmd)
}
