// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/context-engine/internal/docfile"
	"github.com/pdiddy/context-engine/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render an entity's context document as prompt markup",
	Long: `Export serializes the document into XML-like markup. Compact mode emits
only the visible sections for inline prompt embedding; full mode adds a
declaration header and per-section comments for file export.

With --out the markup is written to the given file, and with --file to the
configured export directory; otherwise it goes to stdout.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	entityID, _ := cmd.Flags().GetString("entity")
	rawType, _ := cmd.Flags().GetString("type")
	rawMode, _ := cmd.Flags().GetString("mode")
	out, _ := cmd.Flags().GetString("out")
	toFile, _ := cmd.Flags().GetBool("file")

	if entityID == "" {
		return fmt.Errorf("--entity is required")
	}
	entityType, err := parseEntityType(rawType)
	if err != nil {
		return err
	}

	var mode export.Mode
	switch rawMode {
	case "compact":
		mode = export.ModeCompact
	case "full":
		mode = export.ModeFull
	default:
		return fmt.Errorf("unknown mode %q: expected compact or full", rawMode)
	}

	doc, err := docfile.Load(documentConfig(cmd), entityID, entityType)
	if err != nil {
		return err
	}

	markup := export.Serialize(doc, mode)

	if out == "" && !toFile {
		fmt.Print(markup)
		return nil
	}

	if out == "" {
		outputDir := viper.GetString("export.output_dir")
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
		out = filepath.Join(outputDir, fmt.Sprintf("%s-%s.xml", entityType, entityID))
	}
	if err := os.WriteFile(out, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("exported %s\n", out)
	return nil
}

func init() {
	exportCmd.Flags().String("entity", "", "entity identifier (required)")
	exportCmd.Flags().String("type", "project", "entity type: project, task, material, labor")
	exportCmd.Flags().String("mode", "compact", "serialization mode: compact or full")
	exportCmd.Flags().String("out", "", "output file path")
	exportCmd.Flags().Bool("file", false, "write to the configured export directory")

	rootCmd.AddCommand(exportCmd)
}
