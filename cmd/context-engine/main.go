// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the context-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/context-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the context-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "context-engine",
	Short: "Structured AI-context documents for project entities",
	Long: `context-engine manages structured AI-context documents attached to project
entities (projects, tasks, materials, labor records). Documents carry typed
sections (mission, scope, tech stack, casting, deliverables, strategy tags),
are scored against the BMAD rubric (Brief / Motivated / Aligned / Detailed),
and export as XML-like markup safe for embedding in LLM prompts.

Each operation is a subcommand: new creates a document, set mutates a
section, score prints the BMAD report, export renders markup, and template
manages reusable saved documents.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./context-engine.yaml or ~/.config/context-engine/config.yaml)")
	rootCmd.PersistentFlags().String("context-dir", "", "directory for context document files (default: contexts)")
	rootCmd.PersistentFlags().String("templates-dir", "", "directory for the template database (default: templates)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("context-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "context-engine"))
		}
	}

	viper.SetDefault("documents.context_dir", "contexts")
	viper.SetDefault("store.templates_dir", "templates")
	viper.SetDefault("export.output_dir", "exports")

	viper.SetEnvPrefix("CONTEXT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// documentConfig resolves the document layer settings from flags and config.
func documentConfig(cmd *cobra.Command) types.DocumentConfig {
	dir, _ := cmd.Flags().GetString("context-dir")
	if dir == "" {
		dir = viper.GetString("documents.context_dir")
	}
	return types.DocumentConfig{ContextDir: dir}
}

// storeConfig resolves the template store settings from flags and config.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dir, _ := cmd.Flags().GetString("templates-dir")
	if dir == "" {
		dir = viper.GetString("store.templates_dir")
	}
	return types.StoreConfig{TemplatesDir: dir}
}

// parseEntityType validates the --type flag value.
func parseEntityType(raw string) (types.EntityType, error) {
	switch t := types.EntityType(raw); t {
	case types.EntityProject, types.EntityTask, types.EntityMaterial, types.EntityLabor:
		return t, nil
	}
	return "", fmt.Errorf("unknown entity type %q: expected project, task, material, or labor", raw)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
