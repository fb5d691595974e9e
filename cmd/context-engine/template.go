// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/context-engine/internal/docfile"
	"github.com/pdiddy/context-engine/internal/template"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable context document templates",
	Long: `Template manages named, reusable context documents in a local SQLite
database. Save captures an entity's current document as a template; apply
copies a template's sections onto another entity, rewriting the entity
identity while preserving content and order.`,
}

// --- list subcommand ---

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List global templates plus those scoped to a project",
	RunE:  runTemplateList,
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	projectID, _ := cmd.Flags().GetString("project")

	store, err := template.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	yamlOut, _ := cmd.Flags().GetBool("yaml")
	if yamlOut {
		return store.ExportYAML(context.Background(), os.Stdout, projectID)
	}

	templates, err := store.List(context.Background(), projectID)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Println("no templates")
		return nil
	}
	for _, tpl := range templates {
		scope := "project"
		if tpl.IsGlobal {
			scope = "global"
		}
		fmt.Printf("%s  %-8s %s\n", tpl.ID, scope, tpl.Name)
		if tpl.Description != "" {
			fmt.Printf("%38s%s\n", "", tpl.Description)
		}
	}
	return nil
}

// --- save subcommand ---

var templateSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save an entity's current document as a template",
	RunE:  runTemplateSave,
}

func runTemplateSave(cmd *cobra.Command, args []string) error {
	entityID, _ := cmd.Flags().GetString("entity")
	rawType, _ := cmd.Flags().GetString("type")
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	global, _ := cmd.Flags().GetBool("global")
	projectID, _ := cmd.Flags().GetString("project")

	if entityID == "" || name == "" {
		return fmt.Errorf("--entity and --name are required")
	}
	entityType, err := parseEntityType(rawType)
	if err != nil {
		return err
	}

	doc, err := docfile.Load(documentConfig(cmd), entityID, entityType)
	if err != nil {
		return err
	}

	store, err := template.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	tpl, err := store.Save(context.Background(), name, description, global, projectID, doc)
	if err != nil {
		return err
	}
	fmt.Printf("saved template %s (%s)\n", tpl.ID, tpl.Name)
	return nil
}

// --- apply subcommand ---

var templateApplyCmd = &cobra.Command{
	Use:   "apply [template-id]",
	Short: "Apply a template to an entity, replacing its document",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateApply,
}

func runTemplateApply(cmd *cobra.Command, args []string) error {
	entityID, _ := cmd.Flags().GetString("entity")
	rawType, _ := cmd.Flags().GetString("type")

	if entityID == "" {
		return fmt.Errorf("--entity is required")
	}
	entityType, err := parseEntityType(rawType)
	if err != nil {
		return err
	}

	store, err := template.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := store.Apply(context.Background(), args[0], entityID, entityType)
	if err != nil {
		return err
	}
	if err := docfile.Save(documentConfig(cmd), doc); err != nil {
		return err
	}
	fmt.Printf("applied template %s to %s %s\n", args[0], entityType, entityID)
	return nil
}

// --- delete subcommand ---

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [template-id]",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	store, err := template.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted template %s\n", args[0])
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	templateCmd.PersistentFlags().String("project", "", "project scope for non-global templates")

	templateListCmd.Flags().Bool("yaml", false, "output the catalog as YAML")

	templateSaveCmd.Flags().String("entity", "", "entity whose document to capture (required)")
	templateSaveCmd.Flags().String("type", "project", "entity type: project, task, material, labor")
	templateSaveCmd.Flags().String("name", "", "template display name (required)")
	templateSaveCmd.Flags().String("description", "", "template description")
	templateSaveCmd.Flags().Bool("global", false, "make the template available to every project")

	templateApplyCmd.Flags().String("entity", "", "target entity identifier (required)")
	templateApplyCmd.Flags().String("type", "project", "entity type: project, task, material, labor")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateApplyCmd)
	templateCmd.AddCommand(templateDeleteCmd)

	rootCmd.AddCommand(templateCmd)
}
