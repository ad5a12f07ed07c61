package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/routefs-dev/routefs/internal/errors"
	"github.com/routefs-dev/routefs/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new routefs project",
		Long: `Create a new project with an example content tree.

Templates:
  minimal   A single page and its layout
  full      Complete starter with pages, descriptors and an API route (default)
  api       API routes only, no pages

Examples:
  routefs create my-site
  routefs create my-site --template=minimal
  routefs create my-api --template=api`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], template, description)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "full", "Project template (minimal, full, api)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func runCreate(name, templateName, description string) error {
	printBanner()
	fmt.Println("  Creating a new routefs project...")
	fmt.Println()

	if !isValidProjectName(name) {
		return errors.New("L003").
			WithDetail("Project name " + name + " is not filesystem-safe").
			WithSuggestion("Use lowercase letters, numbers, and hyphens")
	}

	projectDir, err := filepath.Abs(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		return errors.New("L001").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	if description == "" {
		description = "A routefs site"
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	info("Creating project directory...")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}

	info("Creating project from '%s' template...", templateName)
	if err := tmpl.Create(projectDir, templates.Config{
		ProjectName: name,
		Description: description,
	}); err != nil {
		os.RemoveAll(projectDir)
		return err
	}

	fmt.Println()
	success("Created %s/", name)
	fmt.Println()
	fmt.Println("  To get started:")
	fmt.Println()
	fmt.Printf("    cd %s\n", name)
	fmt.Println("    routefs serve --dev")
	fmt.Println()
	fmt.Println("  Your site will be running at http://localhost:3000")
	fmt.Println()

	return nil
}

func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == ' ' || r == '/' || r == '\\' {
			return false
		}
		if i == 0 && r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}
