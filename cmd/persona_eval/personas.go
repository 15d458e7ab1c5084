package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/persona-evaluator/internal/personas"
)

var personasCommand = &cobra.Command{
	Use:   "personas",
	Short: "List the evaluator personas and their weights",
	RunE:  runPersonasCmd,
}

var personasDirFlag string

func init() {
	personasCommand.Flags().StringVar(&personasDirFlag, "personas-dir", "", "Directory with persona definition files (optional, built-in set used otherwise)")
	rootCmd.AddCommand(personasCommand)
}

func runPersonasCmd(_ *cobra.Command, _ []string) error {
	var registry *personas.Registry
	var err error
	if personasDirFlag != "" {
		registry, err = personas.LoadDir(personasDirFlag)
	} else {
		registry, err = personas.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("failed to load personas: %w", err)
	}

	for _, p := range registry.Enabled() {
		fmt.Printf("%s (%s)\n", p.DisplayName, p.Key)
		fmt.Printf("  Weight:   %.2f\n", p.Weight)
		fmt.Printf("  Criteria: %s\n", strings.Join(p.CriterionNames(), ", "))
		if len(p.DomainKeywords) > 0 {
			fmt.Printf("  Domains:  %s\n", strings.Join(p.DomainKeywords, ", "))
		}
		fmt.Println()
	}
	return nil
}
