// Package main provides the entry point for the persona evaluation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "persona_eval",
	Short: "Multi-persona candidate evaluation engine",
	Long:  "persona_eval scores a candidate resume against a job posting through a panel of weighted evaluator personas, aggregates the results deterministically, and renders a markdown evaluation report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
