package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/persona-evaluator/internal/db"
	"github.com/jonathan/persona-evaluator/internal/types"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "List stored evaluation runs or show one run's report",
	Long: `Without --id, lists the most recent evaluation runs persisted to the database.

With --id, prints the run's composite summary and its stored markdown report.`,
	RunE: runRunsCmd,
}

var (
	runsDatabaseURL string
	runsLimit       int
	runsID          string
)

func init() {
	runsCommand.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runsCommand.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
	runsCommand.Flags().StringVar(&runsID, "id", "", "Show a single run by its UUID")
	rootCmd.AddCommand(runsCommand)
}

func runRunsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if runsID != "" {
		runID, err := uuid.Parse(runsID)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", runsID, err)
		}
		return showRun(ctx, database, runID)
	}

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No evaluation runs recorded.")
		return nil
	}

	for _, run := range runs {
		completed := "-"
		if run.CompletedAt != nil {
			completed = run.CompletedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s  %-15s %-24s %-10s started %s  completed %s\n",
			run.ID, run.Status, run.CandidateID, run.Model,
			run.CreatedAt.Format("2006-01-02 15:04:05"), completed)
	}
	return nil
}

// showRun prints one run's metadata, composite summary, and stored report.
func showRun(ctx context.Context, database *db.DB, runID uuid.UUID) error {
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}

	fmt.Printf("Run:       %s\n", run.ID)
	fmt.Printf("Candidate: %s\n", run.CandidateID)
	fmt.Printf("Model:     %s\n", run.Model)
	fmt.Printf("Status:    %s\n", run.Status)

	compositeJSON, err := database.GetArtifact(ctx, runID, db.StepComposite)
	if err != nil {
		return err
	}
	if compositeJSON != nil {
		var composite types.CompositeResult
		if err := json.Unmarshal(compositeJSON, &composite); err != nil {
			return fmt.Errorf("failed to decode composite artifact: %w", err)
		}
		fmt.Printf("Score:     %.2f (%s, %s consensus)\n",
			composite.WeightedScore, composite.AssessmentTier, composite.ConsensusLevel)
	}

	report, err := database.GetTextArtifact(ctx, runID, db.StepReport)
	if err != nil {
		return err
	}
	if report == "" {
		fmt.Println("\nNo report stored for this run.")
		return nil
	}

	fmt.Println()
	fmt.Println(report)
	return nil
}
