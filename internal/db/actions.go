package db

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/word-frequency-counter/internal/count"
	dbpkg "github.com/dtnitsch/word-frequency-counter/pkg/db"
)

// RunsAction lists the most recent runs.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(count.DBPath(c))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := c.App.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	// Print table header
	fmt.Fprintf(w, "%-6s %-20s %-8s %-8s %-10s %-10s %-18s %s\n",
		"ID", "Started", "Workers", "Status", "Words", "Distinct", "Digest", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-8d %-8s %-10d %-10d %-18s %s\n",
			r.RunID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Workers,
			r.Status,
			r.TotalWords,
			r.DistinctWords,
			r.OutputDigest,
			r.InputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'wfc run <id>' to see details\n")

	return nil
}

// RunAction shows one run, the latest when no ID is given.
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(count.DBPath(c))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}

	format := c.String("format")
	if err := count.WriteSummary(c.App.Writer, run, format); err != nil {
		return err
	}

	if !count.IsTextFormat(format) {
		return nil
	}

	workers, err := database.GetRunWorkers(runID)
	if err != nil {
		return err
	}
	if len(workers) == 0 {
		return nil
	}

	w := c.App.Writer
	fmt.Fprintf(w, "\n--- Workers ---\n")
	for _, wr := range workers {
		status := "ok"
		if wr.ErrorType != "" {
			status = wr.ErrorType
		}
		fmt.Fprintf(w, "  #%d [%d,%d) %d words %s\n", wr.WorkerID, wr.RangeStart, wr.RangeEnd, wr.Words, status)
	}
	return nil
}
