package count

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/db"
	"github.com/dtnitsch/word-frequency-counter/pkg/mapreduce"
)

// historyTopWords is how much of the ranking is kept in the run history.
const historyTopWords = 25

// BuildSummary turns a run outcome into the record printed and stored.
func BuildSummary(config *models.CountConfig, outcome *Outcome, runErr error, startTime time.Time, top int) *models.RunSummary {
	duration := time.Since(startTime)
	summary := &models.RunSummary{
		StartedAt:            startTime,
		InputPath:            config.InputPath,
		OutputPath:           config.OutputPath,
		RequestedParallelism: config.Parallelism,
		Duration:             duration,
		DurationSeconds:      duration.Seconds(),
	}

	if outcome != nil {
		summary.FileSizeBytes = outcome.SizeBytes
		summary.Workers = len(outcome.Ranges)
	}

	switch {
	case runErr != nil:
		summary.Status = models.RunStatusFailed
		summary.Error = runErr.Error()
		summary.ErrorType = models.ErrorType(runErr)
	case outcome.SizeBytes == 0:
		summary.Status = models.RunStatusEmpty
	default:
		summary.Status = models.RunStatusSuccess
		summary.TotalWords = outcome.TotalWords
		summary.DistinctWords = len(outcome.Ranked)
		summary.OutputDigest = outcome.Digest
		summary.TopKeywords = mapreduce.TopKeywords(outcome.Ranked, top)
	}

	return summary
}

// WorkerRecords converts worker results for the run history.
func WorkerRecords(outcome *Outcome) []db.WorkerRecord {
	if outcome == nil {
		return nil
	}
	records := make([]db.WorkerRecord, 0, len(outcome.Workers))
	for _, w := range outcome.Workers {
		records = append(records, db.WorkerRecord{
			WorkerID:   w.WorkerID,
			RangeStart: w.Range.Start,
			RangeEnd:   w.Range.End,
			Words:      w.Count,
			ErrorType:  w.ErrorType,
		})
	}
	return records
}

// historyWords returns the part of the ranking stored with a run.
func historyWords(outcome *Outcome) []mapreduce.RankedEntry {
	if outcome == nil || len(outcome.Ranked) == 0 {
		return nil
	}
	return outcome.Ranked[:min(historyTopWords, len(outcome.Ranked))]
}

// IsTextFormat reports whether format selects the plain text summary.
func IsTextFormat(format string) bool {
	f := strings.ToLower(format)
	return f == "" || f == "text"
}

// WriteSummary prints the summary as text, json or yaml.
func WriteSummary(w io.Writer, summary *models.RunSummary, format string) error {
	if IsTextFormat(format) {
		return writeText(w, summary)
	}
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, s *models.RunSummary) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Word frequency count: %s\n", s.Status)
	if s.RunID != 0 {
		fmt.Fprintf(&sb, "Run: %d\n", s.RunID)
	}
	fmt.Fprintf(&sb, "Input: %s (%d bytes)\n", s.InputPath, s.FileSizeBytes)
	fmt.Fprintf(&sb, "Workers: %d (requested %d)\n", s.Workers, s.RequestedParallelism)
	if s.Error != "" {
		fmt.Fprintf(&sb, "Error: %s [%s]\n", s.Error, s.ErrorType)
	}
	if s.Status == models.RunStatusSuccess {
		fmt.Fprintf(&sb, "Words: %d total, %d distinct\n", s.TotalWords, s.DistinctWords)
		fmt.Fprintf(&sb, "Output: %s (digest %s)\n", s.OutputPath, s.OutputDigest)
	}
	if len(s.TopKeywords) > 0 {
		fmt.Fprintf(&sb, "\n--- Top %d Words ---\n", len(s.TopKeywords))
		for i, kw := range s.TopKeywords {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, kw)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
