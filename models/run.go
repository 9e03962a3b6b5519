package models

import "time"

// RunStatus is the outcome of a count run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
	RunStatusEmpty   RunStatus = "empty"
)

// RunSummary describes one count run. It is printed at the end of a run
// and stored in the run history.
type RunSummary struct {
	RunID                int64         `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	StartedAt            time.Time     `json:"started_at" yaml:"started_at"`
	InputPath            string        `json:"input" yaml:"input"`
	OutputPath           string        `json:"output" yaml:"output"`
	FileSizeBytes        uint64        `json:"file_size_bytes" yaml:"file_size_bytes"`
	RequestedParallelism int           `json:"requested_parallelism" yaml:"requested_parallelism"`
	Workers              int           `json:"workers" yaml:"workers"`
	Status               RunStatus     `json:"status" yaml:"status"`
	Error                string        `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType            string        `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	TotalWords           uint64        `json:"total_words" yaml:"total_words"`
	DistinctWords        int           `json:"distinct_words" yaml:"distinct_words"`
	OutputDigest         string        `json:"output_digest,omitempty" yaml:"output_digest,omitempty"`
	Duration             time.Duration `json:"-" yaml:"-"`
	DurationSeconds      float64       `json:"duration_seconds" yaml:"duration_seconds"`
	TopKeywords          []string      `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}
