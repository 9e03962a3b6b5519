package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/mapreduce"
)

// WorkerRecord is the stored outcome of one worker.
type WorkerRecord struct {
	WorkerID   int
	RangeStart uint64
	RangeEnd   uint64
	Words      int
	ErrorType  string
}

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// InsertRun stores a run with its workers and top words in one transaction.
// Returns the new run_id.
func (db *DB) InsertRun(run *models.RunSummary, workers []WorkerRecord, top []mapreduce.RankedEntry) (runID int64, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // the insert error is the one worth reporting
		}
	}()

	result, err := tx.Exec(`
		INSERT INTO runs (started_at, input_path, output_path, file_size_bytes, requested_parallelism,
			workers, status, error_type, error_message, total_words, distinct_words, output_digest, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC(), run.InputPath, run.OutputPath, int64(run.FileSizeBytes), run.RequestedParallelism,
		run.Workers, string(run.Status), nullIfEmpty(run.ErrorType), nullIfEmpty(run.Error),
		int64(run.TotalWords), run.DistinctWords, nullIfEmpty(run.OutputDigest), run.DurationSeconds)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, w := range workers {
		_, err = tx.Exec(`
			INSERT INTO run_workers (run_id, worker_id, range_start, range_end, words, error_type)
			VALUES (?, ?, ?, ?, ?, ?)
		`, runID, w.WorkerID, int64(w.RangeStart), int64(w.RangeEnd), w.Words, nullIfEmpty(w.ErrorType))
		if err != nil {
			return 0, fmt.Errorf("failed to insert worker %d: %w", w.WorkerID, err)
		}
	}

	for i, e := range top {
		_, err = tx.Exec(`
			INSERT INTO run_words (run_id, rank, word, count)
			VALUES (?, ?, ?, ?)
		`, runID, i+1, e.Word, int64(e.Count))
		if err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", e.Word, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

const runColumns = `run_id, started_at, input_path, output_path, file_size_bytes, requested_parallelism,
	workers, status, COALESCE(error_type, ''), COALESCE(error_message, ''), total_words, distinct_words,
	COALESCE(output_digest, ''), duration_seconds`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.RunSummary, error) {
	var run models.RunSummary
	var status string
	err := row.Scan(&run.RunID, &run.StartedAt, &run.InputPath, &run.OutputPath, &run.FileSizeBytes,
		&run.RequestedParallelism, &run.Workers, &status, &run.ErrorType, &run.Error,
		&run.TotalWords, &run.DistinctWords, &run.OutputDigest, &run.DurationSeconds)
	if err != nil {
		return nil, err
	}
	run.Status = models.RunStatus(status)
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]*models.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`SELECT `+runColumns+` FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunByID returns one run including its stored top words.
func (db *DB) GetRunByID(runID int64) (*models.RunSummary, error) {
	run, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	words, err := db.GetRunWords(runID)
	if err != nil {
		return nil, err
	}
	run.TopKeywords = mapreduce.TopKeywords(words, len(words))
	return run, nil
}

// GetRunWords returns the stored ranking of a run in rank order.
func (db *DB) GetRunWords(runID int64) ([]mapreduce.RankedEntry, error) {
	rows, err := db.Query(`SELECT word, count FROM run_words WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run words: %w", err)
	}
	defer rows.Close()

	var words []mapreduce.RankedEntry
	for rows.Next() {
		var e mapreduce.RankedEntry
		if err := rows.Scan(&e.Word, &e.Count); err != nil {
			return nil, fmt.Errorf("failed to scan run word: %w", err)
		}
		words = append(words, e)
	}
	return words, rows.Err()
}

// GetRunWorkers returns the workers of a run ordered by worker ID.
func (db *DB) GetRunWorkers(runID int64) ([]WorkerRecord, error) {
	rows, err := db.Query(`
		SELECT worker_id, range_start, range_end, words, COALESCE(error_type, '')
		FROM run_workers WHERE run_id = ? ORDER BY worker_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run workers: %w", err)
	}
	defer rows.Close()

	var workers []WorkerRecord
	for rows.Next() {
		var w WorkerRecord
		if err := rows.Scan(&w.WorkerID, &w.RangeStart, &w.RangeEnd, &w.Words, &w.ErrorType); err != nil {
			return nil, fmt.Errorf("failed to scan run worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// LatestRunID returns the ID of the most recent run.
func (db *DB) LatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow(`SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRunNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
