package count

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/arena"
	"github.com/dtnitsch/word-frequency-counter/pkg/mapreduce"
	"github.com/dtnitsch/word-frequency-counter/pkg/partition"
	"github.com/dtnitsch/word-frequency-counter/pkg/resolver"
	"github.com/dtnitsch/word-frequency-counter/pkg/storage"
)

// WorkerResult holds the outcome of one worker. The slot belongs to the
// worker until runWorkers returns.
type WorkerResult struct {
	WorkerID  int
	Range     partition.ByteRange
	Slot      *arena.Slot
	Count     int
	Error     error
	ErrorType string
}

// Outcome is everything a run produced, successful or not.
type Outcome struct {
	SizeBytes  uint64
	Ranges     []partition.ByteRange
	Workers    []WorkerResult
	Ranked     []mapreduce.RankedEntry
	TotalWords uint64
	Digest     string
}

// worker resolves one range into its slot. A panic is reported as an
// abnormal termination of this worker only.
func worker(id int, logger *slog.Logger, res *resolver.Resolver, src io.ReaderAt, size uint64, rng partition.ByteRange, slot *arena.Slot) (result WorkerResult) {
	result = WorkerResult{WorkerID: id, Range: rng, Slot: slot}
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("%w: worker %d panicked: %v", models.ErrWorkerAbnormal, id, r)
			result.ErrorType = models.ErrorType(result.Error)
			logger.Error("Worker crashed", "worker_id", id, "range", rng.String(), "error", result.Error)
		}
	}()

	logger.Debug("Worker started", "worker_id", id, "start", rng.Start, "end", rng.End)

	n, err := res.Resolve(src, size, rng, slot)
	if err != nil {
		result.Error = fmt.Errorf("%w: worker %d: %w", models.ErrWorkerAbnormal, id, err)
		result.ErrorType = models.ErrorType(result.Error)
		logger.Error("Worker failed", "worker_id", id, "range", rng.String(), "error", err)
		return result
	}

	result.Count = n
	logger.Debug("Worker finished", "worker_id", id, "words", n)
	return result
}

// runWorkers starts one worker per range and waits for every one of them,
// even after a failure. Results are indexed by worker ID.
func runWorkers(logger *slog.Logger, res *resolver.Resolver, src io.ReaderAt, size uint64, ranges []partition.ByteRange, a *arena.Arena) ([]WorkerResult, error) {
	var g errgroup.Group
	results := make(chan WorkerResult, len(ranges))

	for i, rng := range ranges {
		g.Go(func() error {
			result := worker(i, logger, res, src, size, rng, a.Slot(i))
			results <- result
			return result.Error
		})
	}

	err := g.Wait()
	close(results)
	logger.Info("All count workers finished", "workers", len(ranges))

	all := make([]WorkerResult, len(ranges))
	for result := range results {
		all[result.WorkerID] = result
	}

	if err != nil {
		return all, fmt.Errorf("at least one worker did not terminate properly: %w", err)
	}
	return all, nil
}

// run counts the words of config.InputPath and writes the ranking to
// config.OutputPath. The output is only written if every worker succeeded.
func run(logger *slog.Logger, config *models.CountConfig, s *storage.Storage) (*Outcome, error) {
	f, stats, err := s.OpenInput(config.InputPath)
	if err != nil {
		return &Outcome{}, err
	}
	defer f.Close()

	outcome := &Outcome{SizeBytes: stats.SizeBytes}
	if stats.SizeBytes == 0 {
		logger.Info("Input file is empty. We are done.", "input", config.InputPath)
		return outcome, nil
	}

	outcome.Ranges = partition.Split(stats.SizeBytes, config.Parallelism)
	logger.Info("Starting concurrent count phase",
		"size_bytes", stats.SizeBytes,
		"requested_parallelism", config.Parallelism,
		"workers", len(outcome.Ranges),
		"chunk_size", partition.ChunkSize(stats.SizeBytes, len(outcome.Ranges)))

	res := resolver.New(config.MaxWordLength)
	a, err := arena.New(outcome.Ranges, res.Margin())
	if err != nil {
		return outcome, err
	}

	outcome.Workers, err = runWorkers(logger, res, f, stats.SizeBytes, outcome.Ranges, a)
	if err != nil {
		return outcome, err
	}

	logger.Info("Starting MapReduce phase")
	intermediate := make([]map[string]uint32, 0, len(outcome.Workers))
	for _, w := range outcome.Workers {
		intermediate = append(intermediate, mapreduce.Map(w.Slot.Tokens()))
	}
	counts := mapreduce.Reduce(intermediate)
	outcome.Ranked = mapreduce.Rank(counts)
	outcome.TotalWords = mapreduce.Total(counts)
	logger.Info("Reduce phase complete", "total_words", outcome.TotalWords, "distinct_words", len(outcome.Ranked))

	outcome.Digest, err = s.SaveRanking(config.OutputPath, outcome.Ranked)
	if err != nil {
		return outcome, err
	}
	logger.Info("Ranking written", "output", config.OutputPath, "digest", outcome.Digest)

	return outcome, nil
}
