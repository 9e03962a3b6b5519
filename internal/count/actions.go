package count

import (
	"log/slog"
	"slices"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/db"
	"github.com/dtnitsch/word-frequency-counter/pkg/storage"
)

// CountAction runs a word frequency count and prints its summary.
func CountAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, config)

	logger.Info("Starting word frequency count",
		"parallelism", config.Parallelism,
		"input", config.InputPath,
		"output", config.OutputPath,
		"max_word_length", config.MaxWordLength)

	if err := config.Validate(); err != nil {
		return err
	}

	outcome, runErr := run(logger, config, &storage.Storage{})
	summary := BuildSummary(config, outcome, runErr, startTime, c.Int("top"))

	if !c.Bool("no-history") {
		recordRun(logger, DBPath(c), summary, outcome)
	}

	if err := WriteSummary(c.App.Writer, summary, c.String("format")); err != nil {
		logger.Error("failed to write summary", "error", err)
	}

	if runErr != nil {
		logger.Error("Word frequency count failed", "error", runErr, "error_type", summary.ErrorType)
		return runErr
	}
	return nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(c *cli.Context, config *models.CountConfig) {
	if c.IsSet("parallelism") {
		config.Parallelism = c.Int("parallelism")
	}
	if c.IsSet("input") {
		config.InputPath = c.String("input")
	}
	if c.IsSet("output") {
		config.OutputPath = c.String("output")
	}
	if c.IsSet("max-word-length") {
		config.MaxWordLength = c.Int("max-word-length")
	}
}

// recordRun stores the run in the history database. Failures only warn:
// the count itself already succeeded or failed on its own.
func recordRun(logger *slog.Logger, dbPath string, summary *models.RunSummary, outcome *Outcome) {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Warn("Failed to open run history", "error", err)
		return
	}
	defer database.Close()

	runID, err := database.InsertRun(summary, WorkerRecords(outcome), historyWords(outcome))
	if err != nil {
		logger.Warn("Failed to record run", "error", err)
		return
	}
	summary.RunID = runID
	logger.Info("Run recorded", "run_id", runID, "db", database.Path())
}

// DBFlag returns the run history database flag shared by every command.
func DBFlag() cli.Flag {
	return &cli.StringFlag{Name: "db", Usage: "run history database (default: next to the binary)"}
}

// DBPath returns the --db value from the innermost command that set it, so
// the flag works both before and after the subcommand name.
func DBPath(c *cli.Context) string {
	for _, ctx := range c.Lineage() {
		if slices.Contains(ctx.LocalFlagNames(), "db") {
			return ctx.String("db")
		}
	}
	return ""
}

// Flags returns the flags of the count command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "parallelism", Aliases: []string{"p"}, Value: models.DefaultParallelism, Usage: "number of workers"},
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: models.DefaultInputFile, Usage: "input text file"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: models.DefaultOutputFile, Usage: "output file for the ranking"},
		&cli.StringFlag{Name: "config", Usage: "optional YAML config file"},
		&cli.IntFlag{Name: "max-word-length", Value: models.DefaultMaxWordLength, Usage: "lookahead margin in bytes past each range"},
		&cli.StringFlag{Name: "format", Value: "text", Usage: "summary format: text, json or yaml"},
		&cli.IntFlag{Name: "top", Value: 25, Usage: "number of top words in the summary"},
		DBFlag(),
		&cli.BoolFlag{Name: "no-history", Usage: "do not record the run in the history database"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Usage: "log every worker"},
	}
}
