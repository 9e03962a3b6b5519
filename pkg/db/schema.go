package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs table: one row per count invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    input_path TEXT NOT NULL,
    output_path TEXT NOT NULL,
    file_size_bytes INTEGER NOT NULL DEFAULT 0,
    requested_parallelism INTEGER NOT NULL,
    workers INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL,             -- success, failed, empty
    error_type TEXT,
    error_message TEXT,
    total_words INTEGER NOT NULL DEFAULT 0,
    distinct_words INTEGER NOT NULL DEFAULT 0,
    output_digest TEXT,               -- xxh3 of the ranking file, equal across parallelism
    duration_seconds REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_path);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(output_digest);

-- Run workers: the byte range and outcome of every worker
CREATE TABLE IF NOT EXISTS run_workers (
    run_id INTEGER NOT NULL,
    worker_id INTEGER NOT NULL,
    range_start INTEGER NOT NULL,
    range_end INTEGER NOT NULL,
    words INTEGER NOT NULL DEFAULT 0,
    error_type TEXT,
    PRIMARY KEY (run_id, worker_id),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

-- Run words: the top of the ranking, kept for later inspection
CREATE TABLE IF NOT EXISTS run_words (
    run_id INTEGER NOT NULL,
    rank INTEGER NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, rank),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_words_word ON run_words(word);
`
