package storage

import (
	"fmt"
	"os"
	"time"

	"github.com/dtnitsch/word-frequency-counter/internal/common"
	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/mapreduce"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes uint64
	ModTime   time.Time
}

// OpenInput opens the input for concurrent ReadAt calls and returns its size.
func (s *Storage) OpenInput(filePath string) (*os.File, *FileStats, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", models.ErrInputOpen, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: %w", models.ErrInputSize, err)
	}
	if !info.Mode().IsRegular() || info.Size() < 0 {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: %s is not a regular file", models.ErrInputSize, filePath)
	}

	return f, &FileStats{
		SizeBytes: uint64(info.Size()),
		ModTime:   info.ModTime(),
	}, nil
}

// SaveRanking overwrites filePath with the ranking and returns the digest of
// the bytes written. Bytes already written are left in place on failure.
func (s *Storage) SaveRanking(filePath string, ranked []mapreduce.RankedEntry) (digest string, err error) {
	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrOutputWrite, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", models.ErrOutputWrite, closeErr)
		}
	}()

	d := common.NewDigestWriter(f)
	if err := mapreduce.WriteRanking(d, ranked); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrOutputWrite, err)
	}

	return d.Sum(), nil
}
