// Package partition divides a file into disjoint byte ranges, one per worker.
package partition

import "fmt"

// ByteRange is a half-open interval [Start, End) of file offsets.
type ByteRange struct {
	Start uint64
	End   uint64
}

// Len returns the number of bytes in the range.
func (r ByteRange) Len() uint64 {
	return r.End - r.Start
}

// Empty reports whether the range holds no bytes.
func (r ByteRange) Empty() bool {
	return r.Start >= r.End
}

func (r ByteRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Effective caps the requested parallelism at the file size, so no worker is
// ever assigned less than one byte by the division itself.
func Effective(parallelism int, size uint64) int {
	if parallelism < 1 {
		return 0
	}
	if uint64(parallelism) > size {
		return int(size)
	}
	return parallelism
}

// ChunkSize returns the number of bytes per worker: ceil(size / workers).
func ChunkSize(size uint64, workers int) uint64 {
	if workers < 1 {
		return 0
	}
	n := uint64(workers)
	return (size + n - 1) / n
}

// Split returns Effective(parallelism, size) ranges of ChunkSize bytes each.
// Ranges are clamped to size, so with ceiling division the trailing ranges
// may be shorter than the others or empty.
func Split(size uint64, parallelism int) []ByteRange {
	workers := Effective(parallelism, size)
	if workers == 0 {
		return nil
	}

	chunk := ChunkSize(size, workers)
	ranges := make([]ByteRange, workers)
	for i := range ranges {
		start := min(uint64(i)*chunk, size)
		end := min(start+chunk, size)
		ranges[i] = ByteRange{Start: start, End: end}
	}
	return ranges
}
