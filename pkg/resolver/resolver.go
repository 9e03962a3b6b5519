// Package resolver extracts the words that start inside one byte range of a
// file, reading only that range plus one byte before it and a bounded
// lookahead after it.
//
// A word belongs to the range holding its first byte. The byte before the
// range tells the resolver whether the range opens in the middle of a word
// owned by the previous range; the lookahead lets it finish the last word
// that starts before the range end.
package resolver

import (
	"errors"
	"fmt"
	"io"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/arena"
	"github.com/dtnitsch/word-frequency-counter/pkg/partition"
	"github.com/dtnitsch/word-frequency-counter/pkg/tokenizer"
)

// Resolver scans byte ranges with a fixed lookahead margin.
type Resolver struct {
	maxWordLength int
}

// New creates a Resolver whose lookahead is maxWordLength bytes.
func New(maxWordLength int) *Resolver {
	return &Resolver{maxWordLength: max(maxWordLength, 1)}
}

// Margin returns the lookahead in bytes.
func (r *Resolver) Margin() int {
	return r.maxWordLength
}

// Resolve appends every word starting in rng to slot, in file order, and
// returns how many were appended. size is the length of src.
func (r *Resolver) Resolve(src io.ReaderAt, size uint64, rng partition.ByteRange, slot *arena.Slot) (int, error) {
	end := min(rng.End, size)
	if rng.Start >= end {
		return 0, nil
	}

	base := rng.Start
	if base > 0 {
		base--
	}
	w := &window{src: src, base: base, size: size}
	if err := w.fill(end + uint64(r.maxWordLength)); err != nil {
		return 0, err
	}

	// bound is the range end as an index into the window.
	bound := int(end - base)
	pos := 0
	if rng.Start > 0 {
		switch {
		case !tokenizer.IsWordByte(w.buf[0]):
			pos = tokenizer.NextBoundary(w.buf, 1, false)
		case end-rng.Start == 1:
			// The only byte in range follows a word byte: it is either the
			// tail of that word or a separator. Nothing starts here.
			return 0, nil
		default:
			pos = tokenizer.NextBoundary(w.buf, 1, true)
			pos = tokenizer.NextBoundary(w.buf, pos, false)
		}
	}

	count := 0
	for pos < len(w.buf) && pos < bound {
		wordEnd := tokenizer.NextBoundary(w.buf, pos, true)
		for wordEnd == len(w.buf) && !w.complete() {
			// Double the window so a long run of word bytes is read in
			// logarithmically many steps.
			next := max(w.end()+uint64(r.maxWordLength), w.base+2*uint64(len(w.buf)))
			if err := w.fill(next); err != nil {
				slot.Reset()
				return 0, err
			}
			wordEnd = tokenizer.NextBoundary(w.buf, wordEnd, true)
		}

		slot.Append(w.buf[pos:wordEnd])
		count++

		pos = tokenizer.NextBoundary(w.buf, wordEnd, false)
	}

	return count, nil
}

// window is a growing copy of the file starting at base.
type window struct {
	src  io.ReaderAt
	base uint64
	size uint64
	buf  []byte
}

func (w *window) end() uint64 {
	return w.base + uint64(len(w.buf))
}

func (w *window) complete() bool {
	return w.end() >= w.size
}

// fill reads the file up to limit, clamped to the file size.
func (w *window) fill(limit uint64) error {
	limit = min(limit, w.size)
	have := w.end()
	if limit <= have {
		return nil
	}

	buf, err := grow(w.buf, limit-have)
	if err != nil {
		return err
	}

	p := buf[len(w.buf):]
	n, err := w.src.ReadAt(p, int64(have))
	if n == len(p) {
		err = nil
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return fmt.Errorf("failed to read input at offset %d: %w", have, err)
	}

	w.buf = buf
	return nil
}

// grow extends buf by n bytes, reporting ErrAllocation if the memory cannot be obtained.
func grow(buf []byte, n uint64) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: scan window of %d bytes: %v", models.ErrAllocation, uint64(len(buf))+n, r)
		}
	}()
	out = make([]byte, uint64(len(buf))+n)
	copy(out, buf)
	return out, nil
}
