// Package arena pre-allocates the token storage that workers write into.
//
// One backing buffer is carved into a slot per worker. Each slot is a
// capacity-limited view of its own region, so a worker can never write into
// a neighbour's bytes: an append past the slot's capacity moves that slot to
// fresh memory instead.
package arena

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/partition"
)

// Separator terminates every token stored in a slot.
const Separator = 0x00

// Arena owns the slots for one run.
type Arena struct {
	slots []*Slot
}

// Slot is the output region of a single worker.
type Slot struct {
	buf   []byte
	count int
}

// SlotSize is the number of bytes reserved for a range: the range itself plus
// the lookahead margin and one separator for a word that runs past the end.
func SlotSize(r partition.ByteRange, margin int) uint64 {
	return r.Len() + uint64(margin) + 1
}

// New allocates one slot per range.
func New(ranges []partition.ByteRange, margin int) (a *Arena, err error) {
	var total uint64
	for _, r := range ranges {
		total += SlotSize(r, margin)
	}

	backing, err := allocate(total)
	if err != nil {
		return nil, err
	}

	a = &Arena{slots: make([]*Slot, len(ranges))}
	var off uint64
	for i, r := range ranges {
		end := off + SlotSize(r, margin)
		a.slots[i] = &Slot{buf: backing[off:off:end]}
		off = end
	}
	return a, nil
}

// allocate turns a failed make into ErrAllocation instead of a crash.
func allocate(n uint64) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %d bytes: %v", models.ErrAllocation, n, r)
		}
	}()
	return make([]byte, n), nil
}

// Len returns the number of slots.
func (a *Arena) Len() int {
	return len(a.slots)
}

// Slot returns the slot reserved for worker i.
func (a *Arena) Slot(i int) *Slot {
	return a.slots[i]
}

// NewSlot returns a standalone slot with the given capacity.
func NewSlot(capacity int) *Slot {
	return &Slot{buf: make([]byte, 0, capacity)}
}

// Append copies word into the slot and terminates it with Separator.
func (s *Slot) Append(word []byte) {
	s.buf = append(s.buf, word...)
	s.buf = append(s.buf, Separator)
	s.count++
}

// Count returns the number of tokens stored.
func (s *Slot) Count() int {
	return s.count
}

// Bytes returns the raw slot content, separators included.
func (s *Slot) Bytes() []byte {
	return s.buf
}

// Tokens yields each stored token in the order it was appended.
// The yielded slices alias the slot and must not be modified.
func (s *Slot) Tokens() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		rest := s.buf
		for len(rest) > 0 {
			i := bytes.IndexByte(rest, Separator)
			if i < 0 {
				i = len(rest)
			}
			if !yield(rest[:i:i]) {
				return
			}
			if i == len(rest) {
				return
			}
			rest = rest[i+1:]
		}
	}
}

// Reset empties the slot but keeps its memory.
func (s *Slot) Reset() {
	s.buf = s.buf[:0]
	s.count = 0
}
