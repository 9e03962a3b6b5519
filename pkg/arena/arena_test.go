package arena

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/partition"
)

func collect(s *Slot) []string {
	var words []string
	for tok := range s.Tokens() {
		words = append(words, string(tok))
	}
	return words
}

func TestSlotAppendAndTokens(t *testing.T) {
	s := NewSlot(16)
	s.Append([]byte("abc"))
	s.Append([]byte("d"))

	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
	if got, want := string(s.Bytes()), "abc\x00d\x00"; got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
	if got := collect(s); !slices.Equal(got, []string{"abc", "d"}) {
		t.Errorf("Tokens() = %q, want [abc d]", got)
	}

	s.Reset()
	if s.Count() != 0 || len(collect(s)) != 0 {
		t.Errorf("after Reset() Count() = %d, tokens = %q", s.Count(), collect(s))
	}
}

func TestTokensStopsEarly(t *testing.T) {
	s := NewSlot(16)
	for _, w := range []string{"a", "b", "c"} {
		s.Append([]byte(w))
	}

	var seen []string
	for tok := range s.Tokens() {
		seen = append(seen, string(tok))
		if len(seen) == 2 {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Errorf("early break saw %q, want [a b]", seen)
	}
}

func TestArenaSlotsAreIsolated(t *testing.T) {
	ranges := []partition.ByteRange{{Start: 0, End: 2}, {Start: 2, End: 4}}
	a, err := New(ranges, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", a.Len())
	}

	second := a.Slot(1)
	second.Append([]byte("xy"))

	// Overfill the first slot well past its reserved capacity.
	first := a.Slot(0)
	for range 10 {
		first.Append([]byte("overflow"))
	}

	if got := collect(second); !slices.Equal(got, []string{"xy"}) {
		t.Errorf("neighbour slot corrupted: %q", got)
	}
	if first.Count() != 10 {
		t.Errorf("first.Count() = %d, want 10", first.Count())
	}
}

func TestSlotSize(t *testing.T) {
	r := partition.ByteRange{Start: 10, End: 20}
	if got := SlotSize(r, 64); got != 75 {
		t.Errorf("SlotSize() = %d, want 75", got)
	}
}

func TestNewReportsAllocationFailure(t *testing.T) {
	ranges := []partition.ByteRange{{Start: 0, End: math.MaxUint64 / 2}}
	_, err := New(ranges, 0)
	if !errors.Is(err, models.ErrAllocation) {
		t.Errorf("New() error = %v, want ErrAllocation", err)
	}
}
