package resolver

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/arena"
	"github.com/dtnitsch/word-frequency-counter/pkg/partition"
	"github.com/dtnitsch/word-frequency-counter/pkg/tokenizer"
)

// resolveAll runs the resolver over every range and concatenates the words.
func resolveAll(t *testing.T, r *Resolver, input []byte, ranges []partition.ByteRange) [][]string {
	t.Helper()

	src := bytes.NewReader(input)
	perRange := make([][]string, len(ranges))
	for i, rng := range ranges {
		slot := arena.NewSlot(int(arena.SlotSize(rng, r.Margin())))
		n, err := r.Resolve(src, uint64(len(input)), rng, slot)
		if err != nil {
			t.Fatalf("Resolve(%v) error = %v", rng, err)
		}
		if n != slot.Count() {
			t.Fatalf("Resolve(%v) = %d, slot holds %d", rng, n, slot.Count())
		}
		for tok := range slot.Tokens() {
			perRange[i] = append(perRange[i], string(tok))
		}
	}
	return perRange
}

func flatten(perRange [][]string) []string {
	var all []string
	for _, words := range perRange {
		all = append(all, words...)
	}
	return all
}

func reference(input []byte) []string {
	var words []string
	for _, w := range tokenizer.Tokenize(input) {
		words = append(words, string(w))
	}
	return words
}

func TestResolve_WordStraddlingBoundary(t *testing.T) {
	input := []byte("abc def")
	ranges := []partition.ByteRange{{Start: 0, End: 5}, {Start: 5, End: 7}}

	got := resolveAll(t, New(64), input, ranges)
	if !slices.Equal(got[0], []string{"abc", "def"}) {
		t.Errorf("range 0 words = %q, want [abc def]", got[0])
	}
	if len(got[1]) != 0 {
		t.Errorf("range 1 words = %q, want none", got[1])
	}
}

func TestResolve_Branches(t *testing.T) {
	input := []byte("ab cd ef")

	tests := []struct {
		name string
		rng  partition.ByteRange
		want []string
	}{
		{"start of file", partition.ByteRange{Start: 0, End: 2}, []string{"ab"}},
		{"preceded by separator", partition.ByteRange{Start: 3, End: 5}, []string{"cd"}},
		{"range opens on separator", partition.ByteRange{Start: 2, End: 4}, []string{"cd"}},
		{"tail of previous word skipped", partition.ByteRange{Start: 4, End: 7}, []string{"ef"}},
		{"one byte tail", partition.ByteRange{Start: 1, End: 2}, nil},
		{"one byte separator after word", partition.ByteRange{Start: 2, End: 3}, nil},
		{"one byte word start", partition.ByteRange{Start: 6, End: 7}, []string{"ef"}},
		{"word starting at end belongs to next range", partition.ByteRange{Start: 0, End: 3}, []string{"ab"}},
		{"empty range", partition.ByteRange{Start: 8, End: 8}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveAll(t, New(64), input, []partition.ByteRange{tt.rng})[0]
			if !slices.Equal(got, tt.want) {
				t.Errorf("Resolve(%v) = %q, want %q", tt.rng, got, tt.want)
			}
		})
	}
}

func TestResolve_WordLongerThanMargin(t *testing.T) {
	long := strings.Repeat("x", 50)
	input := []byte("a " + long + " b")

	r := New(4)
	ranges := partition.Split(uint64(len(input)), 6)
	got := flatten(resolveAll(t, r, input, ranges))
	want := []string{"a", long, "b"}
	if !slices.Equal(got, want) {
		t.Errorf("words = %q, want %q", got, want)
	}
}

func TestResolve_PartitionInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte("abcAB-' \n\t,.!0")

	for trial := range 200 {
		size := rng.IntN(200)
		input := make([]byte, size)
		for i := range input {
			input[i] = alphabet[rng.IntN(len(alphabet))]
		}
		want := reference(input)

		for _, margin := range []int{1, 3, 64} {
			for p := 1; p <= 9; p++ {
				ranges := partition.Split(uint64(size), p)
				got := flatten(resolveAll(t, New(margin), input, ranges))
				if !slices.Equal(got, want) {
					t.Fatalf("trial %d, margin %d, p=%d on %q:\n got %q\nwant %q", trial, margin, p, input, got, want)
				}
			}
		}
	}
}

type failingReader struct{}

func (failingReader) ReadAt(p []byte, off int64) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestResolve_ReadError(t *testing.T) {
	slot := arena.NewSlot(8)
	_, err := New(64).Resolve(failingReader{}, 10, partition.ByteRange{Start: 0, End: 5}, slot)
	if err == nil {
		t.Fatal("Resolve() error = nil, want read error")
	}
	if slot.Count() != 0 {
		t.Errorf("slot.Count() = %d after failed read, want 0", slot.Count())
	}
}

func TestResolve_TruncatedInput(t *testing.T) {
	// src is shorter than the size the caller claims.
	src := bytes.NewReader([]byte("abc"))
	_, err := New(64).Resolve(src, 10, partition.ByteRange{Start: 0, End: 5}, arena.NewSlot(8))
	if err == nil {
		t.Fatal("Resolve() error = nil, want unexpected EOF")
	}
}

// countingReader counts ReadAt calls.
type countingReader struct {
	*bytes.Reader
	reads int
}

func (r *countingReader) ReadAt(p []byte, off int64) (int, error) {
	r.reads++
	return r.Reader.ReadAt(p, off)
}

func TestResolve_LongRunOfWordBytes(t *testing.T) {
	const n = 1 << 20
	input := bytes.Repeat([]byte("a"), n)
	src := &countingReader{Reader: bytes.NewReader(input)}
	rng := partition.ByteRange{Start: 0, End: n / 4}

	r := New(64)
	slot := arena.NewSlot(int(arena.SlotSize(rng, r.Margin())))
	count, err := r.Resolve(src, n, rng, slot)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("Resolve() = %d words, want 1", count)
	}
	for tok := range slot.Tokens() {
		if len(tok) != n {
			t.Errorf("word length = %d, want %d", len(tok), n)
		}
	}
	// Growing by the margin alone would take n/64 reads.
	if src.reads > 32 {
		t.Errorf("Resolve() issued %d reads, want at most 32", src.reads)
	}
}

func TestResolve_WindowAllocationFailure(t *testing.T) {
	const size = 1 << 60
	slot := arena.NewSlot(8)
	_, err := New(64).Resolve(failingReader{}, size, partition.ByteRange{Start: 0, End: size}, slot)
	if !errors.Is(err, models.ErrAllocation) {
		t.Fatalf("Resolve() error = %v, want ErrAllocation", err)
	}
	if slot.Count() != 0 {
		t.Errorf("slot.Count() = %d after failed allocation, want 0", slot.Count())
	}
}
