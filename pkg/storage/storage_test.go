package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/word-frequency-counter/internal/common"
	"github.com/dtnitsch/word-frequency-counter/models"
	"github.com/dtnitsch/word-frequency-counter/pkg/mapreduce"
)

func TestOpenInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0600); err != nil {
		t.Fatal(err)
	}

	s := &Storage{}
	f, stats, err := s.OpenInput(path)
	if err != nil {
		t.Fatalf("OpenInput() error = %v", err)
	}
	defer f.Close()

	if stats.SizeBytes != 11 {
		t.Errorf("SizeBytes = %d, want 11", stats.SizeBytes)
	}
}

func TestOpenInput_Missing(t *testing.T) {
	s := &Storage{}
	_, _, err := s.OpenInput(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, models.ErrInputOpen) {
		t.Errorf("OpenInput() error = %v, want ErrInputOpen", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenInput() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestOpenInput_Directory(t *testing.T) {
	s := &Storage{}
	_, _, err := s.OpenInput(t.TempDir())
	if !errors.Is(err, models.ErrInputSize) {
		t.Errorf("OpenInput(dir) error = %v, want ErrInputSize", err)
	}
}

func TestSaveRanking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("stale content that is longer\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s := &Storage{}
	digest, err := s.SaveRanking(path, []mapreduce.RankedEntry{{Word: "a", Count: 2}, {Word: "b", Count: 1}})
	if err != nil {
		t.Fatalf("SaveRanking() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "a\t2\nb\t1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if digest != common.ContentHash(data) {
		t.Errorf("digest = %s, want %s", digest, common.ContentHash(data))
	}
}

func TestSaveRanking_BadPath(t *testing.T) {
	s := &Storage{}
	_, err := s.SaveRanking(filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt"), nil)
	if !errors.Is(err, models.ErrOutputWrite) {
		t.Errorf("SaveRanking() error = %v, want ErrOutputWrite", err)
	}
}
