package leaderboard

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestRecordPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")

	s := Open(path, 0)
	for _, score := range []int{50, 30, 90} {
		if err := s.Record(score); err != nil {
			t.Fatalf("Record(%d): %v", score, err)
		}
	}

	reloaded := Open(path, 0)
	if got, want := reloaded.Entries(), []int{90, 50, 30}; !slices.Equal(got, want) {
		t.Fatalf("entries after reload = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got := string(data); got != "[90,50,30]" {
		t.Fatalf("file = %s, want [90,50,30]", got)
	}
}

func TestRecordKeepsTopFive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	s := Open(path, 0)
	for _, score := range []int{10, 70, 20, 60, 30, 50, 40} {
		if err := s.Record(score); err != nil {
			t.Fatalf("Record(%d): %v", score, err)
		}
	}

	want := []int{70, 60, 50, 40, 30}
	if got := s.Entries(); !slices.Equal(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	if got := Open(path, 0).Entries(); !slices.Equal(got, want) {
		t.Fatalf("entries after reload = %v, want %v", got, want)
	}
	if s.Best() != 70 {
		t.Fatalf("Best = %d, want 70", s.Best())
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope.json"), 0)
	if got := s.Entries(); len(got) != 0 {
		t.Fatalf("entries = %v, want empty", got)
	}
	if s.Best() != 0 {
		t.Fatalf("Best = %d, want 0", s.Best())
	}
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Open(path, 0)
	if got := s.Entries(); len(got) != 0 {
		t.Fatalf("entries = %v, want empty", got)
	}
	if err := s.Record(5); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := Open(path, 0).Entries(); !slices.Equal(got, []int{5}) {
		t.Fatalf("entries after overwrite = %v, want [5]", got)
	}
}

func TestOpenNormalizesUnsortedFile(t *testing.T) {
	// Files written by the unsorted, uncapped legacy format.
	path := filepath.Join(t.TempDir(), "leaderboard.json")
	if err := os.WriteFile(path, []byte("[3,9,1,7,5,8,2]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := Open(path, 0).Entries(), []int{9, 8, 7, 5, 3}; !slices.Equal(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestInMemoryStore(t *testing.T) {
	s := Open("", 3)
	for _, score := range []int{1, 4, 2, 3} {
		if err := s.Record(score); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if got, want := s.Entries(), []int{4, 3, 2}; !slices.Equal(got, want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
}

func TestRecordWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "leaderboard.json")
	s := Open(path, 0)
	if err := s.Record(42); err == nil {
		t.Fatalf("Record into a missing directory succeeded")
	}
	if got := s.Entries(); !slices.Equal(got, []int{42}) {
		t.Fatalf("entries = %v, want [42] despite write failure", got)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := Open("", 0)
	_ = s.Record(10)
	got := s.Entries()
	got[0] = 999
	if s.Best() != 10 {
		t.Fatalf("mutating Entries changed the store")
	}
}
