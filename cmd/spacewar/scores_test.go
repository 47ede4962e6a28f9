package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/spacewar/internal/games/spacewar"
	"github.com/vovakirdan/spacewar/internal/storage"
)

func TestListScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	for _, score := range []int{40, 120, 10, 80} {
		if _, err := store.SaveRun(storage.Run{GameID: spacewar.GameID, Score: score}); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	tests := []struct {
		name  string
		all   bool
		limit int
		want  []int
	}{
		{"top two", false, 2, []int{120, 80}},
		{"all ignores limit", true, 2, []int{120, 80, 40, 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := listScores(store, tc.all, tc.limit)
			if err != nil {
				t.Fatalf("listScores() error = %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("listScores() returned %d scores, expected %d", len(got), len(tc.want))
			}
			for i, e := range got {
				if e.Score != tc.want[i] {
					t.Errorf("score %d = %d, expected %d", i, e.Score, tc.want[i])
				}
			}
		})
	}
}
