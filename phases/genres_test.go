package phases

import (
	"context"
	"fmt"
	"testing"

	"eraline/models"
)

type stubLookup struct {
	genres     map[string][]string
	batchSizes []int
	err        error
}

func (s *stubLookup) ArtistGenres(ctx context.Context, ids []string) (map[string][]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.batchSizes = append(s.batchSizes, len(ids))
	out := make(map[string][]string)
	for _, id := range ids {
		if tags, ok := s.genres[id]; ok {
			out[id] = tags
		}
	}
	return out, nil
}

func TestFetchGenresChunking(t *testing.T) {
	lookup := &stubLookup{genres: make(map[string][]string)}
	var ids []string
	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("artist-%03d", i)
		ids = append(ids, id)
		lookup.genres[id] = []string{"pop"}
	}

	genres, err := FetchGenres(context.Background(), lookup, ids)
	if err != nil {
		t.Fatalf("FetchGenres() error: %v", err)
	}
	wantBatches := []int{50, 50, 20}
	if len(lookup.batchSizes) != len(wantBatches) {
		t.Fatalf("got %d batches; want %d", len(lookup.batchSizes), len(wantBatches))
	}
	for i, want := range wantBatches {
		if lookup.batchSizes[i] != want {
			t.Errorf("batch %d size = %d; want %d", i, lookup.batchSizes[i], want)
		}
	}
	if len(genres) != 120 {
		t.Errorf("resolved %d artists; want 120", len(genres))
	}
}

func TestFetchGenresMissingArtistsAbsent(t *testing.T) {
	lookup := &stubLookup{genres: map[string][]string{"a1": {"rock"}}}
	genres, err := FetchGenres(context.Background(), lookup, []string{"a1", "a2"})
	if err != nil {
		t.Fatalf("FetchGenres() error: %v", err)
	}
	if _, ok := genres["a2"]; ok {
		t.Error("unresolvable artist should be absent, not present")
	}
	if len(genres["a1"]) != 1 {
		t.Errorf("genres[a1] = %v; want [rock]", genres["a1"])
	}
}

func TestDistinctArtistIDs(t *testing.T) {
	tracks := []models.TrackRecord{
		{ID: "t1", ArtistID: "a1"},
		{ID: "t2", ArtistID: "a2"},
		{ID: "t3", ArtistID: "a1"},
		{ID: "t4", ArtistID: ""},
	}
	got := distinctArtistIDs(tracks)
	want := []string{"a1", "a2"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %s; want %s", i, got[i], want[i])
		}
	}
}

func TestGenreTallyTopTieBreak(t *testing.T) {
	tally := NewGenreTally()
	// pop first seen before rock; both reach 3, jazz trails with 1.
	for _, g := range []string{"pop", "rock", "pop", "rock", "jazz", "pop", "rock"} {
		tally.Add(g)
	}
	got := tally.Top(5)
	want := []string{"pop", "rock", "jazz"}
	if len(got) != len(want) {
		t.Fatalf("Top(5) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Top(5)[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestGenreTallyTopTruncates(t *testing.T) {
	tally := NewGenreTally()
	for i := 0; i < 8; i++ {
		tally.Add(fmt.Sprintf("genre-%d", i))
	}
	if got := tally.Top(5); len(got) != 5 {
		t.Errorf("Top(5) returned %d entries; want 5", len(got))
	}
}

func TestTallyPhaseGenresPerTrack(t *testing.T) {
	tracks := []models.TrackRecord{
		{ID: "t1", ArtistID: "a1"},
		{ID: "t2", ArtistID: "a1"},
		{ID: "t3", ArtistID: "a2"},
		{ID: "t4", ArtistID: "missing"},
	}
	genres := map[string][]string{
		"a1": {"pop", "indie"},
		"a2": {"rock"},
	}
	tally := tallyPhaseGenres(tracks, genres)
	tests := []struct {
		genre string
		want  int
	}{
		{"pop", 2},
		{"indie", 2},
		{"rock", 1},
	}
	for _, tt := range tests {
		if got := tally.Count(tt.genre); got != tt.want {
			t.Errorf("Count(%q) = %d; want %d", tt.genre, got, tt.want)
		}
	}
}
