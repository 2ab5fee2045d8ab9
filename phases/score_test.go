package phases

import "testing"

func TestLibraryScoring(t *testing.T) {
	lib := NewLibrary()

	// Saved once, then present in every top window: 1 + 2 + 5 + 10 = 18.
	lib.AddSaved(savedTrack("t1", "Everywhere", "a1", "Anna", "al1", "", "2020", 50, "2023-04-10T00:00:00Z"))
	lib.AddTop(fullTrack("t1", "Everywhere", "a1", "Anna", "al1", "", "2020", 50), WindowLongTerm)
	lib.AddTop(fullTrack("t1", "Everywhere", "a1", "Anna", "al1", "", "2020", 50), WindowMediumTerm)
	lib.AddTop(fullTrack("t1", "Everywhere", "a1", "Anna", "al1", "", "2020", 50), WindowShortTerm)

	// Saved twice only: each appearance adds one point.
	lib.AddSaved(savedTrack("t2", "Twice", "a2", "Ben", "al2", "", "2021", 40, "2023-05-01T00:00:00Z"))
	lib.AddSaved(savedTrack("t2", "Twice", "a2", "Ben", "al2", "", "2021", 40, "2023-05-01T00:00:00Z"))

	// Short-term only.
	lib.AddTop(fullTrack("t3", "Current", "a3", "Cara", "al3", "", "2023", 90), WindowShortTerm)

	if lib.Len() != 3 {
		t.Fatalf("Len() = %d; want 3 distinct tracks", lib.Len())
	}

	records := lib.Records()
	scores := make(map[string]int, len(records))
	for _, rec := range records {
		scores[rec.ID] = rec.Relevance
	}
	tests := []struct {
		id   string
		want int
	}{
		{"t1", 18},
		{"t2", 2},
		{"t3", 10},
	}
	for _, tt := range tests {
		if scores[tt.id] != tt.want {
			t.Errorf("relevance[%s] = %d; want %d", tt.id, scores[tt.id], tt.want)
		}
	}
}

func TestLibraryFirstSeenWins(t *testing.T) {
	lib := NewLibrary()
	lib.AddSaved(savedTrack("t1", "Original", "a1", "Anna", "al1", "", "2020", 50, "2023-04-10T00:00:00Z"))
	// The same id arriving from a top window must not overwrite the saved
	// record's fields, only raise its score.
	lib.AddTop(fullTrack("t1", "Retitled", "a9", "Imposter", "al9", "", "1999", 1), WindowShortTerm)

	records := lib.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records; want 1", len(records))
	}
	rec := records[0]
	if rec.Name != "Original" || rec.ArtistName != "Anna" || rec.AlbumID != "al1" {
		t.Errorf("first-seen fields were overwritten: %+v", rec)
	}
	if rec.AddedAt == "" {
		t.Error("saved timestamp lost on merge")
	}
	if rec.Relevance != 11 {
		t.Errorf("Relevance = %d; want 11", rec.Relevance)
	}
}

func TestLibraryDropsPayloadsWithoutID(t *testing.T) {
	lib := NewLibrary()
	lib.AddSaved(savedTrack("", "No ID", "a1", "Anna", "al1", "", "2020", 50, "2023-04-10T00:00:00Z"))
	if lib.Len() != 0 {
		t.Errorf("Len() = %d; want 0", lib.Len())
	}
}

func TestLibraryRecordsFirstSeenOrder(t *testing.T) {
	lib := NewLibrary()
	lib.AddSaved(savedTrack("t1", "One", "a1", "Anna", "al1", "", "2020", 10, "2023-04-10T00:00:00Z"))
	lib.AddTop(fullTrack("t2", "Two", "a2", "Ben", "al2", "", "2021", 20), WindowLongTerm)
	lib.AddSaved(savedTrack("t3", "Three", "a3", "Cara", "al3", "", "2022", 30, "2023-05-10T00:00:00Z"))

	records := lib.Records()
	wantOrder := []string{"t1", "t2", "t3"}
	for i, id := range wantOrder {
		if records[i].ID != id {
			t.Fatalf("records[%d].ID = %s; want %s", i, records[i].ID, id)
		}
	}
}
