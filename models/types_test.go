package models

import "testing"

func TestEraLabel(t *testing.T) {
	tests := []struct {
		name string
		year int
		want string
	}{
		{"modern", 2015, "Modern mainstream"},
		{"boundary_not_modern", 2010, "Nostalgic throwback"},
		{"old", 1995, "Nostalgic throwback"},
		{"unknown_is_throwback", 0, "Nostalgic throwback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Characteristics{AvgReleaseYear: tt.year}
			if got := c.EraLabel(); got != tt.want {
				t.Errorf("EraLabel() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestPopularityLabel(t *testing.T) {
	tests := []struct {
		name string
		pop  int
		want string
	}{
		{"mainstream", 75, "Mainstream hits"},
		{"boundary_underground", 60, "Underground discoveries"},
		{"underground", 20, "Underground discoveries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Characteristics{AvgPopularity: tt.pop}
			if got := c.PopularityLabel(); got != tt.want {
				t.Errorf("PopularityLabel() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestReleaseYearLabel(t *testing.T) {
	stats := PhaseStats{AvgReleaseYear: 2012}
	if got := stats.ReleaseYearLabel(); got != "2012" {
		t.Errorf("ReleaseYearLabel() = %q; want 2012", got)
	}
	stats.AvgReleaseYear = 0
	if got := stats.ReleaseYearLabel(); got != "N/A" {
		t.Errorf("ReleaseYearLabel() = %q; want N/A", got)
	}
}
