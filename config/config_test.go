package config

import "testing"

func TestGetPageLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 50},
		{"invalid", "foo", 50},
		{"zero", "0", 50},
		{"negative", "-10", 50},
		{"min", "1", 1},
		{"mid", "25", 25},
		{"max", "50", 50},
		{"over", "51", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOTIFY_PAGE_LIMIT", tt.env)
			if got := getPageLimit(); got != tt.want {
				t.Errorf("getPageLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetTopLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 50},
		{"invalid", "abc", 50},
		{"zero", "0", 50},
		{"valid", "20", 20},
		{"over", "100", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOTIFY_TOP_LIMIT", tt.env)
			if got := getTopLimit(); got != tt.want {
				t.Errorf("getTopLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetNamingInterval(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 2},
		{"invalid", "abc", 2},
		{"zero_allowed", "0", 0},
		{"negative", "-1", 2},
		{"valid", "5", 5},
		{"over", "120", 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_INTERVAL_SECONDS", tt.env)
			if got := getNamingInterval(); got != tt.want {
				t.Errorf("getNamingInterval() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetSessionTTL(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 24},
		{"invalid", "abc", 24},
		{"zero", "0", 24},
		{"valid", "48", 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_TTL_HOURS", tt.env)
			if got := getSessionTTL(); got != tt.want {
				t.Errorf("getSessionTTL() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetRedirectURI(t *testing.T) {
	t.Setenv("SPOTIFY_REDIRECT_URI", "")
	if got := getRedirectURI(); got != "http://localhost:8080/callback" {
		t.Errorf("getRedirectURI() = %q; want default", got)
	}
	t.Setenv("SPOTIFY_REDIRECT_URI", "https://example.com/cb")
	if got := getRedirectURI(); got != "https://example.com/cb" {
		t.Errorf("getRedirectURI() = %q; want override", got)
	}
}
