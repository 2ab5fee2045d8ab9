package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Spotify SpotifyConfig
	Gemini  GeminiConfig
	Session SessionConfig
	Options Options
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	PageLimit    int
	TopLimit     int
}

type GeminiConfig struct {
	Enabled         bool
	APIKey          string
	IntervalSeconds int
}

type SessionConfig struct {
	DBPath   string
	TTLHours int
}

type Options struct {
	Port string
}

func (s *SpotifyConfig) IsConfigured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			RedirectURI:  getRedirectURI(),
			PageLimit:    getPageLimit(),
			TopLimit:     getTopLimit(),
		},
		Gemini: GeminiConfig{
			Enabled:         os.Getenv("GEMINI_ENABLED") == "true",
			APIKey:          os.Getenv("GEMINI_API_KEY"),
			IntervalSeconds: getNamingInterval(),
		},
		Session: SessionConfig{
			DBPath:   os.Getenv("DB_PATH"),
			TTLHours: getSessionTTL(),
		},
		Options: Options{
			Port: os.Getenv("PORT"),
		},
	}

	Config = config
}

func getRedirectURI() string {
	uri := os.Getenv("SPOTIFY_REDIRECT_URI")
	if uri == "" {
		return "http://localhost:8080/callback"
	}
	return uri
}

func getPageLimit() int {
	limitStr := os.Getenv("SPOTIFY_PAGE_LIMIT")
	if limitStr == "" {
		return 50
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > 50 {
		return 50 // Spotify API max page size
	}
	return limit
}

func getTopLimit() int {
	limitStr := os.Getenv("SPOTIFY_TOP_LIMIT")
	if limitStr == "" {
		return 50
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 50
	}
	if limit > 50 {
		return 50
	}
	return limit
}

func getNamingInterval() int {
	intervalStr := os.Getenv("GEMINI_INTERVAL_SECONDS")
	if intervalStr == "" {
		return 2
	}
	interval, err := strconv.Atoi(intervalStr)
	if err != nil || interval < 0 {
		return 2
	}
	if interval > 60 {
		return 60
	}
	return interval
}

func getSessionTTL() int {
	ttlStr := os.Getenv("SESSION_TTL_HOURS")
	if ttlStr == "" {
		return 24
	}
	ttl, err := strconv.Atoi(ttlStr)
	if err != nil || ttl <= 0 {
		return 24
	}
	return ttl
}
