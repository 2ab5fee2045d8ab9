package spotify

import (
	"errors"
	"testing"

	spotifyclient "github.com/zmb3/spotify/v2"

	"eraline/phases"
)

func TestTimerange(t *testing.T) {
	tests := []struct {
		name   string
		window phases.TimeWindow
		want   spotifyclient.Range
	}{
		{"short", phases.WindowShortTerm, spotifyclient.ShortTermRange},
		{"medium", phases.WindowMediumTerm, spotifyclient.MediumTermRange},
		{"long", phases.WindowLongTerm, spotifyclient.LongTermRange},
		{"unknown_defaults_long", phases.TimeWindow("bogus"), spotifyclient.LongTermRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timerange(tt.window); got != tt.want {
				t.Errorf("timerange(%s) = %v; want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestRetryServerErrorsRetriesOn5xx(t *testing.T) {
	attempts := 0
	err := retryServerErrors(func() error {
		attempts++
		return spotifyclient.Error{Status: 502, Message: "bad gateway"}
	})
	if err == nil {
		t.Fatal("expected persistent 5xx to surface as an error")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d; want 3", attempts)
	}
}

func TestRetryServerErrorsFailsFastOnClientErrors(t *testing.T) {
	attempts := 0
	err := retryServerErrors(func() error {
		attempts++
		return spotifyclient.Error{Status: 401, Message: "token expired"}
	})
	if err == nil {
		t.Fatal("expected client error to surface")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d; want 1 (no retries on 4xx)", attempts)
	}
}

func TestRetryServerErrorsFailsFastOnPlainErrors(t *testing.T) {
	attempts := 0
	err := retryServerErrors(func() error {
		attempts++
		return errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error to surface")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d; want 1", attempts)
	}
}

func TestRetryServerErrorsSucceedsAfterRetry(t *testing.T) {
	attempts := 0
	err := retryServerErrors(func() error {
		attempts++
		if attempts < 2 {
			return spotifyclient.Error{Status: 503, Message: "unavailable"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d; want 2", attempts)
	}
}
