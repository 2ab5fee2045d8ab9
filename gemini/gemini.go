package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"eraline/config"
	"eraline/models"
)

const model = "gemini-2.0-flash"

// fallbackSummary is the generic sentence used whenever generation is
// unavailable or fails.
const fallbackSummary = "A distinct period in your listening journey."

// Fallback is the deterministic name/summary pair for a phase when the
// generator cannot be used.
func Fallback(period string) (string, string) {
	return fmt.Sprintf("Your %s Era", period), fallbackSummary
}

// phaseDetails is the structured response schema requested from the model.
type phaseDetails struct {
	PhaseName    string `json:"phase_name"`
	PhaseSummary string `json:"phase_summary"`
}

// Namer generates evocative phase names with Gemini. Every failure path
// degrades to the deterministic fallback; Name never reports an error.
type Namer struct {
	client  *genai.Client
	limiter *rate.Limiter
}

// NewNamer builds a Namer. When Gemini is disabled or misconfigured the
// returned Namer serves fallbacks only.
func NewNamer(ctx context.Context) *Namer {
	n := &Namer{limiter: newLimiter()}
	if !config.Config.Gemini.Enabled {
		return n
	}
	if config.Config.Gemini.APIKey == "" {
		log.Warn("Gemini enabled but GEMINI_API_KEY is empty; phase naming will use fallbacks")
		return n
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Config.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Errorf("Failed to create Gemini client, falling back to static naming: %v", err)
		return n
	}
	n.client = client
	return n
}

// newLimiter builds the courtesy throttle between naming calls. Calls stay
// sequential; the limiter only spaces them out.
func newLimiter() *rate.Limiter {
	interval := time.Duration(config.Config.Gemini.IntervalSeconds) * time.Second
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Name produces a (name, summary) pair for one characterized phase.
func (n *Namer) Name(ctx context.Context, chars models.Characteristics) (string, string) {
	if n.client == nil {
		return Fallback(chars.Period)
	}
	if err := n.limiter.Wait(ctx); err != nil {
		log.Warnf("Naming throttle interrupted for %q: %v", chars.Period, err)
		return Fallback(chars.Period)
	}

	resp, err := n.client.Models.GenerateContent(ctx, model, genai.Text(buildPrompt(chars)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"phase_name":    {Type: genai.TypeString},
				"phase_summary": {Type: genai.TypeString},
			},
			Required: []string{"phase_name", "phase_summary"},
		},
	})
	if err != nil {
		log.Errorf("Phase naming failed for %q: %v", chars.Period, err)
		return Fallback(chars.Period)
	}

	details, err := parsePhaseDetails(resp.Text())
	if err != nil {
		log.Errorf("Unusable naming response for %q: %v", chars.Period, err)
		return Fallback(chars.Period)
	}
	return details.PhaseName, details.PhaseSummary
}

// parsePhaseDetails validates the model's JSON body. Both fields must be
// present and non-empty for the response to be used.
func parsePhaseDetails(body string) (phaseDetails, error) {
	var details phaseDetails
	if err := json.Unmarshal([]byte(body), &details); err != nil {
		return phaseDetails{}, fmt.Errorf("parsing naming response: %w", err)
	}
	if details.PhaseName == "" || details.PhaseSummary == "" {
		return phaseDetails{}, fmt.Errorf("naming response missing fields: %q", body)
	}
	return details, nil
}

func buildPrompt(chars models.Characteristics) string {
	return fmt.Sprintf(`You are a creative music journalist. Based on the following data about a person's music phase, generate two things:
1. A cool, evocative "Daylist-style" name for the phase (3-5 words, no numbers).
2. A short, personal, one-paragraph summary describing the vibe of this era.
**Phase Data:**
- **Period:** %s
- **Top Genres:** %s
- **Top Artists:** %s
- **Average Release Year:** %s
- **Era Vibe:** %s
- **Popularity Vibe:** %s
Return the response ONLY as a valid JSON object with the keys "phase_name" and "phase_summary".`,
		chars.Period,
		strings.Join(chars.TopGenres, ", "),
		strings.Join(chars.TopArtists, ", "),
		chars.ReleaseYearLabel(),
		chars.EraLabel(),
		chars.PopularityLabel(),
	)
}
