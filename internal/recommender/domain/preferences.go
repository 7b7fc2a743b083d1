package domain

import (
	"fmt"
	"strings"
)

// Preferences describes what the customer told the recommendation widget.
// Empty fields fall back to permissive placeholders so the prompt always
// reads naturally.
type Preferences struct {
	Occasion      string   `json:"occasion,omitempty"`
	Season        string   `json:"season,omitempty"`
	Personality   string   `json:"personality,omitempty"`
	FavoriteNotes []string `json:"favoriteNotes,omitempty"`
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Prompt renders the user prompt sent to the model
func (p Preferences) Prompt() string {
	notes := "open to suggestions"
	if len(p.FavoriteNotes) > 0 {
		notes = strings.Join(p.FavoriteNotes, ", ")
	}

	return fmt.Sprintf(`As a professional perfume expert, recommend 3 luxury fragrances based on these preferences:
    - Occasion: %s
    - Season: %s
    - Personality: %s
    - Favorite Notes: %s

    For each recommendation, provide:
    1. Fragrance name (make it elegant and luxurious)
    2. Scent family (Floral, Oriental, Woody, or Fresh)
    3. Top notes, heart notes, and base notes
    4. Description (2-3 sentences about the character and mood)
    5. Best occasions for wearing it

    Format as JSON array with these exact fields: name, family, topNotes, heartNotes, baseNotes, description, occasions, price (between $95-$150)`,
		orDefault(p.Occasion, "any"),
		orDefault(p.Season, "any"),
		orDefault(p.Personality, "versatile"),
		notes,
	)
}

// SystemPrompt positions the model before the user prompt
const SystemPrompt = "You are an expert perfume consultant with deep knowledge of fragrance notes, compositions, and profiles. Always respond with valid JSON."
