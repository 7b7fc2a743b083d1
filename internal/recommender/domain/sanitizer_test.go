package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "json fence",
			content: "Here you go:\n```json\n[{\"name\":\"Noir\"}]\n```\nEnjoy!",
			want:    `[{"name":"Noir"}]`,
		},
		{
			name:    "bare fence",
			content: "```\n[{\"name\":\"Noir\"}]\n```",
			want:    `[{"name":"Noir"}]`,
		},
		{
			name:    "no fence",
			content: `[{"name":"Noir"}]`,
			want:    `[{"name":"Noir"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.content))
		})
	}
}

func TestParseRecommendations(t *testing.T) {
	raw, err := ParseRecommendations("```json\n[{\"name\":\"Noir\",\"family\":\"Woody\"}]\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Noir","family":"Woody"}]`, string(raw))
}

func TestParseRecommendationsBadPayload(t *testing.T) {
	_, err := ParseRecommendations("I cannot recommend anything today.")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "I cannot recommend anything today.", parseErr.Raw)
}

func TestPromptPlaceholders(t *testing.T) {
	prompt := Preferences{}.Prompt()
	assert.Contains(t, prompt, "Occasion: any")
	assert.Contains(t, prompt, "Season: any")
	assert.Contains(t, prompt, "Personality: versatile")
	assert.Contains(t, prompt, "Favorite Notes: open to suggestions")
}

func TestPromptWithPreferences(t *testing.T) {
	prompt := Preferences{
		Occasion:      "evening gala",
		Season:        "winter",
		Personality:   "bold",
		FavoriteNotes: []string{"oud", "amber"},
	}.Prompt()

	assert.Contains(t, prompt, "Occasion: evening gala")
	assert.Contains(t, prompt, "Favorite Notes: oud, amber")
	assert.Contains(t, prompt, "recommend 3 luxury fragrances")
}
