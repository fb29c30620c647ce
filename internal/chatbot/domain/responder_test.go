package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResponder(t *testing.T) {
	r, err := DefaultResponder()
	require.NoError(t, err)

	names := make([]string, 0)
	for _, rule := range r.Rules() {
		names = append(names, rule.Name)
	}
	assert.Equal(t, []string{"greeting", "apple", "samsung", "google", "budget", "camera", "price", "help"}, names)

	tests := []struct {
		message string
		want    string
	}{
		{"HeLLo there", "Hello! Welcome to Phone E-commerce. How can I help you find the perfect phone today?"},
		{"Do you sell the iPhone?", "We have the latest iPhone models including the iPhone 15 Pro Max ($1199.99) and iPhone 15 ($799.99). Would you like more details about any specific model?"},
		{"galaxy s24", "We carry Samsung Galaxy phones including the S24 Ultra ($1299.99) and the foldable Z Fold 5 ($1799.99). What features are you looking for?"},
		{"pixel 8", "Google Pixel phones are known for their AI features! We have the Pixel 8 Pro ($999.99) and the budget-friendly Pixel 8a ($499.99)."},
		{"an affordable one", "For budget-friendly options, check out the Google Pixel 8a ($499.99) or Nothing Phone 2 ($599.99). Both offer great value!"},
		{"best camera", "For the best camera phones, I recommend the Xiaomi 14 Ultra with Leica lenses, iPhone 15 Pro Max, or Google Pixel 8 Pro with its AI-powered photography."},
		{"HOW MUCH", "Our phones range from $499.99 (Pixel 8a) to $1799.99 (Galaxy Z Fold 5). What's your budget range?"},
		{"need support", "I'm here to help! You can ask me about phone specifications, prices, comparisons, or recommendations based on your needs."},
		{"xyz", r.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Respond(tt.message))
		})
	}
}

func TestResponderFirstRuleWins(t *testing.T) {
	r, err := DefaultResponder()
	require.NoError(t, err)

	// matches both the greeting and the apple rule
	rule, ok := r.Match("hey, what about apple?")
	require.True(t, ok)
	assert.Equal(t, "greeting", rule.Name)

	rule, ok = r.Match("samsung or pixel")
	require.True(t, ok)
	assert.Equal(t, "samsung", rule.Name)
}

func TestParseRules(t *testing.T) {
	t.Run("custom table", func(t *testing.T) {
		r, err := ParseRules([]byte(`
rules:
  - name: ship
    keywords: ["  Shipping "]
    response: "Ships in 2 days."
default: "Ask me anything."
`))
		require.NoError(t, err)
		assert.Equal(t, "Ships in 2 days.", r.Respond("what about SHIPPING?"))
		assert.Equal(t, "Ask me anything.", r.Respond("hmm"))
	})

	bad := map[string]string{
		"no default":     "rules: []\n",
		"empty keywords": "rules:\n  - name: x\n    keywords: [' ']\n    response: y\ndefault: d\n",
		"no response":    "rules:\n  - name: x\n    keywords: [a]\ndefault: d\n",
		"not yaml":       "rules: [",
	}
	for name, data := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRules([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestTranscript(t *testing.T) {
	var tr Transcript
	now := time.Now()
	tr.AppendExchange(Entry{Role: RoleUser, Message: "hi", At: now}, Entry{Role: RoleBot, Message: "hello", At: now})

	entries := tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, RoleUser, entries[0].Role)
	assert.Equal(t, RoleBot, entries[1].Role)

	entries[0].Message = strings.ToUpper(entries[0].Message)
	assert.Equal(t, "hi", tr.Entries()[0].Message)

	tr.Clear()
	assert.Empty(t, tr.Entries())
}
