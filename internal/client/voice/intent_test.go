package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	testCases := []struct {
		text     string
		expected IntentType
		category Category
	}{
		{"There was a CRASH on the bridge", IntentAccident, CategoryCritical},
		{"collision in the left lane", IntentAccident, CategoryCritical},
		{"big pothole here", IntentHazard, CategoryWarning},
		{"bad road ahead", IntentHazard, CategoryWarning},
		{"speed bump", IntentHazard, CategoryWarning},
		{"speed camera", IntentEnforcement, CategoryInfo},
		{"cop with a radar trap", IntentEnforcement, CategoryInfo},
		{"stuck in a jam", IntentTraffic, CategoryInfo},
		{"very slow here", IntentTraffic, CategoryInfo},
		// Первое совпавшее правило побеждает
		{"accident caused traffic", IntentAccident, CategoryCritical},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			intent := ParseIntent(tc.text)
			require.NotNil(t, intent)
			assert.Equal(t, tc.expected, intent.Type)
			assert.Equal(t, tc.category, intent.Category)
			assert.Equal(t, tc.text, intent.OriginalText)
		})
	}
}

func TestParseIntent_NoMatch(t *testing.T) {
	assert.Nil(t, ParseIntent("what a lovely day"))
	assert.Nil(t, ParseIntent(""))
}

func TestParseIntent_EnforcementDirection(t *testing.T) {
	assert.Equal(t, "Forward", ParseIntent("police ahead").Direction)
	assert.Equal(t, "Unknown", ParseIntent("police").Direction)
	assert.Empty(t, ParseIntent("pothole ahead").Direction)
}
