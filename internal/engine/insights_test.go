package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBundle() Bundle {
	return Bundle{
		Risk:      RiskAssessment{Known: true, Level: RiskHigh, BP: BPHigh, SymptomMatches: []string{"chest pain"}},
		Adherence: AdherenceSummary{Overall: fptr(95)},
		Wellness: WellnessSummary{
			DaysLogged: 5,
			LogStreak:  5,
			Weekly:     &WeeklyAverages{Steps: 2500, Sleep: 5.5, Water: 1200, Entries: 5},
		},
	}
}

func TestGenerateInsights_DisclaimerExactlyOnce(t *testing.T) {
	for _, b := range []Bundle{fullBundle(), {}} {
		out := GenerateInsights(b, LocaleNone)

		count := 0
		for _, s := range out {
			if s == Disclaimer {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, Disclaimer, out[len(out)-1], "disclaimer always closes the list")
	}
}

func TestGenerateInsights_SafetyRulesComeFirst(t *testing.T) {
	out := GenerateInsights(fullBundle(), LocaleNone)
	require.NotEmpty(t, out)

	assert.Contains(t, out[0], "HIGH")
	assert.Contains(t, out[1], "warning signs")
}

func TestGenerateInsights_OneInsightPerCategory(t *testing.T) {
	// Adherencia 95 matchea las reglas de >=90, >=80 y el fallback, pero
	// solo la primera de la categoría dispara.
	out := GenerateInsights(fullBundle(), LocaleNone)

	matches := 0
	for _, s := range out {
		if strings.Contains(s, "adherence") || strings.Contains(s, "Medication") {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
	assert.Contains(t, strings.Join(out, "\n"), "excellent")
}

func TestGenerateInsights_LocaleRulesAreGated(t *testing.T) {
	b := fullBundle()

	plain := strings.Join(GenerateInsights(b, LocaleNone), "\n")
	assert.NotContains(t, plain, "dal")
	assert.NotContains(t, plain, "monsoon")

	india := strings.Join(GenerateInsights(b, LocaleIndia), "\n")
	assert.Contains(t, india, "dal")
	assert.Contains(t, india, "monsoon")
	// Con PA alta también dispara el consejo de sal.
	assert.Contains(t, india, "salty")
}

func TestGenerateInsights_EmptyBundleSuggestsLoggingData(t *testing.T) {
	out := GenerateInsights(Bundle{Risk: RiskAssessment{Level: RiskUnknown}}, LocaleNone)

	require.Len(t, out, 2)
	assert.Contains(t, out[0], "Not enough data")
}

func TestGenerateInsights_Deterministic(t *testing.T) {
	b := fullBundle()
	first := GenerateInsights(b, LocaleIndia)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, GenerateInsights(b, LocaleIndia))
	}
}
