package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(sys, dia, hr int, temp float64, symptoms ...string) *VitalsSnapshot {
	return &VitalsSnapshot{
		TakenAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Systolic:    sys,
		Diastolic:   dia,
		HeartRate:   hr,
		Temperature: temp,
		Symptoms:    symptoms,
	}
}

func TestAssessRisk_NoObservation_IsUnknown(t *testing.T) {
	r, err := AssessRisk(nil, DefaultConfig())
	require.NoError(t, err)

	assert.False(t, r.Known)
	assert.Equal(t, RiskUnknown, r.Level)
}

func TestAssessRisk_HighBP_ForcesHighLevel(t *testing.T) {
	// 150/95 con HR y temperatura normales: la PA manda.
	r, err := AssessRisk(obs(150, 95, 78, 37.0), DefaultConfig())
	require.NoError(t, err)

	assert.True(t, r.Known)
	assert.Equal(t, BPHigh, r.BP)
	assert.Equal(t, VitalNormal, r.HeartRate)
	assert.Equal(t, VitalNormal, r.Temperature)
	assert.Equal(t, RiskHigh, r.Level)
	assert.InDelta(t, 30.0, r.Score, 0.01)
}

func TestAssessRisk_Classification(t *testing.T) {
	cases := []struct {
		name  string
		obs   *VitalsSnapshot
		level RiskLevel
		bp    BPClass
	}{
		{"all normal", obs(118, 76, 72, 36.6), RiskLow, BPNormal},
		{"elevated bp only", obs(128, 76, 72, 36.6), RiskLow, BPElevated},
		{"elevated bp + low hr", obs(128, 82, 52, 36.6), RiskModerate, BPElevated},
		{"crisis bp", obs(185, 95, 72, 36.6), RiskHigh, BPCrisis},
		{"diastolic alone can force high", obs(130, 95, 72, 36.6), RiskHigh, BPHigh},
		{"tachycardia", obs(118, 76, 120, 36.6), RiskHigh, BPNormal},
		{"fever", obs(118, 76, 72, 38.8), RiskHigh, BPNormal},
		{"hypothermia counts as borderline", obs(118, 76, 55, 34.2), RiskModerate, BPNormal},
		{"one warning symptom is borderline", obs(118, 76, 72, 36.6, "mild chest pain at night"), RiskLow, BPNormal},
		{"two warning symptoms force high", obs(118, 76, 72, 36.6, "chest pain", "very breathless"), RiskHigh, BPNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := AssessRisk(tc.obs, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, tc.level, r.Level)
			assert.Equal(t, tc.bp, r.BP)
		})
	}
}

func TestAssessRisk_RejectsImpossiblePairs(t *testing.T) {
	cfg := DefaultConfig()

	for _, bad := range []*VitalsSnapshot{
		obs(0, 80, 72, 36.6),
		obs(120, -1, 72, 36.6),
		obs(80, 90, 72, 36.6), // sistólica <= diastólica
	} {
		_, err := AssessRisk(bad, cfg)
		require.Error(t, err)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestAssessRisk_MonotonicInBP(t *testing.T) {
	cfg := DefaultConfig()

	// Subir sistólica con diastólica fija nunca baja el score.
	prev := -1.0
	for sys := 90; sys <= 220; sys += 5 {
		r, err := AssessRisk(obs(sys, 70, 72, 36.6), cfg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Score, prev, "systolic %d", sys)
		prev = r.Score
	}

	// Y lo mismo subiendo diastólica con sistólica fija.
	prev = -1.0
	for dia := 50; dia <= 125; dia += 5 {
		r, err := AssessRisk(obs(200, dia, 72, 36.6), cfg)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Score, prev, "diastolic %d", dia)
		prev = r.Score
	}
}

func TestAssessRisk_SymptomMatchingIsCaseInsensitive(t *testing.T) {
	r, err := AssessRisk(obs(118, 76, 72, 36.6, "Chest PAIN and some Wheezing"), DefaultConfig())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"chest pain", "wheezing"}, r.SymptomMatches)
}
