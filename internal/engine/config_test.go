package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate_RejectsBrokenTables(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted systolic bands", func(c *Config) { c.BP.HighSys = c.BP.ElevatedSys - 10 }},
		{"inverted diastolic bands", func(c *Config) { c.BP.CrisisDia = c.BP.HighDia }},
		{"empty keyword set", func(c *Config) { c.SymptomKeywords = nil }},
		{"inverted heart rate band", func(c *Config) { c.HeartRate = Band{LowBelow: 100, HighAbove: 60} }},
		{"risk weights not summing", func(c *Config) { c.RiskWeights.BP = 0.9 }},
		{"negative score weight", func(c *Config) {
			c.ScoreWeights = ScoreWeights{Risk: 1.2, Adherence: -0.2, Wellness: 0}
		}},
		{"goodness not decreasing", func(c *Config) { c.RiskGoodness = RiskGoodness{Low: 50, Moderate: 60, High: 25} }},
		{"activity factor above one", func(c *Config) { c.Alerts.LowActivityFactor = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cerr *ConfigurationError
			assert.ErrorAs(t, err, &cerr)
		})
	}
}
