package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"health-companion/internal/engine"
)

// Config es la configuración del servicio. El motor tiene sus propias
// tablas (engine.Config); aquí se exponen las perillas que tiene sentido
// ajustar por entorno sin recompilar.
type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	AppName   string `mapstructure:"APP_NAME"`
	DBDSN     string `mapstructure:"DB_DSN"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxIdle  time.Duration `mapstructure:"DB_CONN_MAX_IDLE"`
	DBConnMaxLife  time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBPingTimeout  time.Duration `mapstructure:"DB_PING_TIMEOUT"`

	BPElevatedSys int `mapstructure:"ENGINE_BP_ELEVATED_SYS"`
	BPElevatedDia int `mapstructure:"ENGINE_BP_ELEVATED_DIA"`
	BPHighSys     int `mapstructure:"ENGINE_BP_HIGH_SYS"`
	BPHighDia     int `mapstructure:"ENGINE_BP_HIGH_DIA"`
	BPCrisisSys   int `mapstructure:"ENGINE_BP_CRISIS_SYS"`
	BPCrisisDia   int `mapstructure:"ENGINE_BP_CRISIS_DIA"`

	HeartRateLow  float64 `mapstructure:"ENGINE_HR_LOW"`
	HeartRateHigh float64 `mapstructure:"ENGINE_HR_HIGH"`
	TempLow       float64 `mapstructure:"ENGINE_TEMP_LOW"`
	TempHigh      float64 `mapstructure:"ENGINE_TEMP_HIGH"`

	ScoreWeightRisk      float64 `mapstructure:"ENGINE_SCORE_WEIGHT_RISK"`
	ScoreWeightAdherence float64 `mapstructure:"ENGINE_SCORE_WEIGHT_ADHERENCE"`
	ScoreWeightWellness  float64 `mapstructure:"ENGINE_SCORE_WEIGHT_WELLNESS"`

	AlertLowAdherencePct   float64 `mapstructure:"ENGINE_ALERT_LOW_ADHERENCE_PCT"`
	AlertLowSleepHours     float64 `mapstructure:"ENGINE_ALERT_LOW_SLEEP_HOURS"`
	AlertLowActivityFactor float64 `mapstructure:"ENGINE_ALERT_LOW_ACTIVITY_FACTOR"`

	SymptomKeywords string `mapstructure:"ENGINE_SYMPTOM_KEYWORDS"`
}

// Load lee .env (si existe) y variables de entorno, y valida las tablas
// del motor antes de devolver nada: una configuración rota tumba el
// arranque, nunca produce scores silenciosamente mal ponderados.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	def := engine.DefaultConfig()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "health-companion")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_IDLE", "5m")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_PING_TIMEOUT", "3s")
	v.SetDefault("ENGINE_BP_ELEVATED_SYS", def.BP.ElevatedSys)
	v.SetDefault("ENGINE_BP_ELEVATED_DIA", def.BP.ElevatedDia)
	v.SetDefault("ENGINE_BP_HIGH_SYS", def.BP.HighSys)
	v.SetDefault("ENGINE_BP_HIGH_DIA", def.BP.HighDia)
	v.SetDefault("ENGINE_BP_CRISIS_SYS", def.BP.CrisisSys)
	v.SetDefault("ENGINE_BP_CRISIS_DIA", def.BP.CrisisDia)
	v.SetDefault("ENGINE_HR_LOW", def.HeartRate.LowBelow)
	v.SetDefault("ENGINE_HR_HIGH", def.HeartRate.HighAbove)
	v.SetDefault("ENGINE_TEMP_LOW", def.Temperature.LowBelow)
	v.SetDefault("ENGINE_TEMP_HIGH", def.Temperature.HighAbove)
	v.SetDefault("ENGINE_SCORE_WEIGHT_RISK", def.ScoreWeights.Risk)
	v.SetDefault("ENGINE_SCORE_WEIGHT_ADHERENCE", def.ScoreWeights.Adherence)
	v.SetDefault("ENGINE_SCORE_WEIGHT_WELLNESS", def.ScoreWeights.Wellness)
	v.SetDefault("ENGINE_ALERT_LOW_ADHERENCE_PCT", def.Alerts.LowAdherencePct)
	v.SetDefault("ENGINE_ALERT_LOW_SLEEP_HOURS", def.Alerts.LowSleepHours)
	v.SetDefault("ENGINE_ALERT_LOW_ACTIVITY_FACTOR", def.Alerts.LowActivityFactor)
	v.SetDefault("ENGINE_SYMPTOM_KEYWORDS", strings.Join(def.SymptomKeywords, ","))

	// Bind explícito para que Unmarshal las levante del entorno
	for _, key := range []string{
		"PORT", "ENV", "APP_NAME", "DB_DSN", "LOG_LEVEL", "LOG_FORMAT",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_IDLE",
		"DB_CONN_MAX_LIFETIME", "DB_PING_TIMEOUT",
		"ENGINE_BP_ELEVATED_SYS", "ENGINE_BP_ELEVATED_DIA",
		"ENGINE_BP_HIGH_SYS", "ENGINE_BP_HIGH_DIA",
		"ENGINE_BP_CRISIS_SYS", "ENGINE_BP_CRISIS_DIA",
		"ENGINE_HR_LOW", "ENGINE_HR_HIGH", "ENGINE_TEMP_LOW", "ENGINE_TEMP_HIGH",
		"ENGINE_SCORE_WEIGHT_RISK", "ENGINE_SCORE_WEIGHT_ADHERENCE", "ENGINE_SCORE_WEIGHT_WELLNESS",
		"ENGINE_ALERT_LOW_ADHERENCE_PCT", "ENGINE_ALERT_LOW_SLEEP_HOURS", "ENGINE_ALERT_LOW_ACTIVITY_FACTOR",
		"ENGINE_SYMPTOM_KEYWORDS",
	} {
		_ = v.BindEnv(key)
	}

	// El .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if _, err := cfg.Engine(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Engine materializa la engine.Config efectiva: defaults del producto con
// las perillas del entorno aplicadas encima, validada.
func (c *Config) Engine() (engine.Config, error) {
	ec := engine.DefaultConfig()
	ec.BP = engine.BPBands{
		ElevatedSys: c.BPElevatedSys, ElevatedDia: c.BPElevatedDia,
		HighSys: c.BPHighSys, HighDia: c.BPHighDia,
		CrisisSys: c.BPCrisisSys, CrisisDia: c.BPCrisisDia,
	}
	ec.HeartRate = engine.Band{LowBelow: c.HeartRateLow, HighAbove: c.HeartRateHigh}
	ec.Temperature = engine.Band{LowBelow: c.TempLow, HighAbove: c.TempHigh}
	ec.ScoreWeights = engine.ScoreWeights{
		Risk:      c.ScoreWeightRisk,
		Adherence: c.ScoreWeightAdherence,
		Wellness:  c.ScoreWeightWellness,
	}
	ec.Alerts = engine.AlertThresholds{
		LowAdherencePct:   c.AlertLowAdherencePct,
		LowSleepHours:     c.AlertLowSleepHours,
		LowActivityFactor: c.AlertLowActivityFactor,
	}
	if kws := splitKeywords(c.SymptomKeywords); len(kws) > 0 {
		ec.SymptomKeywords = kws
	}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, err
	}
	return ec, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func splitKeywords(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
