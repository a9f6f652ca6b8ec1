package engine

import "fmt"

// BPBands define los umbrales de presión arterial. Cada banda aplica por
// separado a sistólica y diastólica; gana la peor de las dos.
type BPBands struct {
	ElevatedSys int
	ElevatedDia int
	HighSys     int
	HighDia     int
	CrisisSys   int
	CrisisDia   int
}

// Band es un rango normal [LowBelow, HighAbove]: por debajo clasifica low,
// por encima high.
type Band struct {
	LowBelow  float64
	HighAbove float64
}

// RiskWeights pondera cada componente en el score numérico de riesgo.
// Deben sumar 1.
type RiskWeights struct {
	BP          float64
	HeartRate   float64
	Temperature float64
	Symptoms    float64
}

// ScoreWeights pondera cada señal en el health score global. Deben sumar 1.
// Si una señal no aplica (sin medicaciones, sin metas) se excluye y el
// resto se renormaliza.
type ScoreWeights struct {
	Risk      float64
	Adherence float64
	Wellness  float64
}

// RiskGoodness mapea el nivel de riesgo categórico a la escala 0-100 de
// "goodness" usada en el blend (riesgo bajo = salud alta).
type RiskGoodness struct {
	Low      float64
	Moderate float64
	High     float64
}

// AlertThresholds son los umbrales de las alertas acumulativas.
type AlertThresholds struct {
	LowAdherencePct   float64
	LowSleepHours     float64
	LowActivityFactor float64 // fracción de la meta de pasos
}

// Config reúne las tablas de referencia del motor. Los valores por defecto
// replican el producto original; todos son configurables (ver internal/config).
type Config struct {
	BP              BPBands
	HeartRate       Band
	Temperature     Band
	SymptomKeywords []string

	RiskWeights  RiskWeights
	ScoreWeights ScoreWeights
	RiskGoodness RiskGoodness
	Alerts       AlertThresholds
}

func DefaultConfig() Config {
	return Config{
		BP: BPBands{
			ElevatedSys: 120, ElevatedDia: 80,
			HighSys: 140, HighDia: 90,
			CrisisSys: 180, CrisisDia: 120,
		},
		HeartRate:   Band{LowBelow: 60, HighAbove: 100},
		Temperature: Band{LowBelow: 35.0, HighAbove: 38.0},
		SymptomKeywords: []string{
			"chest pain", "pressure", "tightness",
			"breathless", "shortness of breath", "wheezing",
			"fainting", "dizziness", "confusion",
		},
		RiskWeights:  RiskWeights{BP: 0.40, HeartRate: 0.20, Temperature: 0.20, Symptoms: 0.20},
		ScoreWeights: ScoreWeights{Risk: 0.40, Adherence: 0.35, Wellness: 0.25},
		RiskGoodness: RiskGoodness{Low: 100, Moderate: 60, High: 25},
		Alerts: AlertThresholds{
			LowAdherencePct:   50,
			LowSleepHours:     6,
			LowActivityFactor: 0.5,
		},
	}
}

const weightTolerance = 1e-6

// Validate falla rápido ante tablas incompletas o incoherentes.
func (c Config) Validate() error {
	if c.BP.ElevatedSys <= 0 || c.BP.HighSys <= c.BP.ElevatedSys || c.BP.CrisisSys <= c.BP.HighSys {
		return &ConfigurationError{Reason: "systolic bands must be increasing and positive"}
	}
	if c.BP.ElevatedDia <= 0 || c.BP.HighDia <= c.BP.ElevatedDia || c.BP.CrisisDia <= c.BP.HighDia {
		return &ConfigurationError{Reason: "diastolic bands must be increasing and positive"}
	}
	if c.HeartRate.LowBelow <= 0 || c.HeartRate.HighAbove <= c.HeartRate.LowBelow {
		return &ConfigurationError{Reason: "heart rate band is inverted or empty"}
	}
	if c.Temperature.LowBelow <= 0 || c.Temperature.HighAbove <= c.Temperature.LowBelow {
		return &ConfigurationError{Reason: "temperature band is inverted or empty"}
	}
	if len(c.SymptomKeywords) == 0 {
		return &ConfigurationError{Reason: "symptom keyword set is empty"}
	}

	if err := sumsToOne("risk weights",
		c.RiskWeights.BP, c.RiskWeights.HeartRate, c.RiskWeights.Temperature, c.RiskWeights.Symptoms); err != nil {
		return err
	}
	if err := sumsToOne("score weights",
		c.ScoreWeights.Risk, c.ScoreWeights.Adherence, c.ScoreWeights.Wellness); err != nil {
		return err
	}

	if !(c.RiskGoodness.Low > c.RiskGoodness.Moderate && c.RiskGoodness.Moderate > c.RiskGoodness.High) {
		return &ConfigurationError{Reason: "risk goodness must decrease with risk level"}
	}
	if c.RiskGoodness.High < 0 || c.RiskGoodness.Low > 100 {
		return &ConfigurationError{Reason: "risk goodness must stay within 0-100"}
	}

	if c.Alerts.LowAdherencePct < 0 || c.Alerts.LowAdherencePct > 100 {
		return &ConfigurationError{Reason: "low adherence threshold must be a percentage"}
	}
	if c.Alerts.LowSleepHours < 0 || c.Alerts.LowSleepHours > 24 {
		return &ConfigurationError{Reason: "low sleep threshold must be within 0-24 hours"}
	}
	if c.Alerts.LowActivityFactor <= 0 || c.Alerts.LowActivityFactor > 1 {
		return &ConfigurationError{Reason: "low activity factor must be in (0, 1]"}
	}
	return nil
}

func sumsToOne(name string, ws ...float64) error {
	sum := 0.0
	for _, w := range ws {
		if w < 0 {
			return &ConfigurationError{Reason: name + " must be non-negative"}
		}
		sum += w
	}
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return &ConfigurationError{Reason: fmt.Sprintf("%s must sum to 1, got %.4f", name, sum)}
	}
	return nil
}
