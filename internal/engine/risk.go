package engine

import (
	"math"
	"strings"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown"
)

// BPClass clasifica la pareja sistólica/diastólica.
type BPClass string

const (
	BPNormal   BPClass = "normal"
	BPElevated BPClass = "elevated"
	BPHigh     BPClass = "high"
	BPCrisis   BPClass = "hypertensive_crisis"
)

// VitalClass clasifica frecuencia cardíaca y temperatura.
type VitalClass string

const (
	VitalLow    VitalClass = "low"
	VitalNormal VitalClass = "normal"
	VitalHigh   VitalClass = "high"
)

// RiskAssessment es el resultado del motor de riesgo. Known=false significa
// que no había observación de vitales: el nivel es Unknown, no Low, y el
// agregador lo excluye del blend en lugar de asumir riesgo cero.
type RiskAssessment struct {
	Known bool
	Level RiskLevel

	// Score numérico 0-100 (más alto = peor) para series temporales.
	Score float64

	BP             BPClass
	HeartRate      VitalClass
	Temperature    VitalClass
	SymptomMatches []string
}

// AssessRisk clasifica la última observación de vitales. obs nil devuelve
// un assessment Unknown sin error.
func AssessRisk(obs *VitalsSnapshot, cfg Config) (RiskAssessment, error) {
	if obs == nil {
		return RiskAssessment{Known: false, Level: RiskUnknown}, nil
	}

	// La frontera ya validó; aún así el motor no acepta pares imposibles.
	if obs.Systolic <= 0 {
		return RiskAssessment{}, &ValidationError{Field: "systolic", Message: "must be positive"}
	}
	if obs.Diastolic <= 0 {
		return RiskAssessment{}, &ValidationError{Field: "diastolic", Message: "must be positive"}
	}
	if obs.Systolic <= obs.Diastolic {
		return RiskAssessment{}, &ValidationError{Field: "blood_pressure", Message: "systolic must be greater than diastolic"}
	}

	bp := classifyBP(obs.Systolic, obs.Diastolic, cfg.BP)
	hr := classifyVital(float64(obs.HeartRate), cfg.HeartRate)
	temp := classifyVital(obs.Temperature, cfg.Temperature)
	matches := matchSymptoms(obs.Symptoms, cfg.SymptomKeywords)

	score := 100 * (cfg.RiskWeights.BP*bpSeverity(bp) +
		cfg.RiskWeights.HeartRate*vitalSeverity(hr) +
		cfg.RiskWeights.Temperature*vitalSeverity(temp) +
		cfg.RiskWeights.Symptoms*symptomSeverity(len(matches)))

	return RiskAssessment{
		Known:          true,
		Level:          overallLevel(bp, hr, temp, len(matches)),
		Score:          math.Round(score*10) / 10,
		BP:             bp,
		HeartRate:      hr,
		Temperature:    temp,
		SymptomMatches: matches,
	}, nil
}

func classifyBP(sys, dia int, b BPBands) BPClass {
	// Sub-clasifica cada componente y se queda con el peor.
	cls := func(v, elevated, high, crisis int) BPClass {
		switch {
		case v >= crisis:
			return BPCrisis
		case v >= high:
			return BPHigh
		case v >= elevated:
			return BPElevated
		default:
			return BPNormal
		}
	}
	s := cls(sys, b.ElevatedSys, b.HighSys, b.CrisisSys)
	d := cls(dia, b.ElevatedDia, b.HighDia, b.CrisisDia)
	if bpSeverity(d) > bpSeverity(s) {
		return d
	}
	return s
}

func classifyVital(v float64, band Band) VitalClass {
	switch {
	case v > band.HighAbove:
		return VitalHigh
	case v < band.LowBelow:
		return VitalLow
	default:
		return VitalNormal
	}
}

func matchSymptoms(symptoms, keywords []string) []string {
	joined := strings.ToLower(strings.Join(symptoms, " "))
	var out []string
	for _, kw := range keywords {
		if strings.Contains(joined, strings.ToLower(kw)) {
			out = append(out, kw)
		}
	}
	return out
}

func bpSeverity(c BPClass) float64 {
	switch c {
	case BPElevated:
		return 0.4
	case BPHigh:
		return 0.75
	case BPCrisis:
		return 1.0
	default:
		return 0
	}
}

func vitalSeverity(c VitalClass) float64 {
	switch c {
	case VitalLow:
		return 0.5
	case VitalHigh:
		return 1.0
	default:
		return 0
	}
}

func symptomSeverity(matches int) float64 {
	return math.Min(1.0, 0.5*float64(matches))
}

// overallLevel aplica el desempate: cualquier componente en "high" fuerza
// High; dos o más componentes borderline fuerzan Moderate; si no, Low.
func overallLevel(bp BPClass, hr, temp VitalClass, matches int) RiskLevel {
	high := 0
	borderline := 0

	switch bp {
	case BPHigh, BPCrisis:
		high++
	case BPElevated:
		borderline++
	}
	for _, v := range []VitalClass{hr, temp} {
		switch v {
		case VitalHigh:
			high++
		case VitalLow:
			borderline++
		}
	}
	switch {
	case matches >= 2:
		high++
	case matches == 1:
		borderline++
	}

	switch {
	case high >= 1:
		return RiskHigh
	case borderline >= 2:
		return RiskModerate
	default:
		return RiskLow
	}
}
