package engine

import "math"

// ScoreBand es la banda de riesgo global derivada del health score. Es
// independiente del RiskLevel de vitales: el agregado pondera también
// adherencia y bienestar.
type ScoreBand string

const (
	BandLow      ScoreBand = "low"
	BandModerate ScoreBand = "moderate"
	BandHigh     ScoreBand = "high"
)

// ScoreComponent documenta cómo se formó el score: goodness 0-100 de la
// señal y peso ya renormalizado (los pesos de los componentes presentes
// siempre suman 1).
type ScoreComponent struct {
	Name     string  `json:"name"`
	Goodness float64 `json:"goodness"`
	Weight   float64 `json:"weight"`
}

// HealthScore es el score compuesto 0-100. Known=false significa que no
// había ninguna señal disponible (sin vitales, sin medicación y sin metas).
type HealthScore struct {
	Known      bool
	Score      int
	Band       ScoreBand
	Components []ScoreComponent
}

type AlertCode string

const (
	AlertLowAdherence AlertCode = "low_adherence"
	AlertLowSleep     AlertCode = "low_sleep"
	AlertLowActivity  AlertCode = "low_activity"
	AlertHighRisk     AlertCode = "high_risk"
)

// Alert es derivada, nunca persistida: se recalcula en cada evaluación.
type Alert struct {
	Code    AlertCode `json:"code"`
	Message string    `json:"message"`
}

// AggregateScore combina las tres señales en un score 0-100 y genera las
// alertas acumulativas. Las señales "no aplica" (riesgo desconocido,
// adherencia sin tomas esperadas, bienestar sin metas o sin datos) se
// excluyen del blend y los pesos restantes se renormalizan: un componente
// ausente jamás cuenta como perfecto ni como cero.
func AggregateScore(risk RiskAssessment, adh AdherenceSummary, well WellnessSummary, cfg Config) (HealthScore, []Alert) {
	var comps []ScoreComponent

	if risk.Known {
		comps = append(comps, ScoreComponent{
			Name:     "risk",
			Goodness: riskGoodness(risk.Level, cfg.RiskGoodness),
			Weight:   cfg.ScoreWeights.Risk,
		})
	}
	if adh.Overall != nil {
		comps = append(comps, ScoreComponent{
			Name:     "adherence",
			Goodness: clamp01to100(*adh.Overall),
			Weight:   cfg.ScoreWeights.Adherence,
		})
	}
	if well.Completion != nil && well.Completion.Average != nil {
		comps = append(comps, ScoreComponent{
			Name:     "wellness",
			Goodness: clamp01to100(*well.Completion.Average),
			Weight:   cfg.ScoreWeights.Wellness,
		})
	}

	score := HealthScore{}
	if len(comps) > 0 {
		total := 0.0
		for _, c := range comps {
			total += c.Weight
		}
		weighted := 0.0
		for i := range comps {
			comps[i].Weight /= total
			weighted += comps[i].Weight * comps[i].Goodness
		}
		score = HealthScore{
			Known:      true,
			Score:      int(math.Round(clamp01to100(weighted))),
			Components: comps,
		}
		score.Band = band(score.Score)
	}

	return score, buildAlerts(risk, adh, well, cfg.Alerts)
}

func riskGoodness(l RiskLevel, g RiskGoodness) float64 {
	switch l {
	case RiskLow:
		return g.Low
	case RiskModerate:
		return g.Moderate
	default:
		return g.High
	}
}

func band(score int) ScoreBand {
	switch {
	case score >= 75:
		return BandLow
	case score >= 50:
		return BandModerate
	default:
		return BandHigh
	}
}

func clamp01to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func buildAlerts(risk RiskAssessment, adh AdherenceSummary, well WellnessSummary, th AlertThresholds) []Alert {
	var alerts []Alert

	if risk.Known && risk.Level == RiskHigh {
		alerts = append(alerts, Alert{
			Code:    AlertHighRisk,
			Message: "Vitals indicate a high risk level; consider consulting a doctor soon.",
		})
	}
	if adh.Overall != nil && *adh.Overall < th.LowAdherencePct {
		alerts = append(alerts, Alert{
			Code:    AlertLowAdherence,
			Message: "Medication adherence is low; missed doses may reduce treatment effectiveness.",
		})
	}
	if well.Weekly != nil {
		if well.Weekly.Sleep < th.LowSleepHours {
			alerts = append(alerts, Alert{
				Code:    AlertLowSleep,
				Message: "Average sleep is below the healthy range; improve your sleep schedule for better recovery.",
			})
		}
		if well.Goal != nil && well.Goal.StepsTarget > 0 &&
			well.Weekly.Steps < th.LowActivityFactor*float64(well.Goal.StepsTarget) {
			alerts = append(alerts, Alert{
				Code:    AlertLowActivity,
				Message: "Physical activity is well below your goal; try to walk more each day if your doctor allows.",
			})
		}
	}
	return alerts
}
