package engine

import (
	"fmt"
	"strings"
)

// Locale activa subconjuntos de reglas de consejo localizadas.
type Locale string

const (
	LocaleNone  Locale = ""
	LocaleIndia Locale = "en-IN"
)

// Disclaimer se añade siempre al final, exactamente una vez; ninguna regla
// puede suprimirlo.
const Disclaimer = "These insights are general wellness guidance, not a medical diagnosis. Always follow the specific advice of your treating doctor."

// insightRule es una entrada de la tabla ordenada: predicado sobre el
// bundle + plantilla. Se evalúan en orden (seguridad primero, estilo de
// vida después); disparan todas las que matchean, con una sola entrada por
// categoría.
type insightRule struct {
	category string
	locale   Locale // LocaleNone = aplica siempre
	match    func(Bundle) bool
	render   func(Bundle) string
}

var insightRules = []insightRule{
	// --- seguridad / riesgo ---
	{
		category: "risk",
		match:    func(b Bundle) bool { return b.Risk.Known && b.Risk.Level == RiskHigh },
		render: func(Bundle) string {
			return "Risk level is HIGH based on your latest vitals. Regular doctor follow-up is important."
		},
	},
	{
		category: "risk",
		match:    func(b Bundle) bool { return b.Risk.Known && b.Risk.Level == RiskModerate },
		render: func(Bundle) string {
			return "Risk level is MODERATE. Monitor symptoms and keep healthy habits."
		},
	},
	{
		category: "risk",
		match:    func(b Bundle) bool { return b.Risk.Known && b.Risk.Level == RiskLow },
		render: func(Bundle) string {
			return "Risk level is LOW. Maintain your current lifestyle."
		},
	},
	{
		category: "symptoms",
		match:    func(b Bundle) bool { return b.Risk.Known && len(b.Risk.SymptomMatches) > 0 },
		render: func(b Bundle) string {
			return fmt.Sprintf("Reported symptoms include warning signs (%s). Seek medical attention if they persist or worsen.",
				joinSymptoms(b.Risk.SymptomMatches))
		},
	},

	// --- adherencia ---
	{
		category: "adherence",
		match:    func(b Bundle) bool { return b.Adherence.Overall != nil && *b.Adherence.Overall >= 90 },
		render: func(Bundle) string {
			return "Medication adherence is excellent (>= 90%). Keep following the prescription on time."
		},
	},
	{
		category: "adherence",
		match:    func(b Bundle) bool { return b.Adherence.Overall != nil && *b.Adherence.Overall >= 80 },
		render: func(Bundle) string {
			return "Medication adherence is good, but try not to miss doses to stay on track."
		},
	},
	{
		category: "adherence",
		match:    func(b Bundle) bool { return b.Adherence.Overall != nil },
		render: func(Bundle) string {
			return "Medication adherence is low (< 80%). Missing medicines may reduce treatment effectiveness; talk to your doctor."
		},
	},

	// --- estilo de vida ---
	{
		category: "activity",
		match:    func(b Bundle) bool { return b.Wellness.Weekly != nil && b.Wellness.Weekly.Steps < 3000 },
		render: func(b Bundle) string {
			return fmt.Sprintf("Average daily steps over the last week: %.0f. Start with 10-15 minute walks 2-3 times a day and build up gradually.",
				b.Wellness.Weekly.Steps)
		},
	},
	{
		category: "activity",
		match:    func(b Bundle) bool { return b.Wellness.Weekly != nil },
		render: func(b Bundle) string {
			return fmt.Sprintf("Average daily steps over the last week: %.0f. Try to reach at least 5,000-8,000 steps if your doctor allows.",
				b.Wellness.Weekly.Steps)
		},
	},
	{
		category: "sleep",
		match:    func(b Bundle) bool { return b.Wellness.Weekly != nil && b.Wellness.Weekly.Sleep < 6 },
		render: func(b Bundle) string {
			return fmt.Sprintf("Average sleep: %.1f hours. Aim for 7-8 hours per night; avoid screens 30 minutes before bed.",
				b.Wellness.Weekly.Sleep)
		},
	},
	{
		category: "sleep",
		match:    func(b Bundle) bool { return b.Wellness.Weekly != nil },
		render: func(b Bundle) string {
			return fmt.Sprintf("Average sleep: %.1f hours. Keep a consistent schedule with similar sleep and wake times daily.",
				b.Wellness.Weekly.Sleep)
		},
	},
	{
		category: "hydration",
		match:    func(b Bundle) bool { return b.Wellness.Weekly != nil && b.Wellness.Weekly.Water < 1500 },
		render: func(b Bundle) string {
			return fmt.Sprintf("Average water intake: %.0f ml. Keep a bottle nearby and sip regularly through the day.",
				b.Wellness.Weekly.Water)
		},
	},
	{
		category: "hydration",
		match:    func(b Bundle) bool { return b.Wellness.Weekly != nil },
		render: func(b Bundle) string {
			return fmt.Sprintf("Average water intake: %.0f ml. Around 2,000 ml/day is a common target unless your doctor advises otherwise.",
				b.Wellness.Weekly.Water)
		},
	},
	{
		category: "streak",
		match:    func(b Bundle) bool { return b.Wellness.LogStreak >= 3 },
		render: func(b Bundle) string {
			return fmt.Sprintf("You have logged your wellness %d days in a row. Keep the streak going!",
				b.Wellness.LogStreak)
		},
	},
	{
		category: "data",
		match: func(b Bundle) bool {
			return !b.Risk.Known && b.Adherence.Overall == nil && b.Wellness.DaysLogged == 0
		},
		render: func(Bundle) string {
			return "Not enough data yet. Add vitals, medications, and wellness logs to see insights."
		},
	},

	// --- consejos localizados (India) ---
	{
		category: "locale_diet",
		locale:   LocaleIndia,
		match:    func(Bundle) bool { return true },
		render: func(Bundle) string {
			return "Prefer home-cooked meals like dal, sabzi, idli, chapati and upma instead of deep-fried snacks such as samosa, pakoda and chips."
		},
	},
	{
		category: "locale_bp",
		locale:   LocaleIndia,
		match: func(b Bundle) bool {
			return b.Risk.Known && (b.Risk.BP == BPHigh || b.Risk.BP == BPCrisis)
		},
		render: func(Bundle) string {
			return "For high blood pressure, reduce very salty foods like pickles, papad, packaged namkeen and bakery items."
		},
	},
	{
		category: "locale_season",
		locale:   LocaleIndia,
		match:    func(Bundle) bool { return true },
		render: func(Bundle) string {
			return "During monsoon and dengue season, avoid stagnant water around the house and use mosquito nets or repellents."
		},
	},
}

// GenerateInsights evalúa la tabla de reglas en orden contra el bundle y
// devuelve los textos de consejo. Determinista: mismo bundle, misma salida.
func GenerateInsights(b Bundle, locale Locale) []string {
	out := make([]string, 0, 8)
	fired := make(map[string]bool)

	for _, r := range insightRules {
		if r.locale != LocaleNone && r.locale != locale {
			continue
		}
		if fired[r.category] {
			continue
		}
		if !r.match(b) {
			continue
		}
		fired[r.category] = true
		out = append(out, r.render(b))
	}

	return append(out, Disclaimer)
}

func joinSymptoms(matches []string) string {
	return strings.Join(matches, ", ")
}
