package engine

import "time"

// TimeSlot es una franja del día en la que corresponde una toma.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

var AllSlots = []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

func ValidSlot(s TimeSlot) bool {
	for _, k := range AllSlots {
		if s == k {
			return true
		}
	}
	return false
}

// Window es un rango de fechas inclusivo [From, To], solo a nivel de día.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Days() int {
	from, to := DateOf(w.From), DateOf(w.To)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// DateOf normaliza a medianoche UTC; todo el motor compara fechas así.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// VitalsSnapshot es la última observación de signos vitales de un paciente.
// El llamador valida el formato antes de construirla (ver dominio vitals).
type VitalsSnapshot struct {
	TakenAt     time.Time
	Systolic    int
	Diastolic   int
	HeartRate   int
	Temperature float64
	Symptoms    []string
}

// MedicationSchedule es la vista del motor sobre una medicación activa.
// End nil significa tratamiento sin fecha de fin.
type MedicationSchedule struct {
	ID    string
	Name  string
	Slots []TimeSlot
	Start time.Time
	End   *time.Time
}

// ActiveOn indica si la medicación está vigente el día dado.
func (m MedicationSchedule) ActiveOn(day time.Time) bool {
	d := DateOf(day)
	if d.Before(DateOf(m.Start)) {
		return false
	}
	if m.End != nil && d.After(DateOf(*m.End)) {
		return false
	}
	return true
}

// IntakeMark es el estado de una toma puntual (medicación + fecha + franja).
// El marcado es un upsert: marcar dos veces la misma toma no duplica nada.
type IntakeMark struct {
	MedicationID string
	Date         time.Time
	Slot         TimeSlot
	Taken        bool
}

// Mood es el estado de ánimo registrado en el log diario.
type Mood string

const (
	MoodVeryGood Mood = "very_good"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodLow      Mood = "low"
	MoodStressed Mood = "stressed"
)

func ValidMood(m Mood) bool {
	switch m {
	case MoodVeryGood, MoodGood, MoodOkay, MoodLow, MoodStressed:
		return true
	}
	return false
}

// DailyLog es un registro de bienestar de un día (uno por paciente y fecha).
type DailyLog struct {
	Date       time.Time
	Steps      int
	SleepHours float64
	WaterML    float64
	Mood       Mood
}

// Goal son las metas vigentes del paciente. Un target <= 0 se trata como
// "sin meta" para esa métrica concreta.
type Goal struct {
	StepsTarget int     `json:"steps_target"`
	SleepTarget float64 `json:"sleep_target"`
	WaterTarget float64 `json:"water_target"`
}

// Bundle agrupa todas las métricas derivadas de un paciente en una fecha
// de evaluación, listo para el motor de insights y para presentación.
type Bundle struct {
	EvaluatedAt time.Time

	Risk      RiskAssessment
	Adherence AdherenceSummary
	Wellness  WellnessSummary
	Score     HealthScore
	Alerts    []Alert
}
