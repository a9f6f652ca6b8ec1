package wellness

import (
	"time"

	"health-companion/internal/engine"
)

// LogEntry es el registro de bienestar de un día. Hay como mucho uno por
// paciente y fecha; volver a guardar el mismo día lo reemplaza.
type LogEntry struct {
	PatientID string
	Date      time.Time

	Steps      int
	SleepHours float64
	WaterML    float64
	Mood       engine.Mood

	UpdatedAt time.Time
}

// Goal son las metas vigentes del paciente; la última configurada
// reemplaza a la anterior.
type Goal struct {
	PatientID string

	StepsTarget int
	SleepTarget float64
	WaterTarget float64

	UpdatedAt time.Time
}
