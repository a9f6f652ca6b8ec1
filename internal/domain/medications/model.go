package medications

import (
	"time"

	"health-companion/internal/engine"
)

// Medication es una pauta de medicación de un paciente. End nil significa
// tratamiento en curso sin fecha de fin.
type Medication struct {
	ID        string
	PatientID string

	Name      string
	Dosage    string // texto libre: "500 mg", "2 puffs"
	Frequency int    // tomas por día, 1-4
	Slots     []engine.TimeSlot

	Start time.Time
	End   *time.Time

	CreatedAt time.Time
}

// IntakeEvent es el estado de una toma (medicación + fecha + franja).
// Clave lógica (MedicationID, Date, Slot): marcar dos veces es idempotente,
// la última escritura gana.
type IntakeEvent struct {
	MedicationID string
	Date         time.Time
	Slot         engine.TimeSlot
	Taken        bool
	MarkedAt     time.Time
}
