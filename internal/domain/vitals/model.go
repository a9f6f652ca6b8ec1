package vitals

import "time"

// Observation es una toma de signos vitales. Inmutable una vez registrada;
// un paciente acumula varias ordenadas por fecha.
type Observation struct {
	ID        string
	PatientID string

	TakenAt     time.Time
	Systolic    int
	Diastolic   int
	HeartRate   int
	Temperature float64
	Symptoms    []string

	RecordedAt time.Time
}
