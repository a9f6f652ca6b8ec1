package vitals

import (
	"context"
	"errors"
	"time"
)

// ErrNoObservations: el paciente todavía no registró vitales. No es un
// fallo; el motor lo traduce a riesgo Unknown.
var ErrNoObservations = errors.New("no observations recorded")

type Repository interface {
	Create(ctx context.Context, o Observation) error
	LatestByPatient(ctx context.Context, patientID string) (Observation, error)
	ListByPatient(ctx context.Context, patientID string, from, to time.Time) ([]Observation, error)
}
