package medications

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound lo devuelven las implementaciones cuando la medicación no
// existe; el handler lo traduce a 404.
var ErrNotFound = errors.New("medication not found")

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	ListByPatient(ctx context.Context, patientID string) ([]Medication, error)

	// UpsertIntake escribe el estado de una toma; la clave es
	// (medicación, fecha, franja) y la última escritura gana.
	UpsertIntake(ctx context.Context, e IntakeEvent) error
	ListIntakes(ctx context.Context, patientID string, from, to time.Time) ([]IntakeEvent, error)
}
