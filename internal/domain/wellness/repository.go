package wellness

import (
	"context"
	"errors"
	"time"
)

// ErrNoGoal: el paciente no configuró metas. Estado legítimo, no un fallo;
// el motor lo refleja como "sin metas" en vez de asumir cero.
var ErrNoGoal = errors.New("no wellness goal set")

type Repository interface {
	// UpsertLog reemplaza el registro del día si ya existía.
	UpsertLog(ctx context.Context, e LogEntry) error
	ListLogs(ctx context.Context, patientID string, from, to time.Time) ([]LogEntry, error)

	// UpsertGoal reemplaza las metas del paciente.
	UpsertGoal(ctx context.Context, g Goal) error
	GetGoal(ctx context.Context, patientID string) (Goal, error)
}
