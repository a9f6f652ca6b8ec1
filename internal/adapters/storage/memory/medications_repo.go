package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"health-companion/internal/domain/medications"
	"health-companion/internal/engine"
)

type intakeKey struct {
	medicationID string
	date         time.Time
	slot         engine.TimeSlot
}

type medicationsRepo struct {
	mu        sync.RWMutex
	byID      map[string]medications.Medication
	byPatient map[string][]string
	intakes   map[intakeKey]medications.IntakeEvent
}

func NewMedicationsRepo() medications.Repository {
	return &medicationsRepo{
		byID:      make(map[string]medications.Medication),
		byPatient: make(map[string][]string),
		intakes:   make(map[intakeKey]medications.IntakeEvent),
	}
}

func (r *medicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if strings.TrimSpace(m.PatientID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.byID[m.ID] = m
	r.byPatient[m.PatientID] = append(r.byPatient[m.PatientID], m.ID)
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationsRepo) ListByPatient(ctx context.Context, patientID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, id := range r.byPatient[patientID] {
		out = append(out, r.byID[id])
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *medicationsRepo) UpsertIntake(ctx context.Context, e medications.IntakeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.MedicationID]; !ok {
		return medications.ErrNotFound
	}
	r.intakes[intakeKey{e.MedicationID, engine.DateOf(e.Date), e.Slot}] = e
	return nil
}

func (r *medicationsRepo) ListIntakes(ctx context.Context, patientID string, from, to time.Time) ([]medications.IntakeEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mine := make(map[string]bool, len(r.byPatient[patientID]))
	for _, id := range r.byPatient[patientID] {
		mine[id] = true
	}

	from, to = engine.DateOf(from), engine.DateOf(to)
	out := make([]medications.IntakeEvent, 0)
	for k, e := range r.intakes {
		if !mine[k.medicationID] || k.date.Before(from) || k.date.After(to) {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].MedicationID < out[j].MedicationID
	})

	return out, nil
}
