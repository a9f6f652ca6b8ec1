package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"health-companion/internal/domain/vitals"
)

type vitalsRepo struct {
	mu        sync.RWMutex
	byPatient map[string][]vitals.Observation
}

func NewVitalsRepo() vitals.Repository {
	return &vitalsRepo{
		byPatient: make(map[string][]vitals.Observation),
	}
}

func (r *vitalsRepo) Create(ctx context.Context, o vitals.Observation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("observation id required")
	}
	if strings.TrimSpace(o.PatientID) == "" {
		return errors.New("patient id required")
	}
	r.byPatient[o.PatientID] = append(r.byPatient[o.PatientID], o)
	return nil
}

func (r *vitalsRepo) LatestByPatient(ctx context.Context, patientID string) (vitals.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obs := r.byPatient[patientID]
	if len(obs) == 0 {
		return vitals.Observation{}, vitals.ErrNoObservations
	}

	latest := obs[0]
	for _, o := range obs[1:] {
		if o.TakenAt.After(latest.TakenAt) {
			latest = o
		}
	}
	return latest, nil
}

func (r *vitalsRepo) ListByPatient(ctx context.Context, patientID string, from, to time.Time) ([]vitals.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vitals.Observation, 0)
	for _, o := range r.byPatient[patientID] {
		if o.TakenAt.Before(from) || o.TakenAt.After(to) {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.Before(out[j].TakenAt)
	})

	return out, nil
}
