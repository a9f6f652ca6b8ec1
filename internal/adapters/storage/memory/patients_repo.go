package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"health-companion/internal/domain/patients"
)

var (
	ErrNotFound = errors.New("not found")
)

type patientsRepo struct {
	mu   sync.RWMutex
	byID map[string]patients.Patient
}

func NewPatientsRepo() patients.Repository {
	return &patientsRepo{
		byID: make(map[string]patients.Patient),
	}
}

func (r *patientsRepo) Create(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("patient already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *patientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *patientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patients.Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
