package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"health-companion/internal/domain/wellness"
	"health-companion/internal/engine"
)

type logKey struct {
	patientID string
	date      time.Time
}

type wellnessRepo struct {
	mu    sync.RWMutex
	logs  map[logKey]wellness.LogEntry
	goals map[string]wellness.Goal
}

func NewWellnessRepo() wellness.Repository {
	return &wellnessRepo{
		logs:  make(map[logKey]wellness.LogEntry),
		goals: make(map[string]wellness.Goal),
	}
}

func (r *wellnessRepo) UpsertLog(ctx context.Context, e wellness.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.PatientID) == "" {
		return errors.New("patient id required")
	}
	r.logs[logKey{e.PatientID, engine.DateOf(e.Date)}] = e
	return nil
}

func (r *wellnessRepo) ListLogs(ctx context.Context, patientID string, from, to time.Time) ([]wellness.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from, to = engine.DateOf(from), engine.DateOf(to)
	out := make([]wellness.LogEntry, 0)
	for k, e := range r.logs {
		if k.patientID != patientID || k.date.Before(from) || k.date.After(to) {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out, nil
}

func (r *wellnessRepo) UpsertGoal(ctx context.Context, g wellness.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(g.PatientID) == "" {
		return errors.New("patient id required")
	}
	r.goals[g.PatientID] = g
	return nil
}

func (r *wellnessRepo) GetGoal(ctx context.Context, patientID string) (wellness.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.goals[patientID]
	if !ok {
		return wellness.Goal{}, wellness.ErrNoGoal
	}
	return g, nil
}
