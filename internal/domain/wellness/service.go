package wellness

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-companion/internal/engine"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type LogInput struct {
	Date       time.Time
	Steps      int
	SleepHours float64
	WaterML    float64
	Mood       engine.Mood
}

// LogDay guarda (upsert) el registro de bienestar de un día.
func (s *Service) LogDay(ctx context.Context, patientID string, in LogInput) (LogEntry, error) {
	if strings.TrimSpace(patientID) == "" {
		return LogEntry{}, engine.ErrInvalidInput
	}

	var errs engine.ValidationErrors
	if in.Steps < 0 {
		errs = append(errs, &engine.ValidationError{Field: "steps", Message: "cannot be negative"})
	}
	if in.SleepHours < 0 || in.SleepHours > 24 {
		errs = append(errs, &engine.ValidationError{Field: "sleep_hours", Message: "must be between 0 and 24"})
	}
	if in.WaterML < 0 {
		errs = append(errs, &engine.ValidationError{Field: "water_ml", Message: "cannot be negative"})
	}
	if !engine.ValidMood(in.Mood) {
		errs = append(errs, &engine.ValidationError{Field: "mood", Message: "unknown mood"})
	}
	if len(errs) > 0 {
		return LogEntry{}, errs
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	e := LogEntry{
		PatientID:  patientID,
		Date:       engine.DateOf(date),
		Steps:      in.Steps,
		SleepHours: in.SleepHours,
		WaterML:    in.WaterML,
		Mood:       in.Mood,
		UpdatedAt:  s.now(),
	}
	if err := s.repo.UpsertLog(ctx, e); err != nil {
		return LogEntry{}, err
	}
	return e, nil
}

type GoalInput struct {
	StepsTarget int
	SleepTarget float64
	WaterTarget float64
}

// SetGoal reemplaza las metas del paciente (la última configurada manda).
func (s *Service) SetGoal(ctx context.Context, patientID string, in GoalInput) (Goal, error) {
	if strings.TrimSpace(patientID) == "" {
		return Goal{}, engine.ErrInvalidInput
	}

	var errs engine.ValidationErrors
	if in.StepsTarget < 0 {
		errs = append(errs, &engine.ValidationError{Field: "steps_target", Message: "cannot be negative"})
	}
	if in.SleepTarget < 0 || in.SleepTarget > 24 {
		errs = append(errs, &engine.ValidationError{Field: "sleep_target", Message: "must be between 0 and 24"})
	}
	if in.WaterTarget < 0 {
		errs = append(errs, &engine.ValidationError{Field: "water_target", Message: "cannot be negative"})
	}
	if in.StepsTarget == 0 && in.SleepTarget == 0 && in.WaterTarget == 0 {
		errs = append(errs, &engine.ValidationError{Field: "goal", Message: "set at least one target"})
	}
	if len(errs) > 0 {
		return Goal{}, errs
	}

	g := Goal{
		PatientID:   patientID,
		StepsTarget: in.StepsTarget,
		SleepTarget: in.SleepTarget,
		WaterTarget: in.WaterTarget,
		UpdatedAt:   s.now(),
	}
	if err := s.repo.UpsertGoal(ctx, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) Logs(ctx context.Context, patientID string, from, to time.Time) ([]LogEntry, error) {
	return s.repo.ListLogs(ctx, patientID, from, to)
}

// Goal devuelve las metas vigentes, o hasGoal=false si no hay ninguna.
func (s *Service) Goal(ctx context.Context, patientID string) (Goal, bool, error) {
	g, err := s.repo.GetGoal(ctx, patientID)
	if errors.Is(err, ErrNoGoal) {
		return Goal{}, false, nil
	}
	if err != nil {
		return Goal{}, false, err
	}
	return g, true, nil
}

// EngineViews proyecta logs y meta a los tipos del motor.
func EngineViews(logs []LogEntry, goal *Goal) ([]engine.DailyLog, *engine.Goal) {
	out := make([]engine.DailyLog, 0, len(logs))
	for _, e := range logs {
		out = append(out, engine.DailyLog{
			Date:       e.Date,
			Steps:      e.Steps,
			SleepHours: e.SleepHours,
			WaterML:    e.WaterML,
			Mood:       e.Mood,
		})
	}
	if goal == nil {
		return out, nil
	}
	return out, &engine.Goal{
		StepsTarget: goal.StepsTarget,
		SleepTarget: goal.SleepTarget,
		WaterTarget: goal.WaterTarget,
	}
}
