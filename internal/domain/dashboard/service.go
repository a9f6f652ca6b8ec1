package dashboard

import (
	"context"
	"strings"
	"time"

	"health-companion/internal/domain/medications"
	"health-companion/internal/domain/vitals"
	"health-companion/internal/domain/wellness"
	"health-companion/internal/engine"
)

// DefaultWindowDays es la ventana de evaluación por defecto.
const DefaultWindowDays = 7

// Service compone una foto consistente del paciente (todas las lecturas en
// el mismo instante lógico) y la pasa por el motor de analítica. Toda la
// E/S ocurre aquí; el motor recibe valores y devuelve valores.
type Service struct {
	vitals      *vitals.Service
	medications *medications.Service
	wellness    *wellness.Service
	cfg         engine.Config
}

func NewService(v *vitals.Service, m *medications.Service, w *wellness.Service, cfg engine.Config) *Service {
	return &Service{
		vitals:      v,
		medications: m,
		wellness:    w,
		cfg:         cfg,
	}
}

// Evaluate deriva el bundle completo de métricas del paciente a una fecha.
// days define la ventana [at-days+1, at]; valores fuera de rango usan el
// default.
func (s *Service) Evaluate(ctx context.Context, patientID string, at time.Time, days int) (engine.Bundle, error) {
	if strings.TrimSpace(patientID) == "" {
		return engine.Bundle{}, engine.ErrInvalidInput
	}
	if days <= 0 || days > 90 {
		days = DefaultWindowDays
	}

	at = engine.DateOf(at)
	window := engine.Window{From: at.AddDate(0, 0, -(days - 1)), To: at}

	_, risk, _, err := s.vitals.LatestAsOf(ctx, patientID, at)
	if err != nil {
		return engine.Bundle{}, err
	}

	schedules, err := s.medications.Schedules(ctx, patientID)
	if err != nil {
		return engine.Bundle{}, err
	}
	intakes, err := s.medications.ListIntakes(ctx, patientID, window.From, window.To)
	if err != nil {
		return engine.Bundle{}, err
	}
	adherence := engine.ComputeAdherence(schedules, medications.Marks(intakes), window)

	logs, err := s.wellness.Logs(ctx, patientID, window.From, window.To)
	if err != nil {
		return engine.Bundle{}, err
	}
	goal, hasGoal, err := s.wellness.Goal(ctx, patientID)
	if err != nil {
		return engine.Bundle{}, err
	}
	var goalPtr *wellness.Goal
	if hasGoal {
		goalPtr = &goal
	}
	engineLogs, engineGoal := wellness.EngineViews(logs, goalPtr)
	well := engine.ComputeWellness(engineLogs, engineGoal, window)

	score, alerts := engine.AggregateScore(risk, adherence, well, s.cfg)

	return engine.Bundle{
		EvaluatedAt: at,
		Risk:        risk,
		Adherence:   adherence,
		Wellness:    well,
		Score:       score,
		Alerts:      alerts,
	}, nil
}

// Insights evalúa el bundle y lo pasa por la tabla de reglas de consejo.
func (s *Service) Insights(ctx context.Context, patientID string, at time.Time, days int, locale engine.Locale) ([]string, error) {
	b, err := s.Evaluate(ctx, patientID, at, days)
	if err != nil {
		return nil, err
	}
	return engine.GenerateInsights(b, locale), nil
}

// Calendar clasifica cada toma agendada del mes.
func (s *Service) Calendar(ctx context.Context, patientID string, year int, month time.Month, today time.Time) ([]engine.CalendarDay, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, engine.ErrInvalidInput
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	schedules, err := s.medications.Schedules(ctx, patientID)
	if err != nil {
		return nil, err
	}
	intakes, err := s.medications.ListIntakes(ctx, patientID, first, last)
	if err != nil {
		return nil, err
	}

	return engine.BuildCalendar(schedules, medications.Marks(intakes), engine.Window{From: first, To: last}, today), nil
}
