package vitals

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"health-companion/internal/engine"

	"github.com/google/uuid"
)

// Rangos plausibles aceptados en la frontera. Fuera de esto el registro se
// rechaza con error de validación, nunca se recorta en silencio.
const (
	minSystolic  = 70
	maxSystolic  = 250
	minDiastolic = 40
	maxDiastolic = 150
	minHeartRate = 30
	maxHeartRate = 220
	minTempC     = 30.0
	maxTempC     = 45.0
)

type Service struct {
	repo Repository
	cfg  engine.Config
	now  func() time.Time
}

func NewService(repo Repository, cfg engine.Config) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

type RecordInput struct {
	BP          string // "120/80"
	HeartRate   int
	Temperature float64
	Symptoms    []string
	TakenAt     time.Time
}

// ParseBP separa la lectura "sistólica/diastólica". Solo formato; los
// rangos se validan aparte.
func ParseBP(bp string) (sys, dia int, err error) {
	parts := strings.Split(strings.TrimSpace(bp), "/")
	if len(parts) != 2 {
		return 0, 0, &engine.ValidationError{Field: "bp", Message: "must be in the format 120/80"}
	}
	sys, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	dia, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, &engine.ValidationError{Field: "bp", Message: "both values must be numbers (e.g. 120/80)"}
	}
	return sys, dia, nil
}

func validate(sys, dia, hr int, temp float64) engine.ValidationErrors {
	var errs engine.ValidationErrors
	if sys < minSystolic || sys > maxSystolic {
		errs = append(errs, &engine.ValidationError{Field: "systolic", Message: "looks implausible; please re-check"})
	}
	if dia < minDiastolic || dia > maxDiastolic {
		errs = append(errs, &engine.ValidationError{Field: "diastolic", Message: "looks implausible; please re-check"})
	}
	if len(errs) == 0 && sys <= dia {
		errs = append(errs, &engine.ValidationError{Field: "bp", Message: "systolic must be greater than diastolic"})
	}
	if hr < minHeartRate || hr > maxHeartRate {
		errs = append(errs, &engine.ValidationError{Field: "heart_rate", Message: "should be between 30 and 220 bpm"})
	}
	if temp < minTempC || temp > maxTempC {
		errs = append(errs, &engine.ValidationError{Field: "temperature", Message: "should be between 30 and 45 °C"})
	}
	return errs
}

// Record valida, persiste la observación y devuelve el riesgo calculado en
// el momento del registro.
func (s *Service) Record(ctx context.Context, patientID string, in RecordInput) (Observation, engine.RiskAssessment, error) {
	if strings.TrimSpace(patientID) == "" {
		return Observation{}, engine.RiskAssessment{}, engine.ErrInvalidInput
	}

	sys, dia, err := ParseBP(in.BP)
	if err != nil {
		return Observation{}, engine.RiskAssessment{}, err
	}
	if errs := validate(sys, dia, in.HeartRate, in.Temperature); len(errs) > 0 {
		return Observation{}, engine.RiskAssessment{}, errs
	}

	now := s.now()
	takenAt := in.TakenAt
	if takenAt.IsZero() {
		takenAt = now
	}

	symptoms := make([]string, 0, len(in.Symptoms))
	for _, sym := range in.Symptoms {
		if v := strings.TrimSpace(sym); v != "" {
			symptoms = append(symptoms, v)
		}
	}

	o := Observation{
		ID:          uuid.NewString(),
		PatientID:   patientID,
		TakenAt:     takenAt,
		Systolic:    sys,
		Diastolic:   dia,
		HeartRate:   in.HeartRate,
		Temperature: in.Temperature,
		Symptoms:    symptoms,
		RecordedAt:  now,
	}

	risk, err := engine.AssessRisk(snapshot(o), s.cfg)
	if err != nil {
		return Observation{}, engine.RiskAssessment{}, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Observation{}, engine.RiskAssessment{}, err
	}
	return o, risk, nil
}

// Latest devuelve la última observación con su riesgo, o hasData=false si
// el paciente aún no registró vitales.
func (s *Service) Latest(ctx context.Context, patientID string) (Observation, engine.RiskAssessment, bool, error) {
	o, err := s.repo.LatestByPatient(ctx, patientID)
	if errors.Is(err, ErrNoObservations) {
		risk, _ := engine.AssessRisk(nil, s.cfg)
		return Observation{}, risk, false, nil
	}
	if err != nil {
		return Observation{}, engine.RiskAssessment{}, false, err
	}
	risk, err := engine.AssessRisk(snapshot(o), s.cfg)
	if err != nil {
		return Observation{}, engine.RiskAssessment{}, false, err
	}
	return o, risk, true, nil
}

// LatestAsOf devuelve la última observación tomada hasta el final del día
// indicado. Evaluar una fecha pasada debe dar siempre el mismo resultado:
// lecturas posteriores no cuentan.
func (s *Service) LatestAsOf(ctx context.Context, patientID string, day time.Time) (Observation, engine.RiskAssessment, bool, error) {
	cutoff := engine.DateOf(day).AddDate(0, 0, 1)
	obs, err := s.repo.ListByPatient(ctx, patientID, time.Time{}, cutoff)
	if err != nil {
		return Observation{}, engine.RiskAssessment{}, false, err
	}

	var latest Observation
	found := false
	for _, o := range obs {
		if !o.TakenAt.Before(cutoff) {
			continue
		}
		if !found || o.TakenAt.After(latest.TakenAt) {
			latest, found = o, true
		}
	}
	if !found {
		risk, _ := engine.AssessRisk(nil, s.cfg)
		return Observation{}, risk, false, nil
	}

	risk, err := engine.AssessRisk(snapshot(latest), s.cfg)
	if err != nil {
		return Observation{}, engine.RiskAssessment{}, false, err
	}
	return latest, risk, true, nil
}

func (s *Service) History(ctx context.Context, patientID string, from, to time.Time) ([]Observation, error) {
	return s.repo.ListByPatient(ctx, patientID, from, to)
}

func snapshot(o Observation) *engine.VitalsSnapshot {
	return &engine.VitalsSnapshot{
		TakenAt:     o.TakenAt,
		Systolic:    o.Systolic,
		Diastolic:   o.Diastolic,
		HeartRate:   o.HeartRate,
		Temperature: o.Temperature,
		Symptoms:    o.Symptoms,
	}
}
