package medications

import (
	"context"
	"strings"
	"time"

	"health-companion/internal/engine"

	"github.com/google/uuid"
)

const (
	minFrequency = 1
	maxFrequency = 4
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

type AddInput struct {
	Name      string
	Dosage    string
	Frequency int
	Slots     []engine.TimeSlot
	Start     time.Time
	End       *time.Time
}

func (s *Service) Add(ctx context.Context, patientID string, in AddInput) (Medication, error) {
	if strings.TrimSpace(patientID) == "" {
		return Medication{}, engine.ErrInvalidInput
	}

	var errs engine.ValidationErrors
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, &engine.ValidationError{Field: "name", Message: "is required"})
	}
	if strings.TrimSpace(in.Dosage) == "" {
		errs = append(errs, &engine.ValidationError{Field: "dosage", Message: "is required (e.g. 500 mg)"})
	}
	if in.Frequency < minFrequency || in.Frequency > maxFrequency {
		errs = append(errs, &engine.ValidationError{Field: "frequency", Message: "must be between 1 and 4 doses per day"})
	}
	if err := validateSlots(in.Slots, in.Frequency); err != nil {
		errs = append(errs, err)
	}
	if in.Start.IsZero() {
		errs = append(errs, &engine.ValidationError{Field: "start_date", Message: "is required"})
	}
	if in.End != nil && engine.DateOf(*in.End).Before(engine.DateOf(in.Start)) {
		errs = append(errs, &engine.ValidationError{Field: "end_date", Message: "cannot be before start date"})
	}
	if len(errs) > 0 {
		return Medication{}, errs
	}

	m := Medication{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Name:      strings.TrimSpace(in.Name),
		Dosage:    strings.TrimSpace(in.Dosage),
		Frequency: in.Frequency,
		Slots:     in.Slots,
		Start:     engine.DateOf(in.Start),
		CreatedAt: s.now(),
	}
	if in.End != nil {
		end := engine.DateOf(*in.End)
		m.End = &end
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// validateSlots exige franjas conocidas, sin repetir, y cardinalidad igual
// a la frecuencia diaria.
func validateSlots(slots []engine.TimeSlot, frequency int) *engine.ValidationError {
	if len(slots) == 0 {
		return &engine.ValidationError{Field: "slots", Message: "select at least one time of day"}
	}
	seen := make(map[engine.TimeSlot]bool, len(slots))
	for _, sl := range slots {
		if !engine.ValidSlot(sl) {
			return &engine.ValidationError{Field: "slots", Message: "unknown time of day: " + string(sl)}
		}
		if seen[sl] {
			return &engine.ValidationError{Field: "slots", Message: "duplicate time of day: " + string(sl)}
		}
		seen[sl] = true
	}
	if frequency >= minFrequency && frequency <= maxFrequency && len(slots) != frequency {
		return &engine.ValidationError{Field: "slots", Message: "number of times of day must match the daily frequency"}
	}
	return nil
}

type MarkInput struct {
	Date  time.Time
	Slot  engine.TimeSlot
	Taken bool
}

// MarkIntake registra (upsert) el estado de una toma. Rechaza franjas que
// no forman parte de la pauta y fechas fuera de su vigencia.
func (s *Service) MarkIntake(ctx context.Context, medicationID string, in MarkInput) (IntakeEvent, error) {
	m, err := s.repo.GetByID(ctx, strings.TrimSpace(medicationID))
	if err != nil {
		return IntakeEvent{}, err
	}

	if in.Date.IsZero() {
		return IntakeEvent{}, &engine.ValidationError{Field: "date", Message: "is required"}
	}
	scheduled := false
	for _, sl := range m.Slots {
		if sl == in.Slot {
			scheduled = true
			break
		}
	}
	if !scheduled {
		return IntakeEvent{}, &engine.ValidationError{Field: "slot", Message: "this medication is not scheduled at that time of day"}
	}
	if !schedule(m).ActiveOn(in.Date) {
		return IntakeEvent{}, &engine.ValidationError{Field: "date", Message: "medication is not active on that date"}
	}

	e := IntakeEvent{
		MedicationID: m.ID,
		Date:         engine.DateOf(in.Date),
		Slot:         in.Slot,
		Taken:        in.Taken,
		MarkedAt:     s.now(),
	}
	if err := s.repo.UpsertIntake(ctx, e); err != nil {
		return IntakeEvent{}, err
	}
	return e, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]Medication, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListIntakes(ctx context.Context, patientID string, from, to time.Time) ([]IntakeEvent, error) {
	return s.repo.ListIntakes(ctx, patientID, from, to)
}

// Schedules proyecta las medicaciones del paciente a la vista del motor.
func (s *Service) Schedules(ctx context.Context, patientID string) ([]engine.MedicationSchedule, error) {
	meds, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]engine.MedicationSchedule, 0, len(meds))
	for _, m := range meds {
		out = append(out, schedule(m))
	}
	return out, nil
}

func schedule(m Medication) engine.MedicationSchedule {
	return engine.MedicationSchedule{
		ID:    m.ID,
		Name:  m.Name,
		Slots: m.Slots,
		Start: m.Start,
		End:   m.End,
	}
}

// Marks proyecta los eventos de toma a la vista del motor.
func Marks(events []IntakeEvent) []engine.IntakeMark {
	out := make([]engine.IntakeMark, 0, len(events))
	for _, e := range events {
		out = append(out, engine.IntakeMark{
			MedicationID: e.MedicationID,
			Date:         e.Date,
			Slot:         e.Slot,
			Taken:        e.Taken,
		})
	}
	return out
}
