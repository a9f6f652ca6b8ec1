package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"health-companion/internal/engine"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Medication
	intakes map[string]IntakeEvent
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:    map[string]Medication{},
		intakes: map[string]IntakeEvent{},
	}
}

func intakeMapKey(e IntakeEvent) string {
	return e.MedicationID + "|" + e.Date.Format("2006-01-02") + "|" + string(e.Slot)
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByPatient(ctx context.Context, patientID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.PatientID == patientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) UpsertIntake(ctx context.Context, e IntakeEvent) error {
	r.intakes[intakeMapKey(e)] = e
	return nil
}

func (r *testRepo) ListIntakes(ctx context.Context, patientID string, from, to time.Time) ([]IntakeEvent, error) {
	out := make([]IntakeEvent, 0)
	for _, e := range r.intakes {
		m, ok := r.byID[e.MedicationID]
		if !ok || m.PatientID != patientID {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *testRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return day(15) }
	return svc
}

func TestAdd_Valid(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	m, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Metformin",
		Dosage:    "500 mg",
		Frequency: 2,
		Slots:     []engine.TimeSlot{engine.SlotMorning, engine.SlotNight},
		Start:     day(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == "" {
		t.Fatal("expected generated id")
	}
	if m.End != nil {
		t.Fatal("expected open-ended treatment")
	}
	if _, ok := repo.byID[m.ID]; !ok {
		t.Fatal("medication not persisted")
	}
}

func TestAdd_SlotsMustMatchFrequency(t *testing.T) {
	svc := newTestService(newTestRepo())

	_, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Metformin",
		Dosage:    "500 mg",
		Frequency: 2,
		Slots:     []engine.TimeSlot{engine.SlotMorning},
		Start:     day(1),
	})
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdd_RejectsUnknownAndDuplicateSlots(t *testing.T) {
	svc := newTestService(newTestRepo())

	cases := [][]engine.TimeSlot{
		{engine.TimeSlot("midnight")},
		{engine.SlotMorning, engine.SlotMorning},
	}
	for _, slots := range cases {
		_, err := svc.Add(context.Background(), "p1", AddInput{
			Name:      "Metformin",
			Dosage:    "500 mg",
			Frequency: len(slots),
			Slots:     slots,
			Start:     day(1),
		})
		if !errors.Is(err, engine.ErrInvalidInput) {
			t.Fatalf("slots %v: expected validation error, got %v", slots, err)
		}
	}
}

func TestAdd_EndCannotPrecedeStart(t *testing.T) {
	svc := newTestService(newTestRepo())

	end := day(1)
	_, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Amoxicillin",
		Dosage:    "250 mg",
		Frequency: 1,
		Slots:     []engine.TimeSlot{engine.SlotMorning},
		Start:     day(10),
		End:       &end,
	})
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMarkIntake_UpsertWins(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	m, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Metformin",
		Dosage:    "500 mg",
		Frequency: 1,
		Slots:     []engine.TimeSlot{engine.SlotMorning},
		Start:     day(1),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.MarkIntake(context.Background(), m.ID, MarkInput{Date: day(10), Slot: engine.SlotMorning, Taken: true}); err != nil {
		t.Fatalf("mark taken: %v", err)
	}
	if _, err := svc.MarkIntake(context.Background(), m.ID, MarkInput{Date: day(10), Slot: engine.SlotMorning, Taken: false}); err != nil {
		t.Fatalf("unmark: %v", err)
	}

	events, err := svc.ListIntakes(context.Background(), "p1", day(1), day(31))
	if err != nil {
		t.Fatalf("list intakes: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected a single event after upsert, got %d", len(events))
	}
	if events[0].Taken {
		t.Fatal("last write should win: expected taken=false")
	}
}

func TestMarkIntake_UnknownMedication(t *testing.T) {
	svc := newTestService(newTestRepo())

	_, err := svc.MarkIntake(context.Background(), "nope", MarkInput{Date: day(10), Slot: engine.SlotMorning, Taken: true})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkIntake_RejectsUnscheduledSlot(t *testing.T) {
	svc := newTestService(newTestRepo())

	m, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Metformin",
		Dosage:    "500 mg",
		Frequency: 1,
		Slots:     []engine.TimeSlot{engine.SlotMorning},
		Start:     day(1),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err = svc.MarkIntake(context.Background(), m.ID, MarkInput{Date: day(10), Slot: engine.SlotNight, Taken: true})
	if !errors.Is(err, engine.ErrInvalidInput) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMarkIntake_RejectsInactiveDate(t *testing.T) {
	svc := newTestService(newTestRepo())

	end := day(20)
	m, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Amoxicillin",
		Dosage:    "250 mg",
		Frequency: 1,
		Slots:     []engine.TimeSlot{engine.SlotMorning},
		Start:     day(10),
		End:       &end,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, d := range []time.Time{day(9), day(21)} {
		_, err := svc.MarkIntake(context.Background(), m.ID, MarkInput{Date: d, Slot: engine.SlotMorning, Taken: true})
		if !errors.Is(err, engine.ErrInvalidInput) {
			t.Fatalf("date %v: expected validation error, got %v", d, err)
		}
	}
}

func TestSchedules_Projection(t *testing.T) {
	svc := newTestService(newTestRepo())

	end := day(20)
	m, err := svc.Add(context.Background(), "p1", AddInput{
		Name:      "Amoxicillin",
		Dosage:    "250 mg",
		Frequency: 2,
		Slots:     []engine.TimeSlot{engine.SlotMorning, engine.SlotNight},
		Start:     day(10),
		End:       &end,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	schedules, err := svc.Schedules(context.Background(), "p1")
	if err != nil {
		t.Fatalf("schedules: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("expected one schedule, got %d", len(schedules))
	}
	sc := schedules[0]
	if sc.ID != m.ID || sc.Name != "Amoxicillin" || len(sc.Slots) != 2 {
		t.Fatalf("unexpected projection: %+v", sc)
	}
	if sc.ActiveOn(day(9)) || !sc.ActiveOn(day(10)) || !sc.ActiveOn(day(20)) || sc.ActiveOn(day(21)) {
		t.Fatal("schedule activity does not match start/end dates")
	}
}
