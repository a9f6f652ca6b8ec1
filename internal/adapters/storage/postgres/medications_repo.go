package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"health-companion/internal/domain/medications"
	"health-companion/internal/engine"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, patient_id, name, dosage, frequency, slots,
			start_date, end_date, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.PatientID,
		m.Name,
		m.Dosage,
		m.Frequency,
		joinSlots(m.Slots),
		m.Start,
		toNullDate(m.End),
		m.CreatedAt,
	)
	return err
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_id, name, dosage, frequency, slots,
			start_date, end_date, created_at
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row)
	if err == sql.ErrNoRows {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) ListByPatient(ctx context.Context, patientID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, patient_id, name, dosage, frequency, slots,
			start_date, end_date, created_at
		FROM medications
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MedicationsRepo) UpsertIntake(ctx context.Context, e medications.IntakeEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medication_intakes (medication_id, date, slot, taken, marked_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (medication_id, date, slot)
		DO UPDATE SET taken = EXCLUDED.taken, marked_at = EXCLUDED.marked_at
	`,
		e.MedicationID,
		engine.DateOf(e.Date),
		e.Slot,
		e.Taken,
		e.MarkedAt,
	)
	return err
}

func (r *MedicationsRepo) ListIntakes(ctx context.Context, patientID string, from, to time.Time) ([]medications.IntakeEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.medication_id, i.date, i.slot, i.taken, i.marked_at
		FROM medication_intakes i
		JOIN medications m ON m.id = i.medication_id
		WHERE m.patient_id = $1 AND i.date BETWEEN $2 AND $3
		ORDER BY i.date ASC, i.medication_id ASC
	`, patientID, engine.DateOf(from), engine.DateOf(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.IntakeEvent, 0)
	for rows.Next() {
		var e medications.IntakeEvent
		if err := rows.Scan(&e.MedicationID, &e.Date, &e.Slot, &e.Taken, &e.MarkedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func scanMedication(row rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var slots string
	var end sql.NullTime
	if err := row.Scan(
		&m.ID,
		&m.PatientID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&slots,
		&m.Start,
		&end,
		&m.CreatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.Slots = splitSlots(slots)
	if end.Valid {
		t := end.Time
		m.End = &t
	}
	return m, nil
}

// Las franjas se guardan como texto separado por comas ("morning,night");
// el dominio valida el catálogo al crear, aquí solo se transporta.
func joinSlots(slots []engine.TimeSlot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}

func splitSlots(s string) []engine.TimeSlot {
	var out []engine.TimeSlot
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, engine.TimeSlot(p))
		}
	}
	return out
}

// end_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
