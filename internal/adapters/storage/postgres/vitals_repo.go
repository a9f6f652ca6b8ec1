package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"health-companion/internal/domain/vitals"
)

type VitalsRepo struct {
	db *sql.DB
}

func NewVitalsRepo(db *sql.DB) *VitalsRepo {
	return &VitalsRepo{db: db}
}

func (r *VitalsRepo) Create(ctx context.Context, o vitals.Observation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vital_observations (
			id, patient_id, taken_at,
			systolic, diastolic, heart_rate, temperature,
			symptoms, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		o.ID,
		o.PatientID,
		o.TakenAt,
		o.Systolic,
		o.Diastolic,
		o.HeartRate,
		o.Temperature,
		joinList(o.Symptoms),
		o.RecordedAt,
	)
	return err
}

func (r *VitalsRepo) LatestByPatient(ctx context.Context, patientID string) (vitals.Observation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_id, taken_at,
			systolic, diastolic, heart_rate, temperature,
			symptoms, recorded_at
		FROM vital_observations
		WHERE patient_id = $1
		ORDER BY taken_at DESC
		LIMIT 1
	`, patientID)

	o, err := scanObservation(row)
	if err == sql.ErrNoRows {
		return vitals.Observation{}, vitals.ErrNoObservations
	}
	return o, err
}

func (r *VitalsRepo) ListByPatient(ctx context.Context, patientID string, from, to time.Time) ([]vitals.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, patient_id, taken_at,
			systolic, diastolic, heart_rate, temperature,
			symptoms, recorded_at
		FROM vital_observations
		WHERE patient_id = $1 AND taken_at BETWEEN $2 AND $3
		ORDER BY taken_at ASC
	`, patientID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vitals.Observation, 0)
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObservation(row rowScanner) (vitals.Observation, error) {
	var o vitals.Observation
	var symptoms string
	if err := row.Scan(
		&o.ID,
		&o.PatientID,
		&o.TakenAt,
		&o.Systolic,
		&o.Diastolic,
		&o.HeartRate,
		&o.Temperature,
		&symptoms,
		&o.RecordedAt,
	); err != nil {
		return vitals.Observation{}, err
	}
	o.Symptoms = splitList(symptoms)
	return o, nil
}

// Los síntomas se guardan como texto separado por comas; es lo que la app
// captura y no se consulta por elemento.
func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
