package postgres

import (
	"context"
	"database/sql"
	"strings"

	"health-companion/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, name, age, sex, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		p.ID,
		p.Name,
		p.Age,
		p.Sex,
		p.CreatedAt,
	)
	return err
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, age, sex, created_at
		FROM patients
		WHERE id = $1
	`, id)

	var p patients.Patient
	if err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Sex, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return patients.Patient{}, ErrNotFound
		}
		return patients.Patient{}, err
	}
	return p, nil
}

func (r *PatientsRepo) List(ctx context.Context) ([]patients.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, age, sex, created_at
		FROM patients
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		var p patients.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Sex, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
