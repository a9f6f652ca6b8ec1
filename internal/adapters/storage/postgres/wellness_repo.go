package postgres

import (
	"context"
	"database/sql"
	"time"

	"health-companion/internal/domain/wellness"
	"health-companion/internal/engine"
)

type WellnessRepo struct {
	db *sql.DB
}

func NewWellnessRepo(db *sql.DB) *WellnessRepo {
	return &WellnessRepo{db: db}
}

func (r *WellnessRepo) UpsertLog(ctx context.Context, e wellness.LogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wellness_logs (
			patient_id, date, steps, sleep_hours, water_ml, mood, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (patient_id, date)
		DO UPDATE SET
			steps = EXCLUDED.steps,
			sleep_hours = EXCLUDED.sleep_hours,
			water_ml = EXCLUDED.water_ml,
			mood = EXCLUDED.mood,
			updated_at = EXCLUDED.updated_at
	`,
		e.PatientID,
		engine.DateOf(e.Date),
		e.Steps,
		e.SleepHours,
		e.WaterML,
		e.Mood,
		e.UpdatedAt,
	)
	return err
}

func (r *WellnessRepo) ListLogs(ctx context.Context, patientID string, from, to time.Time) ([]wellness.LogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT patient_id, date, steps, sleep_hours, water_ml, mood, updated_at
		FROM wellness_logs
		WHERE patient_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, patientID, engine.DateOf(from), engine.DateOf(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]wellness.LogEntry, 0)
	for rows.Next() {
		var e wellness.LogEntry
		if err := rows.Scan(
			&e.PatientID,
			&e.Date,
			&e.Steps,
			&e.SleepHours,
			&e.WaterML,
			&e.Mood,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func (r *WellnessRepo) UpsertGoal(ctx context.Context, g wellness.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wellness_goals (
			patient_id, steps_target, sleep_target, water_target, updated_at
		) VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (patient_id)
		DO UPDATE SET
			steps_target = EXCLUDED.steps_target,
			sleep_target = EXCLUDED.sleep_target,
			water_target = EXCLUDED.water_target,
			updated_at = EXCLUDED.updated_at
	`,
		g.PatientID,
		g.StepsTarget,
		g.SleepTarget,
		g.WaterTarget,
		g.UpdatedAt,
	)
	return err
}

func (r *WellnessRepo) GetGoal(ctx context.Context, patientID string) (wellness.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT patient_id, steps_target, sleep_target, water_target, updated_at
		FROM wellness_goals
		WHERE patient_id = $1
	`, patientID)

	var g wellness.Goal
	if err := row.Scan(&g.PatientID, &g.StepsTarget, &g.SleepTarget, &g.WaterTarget, &g.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return wellness.Goal{}, wellness.ErrNoGoal
		}
		return wellness.Goal{}, err
	}
	return g, nil
}
