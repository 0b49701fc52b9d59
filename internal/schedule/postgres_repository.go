package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// pgxmock in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository reads schedules from the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("schedule: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting mocks for tests.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// RowsForDoctor returns the doctor's schedule rows ordered by weekday.
func (r *PostgresRepository) RowsForDoctor(ctx context.Context, doctorID string) ([]DoctorSchedule, error) {
	query := `
		SELECT doctor_id, day_of_week, start_time, end_time, is_active,
		       slot_duration_min, buffer_time_min,
		       COALESCE(break_start, ''), COALESCE(break_end, '')
		FROM doctor_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week
	`
	rows, err := r.db.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("%w: rows query: %w", ErrScheduleUnavailable, err)
	}
	defer rows.Close()

	var out []DoctorSchedule
	for rows.Next() {
		var row DoctorSchedule
		if err := rows.Scan(
			&row.DoctorID,
			&row.DayOfWeek,
			&row.StartTime,
			&row.EndTime,
			&row.IsActive,
			&row.SlotDurationMin,
			&row.BufferTimeMin,
			&row.BreakStart,
			&row.BreakEnd,
		); err != nil {
			return nil, fmt.Errorf("%w: rows scan: %w", ErrScheduleUnavailable, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iterate: %w", ErrScheduleUnavailable, err)
	}
	return out, nil
}

// SpecialDates returns doctor-specific and global overrides within [from, to).
func (r *PostgresRepository) SpecialDates(ctx context.Context, doctorID string, from, to time.Time) ([]SpecialDate, error) {
	query := `
		SELECT COALESCE(doctor_id, ''), date, type,
		       COALESCE(override_start, ''), COALESCE(override_end, '')
		FROM special_dates
		WHERE (doctor_id = $1 OR doctor_id IS NULL)
		  AND date >= $2 AND date < $3
		ORDER BY date
	`
	rows, err := r.db.Query(ctx, query, doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: special dates query: %w", ErrScheduleUnavailable, err)
	}
	defer rows.Close()

	var out []SpecialDate
	for rows.Next() {
		var s SpecialDate
		if err := rows.Scan(&s.DoctorID, &s.Date, &s.Type, &s.OverrideStart, &s.OverrideEnd); err != nil {
			return nil, fmt.Errorf("%w: special dates scan: %w", ErrScheduleUnavailable, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: special dates iterate: %w", ErrScheduleUnavailable, err)
	}
	return out, nil
}
