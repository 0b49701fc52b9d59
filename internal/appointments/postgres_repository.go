package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// pgxmock in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database. Slot
// uniqueness rides on the partial unique index over (doctor_id, date, time)
// WHERE status <> 'cancelled'; a concurrent duplicate insert loses with a
// unique violation, which maps to ErrSlotTaken.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting mocks for tests.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts the appointment row.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	id := uuid.New()
	query := `
		INSERT INTO appointments (id, doctor_id, patient_name, email, phone, date, time, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	var createdAt time.Time
	err := r.db.QueryRow(ctx, query,
		id,
		appt.DoctorID,
		appt.PatientName,
		appt.Email,
		appt.Phone,
		appt.Date,
		appt.Time,
		appt.Notes,
		StatusConfirmed,
	).Scan(&createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	stored := *appt
	stored.ID = id.String()
	stored.Status = StatusConfirmed
	stored.CreatedAt = createdAt
	return &stored, nil
}

// BookedTimes lists non-cancelled times for the doctor on the day.
func (r *PostgresRepository) BookedTimes(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	query := `
		SELECT time
		FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND status <> $3
		ORDER BY time
	`
	rows, err := r.db.Query(ctx, query, doctorID, date, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("appointments: booked times query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("appointments: booked times scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
