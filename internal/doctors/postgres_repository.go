package doctors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the doctor directory in the relational database.
type PostgresRepository struct {
	db DB
}

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// pgxmock in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("doctors: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

// NewPostgresRepositoryWithDB allows injecting mocks for tests.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all active directory entries ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]*Doctor, error) {
	query := `
		SELECT id, name, speciality, image, fee, available, experience, rating, always_available
		FROM doctors
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("doctors: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Speciality,
			&d.Image,
			&d.Fee,
			&d.Available,
			&d.Experience,
			&d.Rating,
			&d.AlwaysAvailable,
		); err != nil {
			return nil, fmt.Errorf("doctors: scan failed: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// GetByID fetches one directory entry.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	query := `
		SELECT id, name, speciality, image, fee, available, experience, rating, always_available
		FROM doctors
		WHERE id = $1
	`
	var d Doctor
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Speciality,
		&d.Image,
		&d.Fee,
		&d.Available,
		&d.Experience,
		&d.Rating,
		&d.AlwaysAvailable,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("doctors: select failed: %w", err)
	}
	return &d, nil
}
