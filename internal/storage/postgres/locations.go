package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/earcherc/realfoodfinder/internal/domain"
	"github.com/earcherc/realfoodfinder/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const locationColumns = `
	id, name, type::text, description, address, country,
	latitude, longitude, foods, tags,
	submitter_name, submitter_email, status::text, created_at, updated_at`

type LocationRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLocationRepo(pool *pgxpool.Pool, logger *slog.Logger) *LocationRepo {
	return &LocationRepo{pool: pool, logger: logger}
}

func (p *LocationRepo) ListApproved(ctx context.Context) ([]*domain.Location, error) {
	const op = "postgres.Location.ListApproved"

	query := `SELECT ` + locationColumns + `
		FROM locations
		WHERE status = 'approved'
		ORDER BY created_at DESC, id DESC`

	return p.list(ctx, op, query)
}

func (p *LocationRepo) ListAll(ctx context.Context) ([]*domain.Location, error) {
	const op = "postgres.Location.ListAll"

	query := `SELECT ` + locationColumns + `
		FROM locations
		ORDER BY created_at DESC, id DESC`

	return p.list(ctx, op, query)
}

func (p *LocationRepo) list(ctx context.Context, op, query string) ([]*domain.Location, error) {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return p.listFailed(ctx, op, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return p.listFailed(ctx, op, err)
	}

	return locations, nil
}

// listFailed treats a missing table as an empty result so a fresh
// deployment can serve reads before the schema is applied.
func (p *LocationRepo) listFailed(ctx context.Context, op string, err error) ([]*domain.Location, error) {
	wrapped := e.WrapError(ctx, op, err)
	if errors.Is(wrapped, e.ErrUndefinedTable) {
		p.logger.Warn("locations table missing, returning empty list", slog.String("op", op))
		return []*domain.Location{}, nil
	}
	p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
	return nil, wrapped
}

func (p *LocationRepo) Create(ctx context.Context, in domain.NewLocation) (*domain.Location, error) {
	const op = "postgres.Location.Create"

	query := `
		INSERT INTO locations (
			name, type, description, address, country,
			latitude, longitude, foods, tags,
			submitter_name, submitter_email, status, created_at, updated_at
		)
		VALUES ($1, $2::location_type, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'pending', $12, $12)
		RETURNING ` + locationColumns

	now := time.Now().UTC()

	row := p.pool.QueryRow(ctx, query,
		in.Name,
		string(in.Type),
		in.Description,
		in.Address,
		in.Country,
		in.Latitude,
		in.Longitude,
		nonNil(in.Foods),
		nonNil(in.Tags),
		in.SubmitterName,
		in.SubmitterEmail,
		now,
	)

	loc, err := scanLocation(row)
	if err != nil {
		p.logger.Error("db insert failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return loc, nil
}

func (p *LocationRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Location, error) {
	const op = "postgres.Location.UpdateStatus"

	query := `
		UPDATE locations
		SET status     = $2::location_status,
			updated_at = GREATEST(updated_at, $3)
		WHERE id = $1
		RETURNING ` + locationColumns

	loc, err := scanLocation(p.pool.QueryRow(ctx, query, id, string(status), time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: location %d: %w", op, id, e.ErrNotFound)
		}
		p.logger.Error("db update failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return nil, e.WrapError(ctx, op, err)
	}
	return loc, nil
}

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var (
		loc     domain.Location
		locType string
		status  string
	)
	if err := row.Scan(
		&loc.ID,
		&loc.Name,
		&locType,
		&loc.Description,
		&loc.Address,
		&loc.Country,
		&loc.Latitude,
		&loc.Longitude,
		&loc.Foods,
		&loc.Tags,
		&loc.SubmitterName,
		&loc.SubmitterEmail,
		&status,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	loc.Type = domain.LocationType(locType)
	loc.Status = domain.Status(status)
	loc.Foods = nonNil(loc.Foods)
	loc.Tags = nonNil(loc.Tags)
	return &loc, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
