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

const linkColumns = `
	id, title, url, country, description, products, tags,
	submitter_name, submitter_email, status::text, created_at, updated_at`

type LinkRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLinkRepo(pool *pgxpool.Pool, logger *slog.Logger) *LinkRepo {
	return &LinkRepo{pool: pool, logger: logger}
}

func (p *LinkRepo) ListApproved(ctx context.Context) ([]*domain.Link, error) {
	const op = "postgres.Link.ListApproved"

	query := `SELECT ` + linkColumns + `
		FROM link_submissions
		WHERE status = 'approved'
		ORDER BY created_at DESC, id DESC`

	return p.list(ctx, op, query)
}

func (p *LinkRepo) ListAll(ctx context.Context) ([]*domain.Link, error) {
	const op = "postgres.Link.ListAll"

	query := `SELECT ` + linkColumns + `
		FROM link_submissions
		ORDER BY created_at DESC, id DESC`

	return p.list(ctx, op, query)
}

func (p *LinkRepo) list(ctx context.Context, op, query string) ([]*domain.Link, error) {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return p.listFailed(ctx, op, err)
	}
	defer rows.Close()

	links := make([]*domain.Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return p.listFailed(ctx, op, err)
	}

	return links, nil
}

func (p *LinkRepo) listFailed(ctx context.Context, op string, err error) ([]*domain.Link, error) {
	wrapped := e.WrapError(ctx, op, err)
	if errors.Is(wrapped, e.ErrUndefinedTable) {
		p.logger.Warn("link_submissions table missing, returning empty list", slog.String("op", op))
		return []*domain.Link{}, nil
	}
	p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
	return nil, wrapped
}

func (p *LinkRepo) Create(ctx context.Context, in domain.NewLink) (*domain.Link, error) {
	const op = "postgres.Link.Create"

	query := `
		INSERT INTO link_submissions (
			title, url, country, description, products, tags,
			submitter_name, submitter_email, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending', $9, $9)
		RETURNING ` + linkColumns

	now := time.Now().UTC()

	link, err := scanLink(p.pool.QueryRow(ctx, query,
		in.Title,
		in.URL,
		in.Country,
		in.Description,
		nonNil(in.Products),
		nonNil(in.Tags),
		in.SubmitterName,
		in.SubmitterEmail,
		now,
	))
	if err != nil {
		p.logger.Error("db insert failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return link, nil
}

func (p *LinkRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Link, error) {
	const op = "postgres.Link.UpdateStatus"

	query := `
		UPDATE link_submissions
		SET status     = $2::location_status,
			updated_at = GREATEST(updated_at, $3)
		WHERE id = $1
		RETURNING ` + linkColumns

	link, err := scanLink(p.pool.QueryRow(ctx, query, id, string(status), time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: link %d: %w", op, id, e.ErrNotFound)
		}
		p.logger.Error("db update failed", slog.String("op", op), slog.Any("error", err), slog.Int64("id", id))
		return nil, e.WrapError(ctx, op, err)
	}
	return link, nil
}

func scanLink(row pgx.Row) (*domain.Link, error) {
	var (
		link   domain.Link
		status string
	)
	if err := row.Scan(
		&link.ID,
		&link.Title,
		&link.URL,
		&link.Country,
		&link.Description,
		&link.Products,
		&link.Tags,
		&link.SubmitterName,
		&link.SubmitterEmail,
		&status,
		&link.CreatedAt,
		&link.UpdatedAt,
	); err != nil {
		return nil, err
	}
	link.Status = domain.Status(status)
	link.Products = nonNil(link.Products)
	link.Tags = nonNil(link.Tags)
	return &link, nil
}
