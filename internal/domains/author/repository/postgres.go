package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/logger"
)

const (
	authorCacheTTL    = 15 * time.Minute
	authorCacheKeyFmt = "author:%s"

	uniqueViolationCode = "23505"
)

const authorColumns = `id, email, password_hash, google_id, name, surname, birth_date, avatar, created_at, updated_at`

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository builds the authors repository. FindByID results are
// cached because the authorization gate hits it on every protected request.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (id, email, password_hash, google_id, name, surname, birth_date, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.GoogleID, a.Name, a.Surname, a.BirthDate, a.Avatar, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return author.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert author: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := fmt.Sprintf(authorCacheKeyFmt, id)

	var cached author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	a, err := r.scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, a, authorCacheTTL); err != nil {
		logger.Warn("Failed to cache author", map[string]interface{}{"id": id.String(), "error": err.Error()})
	}
	return a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE email = $1`
	return r.scanAuthor(r.pool.QueryRow(ctx, query, email))
}

func (r *postgresRepository) FindByGoogleID(ctx context.Context, googleID string) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE google_id = $1`
	return r.scanAuthor(r.pool.QueryRow(ctx, query, googleID))
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET email = $2, name = $3, surname = $4, birth_date = $5, avatar = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, a.ID, a.Email, a.Name, a.Surname, a.BirthDate, a.Avatar, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return author.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, a.ID)
	return nil
}

func (r *postgresRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) error {
	query := `UPDATE authors SET avatar = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, avatar)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM authors`); err != nil {
		return fmt.Errorf("failed to delete authors: %w", err)
	}
	// Per-id cache entries expire on their own TTL.
	return nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]author.Author, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0, limit)
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.GoogleID, &a.Name, &a.Surname, &a.BirthDate, &a.Avatar, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.GoogleID, &a.Name, &a.Surname, &a.BirthDate, &a.Avatar, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, author.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan author: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, fmt.Sprintf(authorCacheKeyFmt, id)); err != nil {
		logger.Warn("Failed to invalidate author cache", map[string]interface{}{"id": id.String(), "error": err.Error()})
	}
}
