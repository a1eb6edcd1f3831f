package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/utils"
)

const postColumns = `id, category, title, cover, read_time_value, read_time_unit, author_id, content, comment_ids, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds the posts repository.
func NewPostgresRepository(pool *pgxpool.Pool) post.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (id, category, title, cover, read_time_value, read_time_unit, author_id, content, comment_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Category, p.Title, p.Cover, p.ReadTime.Value, p.ReadTime.Unit,
		p.AuthorID, p.Content, p.Comments, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

// buildListWhere translates a filter into a WHERE clause and its arguments.
// Returned args are correctly numbered for appending OFFSET/LIMIT after them.
func buildListWhere(filter post.ListFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.AuthorID != uuid.Nil {
		args = append(args, filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("author_id = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

func (r *postgresRepository) List(ctx context.Context, filter post.ListFilter) ([]post.Post, int, error) {
	where, args := buildListWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT `+postColumns+` FROM posts%s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Offset, filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, filter.Limit)
	for rows.Next() {
		var p post.Post
		if err := rows.Scan(&p.ID, &p.Category, &p.Title, &p.Cover, &p.ReadTime.Value, &p.ReadTime.Unit, &p.AuthorID, &p.Content, &p.Comments, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		if p.Comments == nil {
			p.Comments = []uuid.UUID{}
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET category = $2, title = $3, cover = $4, read_time_value = $5, read_time_unit = $6,
		    author_id = $7, content = $8, updated_at = $9
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Category, p.Title, p.Cover, p.ReadTime.Value, p.ReadTime.Unit,
		p.AuthorID, p.Content, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateCover(ctx context.Context, id uuid.UUID, cover string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE posts SET cover = $2, updated_at = NOW() WHERE id = $1`, id, cover)
	if err != nil {
		return fmt.Errorf("failed to update cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	return nil
}

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(&p.ID, &p.Category, &p.Title, &p.Cover, &p.ReadTime.Value, &p.ReadTime.Unit, &p.AuthorID, &p.Content, &p.Comments, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, post.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	if p.Comments == nil {
		p.Comments = []uuid.UUID{}
	}
	return &p, nil
}
