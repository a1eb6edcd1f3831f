package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/comment"
	"blog-backend/pkg/database"
)

const commentColumns = `id, content, author, post_id, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds the comments repository. Writes that touch
// the owning post's comment list run inside a transaction so the comment row
// and the list never diverge.
func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO comments (id, content, author, post_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, query, c.ID, c.Content, c.Author, c.PostID, c.CreatedAt, c.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE posts SET comment_ids = array_append(comment_ids, $2), updated_at = NOW() WHERE id = $1`,
			c.PostID, c.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to append comment to post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return comment.ErrPostNotFound
		}
		return nil
	})
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) ListByPost(ctx context.Context, postID uuid.UUID, offset, limit int) ([]comment.Comment, int, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return nil, 0, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, 0, comment.ErrPostNotFound
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at ASC OFFSET $2 LIMIT $3`
	rows, err := r.pool.Query(ctx, query, postID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]comment.Comment, 0, limit)
	for rows.Next() {
		var c comment.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.Author, &c.PostID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, c *comment.Comment) error {
	query := `UPDATE comments SET content = $2, author = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, c.ID, c.Content, c.Author, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, postID, commentID uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1 AND post_id = $2`, commentID, postID)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		// A second delete of the same id finds no row.
		if tag.RowsAffected() == 0 {
			return comment.ErrCommentNotFound
		}

		_, err = tx.Exec(ctx,
			`UPDATE posts SET comment_ids = array_remove(comment_ids, $2), updated_at = NOW() WHERE id = $1`,
			postID, commentID,
		)
		if err != nil {
			return fmt.Errorf("failed to remove comment from post: %w", err)
		}
		return nil
	})
}

func scanComment(row pgx.Row) (*comment.Comment, error) {
	var c comment.Comment
	err := row.Scan(&c.ID, &c.Content, &c.Author, &c.PostID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &c, nil
}
