// Package posts provides the PostgreSQL-backed repository for post rows.
package posts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wepost/internal/dbx"
	"github.com/dmitrijs2005/wepost/internal/models"
)

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, post *models.Post) (int64, error) {
	query :=
		`INSERT INTO posts (author, body)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.Author, post.Body).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	query :=
		`DELETE FROM posts
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) DeleteByIDAndAuthor(ctx context.Context, id int64, author string) (int64, error) {
	query :=
		`DELETE FROM posts
		 WHERE id = $1 AND author = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, author)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}
