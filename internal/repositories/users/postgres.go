// Package users provides the PostgreSQL-backed repository for user rows.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wepost/internal/common"
	"github.com/dmitrijs2005/wepost/internal/dbx"
	"github.com/dmitrijs2005/wepost/internal/models"
)

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, credential, tier FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.Username, &user.Credential, &user.Tier)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// InsertIfAbsent relies on ON CONFLICT DO NOTHING so that two concurrent
// inserts of the same username resolve inside the database: exactly one
// wins and the other sees zero rows affected.
func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	query :=
		`INSERT INTO users (username, credential, tier)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (username) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, user.Username, user.Credential, user.Tier)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}

	return n == 1, nil
}

func (r *PostgresRepository) UpdateTier(ctx context.Context, username string, tier int) (bool, error) {
	query :=
		`UPDATE users SET tier = $2
		 WHERE username = $1
		 `

	res, err := r.db.ExecContext(ctx, query, username, tier)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}

	return n == 1, nil
}
