package users

import (
	"context"

	"github.com/dmitrijs2005/wepost/internal/models"
)

type Repository interface {
	// Get returns the user row or common.ErrorNotFound.
	Get(ctx context.Context, username string) (*models.User, error)

	// InsertIfAbsent inserts the row unless one with the same username
	// already exists. It reports whether a row was actually inserted; an
	// existing row is never touched.
	InsertIfAbsent(ctx context.Context, user *models.User) (bool, error)

	// UpdateTier sets the tier of an existing user and reports whether a
	// row was updated.
	UpdateTier(ctx context.Context, username string, tier int) (bool, error)
}
