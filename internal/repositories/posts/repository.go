package posts

import (
	"context"

	"github.com/dmitrijs2005/wepost/internal/models"
)

type Repository interface {
	// Insert stores a new post and returns its store-assigned id.
	Insert(ctx context.Context, post *models.Post) (int64, error)

	// DeleteByID removes the post with the given id regardless of author and
	// returns the number of rows removed (0 or 1).
	DeleteByID(ctx context.Context, id int64) (int64, error)

	// DeleteByIDAndAuthor removes the post only when both id and author
	// match, returning the number of rows removed (0 or 1).
	DeleteByIDAndAuthor(ctx context.Context, id int64, author string) (int64, error)
}
