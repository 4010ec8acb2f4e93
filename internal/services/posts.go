package services

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/wepost/internal/common"
	"github.com/dmitrijs2005/wepost/internal/dbx"
	"github.com/dmitrijs2005/wepost/internal/logging"
	"github.com/dmitrijs2005/wepost/internal/models"
	"github.com/dmitrijs2005/wepost/internal/repositories/repomanager"
)

// PostService owns the post lifecycle. Every mutation authenticates the
// caller and applies the tier policy before touching the posts table, with
// the check and the mutation inside one transaction.
type PostService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	authz  *Authorizer
	logger logging.Logger
}

// NewPostService constructs a PostService using repositories and the authorizer.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager, authz *Authorizer, l logging.Logger) *PostService {
	return &PostService{
		db:     db,
		repos:  m,
		authz:  authz,
		logger: l.With("module", "posts"),
	}
}

// Create authenticates the caller, requires posting tier and inserts the
// post, returning its new id. Ids increase monotonically across successful
// creates. Bodies must be 1 to 512 characters.
func (s *PostService) Create(ctx context.Context, username, password, body string) (int64, error) {
	log := s.logger.With("op_id", uuid.NewString())

	if utf8.RuneCountInString(body) > models.MaxPostBodyLength {
		return 0, common.ErrorBodyTooLong
	}
	if len(body) == 0 {
		return 0, common.ErrorBodyEmpty
	}

	var id int64
	err := dbx.WithTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.authz.Authenticate(ctx, tx, username, password)
		if err != nil {
			return err
		}
		if !s.authz.CanPost(user) {
			return common.ErrorForbidden
		}

		id, err = s.repos.Posts(tx).Insert(ctx, &models.Post{Author: username, Body: body})
		if err != nil {
			return fmt.Errorf("error creating post: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info(ctx, "post created", "author", username, "post_id", id)
	return id, nil
}

// DeleteOwn authenticates the caller and deletes the post only when it is
// authored by the caller, returning the number of rows removed (0 or 1).
// A no-op delete is not an error. An administrator caller escalates to
// force-delete semantics: the post is removed by id regardless of author.
func (s *PostService) DeleteOwn(ctx context.Context, username, password string, postID int64) (int64, error) {
	log := s.logger.With("op_id", uuid.NewString())

	var removed int64
	err := dbx.WithTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.authz.Authenticate(ctx, tx, username, password)
		if err != nil {
			return err
		}

		repo := s.repos.Posts(tx)
		if s.authz.CanForceDelete(user) {
			removed, err = repo.DeleteByID(ctx, postID)
		} else {
			removed, err = repo.DeleteByIDAndAuthor(ctx, postID, username)
		}
		if err != nil {
			return fmt.Errorf("error deleting post: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info(ctx, "post delete", "caller", username, "post_id", postID, "removed", removed)
	return removed, nil
}

// ForceDelete removes the post by id alone. Callers must have already been
// authorized through the Authorizer; deleting a non-existent id is a no-op.
func (s *PostService) ForceDelete(ctx context.Context, postID int64) error {
	log := s.logger.With("op_id", uuid.NewString())

	removed, err := s.repos.Posts(s.db).DeleteByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}

	log.Info(ctx, "post force-deleted", "post_id", postID, "removed", removed)
	return nil
}
