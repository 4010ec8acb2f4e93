package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wepost/internal/common"
	"github.com/dmitrijs2005/wepost/internal/cryptox"
	"github.com/dmitrijs2005/wepost/internal/dbx"
	"github.com/dmitrijs2005/wepost/internal/logging"
	"github.com/dmitrijs2005/wepost/internal/models"
	"github.com/dmitrijs2005/wepost/internal/repositories/repomanager"
)

// Authorizer verifies credentials and decides what an authenticated user's
// tier permits. The policy checks are pure functions over an already
// authenticated record and never touch storage.
type Authorizer struct {
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

// NewAuthorizer constructs an Authorizer over the given repositories.
func NewAuthorizer(m repomanager.RepositoryManager, l logging.Logger) *Authorizer {
	return &Authorizer{
		repos:  m,
		logger: l.With("module", "authorizer"),
	}
}

// Authenticate resolves the user record and verifies the password against the
// stored credential. The two failure reasons stay distinguishable through
// ErrorNoSuchUser and ErrorBadCredential, but both match ErrorUnauthorized,
// which is the only outcome boundary code should present.
//
// The db handle may be a transaction so that callers can authenticate and
// mutate in one unit.
func (a *Authorizer) Authenticate(ctx context.Context, db dbx.DBTX, username, password string) (*models.User, error) {
	user, err := a.repos.Users(db).Get(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.logger.Debug(ctx, "authentication failed", "username", username, "reason", "unknown user")
			return nil, common.ErrorNoSuchUser
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	if !cryptox.VerifyCredential(user.Credential, password) {
		a.logger.Debug(ctx, "authentication failed", "username", username, "reason", "bad credential")
		return nil, common.ErrorBadCredential
	}

	return user, nil
}

// CanPost reports whether the user's tier permits creating posts.
func (a *Authorizer) CanPost(u *models.User) bool {
	return u.Tier >= models.TierNormal
}

// CanForceDelete reports whether the user may delete any post by id alone.
func (a *Authorizer) CanForceDelete(u *models.User) bool {
	return u.Tier == models.TierAdmin
}

// CanChangeTier reports whether the user may change any user's tier,
// including granting or revoking administrator status.
func (a *Authorizer) CanChangeTier(u *models.User) bool {
	return u.Tier == models.TierAdmin
}
