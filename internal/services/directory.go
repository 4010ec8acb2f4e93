// Package services contains the business logic gating every mutation:
// the user directory, the authorization engine and the post store.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/wepost/internal/common"
	"github.com/dmitrijs2005/wepost/internal/config"
	"github.com/dmitrijs2005/wepost/internal/cryptox"
	"github.com/dmitrijs2005/wepost/internal/dbx"
	"github.com/dmitrijs2005/wepost/internal/logging"
	"github.com/dmitrijs2005/wepost/internal/models"
	"github.com/dmitrijs2005/wepost/internal/repositories/repomanager"
)

// BootstrapAdminUsername is the fixed administrator account created at startup.
const BootstrapAdminUsername = "admin"

const (
	minUsernameLength = 1
	maxUsernameLength = 64

	validUsernameChars = "abcdefghijklmnopqrstuvwxyz0123456789_!"
)

// ValidateUsername checks the username against the charset and length rules.
// The charset check is case-insensitive: "Alice" passes, "al ice" does not.
func ValidateUsername(name string) error {
	if len(name) < minUsernameLength || len(name) > maxUsernameLength {
		return fmt.Errorf("%w: must be between %d and %d characters long",
			common.ErrorInvalidUsername, minUsernameLength, maxUsernameLength)
	}
	for _, ch := range strings.ToLower(name) {
		if !strings.ContainsRune(validUsernameChars, ch) {
			return fmt.Errorf("%w: valid characters: %s", common.ErrorInvalidUsername, validUsernameChars)
		}
	}
	return nil
}

// Directory owns user records: registration, lookup, the bootstrap
// administrator and tier changes.
type Directory struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	authz         *Authorizer
	logger        logging.Logger
	adminPassword string
}

// NewDirectory constructs a Directory using repositories and config.
func NewDirectory(db *sql.DB, m repomanager.RepositoryManager, authz *Authorizer, cfg *config.Config, l logging.Logger) *Directory {
	return &Directory{
		db:            db,
		repos:         m,
		authz:         authz,
		logger:        l.With("module", "directory"),
		adminPassword: cfg.AdminPassword,
	}
}

// Find returns the user record for name, or common.ErrorNotFound.
// Absence is an empty result for callers that treat it as such, not a fault.
func (s *Directory) Find(ctx context.Context, name string) (*models.User, error) {
	return s.repos.Users(s.db).Get(ctx, name)
}

// Register validates the username, derives a credential and inserts the user
// with the default tier. The insert is a single insert-if-absent statement,
// so two concurrent registrations of the same name yield exactly one success
// and ErrorAlreadyExists for the rest.
func (s *Directory) Register(ctx context.Context, name, password string) error {
	log := s.logger.With("op_id", uuid.NewString())

	if err := ValidateUsername(name); err != nil {
		return err
	}

	user := &models.User{
		Username:   name,
		Credential: cryptox.DeriveCredential(password),
		Tier:       models.TierNormal,
	}

	inserted, err := s.repos.Users(s.db).InsertIfAbsent(ctx, user)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	if !inserted {
		return common.ErrorAlreadyExists
	}

	log.Info(ctx, "user registered", "username", name)
	return nil
}

// BootstrapAdmin creates the administrator account if it does not exist yet.
// An existing admin row is never overwritten, so the call is idempotent and
// safe under concurrent process starts: the stored credential bytes survive
// every call after the first.
func (s *Directory) BootstrapAdmin(ctx context.Context) error {
	admin := &models.User{
		Username:   BootstrapAdminUsername,
		Credential: cryptox.DeriveCredential(s.adminPassword),
		Tier:       models.TierAdmin,
	}

	inserted, err := s.repos.Users(s.db).InsertIfAbsent(ctx, admin)
	if err != nil {
		return fmt.Errorf("error bootstrapping administrator: %w", err)
	}

	if inserted {
		s.logger.Info(ctx, "administrator account created", "username", BootstrapAdminUsername)
	} else {
		s.logger.Debug(ctx, "administrator account already present", "username", BootstrapAdminUsername)
	}
	return nil
}

// SetTier updates the tier of an existing user. It performs no authorization
// itself; authorized paths go through ChangeTier.
func (s *Directory) SetTier(ctx context.Context, target string, tier int) error {
	updated, err := s.repos.Users(s.db).UpdateTier(ctx, target, tier)
	if err != nil {
		return fmt.Errorf("error updating tier: %w", err)
	}
	if !updated {
		return common.ErrorNotFound
	}
	return nil
}

// ChangeTier authenticates the caller, requires administrator tier and then
// updates the target user's tier. The check and the update run in one
// transaction.
func (s *Directory) ChangeTier(ctx context.Context, username, password, target string, tier int) error {
	log := s.logger.With("op_id", uuid.NewString())

	err := dbx.WithTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		caller, err := s.authz.Authenticate(ctx, tx, username, password)
		if err != nil {
			return err
		}
		if !s.authz.CanChangeTier(caller) {
			return common.ErrorForbidden
		}

		updated, err := s.repos.Users(tx).UpdateTier(ctx, target, tier)
		if err != nil {
			return fmt.Errorf("error updating tier: %w", err)
		}
		if !updated {
			return common.ErrorNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info(ctx, "tier changed", "by", username, "target", target, "tier", tier)
	return nil
}
