// Package common defines shared constants and sentinel errors used across
// wepost components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized is the only authentication failure external callers
	// should be shown; it deliberately does not say whether the username or
	// the password was wrong.
	ErrorUnauthorized = errors.New("invalid username or password")

	// ErrorForbidden means the caller authenticated but its tier does not
	// permit the requested action.
	ErrorForbidden = errors.New("forbidden")

	// Validation errors.
	ErrorInvalidUsername = errors.New("invalid username")
	ErrorBodyTooLong     = errors.New("post body too long")
	ErrorBodyEmpty       = errors.New("post body empty")
)

// ErrorNoSuchUser and ErrorBadCredential keep the reason behind a failed
// authentication distinguishable in internal diagnostics. Both match
// ErrorUnauthorized under errors.Is, so boundary code can collapse them
// into one outcome without a type switch.
var (
	ErrorNoSuchUser    = fmt.Errorf("%w: unknown user", ErrorUnauthorized)
	ErrorBadCredential = fmt.Errorf("%w: bad credential", ErrorUnauthorized)
)
