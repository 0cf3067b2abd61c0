package auth

import (
	"strings"
	"time"
)

// AuthenticatorOption is a functional option for configuring an Authenticator.
type AuthenticatorOption func(*authenticatorImpl)

// WithUser adds a user with a bcrypt password hash. Usernames are case-insensitive.
// Blank usernames or hashes are ignored.
//
// Parameters:
//   - username: the login name
//   - hash: bcrypt hash as produced by HashPassword
//
// Returns:
//   - AuthenticatorOption: functional option to add the user
func WithUser(username, hash string) AuthenticatorOption {
	return func(a *authenticatorImpl) {
		username = strings.ToLower(strings.TrimSpace(username))
		if username == "" || hash == "" {
			return
		}
		a.users[username] = []byte(hash)
	}
}

// WithClock replaces the clock used for session start times.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - AuthenticatorOption: functional option to set the clock
func WithClock(now func() time.Time) AuthenticatorOption {
	return func(a *authenticatorImpl) {
		if now != nil {
			a.now = now
		}
	}
}
