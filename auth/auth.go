// Package auth is the login placeholder: it checks credentials against an optional bcrypt user
// table and hands out sessions.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername      = errors.New("username is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// GuestName is the username of sessions started with "Skip for now".
const GuestName = "guest"

// Session is one signed-in period.
type Session struct {
	ID       string
	Username string
	Guest    bool
	Started  time.Time
}

// Authenticator validates credentials and tracks the active session.
type Authenticator interface {
	// Login checks the credentials and starts a session.
	// Without configured users any non-empty pair is accepted.
	//
	// Parameters:
	//   - username: the username or e-mail, surrounding spaces ignored
	//   - password: the password, surrounding spaces ignored
	//
	// Returns:
	//   - Session: the new session
	//   - error: ErrEmptyUsername, ErrEmptyPassword or ErrInvalidCredentials
	Login(username, password string) (Session, error)

	// LoginGuest starts a guest session without credentials.
	//
	// Returns:
	//   - Session: the new guest session
	LoginGuest() Session

	// Logout ends the active session.
	//
	// Returns:
	//   - error: ErrNotLoggedIn if there is no session
	Logout() error

	// Session returns the active session.
	//
	// Returns:
	//   - Session: the session, zero if none
	//   - bool: true if a session is active
	Session() (Session, bool)

	// Placeholder reports whether no users are configured and any credentials are accepted.
	//
	// Returns:
	//   - bool: true in placeholder mode
	Placeholder() bool
}

// authenticatorImpl implements Authenticator.
type authenticatorImpl struct {
	mu      *sync.Mutex
	users   map[string][]byte // lowercased username -> bcrypt hash
	session *Session
	now     func() time.Time
}

// Compile-time interface compliance check
var _ Authenticator = &authenticatorImpl{}

// NewAuthenticator creates an authenticator. With no WithUser options it runs in placeholder mode.
//
// Parameters:
//   - options: functional options to configure the authenticator
//
// Returns:
//   - Authenticator: the newly created authenticator
func NewAuthenticator(options ...AuthenticatorOption) Authenticator {
	a := &authenticatorImpl{
		mu:    &sync.Mutex{},
		users: make(map[string][]byte),
		now:   time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *authenticatorImpl) Login(username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return Session{}, ErrEmptyUsername
	}
	if password == "" {
		return Session{}, ErrEmptyPassword
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.users) > 0 {
		hash, ok := a.users[strings.ToLower(username)]
		if !ok {
			return Session{}, ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return Session{}, ErrInvalidCredentials
			}
			return Session{}, fmt.Errorf("compare password for %q: %w", username, err)
		}
	}

	return a.start(username, false), nil
}

func (a *authenticatorImpl) LoginGuest() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.start(GuestName, true)
}

// start must be called with mu held.
func (a *authenticatorImpl) start(username string, guest bool) Session {
	s := Session{ID: uuid.NewString(), Username: username, Guest: guest, Started: a.now()}
	a.session = &s
	return s
}

func (a *authenticatorImpl) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return ErrNotLoggedIn
	}
	a.session = nil
	return nil
}

func (a *authenticatorImpl) Session() (Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return Session{}, false
	}
	return *a.session, true
}

func (a *authenticatorImpl) Placeholder() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.users) == 0
}

// HashPassword returns a bcrypt hash suitable for the config file's users table.
//
// Parameters:
//   - password: the plain password
//   - cost: bcrypt cost; values outside bcrypt's range fall back to bcrypt.DefaultCost
//
// Returns:
//   - string: the encoded hash
//   - error: ErrEmptyPassword or the bcrypt error
func HashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
