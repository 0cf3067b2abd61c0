package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestPlaceholderAcceptsAnyNonEmptyPair(t *testing.T) {
	started := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	a := NewAuthenticator(WithClock(func() time.Time { return started }))
	if !a.Placeholder() {
		t.Fatal("authenticator without users is not in placeholder mode")
	}

	s, err := a.Login("  farmer@example.com ", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Username != "farmer@example.com" || s.ID == "" || s.Guest || !s.Started.Equal(started) {
		t.Fatalf("session = %+v", s)
	}
	if got, ok := a.Session(); !ok || got.ID != s.ID {
		t.Fatalf("Session() = %+v, %v", got, ok)
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	a := NewAuthenticator()
	if _, err := a.Login(" ", "pw"); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("err = %v, want ErrEmptyUsername", err)
	}
	if _, err := a.Login("user", "  "); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("err = %v, want ErrEmptyPassword", err)
	}
	if _, ok := a.Session(); ok {
		t.Fatal("failed login started a session")
	}
}

func TestConfiguredUsersCheckBcrypt(t *testing.T) {
	hash, err := HashPassword("tarla", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := NewAuthenticator(WithUser("Ayse", hash))
	if a.Placeholder() {
		t.Fatal("configured authenticator reports placeholder mode")
	}

	if _, err := a.Login("ayse", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := a.Login("mehmet", "tarla"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
	if _, err := a.Login("AYSE", "tarla"); err != nil {
		t.Fatalf("valid login: %v", err)
	}
}

func TestGuestAndLogout(t *testing.T) {
	a := NewAuthenticator()
	if err := a.Logout(); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Logout without session err = %v", err)
	}

	g := a.LoginGuest()
	if !g.Guest || g.Username != GuestName {
		t.Fatalf("guest session = %+v", g)
	}
	if err := a.Logout(); err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Session(); ok {
		t.Fatal("session survived Logout")
	}
}

func TestHashPassword(t *testing.T) {
	if _, err := HashPassword(" ", 0); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("err = %v", err)
	}
	hash, err := HashPassword("secret", 1)
	if err != nil {
		t.Fatal(err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default for out-of-range input", cost)
	}
}
