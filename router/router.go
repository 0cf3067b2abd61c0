// Package router tracks which screen the app is showing and the history used by Back.
package router

import (
	"errors"
	"fmt"
	"sync"
)

// Screen identifies one top-level screen.
type Screen string

const (
	Login     Screen = "login"
	Home      Screen = "home"
	Disease   Screen = "disease"
	Timetable Screen = "timetable"
	Settings  Screen = "settings"
)

// ErrUnknownScreen is returned when navigating to a screen the router does not know.
var ErrUnknownScreen = errors.New("unknown screen")

// Screens lists every known screen.
var Screens = []Screen{Login, Home, Disease, Timetable, Settings}

// NavScreens are the screens reachable from the bottom navigation bar, in bar order.
var NavScreens = []Screen{Timetable, Home, Disease, Settings}

var headers = map[Screen]string{
	Home:      "TarasMobil",
	Disease:   "Disease Detection",
	Timetable: "Timetable",
	Settings:  "Settings",
}

var labels = map[Screen]string{
	Login:     "Login",
	Home:      "Home",
	Disease:   "Disease",
	Timetable: "Timetable",
	Settings:  "Settings",
}

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	_, ok := labels[s]
	return ok
}

// Header is the title shown at the top of the screen. Login has none.
func (s Screen) Header() string {
	return headers[s]
}

// Label is the short name used in the navigation bar.
func (s Screen) Label() string {
	return labels[s]
}

// Parse converts a screen name into a Screen.
func Parse(name string) (Screen, error) {
	s := Screen(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return s, nil
}

// Router holds the current screen and the back stack.
type Router interface {
	// Current returns the screen being shown.
	//
	// Returns:
	//   - Screen: the current screen
	Current() Screen

	// Navigate shows the given screen and pushes the previous one onto the history.
	// Navigating to the current screen does nothing.
	//
	// Parameters:
	//   - s: the target screen
	//
	// Returns:
	//   - error: ErrUnknownScreen if s is not a known screen
	Navigate(s Screen) error

	// Back returns to the previous screen. With an empty history the current screen stays.
	//
	// Returns:
	//   - bool: true if the screen changed
	Back() bool

	// Reset shows s and clears the history.
	//
	// Parameters:
	//   - s: the screen to show
	//
	// Returns:
	//   - error: ErrUnknownScreen if s is not a known screen
	Reset(s Screen) error

	// History returns a copy of the back stack, oldest first.
	//
	// Returns:
	//   - []Screen: previously shown screens
	History() []Screen

	// OnChange registers a listener called with (from, to) after every screen change.
	// Listeners run outside the router lock and may call back into the router.
	//
	// Parameters:
	//   - fn: the listener
	OnChange(fn func(from, to Screen))
}

// routerImpl implements Router.
type routerImpl struct {
	mu         *sync.Mutex
	current    Screen
	history    []Screen
	maxHistory int
	listeners  []func(from, to Screen)
}

// Compile-time interface compliance check
var _ Router = &routerImpl{}

// NewRouter creates a router starting on the Login screen.
//
// Parameters:
//   - options: functional options to configure the router
//
// Returns:
//   - Router: the newly created router
func NewRouter(options ...RouterOption) Router {
	r := &routerImpl{
		mu:         &sync.Mutex{},
		current:    Login,
		maxHistory: 32,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *routerImpl) Current() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *routerImpl) Navigate(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("navigate: %w: %q", ErrUnknownScreen, string(s))
	}

	r.mu.Lock()
	from := r.current
	if from == s {
		r.mu.Unlock()
		return nil
	}
	r.history = append(r.history, from)
	if over := len(r.history) - r.maxHistory; over > 0 {
		r.history = append(r.history[:0], r.history[over:]...)
	}
	r.current = s
	listeners := append([]func(Screen, Screen){}, r.listeners...)
	r.mu.Unlock()

	notify(listeners, from, s)
	return nil
}

func (r *routerImpl) Back() bool {
	r.mu.Lock()
	n := len(r.history)
	if n == 0 {
		r.mu.Unlock()
		return false
	}
	from := r.current
	r.current = r.history[n-1]
	r.history = r.history[:n-1]
	to := r.current
	listeners := append([]func(Screen, Screen){}, r.listeners...)
	r.mu.Unlock()

	if from != to {
		notify(listeners, from, to)
	}
	return from != to
}

func (r *routerImpl) Reset(s Screen) error {
	if !s.Valid() {
		return fmt.Errorf("reset: %w: %q", ErrUnknownScreen, string(s))
	}

	r.mu.Lock()
	from := r.current
	r.current = s
	r.history = r.history[:0]
	listeners := append([]func(Screen, Screen){}, r.listeners...)
	r.mu.Unlock()

	if from != s {
		notify(listeners, from, s)
	}
	return nil
}

func (r *routerImpl) History() []Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Screen(nil), r.history...)
}

func (r *routerImpl) OnChange(fn func(from, to Screen)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func notify(listeners []func(Screen, Screen), from, to Screen) {
	for _, l := range listeners {
		l(from, to)
	}
}
