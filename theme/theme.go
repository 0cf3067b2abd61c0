// Package theme holds the light and dark color schemes of the app and the user's override of
// the system preference.
package theme

import (
	"image/color"
	"sync"

	"github.com/tarasmobil/taras-mobil/common"
)

// Colors is the resolved set of colors for one mode.
type Colors struct {
	Background    color.RGBA
	Surface       color.RGBA
	Border        color.RGBA
	Text          color.RGBA
	TextSecondary color.RGBA
	Accent        color.RGBA
	AccentDim     color.RGBA
	OnAccent      color.RGBA
	Danger        color.RGBA
	Bubble        color.RGBA // assistant chat bubble
	Scrim         color.RGBA // translucent overlay behind the chat panel
}

var (
	// Light is the daytime scheme.
	Light = Colors{
		Background:    common.MustHexColor("#FFFFFF"),
		Surface:       common.MustHexColor("#F8FAFC"),
		Border:        common.MustHexColor("#E2E8F0"),
		Text:          common.MustHexColor("#0F172A"),
		TextSecondary: common.MustHexColor("#64748B"),
		Accent:        common.MustHexColor("#06B6D4"),
		AccentDim:     common.MustHexColor("#0891B2"),
		OnAccent:      common.MustHexColor("#FFFFFF"),
		Danger:        common.MustHexColor("#EF4444"),
		Bubble:        common.MustHexColor("#F1F5F9"),
		Scrim:         color.RGBA{A: 90},
	}

	// Dark is the night scheme.
	Dark = Colors{
		Background:    common.MustHexColor("#0F172A"),
		Surface:       common.MustHexColor("#1E293B"),
		Border:        common.MustHexColor("#334155"),
		Text:          common.MustHexColor("#F1F5F9"),
		TextSecondary: common.MustHexColor("#CBD5E1"),
		Accent:        common.MustHexColor("#06B6D4"),
		AccentDim:     common.MustHexColor("#00D9FF"),
		OnAccent:      common.MustHexColor("#FFFFFF"),
		Danger:        common.MustHexColor("#EF4444"),
		Bubble:        common.MustHexColor("#334155"),
		Scrim:         color.RGBA{A: 140},
	}
)

// Mode is the user's theme choice.
type Mode int

const (
	// ModeSystem follows the system preference.
	ModeSystem Mode = iota
	// ModeLight forces the light scheme.
	ModeLight
	// ModeDark forces the dark scheme.
	ModeDark
)

func (m Mode) String() string {
	switch m {
	case ModeSystem:
		return "system"
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// Theme resolves the active scheme from the system preference and the user override.
// The zero value is not usable; call New.
type Theme struct {
	mu         *sync.Mutex
	systemDark bool
	mode       Mode
	listeners  []func(dark bool)
}

// New creates a Theme that follows the system preference.
func New(systemDark bool) *Theme {
	return &Theme{mu: &sync.Mutex{}, systemDark: systemDark}
}

func (t *Theme) resolve() bool {
	switch t.mode {
	case ModeLight:
		return false
	case ModeDark:
		return true
	default:
		return t.systemDark
	}
}

// Dark reports whether the resolved scheme is dark.
func (t *Theme) Dark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolve()
}

// Mode returns the current override.
func (t *Theme) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Colors returns the scheme for the resolved mode.
func (t *Theme) Colors() Colors {
	if t.Dark() {
		return Dark
	}
	return Light
}

// SetMode sets the override. Listeners run only if the resolved scheme changed.
func (t *Theme) SetMode(mode Mode) {
	t.update(func() { t.mode = mode })
}

// SetSystemDark records a new system preference. It only changes the resolved scheme while
// the mode is ModeSystem.
func (t *Theme) SetSystemDark(dark bool) {
	t.update(func() { t.systemDark = dark })
}

// SetDark forces light or dark.
func (t *Theme) SetDark(dark bool) {
	if dark {
		t.SetMode(ModeDark)
		return
	}
	t.SetMode(ModeLight)
}

// Toggle forces the opposite of the resolved scheme and returns the new value.
func (t *Theme) Toggle() bool {
	dark := !t.Dark()
	t.SetDark(dark)
	return dark
}

// Reset drops the override and follows the system again.
func (t *Theme) Reset() {
	t.SetMode(ModeSystem)
}

// OnChange registers a listener called after every change of the resolved scheme,
// outside the lock.
func (t *Theme) OnChange(fn func(dark bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

func (t *Theme) update(mutate func()) {
	t.mu.Lock()
	before := t.resolve()
	mutate()
	after := t.resolve()
	if before == after {
		t.mu.Unlock()
		return
	}
	listeners := append([]func(bool){}, t.listeners...)
	t.mu.Unlock()

	for _, l := range listeners {
		l(after)
	}
}
