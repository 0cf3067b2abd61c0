package app

import (
	"context"
	"errors"
	"log"

	"github.com/tarasmobil/taras-mobil/auth"
	"github.com/tarasmobil/taras-mobil/common"
	"github.com/tarasmobil/taras-mobil/detect"
	"github.com/tarasmobil/taras-mobil/engine/rotation"
	"github.com/tarasmobil/taras-mobil/router"
	"github.com/tarasmobil/taras-mobil/theme"
	"github.com/tarasmobil/taras-mobil/ui"
)

// action is what a button does when pressed.
type action int

const (
	actNone action = iota
	actSignIn
	actSkip
	actRequestCamera
	actScan
	actThemeLight
	actThemeDark
	actLogout
	actSend
	actCloseChat
)

func (a *appImpl) PointerDown(x, y float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	screen := a.router.Current()
	if screen != router.Login {
		if a.chatOpen {
			a.chatPointerDown(x, y)
			return
		}
		if ui.Contains(a.layout.fab, x, y) {
			a.chatOpen = true
			a.chatScroll = 0
			a.setFocus(&a.chatInput)
			return
		}
		for i, r := range a.layout.navItems {
			if ui.Contains(r, x, y) {
				a.setFocus(nil)
				a.navigate(router.NavScreens[i])
				return
			}
		}
	}

	switch screen {
	case router.Login:
		switch {
		case a.email.Hit(x, y):
			a.setFocus(&a.email)
			return
		case a.password.Hit(x, y):
			a.setFocus(&a.password)
			return
		}
	case router.Home:
		if ui.Contains(a.layout.viewport, x, y) {
			a.setFocus(nil)
			a.capture = captureField
			a.rotation.PointerDown(rotation.Pointer{X: x, Y: y})
			return
		}
	case router.Settings:
		if t := a.soundToggle(); t.Hit(x, y) {
			a.sound.SetMuted(!a.sound.Muted())
			return
		}
	}

	a.setFocus(nil)
	for _, t := range a.screenButtons() {
		if t.btn.Hit(x, y) {
			a.do(t.act)
			return
		}
	}
}

func (a *appImpl) PointerMove(x, y float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.capture != captureField {
		return
	}
	// The field only sees events inside its own surface; leaving it ends the drag.
	if !ui.Contains(a.layout.viewport, x, y) {
		a.releaseField()
		return
	}
	a.rotation.PointerMove(rotation.Pointer{X: x, Y: y})
}

func (a *appImpl) PointerUp(x, y float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.capture != captureField {
		return
	}
	a.capture = captureNone
	if a.rotation.PointerUp(rotation.Pointer{X: x, Y: y}) {
		a.sound.PlayTap()
	}
}

func (a *appImpl) PointerLeave() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseField()
}

func (a *appImpl) KeyDown(keyCode uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch keyCode {
	case common.KeyF1:
		a.showStats = !a.showStats
	case common.KeyBackspace:
		if a.focus != nil {
			a.focus.Backspace()
			a.caretTime = 0
		}
	case common.KeyTab:
		switch a.focus {
		case &a.email:
			a.setFocus(&a.password)
		case &a.password:
			a.setFocus(&a.email)
		}
	case common.KeyEnter:
		switch a.focus {
		case &a.email:
			a.setFocus(&a.password)
		case &a.password:
			a.do(actSignIn)
		case &a.chatInput:
			a.do(actSend)
		}
	}
}

func (a *appImpl) Char(r rune) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.focus != nil && a.focus.Insert(r) {
		a.caretTime = 0
	}
}

func (a *appImpl) Scroll(delta float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.chatOpen {
		return
	}
	a.chatScroll = max(a.chatScroll+int(delta*3), 0)
}

func (a *appImpl) chatPointerDown(x, y float32) {
	panel := a.layout.chatRect(1)
	if !ui.Contains(panel, x, y) {
		a.closeChat()
		return
	}
	if a.chatInput.Hit(x, y) {
		a.setFocus(&a.chatInput)
		return
	}
	for _, t := range a.chatButtons() {
		if t.btn.Hit(x, y) {
			a.do(t.act)
			return
		}
	}
}

func (a *appImpl) closeChat() {
	a.chatOpen = false
	if a.focus == &a.chatInput {
		a.setFocus(nil)
	}
}

// do runs a button action. Must be called with mu held.
func (a *appImpl) do(act action) {
	switch act {
	case actSignIn:
		if _, err := a.auth.Login(a.email.Value(), a.password.Value()); err != nil {
			a.loginErr = loginMessage(err)
			return
		}
		a.enterApp()
	case actSkip:
		a.auth.LoginGuest()
		a.enterApp()
	case actRequestCamera:
		a.requestCamera()
	case actScan:
		if _, err := a.detector.Scan(); err != nil {
			log.Printf("[App] scan: %v", err)
		}
	case actThemeLight:
		a.theme.SetMode(theme.ModeLight)
	case actThemeDark:
		a.theme.SetMode(theme.ModeDark)
	case actLogout:
		if err := a.auth.Logout(); err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
			log.Printf("[App] logout: %v", err)
		}
		a.theme.Reset()
		a.closeChat()
		a.chatPos, a.chatVel = 0, 0
		a.releaseField()
		if err := a.router.Reset(router.Login); err != nil {
			log.Printf("[App] logout: %v", err)
		}
	case actSend:
		if _, err := a.conv.Send(a.chatInput.Value(), a.now()); err != nil {
			return
		}
		a.chatInput.Clear()
		a.chatScroll = 0
		a.setFocus(&a.chatInput)
	case actCloseChat:
		a.closeChat()
	}
}

func (a *appImpl) enterApp() {
	a.email.Clear()
	a.password.Clear()
	a.loginErr = ""
	a.setFocus(nil)
	if err := a.router.Reset(router.Home); err != nil {
		log.Printf("[App] login: %v", err)
	}
}

// requestCamera asks for permission without blocking the input thread.
func (a *appImpl) requestCamera() {
	ctx := a.ctx
	d := a.detector
	go func(ctx context.Context) {
		if _, err := d.Request(ctx); err != nil && !errors.Is(err, detect.ErrRequestPending) {
			log.Printf("[App] camera permission: %v", err)
		}
	}(ctx)
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmptyUsername):
		return "Enter your e-mail."
	case errors.Is(err, auth.ErrEmptyPassword):
		return "Enter your password."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Wrong e-mail or password."
	default:
		return "Sign in failed."
	}
}
