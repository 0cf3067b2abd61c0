package app

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/auth"
	"github.com/tarasmobil/taras-mobil/common"
	"github.com/tarasmobil/taras-mobil/detect"
	"github.com/tarasmobil/taras-mobil/engine/rotation"
	"github.com/tarasmobil/taras-mobil/router"
	"github.com/tarasmobil/taras-mobil/theme"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

type fakeSound struct {
	mu       sync.Mutex
	taps     int
	messages int
	muted    bool
}

func (s *fakeSound) PlayTap()            { s.mu.Lock(); s.taps++; s.mu.Unlock() }
func (s *fakeSound) PlayMessage()        { s.mu.Lock(); s.messages++; s.mu.Unlock() }
func (s *fakeSound) SetMuted(muted bool) { s.mu.Lock(); s.muted = muted; s.mu.Unlock() }
func (s *fakeSound) Muted() bool         { s.mu.Lock(); defer s.mu.Unlock(); return s.muted }

type harness struct {
	*appImpl
	clock *fakeClock
	sound *fakeSound
	theme *theme.Theme
}

func newHarness(t *testing.T, opts ...AppOption) *harness {
	t.Helper()
	clk := newFakeClock()
	snd := &fakeSound{}
	th := theme.New(false)
	base := []AppOption{
		WithClock(clk.Now),
		WithSound(snd),
		WithTheme(th),
		WithRotation(rotation.NewController(rotation.WithClock(clk.Now))),
		WithSize(420, 860),
	}
	a, err := NewApp(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return &harness{appImpl: a.(*appImpl), clock: clk, sound: snd, theme: th}
}

func center(r image.Rectangle) (float32, float32) {
	return float32(r.Min.X+r.Max.X) / 2, float32(r.Min.Y+r.Max.Y) / 2
}

func (h *harness) tap(r image.Rectangle) {
	x, y := center(r)
	h.PointerDown(x, y)
	h.PointerUp(x, y)
}

// press taps the current screen's button bound to act.
func (h *harness) press(t *testing.T, act action) {
	t.Helper()
	h.mu.Lock()
	targets := h.screenButtons()
	h.mu.Unlock()
	for _, tg := range targets {
		if tg.act == act {
			h.tap(tg.btn.Rect)
			return
		}
	}
	t.Fatalf("no button for action %d on %s", act, h.Screen())
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.Char(r)
	}
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	h.press(t, actSkip)
	if got := h.Screen(); got != router.Home {
		t.Fatalf("screen after skip = %s, want %s", got, router.Home)
	}
}

func TestStartsOnLogin(t *testing.T) {
	h := newHarness(t)
	if got := h.Screen(); got != router.Login {
		t.Fatalf("initial screen = %s, want %s", got, router.Login)
	}
	img := h.Frame(0)
	if got := img.Bounds(); got != image.Rect(0, 0, 420, 860) {
		t.Fatalf("frame bounds = %v", got)
	}
}

func TestLoginRequiresFields(t *testing.T) {
	h := newHarness(t)
	h.press(t, actSignIn)
	if h.Screen() != router.Login {
		t.Fatal("empty sign in left the login screen")
	}
	if h.loginErr != "Enter your e-mail." {
		t.Fatalf("loginErr = %q", h.loginErr)
	}
}

func TestLoginWithKeyboard(t *testing.T) {
	h := newHarness(t)
	h.tap(h.email.Rect)
	h.typeText("farmer@taras.io")
	h.KeyDown(common.KeyEnter)
	if h.focus != &h.password {
		t.Fatal("Enter on e-mail did not move focus to password")
	}
	h.typeText("secret")
	h.KeyDown(common.KeyEnter)

	if got := h.Screen(); got != router.Home {
		t.Fatalf("screen = %s, want %s", got, router.Home)
	}
	if h.email.Value() != "" || h.password.Value() != "" {
		t.Fatal("login fields not cleared")
	}
	s, ok := h.auth.Session()
	if !ok || s.Username != "farmer@taras.io" || s.Guest {
		t.Fatalf("session = %+v, %v", s, ok)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("right", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h := newHarness(t, WithAuthenticator(auth.NewAuthenticator(auth.WithUser("ali", hash))))
	h.tap(h.email.Rect)
	h.typeText("ali")
	h.tap(h.password.Rect)
	h.typeText("wrong")
	h.press(t, actSignIn)
	if h.Screen() != router.Login || h.loginErr != "Wrong e-mail or password." {
		t.Fatalf("screen %s, loginErr %q", h.Screen(), h.loginErr)
	}
}

func TestNavBar(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	for i, s := range router.NavScreens {
		h.tap(h.layout.navItems[i])
		if got := h.Screen(); got != s {
			t.Fatalf("after tapping nav item %d screen = %s, want %s", i, got, s)
		}
		h.Frame(0)
	}
}

func TestHomeTapCyclesColor(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.Frame(0)

	h.tap(h.layout.viewport)
	if got := h.rotation.ColorIndex(); got != 1 {
		t.Fatalf("color index = %d, want 1", got)
	}
	if h.sound.taps != 1 {
		t.Fatalf("tap sounds = %d, want 1", h.sound.taps)
	}
}

func TestHomeDragDoesNotCycle(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	x, y := center(h.layout.viewport)
	h.PointerDown(x, y)
	h.PointerMove(x+60, y+10)
	h.PointerUp(x+60, y+10)
	if h.rotation.ColorIndex() != 0 || h.sound.taps != 0 {
		t.Fatal("drag counted as a tap")
	}
}

func TestLeavingViewportEndsDrag(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	x, y := center(h.layout.viewport)
	h.PointerDown(x, y)
	h.PointerMove(x, 5)
	if h.capture != captureNone {
		t.Fatal("drag still captured after leaving the field")
	}
	h.PointerUp(x, y)
	if h.rotation.ColorIndex() != 0 {
		t.Fatal("release after leaving the field cycled the color")
	}
}

func TestChatOpensAndClosesOnBackdrop(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.tap(h.layout.fab)
	if !h.ChatOpen() {
		t.Fatal("chat did not open")
	}
	if h.focus != &h.chatInput {
		t.Fatal("chat input not focused")
	}
	for range 60 {
		h.Tick(1.0 / 60)
	}
	if h.chatPos < 0.9 {
		t.Fatalf("chat position after a second = %v", h.chatPos)
	}
	h.Frame(0)

	h.tap(image.Rect(10, 10, 20, 20))
	if h.ChatOpen() {
		t.Fatal("backdrop tap did not close the chat")
	}
	for range 240 {
		h.Tick(1.0 / 60)
	}
	if h.chatPos != 0 {
		t.Fatalf("chat position after closing = %v", h.chatPos)
	}
}

func TestChatReplyNavigatesAfterDelay(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.tap(h.layout.fab)
	h.typeText("ayarlar")
	h.KeyDown(common.KeyEnter)

	if h.chatInput.Value() != "" {
		t.Fatal("input not cleared after send")
	}
	h.Tick(1.0 / 60)
	if h.Screen() != router.Home || !h.conv.Typing() {
		t.Fatal("reply arrived before the delay")
	}
	h.Frame(0)

	h.clock.Advance(assistant.DefaultReplyDelay)
	h.Tick(1.0 / 60)
	if got := h.Screen(); got != router.Settings {
		t.Fatalf("screen after reply = %s, want %s", got, router.Settings)
	}
	msgs := h.conv.Messages()
	if len(msgs) != 3 || msgs[1].Role != assistant.RoleUser || msgs[2].Role != assistant.RoleAssistant {
		t.Fatalf("messages = %+v", msgs)
	}
	if h.sound.messages != 1 {
		t.Fatalf("message sounds = %d, want 1", h.sound.messages)
	}
}

func TestChatIgnoresEmptySend(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.tap(h.layout.fab)
	h.typeText("   ")
	h.KeyDown(common.KeyEnter)
	if h.conv.Len() != 1 {
		t.Fatalf("blank message was sent; %d messages", h.conv.Len())
	}
}

func TestSettingsThemeAndLogout(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.navigate(router.Settings)

	h.press(t, actThemeDark)
	if !h.theme.Dark() || h.theme.Mode() != theme.ModeDark {
		t.Fatal("Dark button did not switch to dark mode")
	}
	h.press(t, actThemeLight)
	if h.theme.Dark() || h.theme.Mode() != theme.ModeLight {
		t.Fatal("Light button did not switch to light mode")
	}
	h.Frame(0)

	h.press(t, actLogout)
	if got := h.Screen(); got != router.Login {
		t.Fatalf("screen after logout = %s", got)
	}
	if h.theme.Mode() != theme.ModeSystem {
		t.Fatal("logout did not reset the theme override")
	}
	if _, ok := h.auth.Session(); ok {
		t.Fatal("session survived logout")
	}
	if len(h.router.History()) != 0 {
		t.Fatal("history survived logout")
	}
}

func TestSettingsSoundToggle(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.navigate(router.Settings)
	h.mu.Lock()
	toggle := h.soundToggle()
	h.mu.Unlock()
	h.tap(toggle.Rect)
	if !h.sound.Muted() {
		t.Fatal("sound toggle did not mute")
	}
}

func waitForState(t *testing.T, d detect.Detector, want detect.PermissionState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for d.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("detector state = %s, want %s", d.State(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDiseasePermissionAndScan(t *testing.T) {
	d := detect.NewDetector(detect.WithProvider(detect.StaticPermission(true)))
	h := newHarness(t, WithDetector(d))
	h.signIn(t)
	h.navigate(router.Disease)

	h.press(t, actRequestCamera)
	waitForState(t, d, detect.StateGranted)

	h.press(t, actScan)
	r, ok := d.LastResult()
	if !ok || r.Label != detect.PlaceholderLabel {
		t.Fatalf("last result = %+v, %v", r, ok)
	}
	h.Frame(0)
}

func TestDiseaseDenied(t *testing.T) {
	d := detect.NewDetector(detect.WithProvider(detect.StaticPermission(false)))
	h := newHarness(t, WithDetector(d))
	h.signIn(t)
	h.navigate(router.Disease)

	h.press(t, actRequestCamera)
	waitForState(t, d, detect.StateDenied)
	h.Frame(0)

	// Retry is offered from the denied state.
	h.press(t, actRequestCamera)
}

func TestResizeRelayouts(t *testing.T) {
	h := newHarness(t)
	h.Resize(800, 600)
	img := h.Frame(0)
	if got := img.Bounds(); got != image.Rect(0, 0, 800, 600) {
		t.Fatalf("frame bounds after resize = %v", got)
	}
	if h.layout.nav.Max.Y != 600 {
		t.Fatalf("nav bottom = %d", h.layout.nav.Max.Y)
	}
	h.Resize(0, 0)
	if h.width != 800 {
		t.Fatal("zero resize changed the size")
	}
}
