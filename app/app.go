// Package app is the TarasMobil shell: it owns the screens, routes pointer and keyboard input,
// and composites each frame on the CPU for the renderer to present.
package app

import (
	"context"
	"image"
	"log"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/auth"
	"github.com/tarasmobil/taras-mobil/detect"
	"github.com/tarasmobil/taras-mobil/engine"
	"github.com/tarasmobil/taras-mobil/engine/camera"
	"github.com/tarasmobil/taras-mobil/engine/profiler"
	"github.com/tarasmobil/taras-mobil/engine/raster"
	"github.com/tarasmobil/taras-mobil/engine/rotation"
	"github.com/tarasmobil/taras-mobil/router"
	"github.com/tarasmobil/taras-mobil/theme"
	"github.com/tarasmobil/taras-mobil/ui"
)

// SoundPlayer plays the app's feedback sounds. *audio.SoundManager satisfies it.
type SoundPlayer interface {
	PlayTap()
	PlayMessage()
	SetMuted(muted bool)
	Muted() bool
}

// App is the whole interactive application minus the window and GPU.
type App interface {
	engine.FrameSource

	// Tick advances time-based UI state: the chat panel spring, the caret blink and delayed
	// assistant replies. Called from the engine's fixed-rate tick.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Tick(deltaTime float32)

	// Resize sets the framebuffer size in pixels.
	Resize(width, height int)

	// PointerDown, PointerMove and PointerUp take window pixel coordinates.
	PointerDown(x, y float32)
	PointerMove(x, y float32)
	PointerUp(x, y float32)

	// PointerLeave reports that the pointer left the window.
	PointerLeave()

	// KeyDown handles non-text keys (Enter, Tab, Backspace, F1).
	KeyDown(keyCode uint32)

	// Char inserts typed text into the focused field.
	Char(r rune)

	// Scroll scrolls the chat history while the chat panel is open.
	Scroll(delta float32)

	// Screen returns the current screen.
	Screen() router.Screen

	// ChatOpen reports whether the chat panel is open or opening.
	ChatOpen() bool
}

type capture int

const (
	captureNone capture = iota
	captureField
)

// appImpl implements App. All UI state is guarded by mu; Frame, Tick and the input handlers
// run on different goroutines.
type appImpl struct {
	mu *sync.Mutex

	width, height int
	layout        layout
	frame         *raster.Frame
	canvas        *ui.Canvas

	theme      *theme.Theme
	router     router.Router
	rotation   rotation.Controller
	rasterizer raster.Rasterizer
	camera     camera.Camera
	mesh       raster.Mesh
	assistant  assistant.Assistant
	conv       *assistant.Conversation
	convOpts   []assistant.ConversationOption
	auth       auth.Authenticator
	detector   detect.Detector
	sound      SoundPlayer
	profiler   *profiler.Profiler

	ctx     context.Context
	now     func() time.Time
	version string

	// Login
	email    ui.TextField
	password ui.TextField
	loginErr string

	// Chat
	chatOpen   bool
	chatPos    float64
	chatVel    float64
	chatInput  ui.TextField
	chatScroll int // lines scrolled up from the newest message

	focus     *ui.TextField
	capture   capture
	caretTime float32
	showStats bool
}

// Compile-time interface compliance check
var _ App = &appImpl{}

// NewApp creates the app with defaults for every collaborator not supplied by an option.
//
// Parameters:
//   - options: functional options to configure the app
//
// Returns:
//   - App: the newly created app
//   - error: error if the default assistant cannot be built
func NewApp(options ...AppOption) (App, error) {
	a := &appImpl{
		mu:      &sync.Mutex{},
		width:   420,
		height:  860,
		ctx:     context.Background(),
		now:     time.Now,
		version: "dev",
		mesh:    raster.NewFieldMesh(8, 8, 1.5),
		camera: camera.NewCamera(
			camera.WithEye(0, 8, 11.3),
			camera.WithTarget(0, 0, 0),
			camera.WithFov(float32(50*math.Pi/180)),
		),
	}
	for _, opt := range options {
		opt(a)
	}

	if a.theme == nil {
		a.theme = theme.New(false)
	}
	if a.router == nil {
		a.router = router.NewRouter()
	}
	if a.rotation == nil {
		a.rotation = rotation.NewController()
	}
	if a.rasterizer == nil {
		a.rasterizer = raster.NewRasterizer()
	}
	if a.assistant == nil {
		as, err := assistant.NewAssistant()
		if err != nil {
			return nil, err
		}
		a.assistant = as
	}
	if a.auth == nil {
		a.auth = auth.NewAuthenticator()
	}
	if a.detector == nil {
		a.detector = detect.NewDetector()
	}
	if a.sound == nil {
		a.sound = &silentSound{}
	}
	a.conv = assistant.NewConversation(a.assistant, a.now(), a.convOpts...)

	a.email = ui.TextField{Placeholder: "E-mail", MaxLen: 64}
	a.password = ui.TextField{Placeholder: "Password", Masked: true, MaxLen: 64}
	a.chatInput = ui.TextField{Placeholder: "Type a message...", MaxLen: 200}

	a.router.OnChange(func(from, to router.Screen) {
		log.Printf("[App] screen %s -> %s", from, to)
	})
	a.theme.OnChange(func(dark bool) {
		log.Printf("[App] dark mode %v", dark)
	})

	a.resize(a.width, a.height)
	return a, nil
}

func (a *appImpl) Screen() router.Screen {
	return a.router.Current()
}

func (a *appImpl) ChatOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chatOpen
}

func (a *appImpl) Resize(width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resize(width, height)
}

func (a *appImpl) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	if a.frame == nil {
		a.frame = raster.NewFrame(width, height)
	} else {
		a.frame.Resize(width, height)
	}
	a.canvas = ui.NewCanvas(a.frame.Image)
	a.layout = computeLayout(width, height)
	a.placeFields()
}

// Frame advances the rotation controller by one rendered frame and composites the screen.
func (a *appImpl) Frame(deltaTime float32) *image.RGBA {
	a.rotation.Tick()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.draw()
	return a.frame.Image
}

func (a *appImpl) Tick(deltaTime float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if deltaTime > 0 {
		target := 0.0
		if a.chatOpen {
			target = 1
		}
		spring := harmonica.NewSpring(float64(deltaTime), 9.0, 0.85)
		a.chatPos, a.chatVel = spring.Update(a.chatPos, a.chatVel, target)
		if !a.chatOpen && a.chatPos < 0.002 {
			a.chatPos, a.chatVel = 0, 0
		}
	}
	a.caretTime += deltaTime

	for _, resp := range a.conv.Update(a.now()) {
		a.sound.PlayMessage()
		a.chatScroll = 0
		if resp.Navigate != "" && a.router.Current() != router.Login {
			a.navigate(resp.Navigate)
		}
	}
}

// navigate changes screen and ends any drag on the field, since the field stops receiving
// pointer events once it is hidden.
func (a *appImpl) navigate(s router.Screen) {
	if err := a.router.Navigate(s); err != nil {
		log.Printf("[App] navigate: %v", err)
		return
	}
	if s != router.Home {
		a.releaseField()
	}
}

func (a *appImpl) releaseField() {
	if a.capture == captureField {
		a.rotation.PointerLeave()
		a.capture = captureNone
	}
}

func (a *appImpl) setFocus(f *ui.TextField) {
	for _, tf := range []*ui.TextField{&a.email, &a.password, &a.chatInput} {
		tf.Focused = tf == f
	}
	a.focus = f
	a.caretTime = 0
}

func (a *appImpl) caretOn() bool {
	return int(a.caretTime*2)%2 == 0
}

// silentSound is used when no sound player is configured.
type silentSound struct{ muted bool }

func (s *silentSound) PlayTap()            {}
func (s *silentSound) PlayMessage()        {}
func (s *silentSound) SetMuted(muted bool) { s.muted = muted }
func (s *silentSound) Muted() bool         { return s.muted }
