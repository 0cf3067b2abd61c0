package rotation

import (
	"image/color"
	"sync"
	"time"

	"github.com/tarasmobil/taras-mobil/common"
)

// dragSession is the transient state of one press-move-release sequence.
type dragSession struct {
	active  bool
	started time.Time
	last    Pointer
	movedX  float32 // sum of |dx| over the session, in pixels
	movedY  float32 // sum of |dy| over the session, in pixels
}

// controllerImpl is the single implementation of Controller.
// Current rotation is only written by Tick; target and velocity are written by Tick and by
// pointer moves. Everything is guarded by mu because frames and pointer events arrive on
// different goroutines.
type controllerImpl struct {
	mu *sync.Mutex

	initialized bool

	current  Rotation
	target   Rotation
	velocity Rotation

	drag dragSession

	colorIndex   int
	lightPalette []color.RGBA
	darkPalette  []color.RGBA

	// Tuning
	initialYaw        float32
	minTilt           float32
	maxTilt           float32
	pointerScale      float32
	lerpFactor        float32
	tiltDamping       float32
	yawDamping        float32
	tiltVelocityScale float32
	yawVelocityScale  float32
	tapDuration       time.Duration
	tapDistance       float32

	now func() time.Time
}

// Compile-time interface compliance check
var _ Controller = &controllerImpl{}

// NewController creates a rotation controller with the default tuning constants.
// Panics if the configured palettes are empty or differ in length, since the color index
// must stay valid for both.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controllerImpl{
		mu: &sync.Mutex{},

		lightPalette: LightPalette,
		darkPalette:  DarkPalette,

		initialYaw:        DefaultInitialYaw,
		minTilt:           DefaultMinTilt,
		maxTilt:           DefaultMaxTilt,
		pointerScale:      DefaultPointerScale,
		lerpFactor:        DefaultLerpFactor,
		tiltDamping:       DefaultTiltDamping,
		yawDamping:        DefaultYawDamping,
		tiltVelocityScale: DefaultTiltVelocityScale,
		yawVelocityScale:  DefaultYawVelocityScale,
		tapDuration:       DefaultTapDuration,
		tapDistance:       DefaultTapDistance,

		now: time.Now,
	}

	for _, option := range options {
		option(c)
	}

	if len(c.lightPalette) == 0 || len(c.lightPalette) != len(c.darkPalette) {
		panic("rotation: light and dark palettes must be non-empty and of equal length")
	}
	c.colorIndex = common.WrapIndex(c.colorIndex, len(c.lightPalette))

	return c
}

// --- internal helpers ---

// clampTargetTilt keeps the target tilt inside [minTilt, maxTilt].
// Caller must hold the mutex.
func (c *controllerImpl) clampTargetTilt() {
	c.target.Tilt = common.Clamp(c.target.Tilt, c.minTilt, c.maxTilt)
}

// sanitize replaces non-finite coordinates with 0.
func sanitize(p Pointer) Pointer {
	return Pointer{X: common.Finite32(p.X), Y: common.Finite32(p.Y)}
}

// --- Controller implementation ---

func (c *controllerImpl) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		c.current = Rotation{Tilt: 0, Yaw: c.initialYaw}
		c.target = c.current
		c.initialized = true
	}

	c.current.Tilt = common.Lerp(c.current.Tilt, c.target.Tilt, c.lerpFactor)
	c.current.Yaw = common.Lerp(c.current.Yaw, c.target.Yaw, c.lerpFactor)

	if c.drag.active {
		return
	}

	c.target.Tilt += c.velocity.Tilt
	c.target.Yaw += c.velocity.Yaw
	c.velocity.Tilt *= c.tiltDamping
	c.velocity.Yaw *= c.yawDamping
	c.clampTargetTilt()
}

func (c *controllerImpl) PointerDown(p Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drag = dragSession{
		active:  true,
		started: c.now(),
		last:    sanitize(p),
	}
}

func (c *controllerImpl) PointerMove(p Pointer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.drag.active {
		return
	}

	p = sanitize(p)
	dx := p.X - c.drag.last.X
	dy := p.Y - c.drag.last.Y

	dYaw := dx * c.pointerScale
	dTilt := dy * c.pointerScale

	c.target.Yaw += dYaw
	c.target.Tilt += dTilt
	c.clampTargetTilt()

	// Overwritten on every move: only the final motion before release carries momentum.
	c.velocity.Tilt = dTilt * c.tiltVelocityScale
	c.velocity.Yaw = dYaw * c.yawVelocityScale

	c.drag.movedX += common.Abs(dx)
	c.drag.movedY += common.Abs(dy)
	c.drag.last = p
}

func (c *controllerImpl) PointerUp(_ Pointer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.drag.active {
		return false
	}

	elapsed := c.now().Sub(c.drag.started)
	tap := elapsed < c.tapDuration && c.drag.movedX+c.drag.movedY < c.tapDistance
	if tap {
		c.colorIndex = common.WrapIndex(c.colorIndex+1, len(c.lightPalette))
	}

	c.drag = dragSession{}
	return tap
}

func (c *controllerImpl) PointerLeave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag.active = false
}

func (c *controllerImpl) Rotation() Rotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *controllerImpl) Target() Rotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *controllerImpl) Velocity() Rotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

func (c *controllerImpl) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag.active
}

func (c *controllerImpl) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *controllerImpl) ColorIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colorIndex
}

func (c *controllerImpl) SetColorIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colorIndex = common.WrapIndex(index, len(c.lightPalette))
}

func (c *controllerImpl) Palette(dark bool) []color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.lightPalette
	if dark {
		src = c.darkPalette
	}
	out := make([]color.RGBA, len(src))
	copy(out, src)
	return out
}

func (c *controllerImpl) Color(dark bool) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if dark {
		return c.darkPalette[c.colorIndex]
	}
	return c.lightPalette[c.colorIndex]
}
