package rotation

import (
	"image/color"
	"math"
	"time"
)

// Default tuning constants for the rotation controller.
const (
	// DefaultInitialYaw is the yaw forced on the first frame.
	DefaultInitialYaw = float32(math.Pi / 4)

	// DefaultMinTilt and DefaultMaxTilt bound the target tilt: the plane never passes horizontal
	// and never flips upside down.
	DefaultMinTilt = float32(0)
	DefaultMaxTilt = float32(math.Pi / 4)

	// DefaultPointerScale converts pointer pixels to radians.
	DefaultPointerScale = float32(0.003)

	// DefaultLerpFactor is the fraction of the remaining distance covered each frame.
	DefaultLerpFactor = float32(0.25)

	// DefaultTiltDamping and DefaultYawDamping are the per-frame velocity decay factors.
	DefaultTiltDamping = float32(0.85)
	DefaultYawDamping  = float32(0.70)

	// DefaultTiltVelocityScale and DefaultYawVelocityScale turn the last move delta into momentum.
	DefaultTiltVelocityScale = float32(1.0)
	DefaultYawVelocityScale  = float32(1.4)

	// DefaultTapDuration is the exclusive upper bound on a tap's press duration.
	DefaultTapDuration = 200 * time.Millisecond

	// DefaultTapDistance is the exclusive upper bound on a tap's summed |dx| + |dy| movement.
	DefaultTapDistance = float32(15)
)

// Rotation is an orientation (or angular velocity) expressed as tilt and yaw in radians.
// Roll is not modeled.
type Rotation struct {
	// Tilt is the rotation about the horizontal X axis.
	Tilt float32
	// Yaw is the rotation about the vertical Y axis.
	Yaw float32
}

// Pointer is a pointer or touch position in surface pixels.
type Pointer struct {
	X float32
	Y float32
}

// Controller translates pointer input into a smoothed, momentum-carrying rotation and
// distinguishes taps (advance the displayed color) from drags (reorient the view).
//
// A Controller is one owned state object shared between the per-frame callback and the
// pointer callbacks. All methods are safe for concurrent use.
type Controller interface {
	// Tick advances the controller by one rendered frame.
	// The first call forces current and target rotation to the initial pose. Every call moves
	// the current rotation a fixed fraction toward the target; while no drag is active the
	// target also advances by the velocity, the velocity decays, and the target tilt is clamped.
	Tick()

	// PointerDown begins a drag session at p.
	//
	// Parameters:
	//   - p: pointer position; non-finite coordinates are treated as 0
	PointerDown(p Pointer)

	// PointerMove rotates the target by the pointer delta since the last event and records the
	// delta as momentum. Ignored while no drag session is active.
	//
	// Parameters:
	//   - p: pointer position; non-finite coordinates are treated as 0
	PointerMove(p Pointer)

	// PointerUp ends the drag session. A session shorter than the tap duration whose summed
	// movement stays below the tap distance advances the color index by one.
	//
	// Parameters:
	//   - p: pointer position at release (unused for classification)
	//
	// Returns:
	//   - bool: true if the session was classified as a tap
	PointerUp(p Pointer) bool

	// PointerLeave ends the drag session silently: no tap classification, velocity is kept.
	PointerLeave()

	// Rotation returns the current (displayed) rotation.
	//
	// Returns:
	//   - Rotation: current tilt and yaw
	Rotation() Rotation

	// Target returns the rotation the current rotation is interpolating toward.
	//
	// Returns:
	//   - Rotation: target tilt and yaw
	Target() Rotation

	// Velocity returns the per-frame angular velocity applied to the target while not dragging.
	//
	// Returns:
	//   - Rotation: tilt and yaw velocity
	Velocity() Rotation

	// Dragging reports whether a drag session is active.
	//
	// Returns:
	//   - bool: true while a pointer is held down on the surface
	Dragging() bool

	// Initialized reports whether the first-frame initialization has run.
	//
	// Returns:
	//   - bool: true after the first Tick
	Initialized() bool

	// ColorIndex returns the index of the displayed color in the active palette.
	//
	// Returns:
	//   - int: index in [0, palette length)
	ColorIndex() int

	// SetColorIndex sets the color index, wrapping it into the palette range.
	//
	// Parameters:
	//   - index: the desired index (any integer)
	SetColorIndex(index int)

	// Palette returns the palette selected by the dark flag.
	//
	// Parameters:
	//   - dark: true for the dark palette
	//
	// Returns:
	//   - []color.RGBA: a copy of the palette
	Palette(dark bool) []color.RGBA

	// Color returns the displayed color from the palette selected by the dark flag.
	// Switching the flag swaps the palette but keeps the index.
	//
	// Parameters:
	//   - dark: true for the dark palette
	//
	// Returns:
	//   - color.RGBA: the color at ColorIndex
	Color(dark bool) color.RGBA
}
