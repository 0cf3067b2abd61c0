package rotation

import (
	"image/color"
	"time"
)

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithClock replaces the wall clock used to time drag sessions.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ControllerOption: functional option to set the clock
func WithClock(now func() time.Time) ControllerOption {
	return func(c *controllerImpl) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPalettes sets the light and dark color palettes. Both must be non-empty and of equal length.
//
// Parameters:
//   - light: palette used when the dark flag is false
//   - dark: palette used when the dark flag is true
//
// Returns:
//   - ControllerOption: functional option to set the palettes
func WithPalettes(light, dark []color.RGBA) ControllerOption {
	return func(c *controllerImpl) {
		c.lightPalette = append([]color.RGBA(nil), light...)
		c.darkPalette = append([]color.RGBA(nil), dark...)
	}
}

// WithColorIndex sets the initial color index. It is wrapped into the palette range once all options are applied.
//
// Parameters:
//   - index: initial palette index
//
// Returns:
//   - ControllerOption: functional option to set the color index
func WithColorIndex(index int) ControllerOption {
	return func(c *controllerImpl) {
		c.colorIndex = index
	}
}

// WithInitialYaw sets the yaw forced on the first frame.
//
// Parameters:
//   - yaw: initial yaw in radians
//
// Returns:
//   - ControllerOption: functional option to set the initial yaw
func WithInitialYaw(yaw float32) ControllerOption {
	return func(c *controllerImpl) {
		c.initialYaw = yaw
	}
}

// WithTiltBounds sets the allowed target tilt range.
//
// Parameters:
//   - min: minimum tilt in radians
//   - max: maximum tilt in radians
//
// Returns:
//   - ControllerOption: functional option to set tilt bounds
func WithTiltBounds(min, max float32) ControllerOption {
	return func(c *controllerImpl) {
		c.minTilt = min
		c.maxTilt = max
	}
}

// WithPointerScale sets the pointer-pixel to radian conversion factor.
//
// Parameters:
//   - scale: radians per pixel
//
// Returns:
//   - ControllerOption: functional option to set the pointer scale
func WithPointerScale(scale float32) ControllerOption {
	return func(c *controllerImpl) {
		c.pointerScale = scale
	}
}

// WithDamping sets the per-frame velocity decay factors.
//
// Parameters:
//   - tilt: tilt velocity multiplier applied each frame
//   - yaw: yaw velocity multiplier applied each frame
//
// Returns:
//   - ControllerOption: functional option to set damping
func WithDamping(tilt, yaw float32) ControllerOption {
	return func(c *controllerImpl) {
		c.tiltDamping = tilt
		c.yawDamping = yaw
	}
}

// WithTapThresholds sets the tap classification limits.
//
// Parameters:
//   - duration: exclusive maximum press duration
//   - distance: exclusive maximum summed pointer movement in pixels
//
// Returns:
//   - ControllerOption: functional option to set tap thresholds
func WithTapThresholds(duration time.Duration, distance float32) ControllerOption {
	return func(c *controllerImpl) {
		c.tapDuration = duration
		c.tapDistance = distance
	}
}
