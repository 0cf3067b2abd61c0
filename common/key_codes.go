package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyD     = 68 // D key (ASCII)
	KeyH     = 72 // H key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)

	KeyEsc       = 256 // Escape key (GLFW)
	KeyEnter     = 257 // Enter key (GLFW)
	KeyTab       = 258 // Tab key (GLFW)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyF1        = 290 // F1 key (GLFW)
)

// Modifier keys
const (
	KeyLeftControl  = 341 // Left Control (GLFW)
	KeyRightControl = 345 // Right Control (GLFW)
)
