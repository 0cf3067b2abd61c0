package ui

import (
	"image"
	"image/color"
	"strings"
	"unicode"
)

// Contains reports whether the point (x, y) lies inside r. Pointer coordinates are fractional;
// the pixel containing the point decides.
func Contains(r image.Rectangle, x, y float32) bool {
	if x < 0 || y < 0 {
		return false
	}
	return (image.Point{X: int(x), Y: int(y)}).In(r)
}

// Inset shrinks r by n pixels on every side.
func Inset(r image.Rectangle, n int) image.Rectangle {
	return image.Rect(r.Min.X+n, r.Min.Y+n, r.Max.X-n, r.Max.Y-n)
}

// Button is a rounded, labeled hit target.
type Button struct {
	Rect     image.Rectangle
	Label    string
	Fill     color.RGBA
	Text     color.RGBA
	Radius   int
	Disabled bool
}

// Hit reports whether an enabled button contains (x, y).
func (b *Button) Hit(x, y float32) bool {
	return !b.Disabled && Contains(b.Rect, x, y)
}

// Draw paints the button. Disabled buttons are drawn at half opacity.
func (b *Button) Draw(c *Canvas) {
	fill, text := b.Fill, b.Text
	if b.Disabled {
		fill.A /= 2
		text.A /= 2
	}
	c.FillRoundRect(b.Rect, b.Radius, fill)
	c.TextCentered(b.Rect, Ellipsize(b.Label, b.Rect.Dx()-8, ScaleBody), ScaleBody, text)
}

// Toggle is a labeled on/off switch.
type Toggle struct {
	Rect  image.Rectangle
	Label string
	On    bool
}

// Hit reports whether (x, y) is inside the toggle row.
func (t *Toggle) Hit(x, y float32) bool {
	return Contains(t.Rect, x, y)
}

// Draw paints the label on the left and the switch on the right.
func (t *Toggle) Draw(c *Canvas, text, track, accent color.RGBA) {
	h := LineHeight(ScaleBody)
	c.Text(t.Rect.Min.X, t.Rect.Min.Y+(t.Rect.Dy()-h)/2, t.Label, ScaleBody, text)

	sw := image.Rect(t.Rect.Max.X-56, t.Rect.Min.Y+(t.Rect.Dy()-28)/2, t.Rect.Max.X, 0)
	sw.Max.Y = sw.Min.Y + 28
	knobX := sw.Min.X + 14
	fill := track
	if t.On {
		fill = accent
		knobX = sw.Max.X - 14
	}
	c.FillRoundRect(sw, 14, fill)
	c.FillCircle(knobX, sw.Min.Y+14, 11, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

// TextField is a single-line text input. Only printable runes are accepted.
type TextField struct {
	Rect        image.Rectangle
	Placeholder string
	Masked      bool
	Focused     bool
	MaxLen      int

	value []rune
}

// Value returns the current text.
func (f *TextField) Value() string { return string(f.value) }

// SetValue replaces the text, dropping non-printable runes and truncating to MaxLen.
func (f *TextField) SetValue(s string) {
	f.value = f.value[:0]
	for _, r := range s {
		f.Insert(r)
	}
}

// Clear empties the field.
func (f *TextField) Clear() { f.value = f.value[:0] }

// Insert appends r if it is printable and the field is not full.
//
// Returns:
//   - bool: true if the rune was accepted
func (f *TextField) Insert(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	if f.MaxLen > 0 && len(f.value) >= f.MaxLen {
		return false
	}
	f.value = append(f.value, r)
	return true
}

// Backspace removes the last rune.
//
// Returns:
//   - bool: true if a rune was removed
func (f *TextField) Backspace() bool {
	if len(f.value) == 0 {
		return false
	}
	f.value = f.value[:len(f.value)-1]
	return true
}

// Hit reports whether (x, y) is inside the field.
func (f *TextField) Hit(x, y float32) bool {
	return Contains(f.Rect, x, y)
}

// Display returns the text as drawn: masked fields show one '*' per rune.
func (f *TextField) Display() string {
	if f.Masked {
		return strings.Repeat("*", len(f.value))
	}
	return string(f.value)
}

// Draw paints the field. When the visible text is too wide, its tail is shown so the caret
// stays in view. caretOn toggles the caret for blinking.
func (f *TextField) Draw(c *Canvas, bg, border, text, muted color.RGBA, caretOn bool) {
	c.FillRoundRect(f.Rect, 8, bg)
	bw := 1
	if f.Focused {
		bw = 2
	}
	c.StrokeRect(f.Rect, bw, border)

	inner := Inset(f.Rect, 10)
	h := LineHeight(ScaleBody)
	y := f.Rect.Min.Y + (f.Rect.Dy()-h)/2

	shown := f.Display()
	if shown == "" {
		if !f.Focused {
			c.Text(inner.Min.X, y, Ellipsize(f.Placeholder, inner.Dx(), ScaleBody), ScaleBody, muted)
		}
	} else {
		r := []rune(shown)
		for len(r) > 0 && TextWidth(string(r), ScaleBody) > inner.Dx()-4 {
			r = r[1:]
		}
		shown = string(r)
		c.Text(inner.Min.X, y, shown, ScaleBody, text)
	}

	if f.Focused && caretOn {
		x := inner.Min.X + TextWidth(shown, ScaleBody) + 1
		c.FillRect(image.Rect(x, y, x+2, y+h-2), text)
	}
}
