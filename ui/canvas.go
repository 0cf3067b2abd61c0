// Package ui draws the app's 2D interface into an RGBA image: filled shapes, bitmap text
// and a handful of widgets. Everything is immediate mode; widgets hold state but draw on demand.
package ui

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Canvas draws into an *image.RGBA. Colors are straight (non-premultiplied) RGBA; a color with
// A < 255 is blended over the existing pixel.
//
// Canvas implements drivers.Displayer so tinyfont can render into it directly.
type Canvas struct {
	img  *image.RGBA
	clip image.Rectangle
}

var _ drivers.Displayer = &Canvas{}

// NewCanvas wraps img. The clip starts as the full image bounds.
func NewCanvas(img *image.RGBA) *Canvas {
	return &Canvas{img: img, clip: img.Bounds()}
}

// Image returns the wrapped image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Bounds returns the image bounds.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// SetClip restricts drawing to r intersected with the image bounds and returns the previous clip.
func (c *Canvas) SetClip(r image.Rectangle) image.Rectangle {
	prev := c.clip
	c.clip = r.Intersect(c.img.Bounds())
	return prev
}

// Clip returns the current clip rectangle.
func (c *Canvas) Clip() image.Rectangle { return c.clip }

// Size is part of drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel is part of drivers.Displayer.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.blend(int(x), int(y), col)
}

// Display is part of drivers.Displayer. Presenting is the renderer's job, so it does nothing.
func (c *Canvas) Display() error { return nil }

// FillRectangle matches the drivers rectangle fill signature.
func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.FillRect(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), col)
	return nil
}

// SetRotation is accepted for drivers compatibility; the canvas is never rotated.
func (c *Canvas) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Fill paints the whole clip area with col, ignoring alpha.
func (c *Canvas) Fill(col color.RGBA) {
	col.A = 255
	c.FillRect(c.clip, col)
}

// FillRect paints r with col.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	r = r.Intersect(c.clip)
	if r.Empty() || col.A == 0 {
		return
	}
	if col.A == 255 {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			o := c.img.PixOffset(r.Min.X, y)
			row := c.img.Pix[o : o+4*r.Dx()]
			for i := 0; i < len(row); i += 4 {
				row[i], row[i+1], row[i+2], row[i+3] = col.R, col.G, col.B, 255
			}
		}
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.blendUnchecked(x, y, col)
		}
	}
}

// StrokeRect draws a border of the given width inside r.
func (c *Canvas) StrokeRect(r image.Rectangle, width int, col color.RGBA) {
	if width <= 0 || r.Empty() {
		return
	}
	width = min(width, r.Dx()/2+1, r.Dy()/2+1)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), col)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), col)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), col)
	c.FillRect(image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), col)
}

// FillRoundRect paints r with corners of the given radius cut to quarter circles.
func (c *Canvas) FillRoundRect(r image.Rectangle, radius int, col color.RGBA) {
	radius = min(radius, r.Dx()/2, r.Dy()/2)
	if radius <= 0 {
		c.FillRect(r, col)
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		inset := 0
		if dy := r.Min.Y + radius - y; dy > 0 {
			inset = cornerInset(radius, dy)
		} else if dy := y - (r.Max.Y - 1 - radius); dy > 0 {
			inset = cornerInset(radius, dy)
		}
		c.FillRect(image.Rect(r.Min.X+inset, y, r.Max.X-inset, y+1), col)
	}
}

// FillCircle paints a disc centered on (cx, cy).
func (c *Canvas) FillCircle(cx, cy, radius int, col color.RGBA) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		dx := 0
		for (dx+1)*(dx+1)+dy*dy <= r2 {
			dx++
		}
		c.FillRect(image.Rect(cx-dx, cy+dy, cx+dx+1, cy+dy+1), col)
	}
}

// cornerInset returns how far a row dy pixels into a rounded corner is pushed inward.
func cornerInset(radius, dy int) int {
	dx := 0
	for dx*dx+dy*dy < radius*radius {
		dx++
	}
	return radius - dx + 1
}

func (c *Canvas) blend(x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(c.clip) || col.A == 0 {
		return
	}
	c.blendUnchecked(x, y, col)
}

func (c *Canvas) blendUnchecked(x, y int, col color.RGBA) {
	o := c.img.PixOffset(x, y)
	p := c.img.Pix[o : o+4 : o+4]
	if col.A == 255 {
		p[0], p[1], p[2], p[3] = col.R, col.G, col.B, 255
		return
	}
	a := uint32(col.A)
	inv := 255 - a
	p[0] = uint8((uint32(col.R)*a + uint32(p[0])*inv) / 255)
	p[1] = uint8((uint32(col.G)*a + uint32(p[1])*inv) / 255)
	p[2] = uint8((uint32(col.B)*a + uint32(p[2])*inv) / 255)
	p[3] = uint8(min(uint32(p[3])+a, 255))
}
