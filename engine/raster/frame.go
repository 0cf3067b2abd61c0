package raster

import (
	"image"
	"image/color"
	"math"
)

// Frame is a CPU render target: an RGBA image plus a per-pixel depth buffer.
// Rows are tightly packed so the image can be uploaded to the GPU as is.
type Frame struct {
	Image *image.RGBA
	depth []float32
}

// NewFrame allocates a frame of the given size. Non-positive sizes are raised to 1.
//
// Parameters:
//   - width: frame width in pixels
//   - height: frame height in pixels
//
// Returns:
//   - *Frame: the new frame, cleared to transparent black with depth at +Inf
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize reallocates the frame if the size changed.
//
// Parameters:
//   - width: new width in pixels
//   - height: new height in pixels
func (f *Frame) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if f.Image != nil && f.Image.Bounds().Dx() == width && f.Image.Bounds().Dy() == height {
		return
	}
	f.Image = image.NewRGBA(image.Rect(0, 0, width, height))
	f.depth = make([]float32, width*height)
	f.ClearDepth(f.Image.Bounds())
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.Image.Bounds().Dx() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.Image.Bounds().Dy() }

// Clear fills the whole frame with c and resets the depth buffer.
//
// Parameters:
//   - c: the clear color
func (f *Frame) Clear(c color.RGBA) {
	pix := f.Image.Pix
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
	// Copy-doubling fill.
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}
	f.ClearDepth(f.Image.Bounds())
}

// ClearDepth resets depth to +Inf inside r.
//
// Parameters:
//   - r: the rectangle to reset, clipped to the frame bounds
func (f *Frame) ClearDepth(r image.Rectangle) {
	r = r.Intersect(f.Image.Bounds())
	inf := float32(math.Inf(1))
	w := f.Width()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.depth[y*w+r.Min.X : y*w+r.Max.X]
		for i := range row {
			row[i] = inf
		}
	}
}

// Depth returns the stored depth at (x, y), or +Inf outside the frame.
func (f *Frame) Depth(x, y int) float32 {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return float32(math.Inf(1))
	}
	return f.depth[y*f.Width()+x]
}

// plot writes c at (x, y) if depth is closer than the stored value.
// Caller guarantees (x, y) is inside the frame.
func (f *Frame) plot(x, y int, depth float32, c color.RGBA) {
	i := y*f.Width() + x
	if depth >= f.depth[i] {
		return
	}
	f.depth[i] = depth
	o := f.Image.PixOffset(x, y)
	p := f.Image.Pix[o : o+4 : o+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}
