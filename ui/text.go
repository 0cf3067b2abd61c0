package ui

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the bitmap font used for all text.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// Text scales used across the app.
const (
	ScaleBody  = 2
	ScaleTitle = 3
)

// LineHeight returns the distance between baselines at the given scale.
func LineHeight(scale int) int {
	return int(Font.GetYAdvance()) * max(scale, 1)
}

// ascent is the baseline offset from the top of a line, in unscaled pixels.
func ascent() int16 {
	return int16(Font.GetYAdvance()) * 3 / 4
}

// TextWidth returns the pixel width of s at the given scale.
func TextWidth(s string, scale int) int {
	if s == "" {
		return 0
	}
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox) * max(scale, 1)
}

// Text draws s with its top-left corner at (x, y).
func (c *Canvas) Text(x, y int, s string, scale int, col color.RGBA) {
	if s == "" {
		return
	}
	scale = max(scale, 1)
	d := &scaledDisplay{canvas: c, ox: x, oy: y, scale: scale}
	tinyfont.WriteLine(d, Font, 0, ascent(), s, col)
}

// TextCentered draws s centered inside r.
func (c *Canvas) TextCentered(r image.Rectangle, s string, scale int, col color.RGBA) {
	w := TextWidth(s, scale)
	h := LineHeight(scale)
	c.Text(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()-h)/2, s, scale, col)
}

// WrapText splits s into lines no wider than maxWidth, breaking at spaces. Words wider than
// maxWidth are split by rune. Explicit newlines are kept.
func WrapText(s string, maxWidth, scale int) []string {
	if maxWidth <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, w := range words {
			for TextWidth(w, scale) > maxWidth {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head, tail := splitToWidth(w, maxWidth, scale)
				lines = append(lines, head)
				w = tail
			}
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if TextWidth(candidate, scale) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// Ellipsize shortens s with a trailing "..." until it fits maxWidth.
func Ellipsize(s string, maxWidth, scale int) string {
	if TextWidth(s, scale) <= maxWidth {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "..."; TextWidth(t, scale) <= maxWidth {
			return t
		}
	}
	return ""
}

// splitToWidth returns the longest prefix of w (at least one rune) that fits maxWidth, and the rest.
func splitToWidth(w string, maxWidth, scale int) (string, string) {
	r := []rune(w)
	n := 1
	for n < len(r) && TextWidth(string(r[:n+1]), scale) <= maxWidth {
		n++
	}
	return string(r[:n]), string(r[n:])
}

// scaledDisplay maps font pixels to scale x scale blocks on a canvas, offset by (ox, oy).
type scaledDisplay struct {
	canvas *Canvas
	ox, oy int
	scale  int
}

var _ drivers.Displayer = &scaledDisplay{}

func (d *scaledDisplay) Size() (x, y int16) {
	b := d.canvas.Bounds()
	return int16((b.Max.X - d.ox) / d.scale), int16((b.Max.Y - d.oy) / d.scale)
}

func (d *scaledDisplay) SetPixel(x, y int16, c color.RGBA) {
	px := d.ox + int(x)*d.scale
	py := d.oy + int(y)*d.scale
	d.canvas.FillRect(image.Rect(px, py, px+d.scale, py+d.scale), c)
}

func (d *scaledDisplay) Display() error { return nil }
