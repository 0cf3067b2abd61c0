package ui

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func newTestCanvas(w, h int) *Canvas {
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, w, h)))
	c.Fill(black)
	return c
}

func countColor(c *Canvas, r image.Rectangle, col color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c.Image().RGBAAt(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestFillRectRespectsClip(t *testing.T) {
	c := newTestCanvas(10, 10)
	prev := c.SetClip(image.Rect(0, 0, 5, 5))
	c.FillRect(image.Rect(0, 0, 10, 10), white)
	c.SetClip(prev)

	if got := countColor(c, c.Bounds(), white); got != 25 {
		t.Fatalf("painted %d pixels, want 25", got)
	}
}

func TestFillRectBlendsTranslucentColors(t *testing.T) {
	c := newTestCanvas(2, 2)
	c.FillRect(c.Bounds(), color.RGBA{R: 255, A: 128})

	got := c.Image().RGBAAt(0, 0)
	if got.R < 126 || got.R > 130 || got.G != 0 || got.A != 255 {
		t.Fatalf("blended pixel = %v", got)
	}
}

func TestStrokeRectLeavesInteriorUntouched(t *testing.T) {
	c := newTestCanvas(20, 20)
	c.StrokeRect(image.Rect(2, 2, 18, 18), 2, white)

	if c.Image().RGBAAt(2, 10) != white || c.Image().RGBAAt(17, 10) != white {
		t.Fatal("border not drawn")
	}
	if c.Image().RGBAAt(10, 10) != black {
		t.Fatal("interior painted")
	}
}

func TestFillCircleIsSymmetric(t *testing.T) {
	c := newTestCanvas(41, 41)
	c.FillCircle(20, 20, 10, white)

	for _, p := range []image.Point{{20, 10}, {20, 30}, {10, 20}, {30, 20}, {20, 20}} {
		if c.Image().RGBAAt(p.X, p.Y) != white {
			t.Fatalf("pixel %v not inside the disc", p)
		}
	}
	if c.Image().RGBAAt(11, 11) != black {
		t.Fatal("corner of the bounding box painted")
	}
}

func TestFillRoundRectCutsCorners(t *testing.T) {
	c := newTestCanvas(40, 40)
	c.FillRoundRect(image.Rect(0, 0, 40, 40), 10, white)
	if c.Image().RGBAAt(0, 0) != black {
		t.Fatal("corner pixel painted")
	}
	if c.Image().RGBAAt(20, 0) != white || c.Image().RGBAAt(20, 20) != white {
		t.Fatal("edge or center not painted")
	}
}

func TestTextDrawsInsideItsBox(t *testing.T) {
	c := newTestCanvas(200, 60)
	c.Text(10, 10, "Hello", ScaleBody, white)

	box := image.Rect(10, 10, 10+TextWidth("Hello", ScaleBody), 10+LineHeight(ScaleBody))
	inside := countColor(c, box, white)
	total := countColor(c, c.Bounds(), white)
	if inside == 0 {
		t.Fatal("no text pixels drawn")
	}
	if inside != total {
		t.Fatalf("%d of %d text pixels fall outside the measured box", total-inside, total)
	}
}

func TestTextWidthScales(t *testing.T) {
	w1 := TextWidth("abc", 1)
	if w1 <= 0 {
		t.Fatalf("TextWidth = %d", w1)
	}
	if w3 := TextWidth("abc", 3); w3 != 3*w1 {
		t.Fatalf("TextWidth at scale 3 = %d, want %d", w3, 3*w1)
	}
	if TextWidth("", 2) != 0 {
		t.Fatal("empty string has width")
	}
}

func TestWrapTextFitsWidth(t *testing.T) {
	msg := "the quick brown fox jumps over the lazy dog and keeps running"
	maxW := TextWidth("the quick brown", ScaleBody)
	lines := WrapText(msg, maxW, ScaleBody)
	if len(lines) < 3 {
		t.Fatalf("lines = %q", lines)
	}
	for _, l := range lines {
		if TextWidth(l, ScaleBody) > maxW {
			t.Fatalf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != msg {
		t.Fatalf("wrapping lost words: %q", lines)
	}
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	maxW := TextWidth("abcd", 1)
	lines := WrapText("abcdefghij", maxW, 1)
	if strings.Join(lines, "") != "abcdefghij" {
		t.Fatalf("lines = %q", lines)
	}
	for _, l := range lines {
		if TextWidth(l, 1) > maxW {
			t.Fatalf("line %q exceeds width", l)
		}
	}
}

func TestWrapTextKeepsNewlines(t *testing.T) {
	lines := WrapText("one\n\ntwo", 1000, 1)
	if len(lines) != 3 || lines[1] != "" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestEllipsize(t *testing.T) {
	if got := Ellipsize("short", 1000, 1); got != "short" {
		t.Fatalf("Ellipsize = %q", got)
	}
	maxW := TextWidth("abcdef", 1)
	got := Ellipsize("abcdefghijklmnop", maxW, 1)
	if !strings.HasSuffix(got, "...") || TextWidth(got, 1) > maxW {
		t.Fatalf("Ellipsize = %q", got)
	}
}

func TestContains(t *testing.T) {
	r := image.Rect(10, 10, 20, 20)
	cases := []struct {
		x, y float32
		want bool
	}{
		{10, 10, true},
		{19.9, 19.9, true},
		{20, 15, false},
		{9.5, 15, false},
		{-0.5, -0.5, false},
	}
	for _, tc := range cases {
		if got := Contains(r, tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestButtonHitIgnoresDisabled(t *testing.T) {
	b := Button{Rect: image.Rect(0, 0, 100, 40), Label: "OK"}
	if !b.Hit(50, 20) {
		t.Fatal("enabled button missed")
	}
	b.Disabled = true
	if b.Hit(50, 20) {
		t.Fatal("disabled button hit")
	}
}

func TestTextFieldEditing(t *testing.T) {
	f := TextField{MaxLen: 4}
	for _, r := range "ab\x07cde" {
		f.Insert(r)
	}
	if f.Value() != "abcd" {
		t.Fatalf("Value = %q, want abcd", f.Value())
	}
	if !f.Backspace() || f.Value() != "abc" {
		t.Fatalf("after Backspace Value = %q", f.Value())
	}
	f.Clear()
	if f.Backspace() {
		t.Fatal("Backspace on empty field reported a change")
	}
}

func TestTextFieldMasking(t *testing.T) {
	f := TextField{Masked: true}
	f.SetValue("secret")
	if f.Display() != "******" {
		t.Fatalf("Display = %q", f.Display())
	}
	if f.Value() != "secret" {
		t.Fatalf("Value = %q", f.Value())
	}
}

func TestCanvasIsADisplayer(t *testing.T) {
	c := newTestCanvas(8, 4)
	if x, y := c.Size(); x != 8 || y != 4 {
		t.Fatalf("Size = %d,%d", x, y)
	}
	c.SetPixel(3, 2, white)
	c.SetPixel(-1, 50, white)
	if c.Image().RGBAAt(3, 2) != white {
		t.Fatal("SetPixel did not paint")
	}
	if err := c.FillRectangle(0, 0, 2, 2, white); err != nil {
		t.Fatal(err)
	}
	if countColor(c, c.Bounds(), white) != 5 {
		t.Fatalf("unexpected painted count %d", countColor(c, c.Bounds(), white))
	}
}
