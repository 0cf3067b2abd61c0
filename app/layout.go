package app

import (
	"image"

	"github.com/tarasmobil/taras-mobil/router"
)

const (
	headerHeight  = 92
	navHeight     = 72
	swatchHeight  = 44
	fabRadius     = 28
	fabMargin     = 20
	chatMaxHeight = 500
	chatHeightPct = 0.6
	chatInputH    = 48
	chatHeaderH   = 52
	margin        = 24
)

// layout is the screen geometry for one window size.
type layout struct {
	bounds   image.Rectangle
	header   image.Rectangle
	content  image.Rectangle
	nav      image.Rectangle
	navItems []image.Rectangle // parallel to router.NavScreens
	fab      image.Rectangle   // bounding box of the round chat button
	chat     image.Rectangle   // chat panel when fully open
	viewport image.Rectangle   // 3D field on Home
	swatches image.Rectangle   // palette row under the field
}

func computeLayout(w, h int) layout {
	l := layout{bounds: image.Rect(0, 0, w, h)}
	l.header = image.Rect(0, 0, w, min(headerHeight, h))
	l.nav = image.Rect(0, max(h-navHeight, l.header.Max.Y), w, h)
	l.content = image.Rect(0, l.header.Max.Y, w, l.nav.Min.Y)

	n := len(router.NavScreens)
	itemW := w / n
	l.navItems = make([]image.Rectangle, n)
	for i := range l.navItems {
		x0 := i * itemW
		x1 := x0 + itemW
		if i == n-1 {
			x1 = w
		}
		l.navItems[i] = image.Rect(x0+6, l.nav.Min.Y+8, x1-6, l.nav.Max.Y-8)
	}

	cx := w - fabMargin - fabRadius
	cy := l.nav.Min.Y - fabMargin - fabRadius
	l.fab = image.Rect(cx-fabRadius, cy-fabRadius, cx+fabRadius, cy+fabRadius)

	ch := min(int(float64(h)*chatHeightPct), chatMaxHeight)
	l.chat = image.Rect(0, h-ch, w, h)

	l.swatches = image.Rect(margin, l.content.Max.Y-swatchHeight, w-margin, l.content.Max.Y)
	l.viewport = image.Rect(0, l.content.Min.Y, w, l.swatches.Min.Y)
	return l
}

// chatRect is the chat panel slid up by open in [0, 1].
func (l layout) chatRect(open float64) image.Rectangle {
	open = min(max(open, 0), 1)
	off := int(float64(l.chat.Dy()) * (1 - open))
	return l.chat.Add(image.Pt(0, off))
}

// centered returns a w x h rectangle horizontally centered in r with its top at y.
func centered(r image.Rectangle, y, w, h int) image.Rectangle {
	x := r.Min.X + (r.Dx()-w)/2
	return image.Rect(x, y, x+w, y+h)
}
