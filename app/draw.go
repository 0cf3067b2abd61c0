package app

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tarasmobil/taras-mobil/common"
	"github.com/tarasmobil/taras-mobil/detect"
	"github.com/tarasmobil/taras-mobil/router"
	"github.com/tarasmobil/taras-mobil/theme"
	"github.com/tarasmobil/taras-mobil/ui"
)

// target pairs a button with its action so drawing and hit testing share one definition.
type target struct {
	btn ui.Button
	act action
}

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// draw composites the whole window. Must be called with mu held.
func (a *appImpl) draw() {
	c := a.canvas
	col := a.theme.Colors()
	c.SetClip(c.Bounds())
	a.frame.Clear(col.Background)

	screen := a.router.Current()
	if screen == router.Login {
		a.drawLogin(col)
	} else {
		a.drawHeader(screen, col)
		switch screen {
		case router.Home:
			a.drawHome(col)
		case router.Disease:
			a.drawDisease(col)
		case router.Timetable:
			a.drawTimetable(col)
		case router.Settings:
			a.drawSettings(col)
		}
	}
	for _, t := range a.screenButtons() {
		t.btn.Draw(c)
	}
	if screen != router.Login {
		a.drawNav(screen, col)
		if !a.chatOpen {
			a.drawFab(col)
		}
		if a.chatPos > 0 {
			a.drawChat(col)
		}
	}
	if a.showStats {
		a.drawStats(col)
	}
}

// screenButtons returns the buttons of the current screen. Must be called with mu held.
func (a *appImpl) screenButtons() []target {
	col := a.theme.Colors()
	l := a.layout
	w := l.bounds.Dx()
	bw := min(w-2*margin, 340)

	switch a.router.Current() {
	case router.Login:
		y := a.password.Rect.Max.Y + 24
		return []target{
			{ui.Button{Rect: centered(l.bounds, y, bw, 52), Label: "Sign in", Fill: col.Accent, Text: white, Radius: 12}, actSignIn},
			{ui.Button{Rect: centered(l.bounds, y+68, bw, 36), Label: "Skip for now", Text: col.AccentDim}, actSkip},
		}
	case router.Disease:
		switch a.detector.State() {
		case detect.StateUnknown:
			return []target{{ui.Button{Rect: centered(l.content, l.content.Min.Y+200, 200, 48), Label: "Allow", Fill: col.Accent, Text: col.Background, Radius: 12}, actRequestCamera}}
		case detect.StateDenied:
			return []target{{ui.Button{Rect: centered(l.content, l.content.Min.Y+260, 200, 48), Label: "Retry", Fill: col.Accent, Text: col.Background, Radius: 12}, actRequestCamera}}
		case detect.StateGranted:
			return []target{{ui.Button{Rect: centered(l.content, a.viewfinder().Max.Y+16, 200, 48), Label: "Scan", Fill: col.Accent, Text: white, Radius: 12}, actScan}}
		}
	case router.Settings:
		row := a.themeRow()
		mode := a.theme.Mode()
		light := ui.Button{Rect: image.Rect(row.Max.X-148, row.Min.Y+10, row.Max.X-78, row.Max.Y-10), Label: "Light", Text: col.Text, Fill: col.Surface, Radius: 8}
		dark := ui.Button{Rect: image.Rect(row.Max.X-70, row.Min.Y+10, row.Max.X, row.Max.Y-10), Label: "Dark", Text: col.Text, Fill: col.Surface, Radius: 8}
		if mode == theme.ModeLight {
			light.Fill, light.Text = col.Accent, white
		}
		if mode == theme.ModeDark {
			dark.Fill, dark.Text = col.Accent, white
		}
		logout := ui.Button{Rect: centered(l.content, row.Max.Y+96, bw, 52), Label: "Sign out", Fill: col.Danger, Text: white, Radius: 12}
		return []target{{light, actThemeLight}, {dark, actThemeDark}, {logout, actLogout}}
	}
	return nil
}

func (a *appImpl) drawHeader(screen router.Screen, col theme.Colors) {
	c := a.canvas
	h := a.layout.header
	title := screen.Header()
	titleColor := col.Text
	if screen == router.Home {
		titleColor = col.Accent
	}
	c.Text(margin, h.Min.Y+22, title, ui.ScaleTitle, titleColor)
	if screen == router.Home {
		sub := ui.Ellipsize("Drag to rotate, tap to recolor", h.Dx()-2*margin, ui.ScaleBody)
		c.Text(margin, h.Min.Y+22+ui.LineHeight(ui.ScaleTitle)+4, sub, ui.ScaleBody, col.TextSecondary)
	}
}

// loginTop is the y of the logo on the Login screen.
func (a *appImpl) loginTop() int {
	return max(a.layout.bounds.Dy()/2-220, 24)
}

// placeFields positions the text fields for the current layout.
func (a *appImpl) placeFields() {
	b := a.layout.bounds
	fw := min(b.Dx()-2*margin, 340)
	top := a.loginTop()
	a.email.Rect = centered(b, top+176, fw, 52)
	a.password.Rect = centered(b, top+176+64, fw, 52)

	panel := a.layout.chat
	a.chatInput.Rect = image.Rect(panel.Min.X+16, panel.Max.Y-chatInputH-16, panel.Max.X-16-88, panel.Max.Y-16)
}

func (a *appImpl) drawLogin(col theme.Colors) {
	c := a.canvas
	w := a.layout.bounds.Dx()
	top := a.loginTop()

	c.FillCircle(w/2, top+32, 32, col.Accent)
	c.TextCentered(image.Rect(0, top, w, top+64), "T", ui.ScaleTitle, white)
	c.TextCentered(image.Rect(0, top+80, w, top+120), "TARAS", ui.ScaleTitle+1, col.Text)
	c.TextCentered(image.Rect(0, top+124, w, top+152), "Agri Digital Twin Platform", ui.ScaleBody, col.TextSecondary)

	on := a.caretOn()
	a.email.Draw(c, col.Surface, col.AccentDim, col.Text, col.TextSecondary, on)
	a.password.Draw(c, col.Surface, col.AccentDim, col.Text, col.TextSecondary, on)

	if a.loginErr != "" {
		y := a.password.Rect.Max.Y + 140
		c.TextCentered(image.Rect(0, y, w, y+30), a.loginErr, ui.ScaleBody, col.Danger)
	}
}

func (a *appImpl) drawHome(col theme.Colors) {
	l := a.layout
	vp := l.viewport
	if vp.Empty() {
		return
	}

	a.frame.ClearDepth(vp)
	a.camera.SetAspect(float32(vp.Dx()) / float32(vp.Dy()))
	rot := a.rotation.Rotation()
	model := common.ModelMatrix(mgl32.Vec3{}, rot.Tilt, rot.Yaw, 1)
	mvp := a.camera.ViewProjectionMatrix().Mul4(model)
	dark := a.theme.Dark()
	a.rasterizer.DrawMesh(a.frame, vp, a.camera, mvp, a.mesh, a.rotation.Color(dark))

	// Palette row with the active entry outlined.
	palette := a.rotation.Palette(dark)
	active := a.rotation.ColorIndex()
	size := 24
	gap := 12
	total := len(palette)*size + (len(palette)-1)*gap
	x := l.swatches.Min.X + (l.swatches.Dx()-total)/2
	y := l.swatches.Min.Y + (l.swatches.Dy()-size)/2
	for i, p := range palette {
		r := image.Rect(x, y, x+size, y+size)
		if i == active {
			a.canvas.StrokeRect(ui.Inset(r, -4), 2, col.Text)
		}
		a.canvas.FillRoundRect(r, 6, p)
		x += size + gap
	}
}

// viewfinder is the camera preview frame on the Disease screen.
func (a *appImpl) viewfinder() image.Rectangle {
	c := a.layout.content
	w := c.Dx() - 2*margin
	h := min(w*4/3, c.Dy()-200)
	return centered(c, c.Min.Y+16, w, max(h, 120))
}

func (a *appImpl) drawDisease(col theme.Colors) {
	c := a.canvas
	content := a.layout.content
	textW := content.Dx() - 2*margin

	paragraph := func(y int, s string, scale int, clr color.RGBA) int {
		for _, line := range ui.WrapText(s, textW, scale) {
			c.TextCentered(image.Rect(content.Min.X, y, content.Max.X, y+ui.LineHeight(scale)), line, scale, clr)
			y += ui.LineHeight(scale)
		}
		return y
	}

	switch a.detector.State() {
	case detect.StateUnknown:
		y := paragraph(content.Min.Y+96, "Camera Permission", ui.ScaleTitle, col.Text)
		paragraph(y+12, "Allow camera access to scan your plants.", ui.ScaleBody, col.TextSecondary)
	case detect.StateRequesting:
		paragraph(content.Min.Y+120, "Requesting camera access...", ui.ScaleBody, col.TextSecondary)
	case detect.StateDenied:
		y := paragraph(content.Min.Y+96, "Camera Access Denied", ui.ScaleTitle, col.Text)
		paragraph(y+12, "Enable camera permission in your device settings to use this feature.", ui.ScaleBody, col.TextSecondary)
	case detect.StateGranted:
		vf := a.viewfinder()
		c.FillRoundRect(vf, 16, col.Surface)
		c.StrokeRect(vf, 3, col.Accent)
		c.TextCentered(vf, "Camera preview", ui.ScaleBody, col.TextSecondary)
		if r, ok := a.detector.LastResult(); ok {
			y := vf.Max.Y + 80
			paragraph(y, fmt.Sprintf("Result: %s", r.Label), ui.ScaleBody, col.Text)
		}
	}
}

func (a *appImpl) drawTimetable(col theme.Colors) {
	a.canvas.TextCentered(a.layout.content, "Content coming soon", ui.ScaleBody, col.TextSecondary)
}

// themeRow is the dark mode row on the Settings screen.
func (a *appImpl) themeRow() image.Rectangle {
	c := a.layout.content
	y := c.Min.Y + 24 + ui.LineHeight(ui.ScaleBody) + 24
	return image.Rect(margin, y, c.Max.X-margin, y+64)
}

func (a *appImpl) soundToggle() ui.Toggle {
	row := a.themeRow()
	return ui.Toggle{Rect: row.Add(image.Pt(0, row.Dy())), Label: "Sound", On: !a.sound.Muted()}
}

func (a *appImpl) drawSettings(col theme.Colors) {
	c := a.canvas
	content := a.layout.content
	c.Text(margin, content.Min.Y+24, "Manage your preferences", ui.ScaleBody, col.TextSecondary)

	row := a.themeRow()
	c.Text(row.Min.X, row.Min.Y+8, "Dark Mode", ui.ScaleBody, col.Text)
	var state string
	switch a.theme.Mode() {
	case theme.ModeDark:
		state = "On"
	case theme.ModeLight:
		state = "Off"
	default:
		state = "System"
	}
	c.Text(row.Min.X, row.Min.Y+8+ui.LineHeight(ui.ScaleBody), state, ui.ScaleBody, col.TextSecondary)
	c.FillRect(image.Rect(row.Min.X, row.Max.Y-1, row.Max.X, row.Max.Y), col.Surface)

	t := a.soundToggle()
	t.Draw(c, col.Text, col.Border, col.Accent)

	footer := a.version
	if s, ok := a.auth.Session(); ok {
		footer = "Signed in as " + s.Username + " - " + a.version
	}
	c.TextCentered(image.Rect(0, content.Max.Y-40, content.Max.X, content.Max.Y-8),
		ui.Ellipsize(footer, content.Dx()-2*margin, ui.ScaleBody), ui.ScaleBody, col.TextSecondary)
}

func (a *appImpl) drawNav(active router.Screen, col theme.Colors) {
	c := a.canvas
	nav := a.layout.nav
	c.FillRect(nav, col.Surface)
	c.FillRect(image.Rect(nav.Min.X, nav.Min.Y, nav.Max.X, nav.Min.Y+1), col.Border)
	for i, s := range router.NavScreens {
		r := a.layout.navItems[i]
		text := col.TextSecondary
		if s == active {
			c.FillRoundRect(r, 12, col.Accent)
			text = white
		}
		c.TextCentered(r, ui.Ellipsize(s.Label(), r.Dx()-4, ui.ScaleBody), ui.ScaleBody, text)
	}
}

func (a *appImpl) drawFab(col theme.Colors) {
	f := a.layout.fab
	cx, cy := (f.Min.X+f.Max.X)/2, (f.Min.Y+f.Max.Y)/2
	a.canvas.FillCircle(cx, cy, fabRadius, col.Accent)
	a.canvas.TextCentered(f, "AI", ui.ScaleBody, white)
}

func (a *appImpl) drawStats(col theme.Colors) {
	if a.profiler == nil {
		return
	}
	s, ok := a.profiler.Last()
	if !ok {
		return
	}
	line := fmt.Sprintf("%.0f fps %.1fms %.1fMB", s.FPS, s.FrameTimeMS, s.HeapMB)
	w := ui.TextWidth(line, ui.ScaleBody)
	h := ui.LineHeight(ui.ScaleBody)
	a.canvas.FillRect(image.Rect(4, 4, 12+w, 8+h), col.Scrim)
	a.canvas.Text(8, 6, line, ui.ScaleBody, white)
}
