package app

import (
	"image"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/theme"
	"github.com/tarasmobil/taras-mobil/ui"
)

const (
	bubblePad  = 10
	bubbleGap  = 8
	bubbleFrac = 0.75
)

// chatButtons returns the close and send buttons of the fully open panel.
func (a *appImpl) chatButtons() []target {
	col := a.theme.Colors()
	panel := a.layout.chatRect(1)
	closeBtn := ui.Button{
		Rect:  image.Rect(panel.Max.X-16-40, panel.Min.Y+6, panel.Max.X-16, panel.Min.Y+chatHeaderH-6),
		Label: "X",
		Text:  col.TextSecondary,
	}
	send := ui.Button{
		Rect:     image.Rect(a.chatInput.Rect.Max.X+8, a.chatInput.Rect.Min.Y, panel.Max.X-16, a.chatInput.Rect.Max.Y),
		Label:    "Send",
		Fill:     col.Accent,
		Text:     white,
		Radius:   12,
		Disabled: a.chatInput.Value() == "",
	}
	return []target{{closeBtn, actCloseChat}, {send, actSend}}
}

// drawChat paints the backdrop and the panel slid up by chatPos.
func (a *appImpl) drawChat(col theme.Colors) {
	c := a.canvas
	scrim := col.Scrim
	scrim.A = uint8(float64(scrim.A) * min(a.chatPos, 1))
	c.FillRect(a.layout.bounds, scrim)

	panel := a.layout.chatRect(a.chatPos)
	dy := panel.Min.Y - a.layout.chat.Min.Y
	shift := image.Pt(0, dy)

	c.FillRoundRect(panel, 20, col.Surface)
	c.FillRect(image.Rect(panel.Min.X, panel.Min.Y+20, panel.Max.X, panel.Max.Y), col.Surface)
	c.Text(panel.Min.X+margin, panel.Min.Y+16, "Assistant", ui.ScaleTitle, col.Text)
	c.FillRect(image.Rect(panel.Min.X, panel.Min.Y+chatHeaderH, panel.Max.X, panel.Min.Y+chatHeaderH+1), col.Border)

	for _, t := range a.chatButtons() {
		t.btn.Rect = t.btn.Rect.Add(shift)
		t.btn.Draw(c)
	}

	input := a.chatInput
	input.Rect = input.Rect.Add(shift)
	input.Draw(c, col.Background, col.AccentDim, col.Text, col.TextSecondary, a.caretOn())

	history := image.Rect(panel.Min.X, panel.Min.Y+chatHeaderH+1, panel.Max.X, input.Rect.Min.Y-8)
	if history.Empty() {
		return
	}
	prev := c.SetClip(history)
	a.drawMessages(history, col)
	c.SetClip(prev)
}

// drawMessages lays the history out bottom-up so the newest message sits above the input.
func (a *appImpl) drawMessages(r image.Rectangle, col theme.Colors) {
	c := a.canvas
	lh := ui.LineHeight(ui.ScaleBody)
	maxText := int(float64(r.Dx())*bubbleFrac) - 2*bubblePad

	y := r.Max.Y - bubbleGap + a.chatScroll*lh
	if a.conv.Typing() {
		y -= lh
		c.Text(r.Min.X+margin, y, "typing...", ui.ScaleBody, col.TextSecondary)
		y -= bubbleGap
	}

	msgs := a.conv.Messages()
	for i := len(msgs) - 1; i >= 0 && y > r.Min.Y; i-- {
		m := msgs[i]
		lines := ui.WrapText(m.Text, maxText, ui.ScaleBody)
		w := 0
		for _, line := range lines {
			w = max(w, ui.TextWidth(line, ui.ScaleBody))
		}
		h := len(lines)*lh + 2*bubblePad
		y -= h

		fill, text := col.Bubble, col.Text
		x := r.Min.X + 16
		if m.Role == assistant.RoleUser {
			fill, text = col.Accent, white
			x = r.Max.X - 16 - w - 2*bubblePad
		}
		if y+h > r.Min.Y && y < r.Max.Y {
			c.FillRoundRect(image.Rect(x, y, x+w+2*bubblePad, y+h), 14, fill)
			for j, line := range lines {
				c.Text(x+bubblePad, y+bubblePad+j*lh, line, ui.ScaleBody, text)
			}
		}
		y -= bubbleGap
	}
}
