package app

import "github.com/tarasmobil/taras-mobil/engine/window"

// BindWindow routes the window's input callbacks to the app. Call it once during setup.
func BindWindow(a App, w window.Window) {
	w.SetPointerDownCallback(a.PointerDown)
	w.SetPointerMoveCallback(a.PointerMove)
	w.SetPointerUpCallback(a.PointerUp)
	w.SetPointerLeaveCallback(a.PointerLeave)
	w.SetKeyDownCallback(a.KeyDown)
	w.SetCharCallback(a.Char)
	w.SetScrollCallback(a.Scroll)
}
