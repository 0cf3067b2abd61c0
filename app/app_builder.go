package app

import (
	"context"
	"time"

	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/auth"
	"github.com/tarasmobil/taras-mobil/detect"
	"github.com/tarasmobil/taras-mobil/engine/camera"
	"github.com/tarasmobil/taras-mobil/engine/profiler"
	"github.com/tarasmobil/taras-mobil/engine/raster"
	"github.com/tarasmobil/taras-mobil/engine/rotation"
	"github.com/tarasmobil/taras-mobil/router"
	"github.com/tarasmobil/taras-mobil/theme"
)

// AppOption configures the app during creation.
type AppOption func(*appImpl)

// WithTheme sets the shared theme.
func WithTheme(t *theme.Theme) AppOption {
	return func(a *appImpl) {
		a.theme = t
	}
}

// WithRouter sets the screen router.
func WithRouter(r router.Router) AppOption {
	return func(a *appImpl) {
		a.router = r
	}
}

// WithRotation sets the controller that drives the field on Home.
func WithRotation(c rotation.Controller) AppOption {
	return func(a *appImpl) {
		a.rotation = c
	}
}

// WithRasterizer sets the rasterizer used for the field.
func WithRasterizer(r raster.Rasterizer) AppOption {
	return func(a *appImpl) {
		a.rasterizer = r
	}
}

// WithCamera replaces the default camera looking down at the field.
func WithCamera(c camera.Camera) AppOption {
	return func(a *appImpl) {
		a.camera = c
	}
}

// WithMesh replaces the default field slab.
func WithMesh(m raster.Mesh) AppOption {
	return func(a *appImpl) {
		a.mesh = m
	}
}

// WithAssistant sets the chat assistant.
func WithAssistant(as assistant.Assistant) AppOption {
	return func(a *appImpl) {
		a.assistant = as
	}
}

// WithConversationOptions passes options to the chat conversation.
func WithConversationOptions(options ...assistant.ConversationOption) AppOption {
	return func(a *appImpl) {
		a.convOpts = append(a.convOpts, options...)
	}
}

// WithAuthenticator sets the login backend.
func WithAuthenticator(au auth.Authenticator) AppOption {
	return func(a *appImpl) {
		a.auth = au
	}
}

// WithDetector sets the disease detector.
func WithDetector(d detect.Detector) AppOption {
	return func(a *appImpl) {
		a.detector = d
	}
}

// WithSound sets the feedback sound player.
func WithSound(s SoundPlayer) AppOption {
	return func(a *appImpl) {
		a.sound = s
	}
}

// WithProfiler sets the profiler shown by the F1 overlay.
func WithProfiler(p *profiler.Profiler) AppOption {
	return func(a *appImpl) {
		a.profiler = p
	}
}

// WithContext sets the context for background work such as permission requests.
func WithContext(ctx context.Context) AppOption {
	return func(a *appImpl) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

// WithClock overrides the time source for the chat.
func WithClock(now func() time.Time) AppOption {
	return func(a *appImpl) {
		if now != nil {
			a.now = now
		}
	}
}

// WithVersion sets the version shown on the Settings screen.
func WithVersion(v string) AppOption {
	return func(a *appImpl) {
		a.version = v
	}
}

// WithSize sets the initial framebuffer size.
func WithSize(width, height int) AppOption {
	return func(a *appImpl) {
		if width > 0 && height > 0 {
			a.width, a.height = width, height
		}
	}
}
