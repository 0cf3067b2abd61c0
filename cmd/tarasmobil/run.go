package main

import (
	"context"
	"fmt"
	"log"

	"github.com/tarasmobil/taras-mobil/app"
	"github.com/tarasmobil/taras-mobil/assistant"
	"github.com/tarasmobil/taras-mobil/audio"
	"github.com/tarasmobil/taras-mobil/auth"
	"github.com/tarasmobil/taras-mobil/config"
	"github.com/tarasmobil/taras-mobil/detect"
	"github.com/tarasmobil/taras-mobil/engine"
	"github.com/tarasmobil/taras-mobil/engine/raster"
	"github.com/tarasmobil/taras-mobil/engine/renderer"
	"github.com/tarasmobil/taras-mobil/engine/window"
	"github.com/tarasmobil/taras-mobil/theme"
)

// runApp opens the window and blocks until it is closed.
func runApp(ctx context.Context, cfg *config.Config) error {
	as, err := newAssistant(cfg)
	if err != nil {
		return err
	}
	delay, err := cfg.ReplyDelay()
	if err != nil {
		return err
	}

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Printf("[Audio] disabled: %v", err)
	}
	defer sound.Cleanup()
	sound.SetMuted(cfg.Mute)

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	present := renderer.PresentModeVSync
	if cfg.PresentMode == config.PresentUncapped {
		present = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(present),
		renderer.WithForceSoftwareRenderer(cfg.SoftwareAdapter),
	)

	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Profiling),
		engine.WithTickRate(cfg.TickRate),
		engine.WithRenderFrameLimit(cfg.FrameLimit),
		engine.WithWindow(win),
		engine.WithRenderer(r),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := app.NewApp(
		app.WithContext(ctx),
		app.WithSize(win.Width(), win.Height()),
		app.WithTheme(newTheme(cfg)),
		app.WithRasterizer(raster.NewRasterizer(raster.WithWorkers(cfg.RasterWorkers))),
		app.WithAssistant(as),
		app.WithConversationOptions(assistant.WithReplyDelay(delay)),
		app.WithAuthenticator(newAuthenticator(cfg)),
		app.WithDetector(newDetector(cfg)),
		app.WithSound(sound),
		app.WithProfiler(eng.Profiler()),
		app.WithVersion(version),
	)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	eng.SetFrameSource(a)
	eng.SetTickCallback(a.Tick)
	eng.SetResizeCallback(a.Resize)
	app.BindWindow(a, win)

	go func() {
		<-ctx.Done()
		eng.Quit()
	}()

	log.Printf("[App] %s %s started (%dx%d)", cfg.Window.Title, version, win.Width(), win.Height())
	eng.Run()
	return nil
}

func newAssistant(cfg *config.Config) (assistant.Assistant, error) {
	var opts []assistant.AssistantOption
	if len(cfg.Assistant.Rules) > 0 {
		opts = append(opts, assistant.WithRules(cfg.Assistant.Rules))
	}
	if cfg.Assistant.Fallback != "" {
		opts = append(opts, assistant.WithFallback(cfg.Assistant.Fallback))
	}
	as, err := assistant.NewAssistant(opts...)
	if err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}
	return as, nil
}

func newTheme(cfg *config.Config) *theme.Theme {
	t := theme.New(cfg.SystemDark)
	switch cfg.Theme {
	case config.ThemeLight:
		t.SetMode(theme.ModeLight)
	case config.ThemeDark:
		t.SetMode(theme.ModeDark)
	}
	return t
}

func newAuthenticator(cfg *config.Config) auth.Authenticator {
	opts := make([]auth.AuthenticatorOption, 0, len(cfg.Users))
	for _, u := range cfg.Users {
		opts = append(opts, auth.WithUser(u.Username, u.PasswordHash))
	}
	return auth.NewAuthenticator(opts...)
}

func newDetector(cfg *config.Config) detect.Detector {
	granted := cfg.CameraPermission != config.PermissionDeny
	return detect.NewDetector(detect.WithProvider(detect.StaticPermission(granted)))
}
