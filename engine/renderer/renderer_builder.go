package renderer

import (
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/tarasmobil/taras-mobil/common"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the color shown around the frame while the window is being resized
// and the uploaded frame lags the surface size.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c color.RGBA) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithFrameSampler overrides the sampler used to stretch the frame onto the surface.
// Zero fields fall back to clamp-to-edge addressing with nearest filtering.
//
// Parameters:
//   - s: the sampler configuration
//
// Returns:
//   - RendererBuilderOption: a function that applies the sampler option to a renderer
func WithFrameSampler(s common.SamplerStagingData) RendererBuilderOption {
	return func(r *renderer) {
		r.sampler = common.SamplerStagingData{
			AddressModeU: common.Coalesce(s.AddressModeU, wgpu.AddressModeClampToEdge),
			AddressModeV: common.Coalesce(s.AddressModeV, wgpu.AddressModeClampToEdge),
			MagFilter:    common.Coalesce(s.MagFilter, wgpu.FilterModeNearest),
			MinFilter:    common.Coalesce(s.MinFilter, wgpu.FilterModeNearest),
		}
	}
}
