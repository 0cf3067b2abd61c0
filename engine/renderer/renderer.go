package renderer

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/tarasmobil/taras-mobil/common"
	"github.com/tarasmobil/taras-mobil/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clearColor color.RGBA
	sampler    common.SamplerStagingData

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer presents CPU-composited frames through the GPU.
//
// Every frame is drawn on the CPU into an RGBA image; the Renderer uploads that image into a
// texture and draws it over the whole surface with a single fullscreen triangle.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface at the given size.
	//
	// Parameters:
	//   - mode: the PresentMode to switch to
	//   - width: current surface width in pixels
	//   - height: current surface height in pixels
	SetPresentMode(mode PresentMode, width, height int)

	// Render uploads img and presents it. The image must be tightly packed RGBA.
	//
	// Parameters:
	//   - img: the composited frame
	//
	// Returns:
	//   - error: an error if the frame could not be uploaded or the swapchain texture could not be acquired
	Render(img *image.RGBA) error

	// Release frees all GPU resources. The Renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
// Panics if the GPU adapter or device cannot be acquired, or the present pipeline cannot be built.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window whose surface the frames are presented to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  color.RGBA{R: 26, G: 26, B: 26, A: 255},
	}
	WithFrameSampler(common.SamplerStagingData{})(r)

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
		log.Printf("[Renderer] present mode: %s", *r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	if err := r.backend.RegisterPresentPipeline(r.sampler); err != nil {
		panic(fmt.Errorf("failed to register present pipeline: %w", err))
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode, width, height int) {
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Render(img *image.RGBA) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staging, err := common.NewTextureStagingData(img)
	if err != nil {
		return fmt.Errorf("invalid frame: %w", err)
	}
	if err := r.backend.UploadFrame(staging); err != nil {
		return fmt.Errorf("failed to upload frame: %w", err)
	}
	if err := r.backend.DrawFrame(clearValue(r.clearColor)); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}

// clearValue converts an 8-bit color into the normalized wgpu clear color.
func clearValue(c color.RGBA) wgpu.Color {
	return wgpu.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}
