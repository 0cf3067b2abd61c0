package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/tarasmobil/taras-mobil/common"
)

const (
	frameTextureBinding = 0
	frameSamplerBinding = 1
)

// ErrNoFrame is returned by UploadFrame when the staging data carries no pixels.
var ErrNoFrame = errors.New("frame has no pixel data")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)

	// Present pipeline state, built once the surface format is known.
	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler

	// Frame texture state, recreated when the uploaded frame changes size.
	frameTexture     *wgpu.Texture
	frameTextureView *wgpu.TextureView
	frameBindGroup   *wgpu.BindGroup
	frameWidth       uint32
	frameHeight      uint32

	// Swapchain state held between DrawFrame and Present.
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface

	// ConfigureSurface is a wrapper for boilerplate logic required when calling Configure on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterPresentPipeline creates the shader module, bind group layout, sampler and render
	// pipeline used to draw the frame texture. ConfigureSurface must have been called first so the
	// surface format is known.
	//
	// Parameters:
	//   - sampler: the sampler configuration used to read the frame texture
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterPresentPipeline(sampler common.SamplerStagingData) error

	// UploadFrame copies the frame pixels into the frame texture, recreating the texture and its
	// bind group when the frame size changed since the last upload.
	//
	// Parameters:
	//   - frame: tightly packed RGBA pixels and their dimensions
	//
	// Returns:
	//   - error: an error if the frame is empty or the texture could not be created
	UploadFrame(frame common.TextureStagingData) error

	// DrawFrame acquires the next swapchain texture, clears it and draws the frame texture over it.
	// Must be paired with Present.
	//
	// Parameters:
	//   - clear: the clear color used before drawing
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired or the commands could not be encoded
	DrawFrame(clear wgpu.Color) error

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after DrawFrame.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if b.surfaceFormat == nil {
		// The pipeline targets this format, so it is fixed after the first configure.
		b.surfaceFormat = &capabilities.Formats[0]
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = wgpuPresentMode(mode)
}

func (b *wgpuRendererBackendImpl) RegisterPresentPipeline(samplerData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering the present pipeline")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Present Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: presentShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create present shader module: %w", err)
	}

	layoutDesc := wgpu.BindGroupLayoutDescriptor{
		Label: "Present Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: frameTextureBinding, Visibility: wgpu.ShaderStageFragment},
			{Binding: frameSamplerBinding, Visibility: wgpu.ShaderStageFragment},
		},
	}
	layoutDesc.Entries[0].Texture.SampleType = wgpu.TextureSampleTypeFloat
	layoutDesc.Entries[0].Texture.ViewDimension = wgpu.TextureViewDimension2D
	layoutDesc.Entries[1].Sampler.Type = wgpu.SamplerBindingTypeFiltering

	layout, err := b.device.CreateBindGroupLayout(&layoutDesc)
	if err != nil {
		return fmt.Errorf("failed to create present bind group layout: %w", err)
	}
	b.bindGroupLayout = layout

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Present Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("failed to create present pipeline layout: %w", err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Present Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create present render pipeline: %w", err)
	}
	b.pipeline = created

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Frame Sampler",
		AddressModeU:  samplerData.AddressModeU,
		AddressModeV:  samplerData.AddressModeV,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     samplerData.MagFilter,
		MinFilter:     samplerData.MinFilter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame sampler: %w", err)
	}
	b.sampler = samp

	return nil
}

func (b *wgpuRendererBackendImpl) UploadFrame(frame common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(frame.Pixels) == 0 || frame.Width == 0 || frame.Height == 0 {
		return ErrNoFrame
	}
	if uint32(len(frame.Pixels)) < frame.Width*frame.Height*4 {
		return fmt.Errorf("frame has %d bytes, want %d", len(frame.Pixels), frame.Width*frame.Height*4)
	}

	if b.frameTexture == nil || b.frameWidth != frame.Width || b.frameHeight != frame.Height {
		if err := b.recreateFrameTexture(frame.Width, frame.Height); err != nil {
			return err
		}
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  b.frameTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		frame.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  frame.Width * 4,
			RowsPerImage: frame.Height,
		},
		&wgpu.Extent3D{
			Width:              frame.Width,
			Height:             frame.Height,
			DepthOrArrayLayers: 1,
		},
	)

	return nil
}

// recreateFrameTexture replaces the frame texture, its view and the bind group that samples it.
// Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) recreateFrameTexture(width, height uint32) error {
	if b.bindGroupLayout == nil || b.sampler == nil {
		return errors.New("present pipeline is not registered")
	}
	b.releaseFrameTexture()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "Frame Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame texture: %w", err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create frame texture view: %w", err)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: frameTextureBinding, TextureView: view},
			{Binding: frameSamplerBinding, Sampler: b.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return fmt.Errorf("failed to create frame bind group: %w", err)
	}

	b.frameTexture = tex
	b.frameTextureView = view
	b.frameBindGroup = bindGroup
	b.frameWidth = width
	b.frameHeight = height
	return nil
}

// releaseFrameTexture frees the frame texture objects. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseFrameTexture() {
	if b.frameBindGroup != nil {
		b.frameBindGroup.Release()
		b.frameBindGroup = nil
	}
	if b.frameTextureView != nil {
		b.frameTextureView.Release()
		b.frameTextureView = nil
	}
	if b.frameTexture != nil {
		b.frameTexture.Release()
		b.frameTexture = nil
	}
	b.frameWidth, b.frameHeight = 0, 0
}

func (b *wgpuRendererBackendImpl) DrawFrame(clear wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A previous frame's surface texture still held means Present was skipped; acquiring
	// another one would fail validation with "Surface image is already acquired".
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	if b.pipeline != nil && b.frameBindGroup != nil {
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, b.frameBindGroup, nil)
		pass.Draw(3, 1, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameTexture()
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Instance() *wgpu.Instance {
	return b.instance
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}
