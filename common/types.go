// package common contains common types that are used throughout this application. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// The renderer uploads the composited frame through this every rendered frame.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// NewTextureStagingData wraps an RGBA image as staging data without copying its pixels.
// The image must be tightly packed (Stride == 4*width), which is what image.NewRGBA produces.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - TextureStagingData: staging data sharing img's pixel slice
//   - error: error if the image is nil, empty, or not tightly packed
func NewTextureStagingData(img *image.RGBA) (TextureStagingData, error) {
	if img == nil {
		return TextureStagingData{}, fmt.Errorf("image is nil")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return TextureStagingData{}, fmt.Errorf("image has empty bounds %v", b)
	}
	if img.Stride != 4*b.Dx() {
		return TextureStagingData{}, fmt.Errorf("image stride %d is not tightly packed for width %d", img.Stride, b.Dx())
	}
	return TextureStagingData{
		Pixels: img.Pix,
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}, nil
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero values are replaced with defaults by the renderer.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
}
