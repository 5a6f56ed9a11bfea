package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

/**
 * @brief The GL handle of an uploaded texture.
 */
type OpenGLTexture struct {
	Handle uint32
}

/**
 * @brief A GL sampler object configured from a texture map.
 */
type OpenGLSampler struct {
	Handle uint32
}

// TextureCreate uploads the pixel data described by the texture. Channel
// order and internal format follow the source: bitmap files carry BGR(A)
// bytes bottom-up, generated atlases carry straight RGBA.
func (vr *OpenGLRenderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	if len(pixels) == 0 {
		return fmt.Errorf("texture %s has no pixel data", texture.Name)
	}

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)

	bgr := texture.Flags.Has(metadata.TextureFlagSourceBGR)

	var internalFormat int32
	var format uint32
	switch {
	case texture.ChannelCount == 4 && bgr:
		internalFormat, format = gl.RGBA32F, gl.BGRA
	case texture.ChannelCount == 4:
		internalFormat, format = gl.RGBA, gl.RGBA
	case bgr:
		internalFormat, format = gl.RGB, gl.BGR
	default:
		internalFormat, format = gl.RGB, gl.RGB
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat,
		int32(texture.Width), int32(texture.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	if texture.Flags.Has(metadata.TextureFlagHasMipmaps) {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)

	texture.InternalData = &OpenGLTexture{Handle: handle}
	return nil
}

func (vr *OpenGLRenderer) TextureDestroy(texture *metadata.Texture) {
	if internal, ok := texture.InternalData.(*OpenGLTexture); ok && internal != nil {
		gl.DeleteTextures(1, &internal.Handle)
	}
	texture.InternalData = nil
}

// TextureMapAcquireResources creates the sampler object for the map. The
// minification filter picks its mipmapped variant when the mapped texture
// carries mipmaps.
func (vr *OpenGLRenderer) TextureMapAcquireResources(textureMap *metadata.TextureMap) error {
	var handle uint32
	gl.GenSamplers(1, &handle)

	mipmapped := textureMap.Texture != nil && textureMap.Texture.Flags.Has(metadata.TextureFlagHasMipmaps)

	gl.SamplerParameteri(handle, gl.TEXTURE_MIN_FILTER, convertFilter(textureMap.FilterMinify, mipmapped))
	gl.SamplerParameteri(handle, gl.TEXTURE_MAG_FILTER, convertFilter(textureMap.FilterMagnify, false))
	gl.SamplerParameteri(handle, gl.TEXTURE_WRAP_S, convertRepeat(textureMap.RepeatU))
	gl.SamplerParameteri(handle, gl.TEXTURE_WRAP_T, convertRepeat(textureMap.RepeatV))

	textureMap.InternalData = &OpenGLSampler{Handle: handle}
	return nil
}

func (vr *OpenGLRenderer) TextureMapReleaseResources(textureMap *metadata.TextureMap) {
	if internal, ok := textureMap.InternalData.(*OpenGLSampler); ok && internal != nil {
		gl.DeleteSamplers(1, &internal.Handle)
	}
	textureMap.InternalData = nil
}

func convertFilter(filter metadata.TextureFilter, mipmapped bool) int32 {
	switch {
	case filter == metadata.TextureFilterModeNearest && mipmapped:
		return gl.NEAREST_MIPMAP_NEAREST
	case filter == metadata.TextureFilterModeNearest:
		return gl.NEAREST
	case mipmapped:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}

func convertRepeat(repeat metadata.TextureRepeat) int32 {
	switch repeat {
	case metadata.TextureRepeatMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case metadata.TextureRepeatClampToEdge:
		return gl.CLAMP_TO_EDGE
	case metadata.TextureRepeatClampToBorder:
		return gl.CLAMP_TO_BORDER
	default:
		return gl.REPEAT
	}
}
