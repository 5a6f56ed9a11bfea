package renderer

import (
	"sync"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/platform"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/renderer/opengl"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
	Vulkan
	DirectX
	Metal
)

type Renderer struct {
	backend RendererBackend
}

var initRenderer sync.Once
var renderer *Renderer

func Initialize(config *metadata.RendererBackendConfig, appWidth, appHeight uint32, platform *platform.Platform) error {
	initRenderer.Do(func() {
		renderer = &Renderer{
			backend: opengl.New(platform),
		}
	})
	return renderer.backend.Initialize(config, appWidth, appHeight)
}

func Shutdown() error {
	return renderer.backend.Shutdown()
}

func BeginFrame(deltaTime float64) error {
	return renderer.backend.BeginFrame(deltaTime)
}

func EndFrame(deltaTime float64) error {
	return renderer.backend.EndFrame(deltaTime)
}

func OnResize(width, height uint16) error {
	return renderer.backend.Resized(width, height)
}

// DrawFrame renders a complete frame: it clears the framebuffer, draws
// every item of every view packet in packet order and presents the
// result. A failing draw aborts the frame.
func DrawFrame(renderPacket *metadata.RenderPacket) error {
	if err := BeginFrame(renderPacket.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}

	for _, vp := range renderPacket.ViewPackets {
		vp.State.DeltaTime = renderPacket.DeltaTime
		for _, item := range vp.Items {
			if err := renderer.backend.DrawRenderItem(item, vp.State); err != nil {
				core.LogError("failed to draw item %s in view %s: %s", item.Name, vp.View.Name, err.Error())
				return err
			}
		}
	}

	if err := EndFrame(renderPacket.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

func PipelineCreate(pipeline *metadata.Pipeline, stages []*metadata.ShaderStageConfig) error {
	return renderer.backend.PipelineCreate(pipeline, stages)
}

func PipelineDestroy(pipeline *metadata.Pipeline) error {
	return renderer.backend.PipelineDestroy(pipeline)
}

func TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	return renderer.backend.TextureCreate(pixels, texture)
}

func TextureDestroy(texture *metadata.Texture) {
	renderer.backend.TextureDestroy(texture)
}

func TextureMapAcquireResources(textureMap *metadata.TextureMap) error {
	return renderer.backend.TextureMapAcquireResources(textureMap)
}

func TextureMapReleaseResources(textureMap *metadata.TextureMap) {
	renderer.backend.TextureMapReleaseResources(textureMap)
}

func CreateGeometry(geometry *metadata.Geometry, config *metadata.GeometryConfig) error {
	return renderer.backend.CreateGeometry(geometry, config)
}

func UpdateGeometry(geometry *metadata.Geometry, config *metadata.GeometryConfig) error {
	return renderer.backend.UpdateGeometry(geometry, config)
}

func DestroyGeometry(geometry *metadata.Geometry) {
	renderer.backend.DestroyGeometry(geometry)
}

func DrawRenderItem(item *metadata.RenderItem, state *metadata.FrameState) error {
	return renderer.backend.DrawRenderItem(item, state)
}

func SetRenderMode(mode metadata.RendererDebugViewMode) {
	renderer.backend.SetRenderMode(mode)
}
