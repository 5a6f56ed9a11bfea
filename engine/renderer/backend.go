package renderer

import "github.com/spaghettifunk/gondola/engine/renderer/metadata"

type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint16) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	PipelineCreate(pipeline *metadata.Pipeline, stages []*metadata.ShaderStageConfig) error
	PipelineDestroy(pipeline *metadata.Pipeline) error
	TextureCreate(pixels []uint8, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture)
	TextureMapAcquireResources(textureMap *metadata.TextureMap) error
	TextureMapReleaseResources(textureMap *metadata.TextureMap)
	CreateGeometry(geometry *metadata.Geometry, config *metadata.GeometryConfig) error
	UpdateGeometry(geometry *metadata.Geometry, config *metadata.GeometryConfig) error
	DestroyGeometry(geometry *metadata.Geometry)
	DrawRenderItem(item *metadata.RenderItem, state *metadata.FrameState) error
	SetRenderMode(mode metadata.RendererDebugViewMode)
}
