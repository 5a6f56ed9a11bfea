package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/components"
)

type RenderViewWorld struct {
	FOV              float32
	NearClip         float32
	FarClip          float32
	ProjectionMatrix mgl32.Mat4
	WorldCamera      *components.Camera
	// Tessellation levels applied to surfaces drawn as patches.
	InnerTess float32
	OuterTess float32

	RenderMode RendererDebugViewMode
}

func (vw *RenderViewWorld) OnSetRenderMode(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_SET_RENDER_MODE:
		{
			mode := context.Data.(RendererDebugViewMode)
			switch mode {
			default:
				fallthrough
			case RENDERER_VIEW_MODE_DEFAULT:
				core.LogDebug("renderer mode set to default")
				vw.RenderMode = RENDERER_VIEW_MODE_DEFAULT
			case RENDERER_VIEW_MODE_WIREFRAME:
				core.LogDebug("renderer mode set to wireframe")
				vw.RenderMode = RENDERER_VIEW_MODE_WIREFRAME
			}
		}
	}
}

type RenderViewUI struct {
	NearClip         float32
	FarClip          float32
	ProjectionMatrix mgl32.Mat4
	ViewMatrix       mgl32.Mat4
	// The pipeline every text item is drawn with.
	Pipeline *Pipeline
}
