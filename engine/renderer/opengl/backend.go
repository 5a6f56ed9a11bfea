package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/platform"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

/**
 * @brief Global renderer state for the OpenGL backend.
 */
type OpenGLContext struct {
	/** @brief The framebuffer's current width. */
	FramebufferWidth uint32
	/** @brief The framebuffer's current height. */
	FramebufferHeight uint32
	/** @brief The colour the framebuffer is cleared to each frame. */
	ClearColour mgl32.Vec4
	/** @brief The active debug view mode. */
	RenderMode metadata.RendererDebugViewMode
	/** @brief The uploaded geometries, indexed by internal id. */
	Geometries [OPENGL_MAX_GEOMETRY_COUNT]opengl_geometry_data
}

type OpenGLRenderer struct {
	platform    *platform.Platform
	FrameNumber uint64
	context     *OpenGLContext
}

func New(p *platform.Platform) *OpenGLRenderer {
	return &OpenGLRenderer{
		platform:    p,
		FrameNumber: 0,
		context:     &OpenGLContext{},
	}
}

func (vr *OpenGLRenderer) Initialize(config *metadata.RendererBackendConfig, appWidth, appHeight uint32) error {
	// The GL context is created by the platform layer and must be current
	// on this thread before function pointers can be loaded.
	if err := gl.Init(); err != nil {
		core.LogError("failed to load OpenGL function pointers: %s", err.Error())
		return err
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	core.LogInfo("OpenGL context: %s", version)

	vr.context.FramebufferWidth = appWidth
	vr.context.FramebufferHeight = appHeight
	vr.context.ClearColour = config.ClearColour
	vr.context.RenderMode = metadata.RENDERER_VIEW_MODE_DEFAULT

	for i := uint32(0); i < OPENGL_MAX_GEOMETRY_COUNT; i++ {
		vr.context.Geometries[i].ID = metadata.InvalidID
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	return nil
}

func (vr *OpenGLRenderer) Shutdown() error {
	for i := range vr.context.Geometries {
		gd := &vr.context.Geometries[i]
		if gd.ID != metadata.InvalidID {
			vr.releaseGeometryBuffers(gd)
			gd.ID = metadata.InvalidID
		}
	}
	return nil
}

func (vr *OpenGLRenderer) Resized(width, height uint16) error {
	vr.context.FramebufferWidth = uint32(width)
	vr.context.FramebufferHeight = uint32(height)
	return nil
}

func (vr *OpenGLRenderer) BeginFrame(deltaTime float64) error {
	gl.Viewport(0, 0, int32(vr.context.FramebufferWidth), int32(vr.context.FramebufferHeight))

	cc := vr.context.ClearColour
	gl.ClearColor(cc.X(), cc.Y(), cc.Z(), cc.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if vr.context.RenderMode == metadata.RENDERER_VIEW_MODE_WIREFRAME {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	return nil
}

func (vr *OpenGLRenderer) EndFrame(deltaTime float64) error {
	vr.platform.SwapBuffers()
	vr.FrameNumber++
	return nil
}

func (vr *OpenGLRenderer) SetRenderMode(mode metadata.RendererDebugViewMode) {
	vr.context.RenderMode = mode
}

// DrawRenderItem executes a single draw with every piece of pipeline
// state scoped to the call: program, blend, depth, cull, texture and
// vertex array bindings are all restored before returning, on every
// path. Uniforms a pipeline does not declare are skipped.
func (vr *OpenGLRenderer) DrawRenderItem(item *metadata.RenderItem, state *metadata.FrameState) error {
	if item.Pipeline == nil || item.Pipeline.State != metadata.SHADER_STATE_INITIALIZED {
		return fmt.Errorf("render item %s has no usable pipeline", item.Name)
	}
	if item.Geometry == nil || item.Geometry.InternalID == metadata.InvalidID {
		return fmt.Errorf("render item %s has no uploaded geometry", item.Name)
	}

	internal := item.Pipeline.InternalData.(*OpenGLPipeline)
	gd := &vr.context.Geometries[item.Geometry.InternalID]

	gl.UseProgram(internal.Handle)
	defer gl.UseProgram(0)

	if !item.Pipeline.DepthTestEnabled {
		gl.Disable(gl.DEPTH_TEST)
		defer gl.Enable(gl.DEPTH_TEST)
	}
	if item.Pipeline.BlendEnabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		defer gl.Disable(gl.BLEND)
	}
	if item.Pipeline.CullMode != metadata.FaceCullModeNone {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(convertCullMode(item.Pipeline.CullMode))
		defer gl.Disable(gl.CULL_FACE)
	}

	mvp := state.Projection.Mul4(state.View).Mul4(item.Model)
	internal.SetMat4("MVP", mvp)
	internal.SetFloat("time", state.Time)
	internal.SetVec4("diffuse_colour", item.DiffuseColour)

	if item.Waves != nil {
		internal.SetMat4("V", state.View)
		internal.SetMat4("M", item.Model)
		internal.SetVec3("light_direction", state.LightDirection)
		internal.SetFloat("innerTess", state.InnerTess)
		internal.SetFloat("outerTess", state.OuterTess)
		internal.SetVec2Array("wave_directions", item.Waves.Directions())
		internal.SetFloatArray("wave_amplitudes", item.Waves.Amplitudes())
		internal.SetFloatArray("wave_lengths", item.Waves.Wavelengths())
		internal.SetFloatArray("wave_speeds", item.Waves.Speeds())
		internal.SetFloatArray("wave_steepness", item.Waves.Steepnesses())
	}

	for i, tm := range item.Textures {
		if tm == nil || tm.Texture == nil {
			continue
		}
		texture, ok := tm.Texture.InternalData.(*OpenGLTexture)
		if !ok {
			continue
		}
		unit := uint32(i)
		gl.ActiveTexture(gl.TEXTURE0 + unit)
		gl.BindTexture(gl.TEXTURE_2D, texture.Handle)
		defer func(u uint32) {
			gl.ActiveTexture(gl.TEXTURE0 + u)
			gl.BindTexture(gl.TEXTURE_2D, 0)
		}(unit)

		if sampler, ok := tm.InternalData.(*OpenGLSampler); ok {
			gl.BindSampler(unit, sampler.Handle)
			defer gl.BindSampler(unit, 0)
		}
		if i < len(item.SamplerNames) {
			internal.SetInt(item.SamplerNames[i], int32(i))
		}
	}

	gl.BindVertexArray(gd.VAO)
	defer gl.BindVertexArray(0)

	mode := uint32(gl.TRIANGLES)
	if item.Geometry.PrimitiveMode == metadata.PrimitiveModePatches {
		gl.PatchParameteri(gl.PATCH_VERTICES, item.Geometry.PatchVertices)
		mode = gl.PATCHES
	}
	gl.DrawElements(mode, int32(gd.IndexCount), gl.UNSIGNED_INT, gl.PtrOffset(0))

	return nil
}

func convertCullMode(mode metadata.FaceCullMode) uint32 {
	switch mode {
	case metadata.FaceCullModeFront:
		return gl.FRONT
	case metadata.FaceCullModeFrontAndBack:
		return gl.FRONT_AND_BACK
	default:
		return gl.BACK
	}
}
