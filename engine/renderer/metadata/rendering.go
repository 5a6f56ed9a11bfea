package metadata

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	InvalidIDUint64 uint64 = 18446744073709551615
	InvalidID       uint32 = 4294967295
	InvalidIDUint16 uint16 = 65535
)

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

type RendererDebugViewMode uint32

const (
	RENDERER_VIEW_MODE_DEFAULT   RendererDebugViewMode = 0
	RENDERER_VIEW_MODE_WIREFRAME RendererDebugViewMode = 1
)

type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief The colour the framebuffer is cleared to each frame. */
	ClearColour mgl32.Vec4
}

/**
 * @brief Per-frame state threaded through every draw call. Built once
 * per view per frame so that no draw depends on hidden globals.
 */
type FrameState struct {
	/** @brief Wall-clock time since the previous frame, in seconds. */
	DeltaTime float64
	/** @brief Simulation time driving wave animation. Advances a fixed step per frame. */
	Time float32
	/** @brief The view matrix for this frame. */
	View mgl32.Mat4
	/** @brief The projection matrix for this frame. */
	Projection mgl32.Mat4
	/** @brief The camera position in world space. */
	CameraPosition mgl32.Vec3
	/** @brief The direction of the scene's light source. */
	LightDirection mgl32.Vec3
	/** @brief Inner tessellation level for surfaces drawn as patches. */
	InnerTess float32
	/** @brief Outer tessellation level for surfaces drawn as patches. */
	OuterTess float32
}

/**
 * @brief A single renderable unit. Carries everything the backend needs
 * to execute one draw: the geometry, the shader program, the textures
 * with the sampler uniform each one binds to, and per-item parameters.
 */
type RenderItem struct {
	/** @brief The unique identifier of the renderable. */
	UniqueID uint32
	/** @brief The item Name, used for logging. */
	Name string
	/** @brief The Geometry to draw. */
	Geometry *Geometry
	/** @brief The shader Pipeline this item is drawn with. */
	Pipeline *Pipeline
	/** @brief Texture maps bound in unit order. */
	Textures []*TextureMap
	/** @brief Sampler uniform names, aligned with Textures. */
	SamplerNames []string
	/** @brief The Model matrix. */
	Model mgl32.Mat4
	/** @brief A flat colour available to shaders that declare one. */
	DiffuseColour mgl32.Vec4
	/** @brief Wave parameters for items with a displaced surface, nil otherwise. */
	Waves *WaveSet
}

/**
 * @brief A structure which is generated by the application and sent once
 * to the renderer to render a given frame. Consists of any data required,
 * such as delta time and a collection of views to be rendered.
 */
type RenderPacket struct {
	DeltaTime float64
	/** An array of ViewPackets to be rendered. */
	ViewPackets []*RenderViewPacket
}

/** @brief Known render view types, which have logic associated with them. */
type RenderViewKnownType int

const (
	/** @brief A view which renders the world scene. */
	RENDERER_VIEW_KNOWN_TYPE_WORLD RenderViewKnownType = 0x01
	/** @brief A view which only renders ui objects. */
	RENDERER_VIEW_KNOWN_TYPE_UI RenderViewKnownType = 0x02
)

/**
 * @brief The configuration of a render view.
 * Used as a serialization target.
 */
type RenderViewConfig struct {
	/** @brief The Name of the view. */
	Name string
	/** @brief The Width of the view. Set to 0 for 100% Width. */
	Width uint16
	/** @brief The Height of the view. Set to 0 for 100% Height. */
	Height uint16
	/** @brief The known type of the view. Used to associate with view logic. */
	RenderViewType RenderViewKnownType
}

/**
 * @brief A render view instance, responsible for the generation
 * of view packets based on internal logic and given config.
 */
type RenderView struct {
	/** @brief The unique identifier of this view. */
	ID uint16
	/** @brief The Name of the view. */
	Name string
	/** @brief The current Width of this view. */
	Width uint16
	/** @brief The current Height of this view. */
	Height uint16
	/** @brief The known type of this view. */
	RenderViewType RenderViewKnownType
	/** @brief The internal, view-specific data for this view. */
	InternalData interface{}
}

/**
 * @brief A packet for and generated by a render view, which contains
 * data about what is to be rendered.
 */
type RenderViewPacket struct {
	/** @brief A constant pointer to the View this packet is associated with. */
	View *RenderView
	/** @brief The per-frame state the view's items are drawn with. */
	State *FrameState
	/** @brief The items to be drawn, in draw order. */
	Items []*RenderItem
	/** @brief Holds a pointer to freeform data, typically understood both by the object and consuming view. */
	ExtendedData interface{}
}

/** @brief Scene data handed to the world view when building its packet. */
type WorldPacketData struct {
	/** @brief Simulation time driving wave animation. */
	Time float32
	/** @brief The direction of the scene's light source. */
	LightDirection mgl32.Vec3
	/** @brief The renderables of the scene, in draw order. */
	Items []*RenderItem
}

/** @brief Text data handed to the ui view when building its packet. */
type UIPacketData struct {
	Texts []*UIText
}
