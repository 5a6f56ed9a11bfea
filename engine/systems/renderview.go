package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

/** @brief The configuration for the render view system. */
type RenderViewSystemConfig struct {
	/** @brief The maximum number of views that can be registered with the system. */
	MaxViewCount uint16
}

type RenderViewSystem struct {
	Lookup          map[string]uint16
	MaxViewCount    uint32
	RegisteredViews []*metadata.RenderView
	// subsystems
	shaderSystem *ShaderSystem
	cameraSystem *CameraSystem
}

func NewRenderViewSystem(config RenderViewSystemConfig, ss *ShaderSystem, cs *CameraSystem) (*RenderViewSystem, error) {
	if config.MaxViewCount == 0 {
		err := fmt.Errorf("func NewRenderViewSystem - config.MaxViewCount must be > 0")
		return nil, err
	}
	rvs := &RenderViewSystem{
		MaxViewCount:    uint32(config.MaxViewCount),
		Lookup:          make(map[string]uint16, config.MaxViewCount),
		RegisteredViews: make([]*metadata.RenderView, config.MaxViewCount),
		shaderSystem:    ss,
		cameraSystem:    cs,
	}
	// Fill the array with invalid entries.
	for i := uint32(0); i < rvs.MaxViewCount; i++ {
		rvs.RegisteredViews[i] = &metadata.RenderView{
			ID: metadata.InvalidIDUint16,
		}
	}
	return rvs, nil
}

func (rvs *RenderViewSystem) Shutdown() error {
	// The ui pipeline is owned by the shader system and destroyed there.
	for i := uint32(0); i < rvs.MaxViewCount; i++ {
		view := rvs.RegisteredViews[i]
		if view.ID != metadata.InvalidIDUint16 {
			view.ID = metadata.InvalidIDUint16
			view.InternalData = nil
		}
	}
	return nil
}

func (rvs *RenderViewSystem) Create(config *metadata.RenderViewConfig) error {
	if config == nil {
		err := fmt.Errorf("render view creation requires a pointer to a valid config")
		return err
	}

	if config.Name == "" {
		err := fmt.Errorf("render view creation: name is required")
		return err
	}

	// Make sure there is not already an entry with this name already registered.
	id, ok := rvs.Lookup[config.Name]
	if ok && id != metadata.InvalidIDUint16 {
		err := fmt.Errorf("a view named '%s' already exists. A new one will not be created", config.Name)
		return err
	}

	// Find a new id.
	id = metadata.InvalidIDUint16
	for i := uint32(0); i < rvs.MaxViewCount; i++ {
		if rvs.RegisteredViews[i].ID == metadata.InvalidIDUint16 {
			id = uint16(i)
			break
		}
	}

	// Make sure a valid entry was found.
	if id == metadata.InvalidIDUint16 {
		err := fmt.Errorf("no available space for a new view. Change system config to account for more")
		return err
	}

	view := rvs.RegisteredViews[id]
	view.ID = id
	view.RenderViewType = config.RenderViewType
	view.Name = config.Name

	switch config.RenderViewType {
	case metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD:
		if err := rvs.worldOnCreate(view); err != nil {
			return err
		}
	case metadata.RENDERER_VIEW_KNOWN_TYPE_UI:
		if err := rvs.uiOnCreate(view); err != nil {
			return err
		}
	default:
		err := fmt.Errorf("not a valid render view type")
		return err
	}

	// Update the hashtable entry.
	rvs.Lookup[config.Name] = id

	return nil
}

/**
 * @brief Called when the owner of this view (i.e. the window) is resized.
 * Projection matrices are rebuilt for the new aspect ratio.
 */
func (rvs *RenderViewSystem) OnWindowResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	// Send to all views
	for i := uint32(0); i < rvs.MaxViewCount; i++ {
		view := rvs.RegisteredViews[i]
		if view.ID == metadata.InvalidIDUint16 {
			continue
		}
		if width == uint32(view.Width) && height == uint32(view.Height) {
			continue
		}
		view.Width = uint16(width)
		view.Height = uint16(height)

		switch view.RenderViewType {
		case metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD:
			vw := view.InternalData.(*metadata.RenderViewWorld)
			aspect := float32(width) / float32(height)
			vw.ProjectionMatrix = mgl32.Perspective(vw.FOV, aspect, vw.NearClip, vw.FarClip)
		case metadata.RENDERER_VIEW_KNOWN_TYPE_UI:
			vu := view.InternalData.(*metadata.RenderViewUI)
			vu.ProjectionMatrix = mgl32.Ortho(0.0, float32(width), float32(height), 0.0, vu.NearClip, vu.FarClip)
		default:
			core.LogError("renderview type with value %d does not exist. Skip", view.RenderViewType)
			continue
		}
	}
}

/**
 * @brief Obtains a pointer to a view with the given name.
 *
 * @param name The name of the view.
 * @return A pointer to a view if found; otherwise nil.
 */
func (rvs *RenderViewSystem) Get(name string) *metadata.RenderView {
	if id, ok := rvs.Lookup[name]; ok && id != metadata.InvalidIDUint16 {
		return rvs.RegisteredViews[id]
	}
	return nil
}

/**
 * @brief Builds a render view packet using the provided view and scene data.
 *
 * @param view A pointer to the view to use.
 * @param data Freeform data used to build the packet.
 * @return A pointer to the generated packet.
 */
func (rvs *RenderViewSystem) BuildPacket(view *metadata.RenderView, data interface{}) (*metadata.RenderViewPacket, error) {
	if view == nil {
		err := fmt.Errorf("packet building requires a valid pointer to a view")
		return nil, err
	}
	switch view.RenderViewType {
	case metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD:
		return rvs.worldOnBuildPacket(view, data)
	case metadata.RENDERER_VIEW_KNOWN_TYPE_UI:
		return rvs.uiOnBuildPacket(view, data)
	default:
		err := fmt.Errorf("invalid renderview type")
		return nil, err
	}
}

/* WORLD */
func (rvs *RenderViewSystem) worldOnCreate(view *metadata.RenderView) error {
	rvw := &metadata.RenderViewWorld{
		WorldCamera: rvs.cameraSystem.GetDefault(),
		// TODO: Set from configuration.
		NearClip:  0.001,
		FarClip:   1000.0,
		FOV:       mgl32.DegToRad(45.0),
		InnerTess: 16.0,
		OuterTess: 16.0,
	}

	// Default until the first resize arrives.
	rvw.ProjectionMatrix = mgl32.Perspective(rvw.FOV, 1280/720.0, rvw.NearClip, rvw.FarClip)

	// Listen for mode changes.
	core.EventRegister(core.EVENT_CODE_SET_RENDER_MODE, rvs.onSetRenderMode)

	view.InternalData = rvw

	return nil
}

func (rvs *RenderViewSystem) worldOnBuildPacket(view *metadata.RenderView, data interface{}) (*metadata.RenderViewPacket, error) {
	worldData, ok := data.(*metadata.WorldPacketData)
	if !ok {
		err := fmt.Errorf("world view packets are built from WorldPacketData")
		return nil, err
	}
	rvw := view.InternalData.(*metadata.RenderViewWorld)

	state := &metadata.FrameState{
		Time:           worldData.Time,
		View:           rvw.WorldCamera.GetView(),
		Projection:     rvw.ProjectionMatrix,
		CameraPosition: rvw.WorldCamera.GetPosition(),
		LightDirection: worldData.LightDirection,
		InnerTess:      rvw.InnerTess,
		OuterTess:      rvw.OuterTess,
	}

	// Items keep the order the scene submitted them in. The water surface
	// comes first so everything above it depth-tests against it.
	return &metadata.RenderViewPacket{
		View:  view,
		State: state,
		Items: worldData.Items,
	}, nil
}

// onSetRenderMode forwards debug view mode changes to every world view
// and to the backend, which flips its polygon mode accordingly.
func (rvs *RenderViewSystem) onSetRenderMode(context core.EventContext) {
	if context.Type != core.EVENT_CODE_SET_RENDER_MODE {
		return
	}
	for i := uint32(0); i < rvs.MaxViewCount; i++ {
		view := rvs.RegisteredViews[i]
		if view.ID == metadata.InvalidIDUint16 || view.RenderViewType != metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD {
			continue
		}
		rvw := view.InternalData.(*metadata.RenderViewWorld)
		rvw.OnSetRenderMode(context)
		renderer.SetRenderMode(rvw.RenderMode)
	}
}

/* UI */
func (rvs *RenderViewSystem) uiOnCreate(view *metadata.RenderView) error {
	pipeline, err := rvs.shaderSystem.CreatePipeline(&metadata.PipelineConfig{
		Name:             "Pipeline.Builtin.Text",
		CullMode:         metadata.FaceCullModeNone,
		DepthTestEnabled: false,
		BlendEnabled:     true,
		StageFilenames:   []string{"text.vert", "text.frag"},
	})
	if err != nil {
		core.LogError("failed to create the text pipeline for the ui view")
		return err
	}

	rvui := &metadata.RenderViewUI{
		// TODO: Set from configuration.
		NearClip:   -100.0,
		FarClip:    100.0,
		ViewMatrix: mgl32.Ident4(),
		Pipeline:   pipeline,
	}

	// Default until the first resize arrives.
	rvui.ProjectionMatrix = mgl32.Ortho(0.0, 1280.0, 720.0, 0.0, rvui.NearClip, rvui.FarClip)

	view.InternalData = rvui

	return nil
}

func (rvs *RenderViewSystem) uiOnBuildPacket(view *metadata.RenderView, data interface{}) (*metadata.RenderViewPacket, error) {
	packetData, ok := data.(*metadata.UIPacketData)
	if !ok {
		err := fmt.Errorf("ui view packets are built from UIPacketData")
		return nil, err
	}
	rvui := view.InternalData.(*metadata.RenderViewUI)

	state := &metadata.FrameState{
		View:       rvui.ViewMatrix,
		Projection: rvui.ProjectionMatrix,
	}

	outPacket := &metadata.RenderViewPacket{
		View:         view,
		State:        state,
		Items:        make([]*metadata.RenderItem, 0, len(packetData.Texts)),
		ExtendedData: packetData,
	}

	// One item per text object, drawn with the shared text pipeline and
	// the font's own atlas.
	for _, text := range packetData.Texts {
		if text == nil || text.Geometry == nil || text.Data == nil {
			continue
		}
		outPacket.Items = append(outPacket.Items, &metadata.RenderItem{
			UniqueID:      text.UniqueID,
			Name:          fmt.Sprintf("text_%d", text.UniqueID),
			Geometry:      text.Geometry,
			Pipeline:      rvui.Pipeline,
			Textures:      []*metadata.TextureMap{text.Data.Atlas},
			SamplerNames:  []string{"textureImage"},
			Model:         mgl32.Translate3D(text.Position.X(), text.Position.Y(), text.Position.Z()),
			DiffuseColour: text.Colour,
		})
	}

	return outPacket, nil
}
