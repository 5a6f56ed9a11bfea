package testbed

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/components"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	// Scene clock driving the waves and the boat bob. Advances by a
	// fixed step each frame.
	time float32

	// Zoom rate in units per frame. Grows while a zoom key is held and
	// resets to zero on release.
	zoomRate float32

	renderMode metadata.RendererDebugViewMode

	waves *metadata.WaveSet

	waterItem *metadata.RenderItem
	bodyItem  *metadata.RenderItem
	headItem  *metadata.RenderItem
	eyesItem  *metadata.RenderItem

	hudText *metadata.UIText
}

// Angular change per pixel of mouse drag, in radians.
const dragSensitivity float32 = 0.005

// Zoom rate change per frame while a zoom key is held.
const zoomAcceleration float32 = 0.01

// Radius change per mouse wheel tick.
const wheelZoomStep float32 = 0.25

// Directional light shining down on the scene.
var lightDirection = mgl32.Vec3{5.0, 30.0, 5.0}

func NewTestGame() (*TestGame, error) {
	config, err := engine.LoadApplicationConfig("config.toml")
	if err != nil {
		core.LogWarn("%s, using built-in defaults", err.Error())
		config = &engine.ApplicationConfig{
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1000,
			StartHeight: 800,
			Name:        "Wind Waker",
			LogLevel:    "debug",
			SystemFonts: []engine.SystemFontEntry{
				{Name: "Open Sans", DefaultSize: 20, ResourceName: "OpenSans"},
			},
		}
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg, nil
}

func (g *TestGame) Boot() error {
	core.LogInfo("booting testbed...")

	if err := g.configureRenderViews(g.ApplicationConfig); err != nil {
		core.LogError("failed to configure renderer views. Aborting application")
		return err
	}

	return nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.State.(*gameState)
	state.width = g.ApplicationConfig.StartWidth
	state.height = g.ApplicationConfig.StartHeight
	state.renderMode = metadata.RENDERER_VIEW_MODE_DEFAULT
	state.waves = metadata.NewDefaultWaveSet()

	state.WorldCamera = g.SystemManager.CameraSystem.GetDefault()

	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, g.onMouseWheel)

	if err := g.setupWater(state); err != nil {
		return err
	}
	if err := g.setupBoat(state); err != nil {
		return err
	}
	if err := g.setupHUD(state); err != nil {
		return err
	}

	return nil
}

// setupWater builds the water surface. A flat quad grid is tessellated
// and displaced on the GPU, so the CPU side is just the grid, two
// textures and one pipeline covering all five shader stages.
func (g *TestGame) setupWater(state *gameState) error {
	gridConfig, err := g.SystemManager.GeometrySystem.GenerateGridConfig(-10.0, 10.0, 1.0, "water_surface")
	if err != nil {
		return err
	}
	gridGeometry, err := g.SystemManager.GeometrySystem.AcquireFromConfig(gridConfig, true)
	if err != nil {
		return err
	}

	waterPipeline, err := g.SystemManager.ShaderSystem.CreatePipeline(&metadata.PipelineConfig{
		Name:             "Pipeline.Water",
		CullMode:         metadata.FaceCullModeNone,
		DepthTestEnabled: true,
		BlendEnabled:     true,
		StageFilenames: []string{
			"water.vert",
			"water.tesc",
			"water.tese",
			"water.geom",
			"water.frag",
		},
	})
	if err != nil {
		return err
	}

	waterMap, err := g.acquireDiffuseMap("water")
	if err != nil {
		return err
	}
	displacementMap, err := g.acquireDiffuseMap("displacement-map1")
	if err != nil {
		return err
	}
	displacementMap.Use = metadata.TextureUseMapDisplacement

	state.waterItem = &metadata.RenderItem{
		Name:          "water_surface",
		Geometry:      gridGeometry,
		Pipeline:      waterPipeline,
		Textures:      []*metadata.TextureMap{waterMap, displacementMap},
		SamplerNames:  []string{"waterTexture", "displacementTexture"},
		Model:         mgl32.Ident4(),
		DiffuseColour: mgl32.Vec4{1.0, 1.0, 1.0, 1.0},
		Waves:         state.waves,
	}
	state.waterItem.UniqueID = core.IdentifierAcquireID(state.waterItem)

	return nil
}

// setupBoat loads the three boat meshes. They share one pipeline whose
// geometry stage bobs the vertices up and down, but each part carries
// its own texture.
func (g *TestGame) setupBoat(state *gameState) error {
	boatPipeline, err := g.SystemManager.ShaderSystem.CreatePipeline(&metadata.PipelineConfig{
		Name:             "Pipeline.Boat",
		CullMode:         metadata.FaceCullModeNone,
		DepthTestEnabled: true,
		BlendEnabled:     true,
		StageFilenames: []string{
			"boat.vert",
			"boat.geom",
			"boat.frag",
		},
	})
	if err != nil {
		return err
	}

	parts := []struct {
		resourceName string
		item         **metadata.RenderItem
	}{
		{"boat", &state.bodyItem},
		{"head", &state.headItem},
		{"eyes", &state.eyesItem},
	}

	for _, part := range parts {
		geometry, err := g.SystemManager.MeshLoaderSystem.Load(part.resourceName)
		if err != nil {
			return err
		}
		textureMap, err := g.acquireDiffuseMap(part.resourceName)
		if err != nil {
			return err
		}

		item := &metadata.RenderItem{
			Name:          part.resourceName,
			Geometry:      geometry,
			Pipeline:      boatPipeline,
			Textures:      []*metadata.TextureMap{textureMap},
			SamplerNames:  []string{"textureImage"},
			Model:         mgl32.Ident4(),
			DiffuseColour: mgl32.Vec4{1.0, 1.0, 1.0, 1.0},
		}
		item.UniqueID = core.IdentifierAcquireID(item)
		*part.item = item
	}

	return nil
}

func (g *TestGame) setupHUD(state *gameState) error {
	fontName := "Open Sans"
	fontSize := uint16(20)
	if len(g.ApplicationConfig.SystemFonts) > 0 {
		fontName = g.ApplicationConfig.SystemFonts[0].Name
		fontSize = g.ApplicationConfig.SystemFonts[0].DefaultSize
	}

	text, err := g.SystemManager.FontSystem.UITextCreate(metadata.UI_TEXT_TYPE_SYSTEM, fontName, fontSize, "")
	if err != nil {
		core.LogError("failed to create the HUD text")
		return err
	}
	state.hudText = text
	g.SystemManager.FontSystem.UITextSetPosition(state.hudText, mgl32.Vec3{20, 20, 0})

	return nil
}

// acquireDiffuseMap acquires the named texture and wraps it in a
// mipmapped, repeating texture map with its sampler resources ready.
func (g *TestGame) acquireDiffuseMap(name string) (*metadata.TextureMap, error) {
	texture, err := g.SystemManager.TextureSystem.Acquire(name, true)
	if err != nil {
		return nil, err
	}

	textureMap := &metadata.TextureMap{
		Texture:       texture,
		Use:           metadata.TextureUseMapDiffuse,
		FilterMinify:  metadata.TextureFilterModeLinear,
		FilterMagnify: metadata.TextureFilterModeLinear,
		RepeatU:       metadata.TextureRepeatRepeat,
		RepeatV:       metadata.TextureRepeatRepeat,
	}
	if err := renderer.TextureMapAcquireResources(textureMap); err != nil {
		return nil, err
	}
	return textureMap, nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// The scene runs on a fixed-step clock, one tick per frame.
	state.time += 0.01

	// Zoom accelerates the longer the key is held and stops dead on
	// release.
	if core.InputIsKeyDown(core.KEY_UP) {
		state.zoomRate -= zoomAcceleration
	} else if core.InputIsKeyDown(core.KEY_DOWN) {
		state.zoomRate += zoomAcceleration
	} else {
		state.zoomRate = 0
	}
	if state.zoomRate != 0 {
		state.WorldCamera.Zoom(state.zoomRate)
	}

	// Orbit the camera while the left button is dragged. The press frame
	// itself contributes nothing, it only establishes the reference
	// position for the next frame's delta.
	if core.InputIsButtonDown(core.BUTTON_LEFT) && core.InputWasButtonDown(core.BUTTON_LEFT) {
		x, y := core.InputGetMousePosition()
		prevX, prevY := core.InputGetPreviousMousePosition()
		dx := float32(x - prevX)
		dy := float32(y - prevY)
		if dx != 0 {
			state.WorldCamera.RotateTheta(dragSensitivity * dx)
		}
		if dy != 0 {
			state.WorldCamera.RotatePhi(-dragSensitivity * dy)
		}
	}

	// Toggle between filled and wireframe rendering.
	if core.InputIsKeyUp(core.KEY_M) && core.InputWasKeyDown(core.KEY_M) {
		if state.renderMode == metadata.RENDERER_VIEW_MODE_DEFAULT {
			state.renderMode = metadata.RENDERER_VIEW_MODE_WIREFRAME
		} else {
			state.renderMode = metadata.RENDERER_VIEW_MODE_DEFAULT
		}
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_SET_RENDER_MODE,
			Data: state.renderMode,
		})
	}

	pos := state.WorldCamera.GetPosition()
	fps, frameTime := core.MetricsFrame()

	textBuffer := fmt.Sprintf(
		"FPS: %5.1f(%4.1fms)\nPos=[%7.3f %7.3f %7.3f] Radius=%.3f",
		fps,
		frameTime,
		pos.X(), pos.Y(), pos.Z(),
		state.WorldCamera.Radius,
	)
	if err := g.SystemManager.FontSystem.UITextSetText(state.hudText, textBuffer); err != nil {
		core.LogError("failed to update the HUD text: %s", err.Error())
	}

	return nil
}

// onMouseWheel zooms by a fixed step per wheel tick. Scrolling up brings
// the camera closer.
func (g *TestGame) onMouseWheel(context core.EventContext) {
	mouseEvent, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return
	}
	state := g.State.(*gameState)
	state.WorldCamera.Zoom(-wheelZoomStep * float32(mouseEvent.Scroll))
}

func (g *TestGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)

	packet.DeltaTime = deltaTime
	packet.ViewPackets = make([]*metadata.RenderViewPacket, 2)

	// World. The water goes first so the boat above it depth-tests
	// against an already drawn surface.
	worldData := &metadata.WorldPacketData{
		Time:           state.time,
		LightDirection: lightDirection,
		Items: []*metadata.RenderItem{
			state.waterItem,
			state.bodyItem,
			state.headItem,
			state.eyesItem,
		},
	}
	rvp, err := g.SystemManager.RenderViewSystem.BuildPacket(g.SystemManager.RenderViewSystem.Get("world"), worldData)
	if err != nil {
		core.LogError("Failed to build packet for view 'world'.")
		return err
	}
	packet.ViewPackets[0] = rvp

	// UI overlay.
	uiData := &metadata.UIPacketData{
		Texts: []*metadata.UIText{state.hudText},
	}
	rvp, err = g.SystemManager.RenderViewSystem.BuildPacket(g.SystemManager.RenderViewSystem.Get("ui"), uiData)
	if err != nil {
		core.LogError("Failed to build packet for view 'ui'.")
		return err
	}
	packet.ViewPackets[1] = rvp

	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height

	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)

	if state.hudText != nil {
		g.SystemManager.FontSystem.UITextDestroy(state.hudText)
		state.hudText = nil
	}

	for _, item := range []*metadata.RenderItem{state.waterItem, state.bodyItem, state.headItem, state.eyesItem} {
		if item == nil {
			continue
		}
		for _, textureMap := range item.Textures {
			renderer.TextureMapReleaseResources(textureMap)
		}
		core.IdentifierReleaseID(item.UniqueID)
	}

	return nil
}

func (g *TestGame) configureRenderViews(config *engine.ApplicationConfig) error {
	// World view.
	worldViewConfig := &metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Width:          0,
		Height:         0,
		Name:           "world",
	}
	config.RenderViewConfigs = append(config.RenderViewConfigs, worldViewConfig)

	// UI view.
	uiViewConfig := &metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_UI,
		Width:          0,
		Height:         0,
		Name:           "ui",
	}
	config.RenderViewConfigs = append(config.RenderViewConfigs, uiViewConfig)

	return nil
}
