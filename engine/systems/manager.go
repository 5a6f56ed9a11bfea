package systems

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine/assets"
	"github.com/spaghettifunk/gondola/engine/platform"
	"github.com/spaghettifunk/gondola/engine/renderer"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

// SystemManager owns every engine system and brings them up in dependency
// order. The fields are exported so the application can reach the systems
// directly.
type SystemManager struct {
	CameraSystem     *CameraSystem
	TextureSystem    *TextureSystem
	GeometrySystem   *GeometrySystem
	ShaderSystem     *ShaderSystem
	MeshLoaderSystem *MeshLoaderSystem
	FontSystem       *FontSystem
	RenderViewSystem *RenderViewSystem

	appName  string
	width    uint32
	height   uint32
	platform *platform.Platform
}

func NewSystemManager(appName string, width, height uint32, fontConfig *metadata.FontSystemConfig, p *platform.Platform, am *assets.AssetManager) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 10,
	})
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 1000,
	}, am)
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 1000,
	})
	if err != nil {
		return nil, err
	}
	ss, err := NewShaderSystem(&ShaderSystemConfig{
		MaxPipelineCount: 100,
	}, am)
	if err != nil {
		return nil, err
	}
	mls, err := NewMeshLoaderSystem(gs, am)
	if err != nil {
		return nil, err
	}
	fs, err := NewFontSystem(fontConfig, ts, gs, am)
	if err != nil {
		return nil, err
	}
	rvs, err := NewRenderViewSystem(RenderViewSystemConfig{
		MaxViewCount: 10,
	}, ss, cs)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:     cs,
		TextureSystem:    ts,
		GeometrySystem:   gs,
		ShaderSystem:     ss,
		MeshLoaderSystem: mls,
		FontSystem:       fs,
		RenderViewSystem: rvs,
		appName:          appName,
		width:            width,
		height:           height,
		platform:         p,
	}, nil
}

// Initialize brings up the renderer backend and the systems that upload
// resources to it, then creates the configured render views. Must run
// after the platform has a window with a current GL context.
func (sm *SystemManager) Initialize(viewConfigs []*metadata.RenderViewConfig) error {
	if err := renderer.Initialize(&metadata.RendererBackendConfig{
		ApplicationName: sm.appName,
		// Dark blue. The scene has no skybox geometry, the clear colour is
		// all the sky there is.
		ClearColour: mgl32.Vec4{0.2, 0.2, 0.3, 0.0},
	}, sm.width, sm.height, sm.platform); err != nil {
		return err
	}

	if err := sm.ShaderSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.FontSystem.Initialize(); err != nil {
		return err
	}

	for _, config := range viewConfigs {
		if err := sm.RenderViewSystem.Create(config); err != nil {
			return err
		}
	}

	// Push the real framebuffer size to the views before the first frame.
	sm.RenderViewSystem.OnWindowResize(sm.width, sm.height)

	return nil
}

func (sm *SystemManager) OnResize(width, height uint16) error {
	sm.width = uint32(width)
	sm.height = uint32(height)
	sm.RenderViewSystem.OnWindowResize(uint32(width), uint32(height))
	return renderer.OnResize(width, height)
}

func (sm *SystemManager) DrawFrame(packet *metadata.RenderPacket) error {
	return renderer.DrawFrame(packet)
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.RenderViewSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.FontSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshLoaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.GeometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.CameraSystem.Shutdown(); err != nil {
		return err
	}
	return renderer.Shutdown()
}
