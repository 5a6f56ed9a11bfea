package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

// testRenderViewSystem wires a render view system with a live camera
// system. Only world views are created here, the ui view compiles a
// pipeline on creation and needs a GL context for that.
func testRenderViewSystem(t *testing.T) *RenderViewSystem {
	t.Helper()
	cs, err := NewCameraSystem(&CameraSystemConfig{MaxCameraCount: 4})
	require.NoError(t, err)
	rvs, err := NewRenderViewSystem(RenderViewSystemConfig{MaxViewCount: 4}, testShaderSystem(t, nil), cs)
	require.NoError(t, err)
	return rvs
}

func TestNewRenderViewSystemRejectsZeroCount(t *testing.T) {
	_, err := NewRenderViewSystem(RenderViewSystemConfig{}, nil, nil)
	assert.Error(t, err)
}

func TestCreateWorldViewAndGet(t *testing.T) {
	rvs := testRenderViewSystem(t)

	require.NoError(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Name:           "world",
	}))

	view := rvs.Get("world")
	require.NotNil(t, view)
	assert.Equal(t, "world", view.Name)
	require.IsType(t, &metadata.RenderViewWorld{}, view.InternalData)

	assert.Nil(t, rvs.Get("ui"))
}

func TestCreateViewValidation(t *testing.T) {
	rvs := testRenderViewSystem(t)

	assert.Error(t, rvs.Create(nil))
	assert.Error(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
	}))
	assert.Error(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RenderViewKnownType(99),
		Name:           "mystery",
	}))

	require.NoError(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Name:           "world",
	}))
	assert.Error(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Name:           "world",
	}))
}

func TestOnWindowResizeRebuildsWorldProjection(t *testing.T) {
	rvs := testRenderViewSystem(t)
	require.NoError(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Name:           "world",
	}))

	rvs.OnWindowResize(1000, 800)

	view := rvs.Get("world")
	assert.Equal(t, uint16(1000), view.Width)
	assert.Equal(t, uint16(800), view.Height)

	rvw := view.InternalData.(*metadata.RenderViewWorld)
	expected := mgl32.Perspective(rvw.FOV, 1000.0/800.0, rvw.NearClip, rvw.FarClip)
	assert.Equal(t, expected, rvw.ProjectionMatrix)

	// Degenerate sizes during minimize are ignored.
	rvs.OnWindowResize(0, 0)
	assert.Equal(t, uint16(1000), view.Width)
}

func TestWorldBuildPacketCarriesFrameState(t *testing.T) {
	rvs := testRenderViewSystem(t)
	require.NoError(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Name:           "world",
	}))
	view := rvs.Get("world")
	rvw := view.InternalData.(*metadata.RenderViewWorld)

	items := []*metadata.RenderItem{{Name: "water"}, {Name: "boat"}}
	packet, err := rvs.BuildPacket(view, &metadata.WorldPacketData{
		Time:           1.5,
		LightDirection: mgl32.Vec3{5, 30, 5},
		Items:          items,
	})
	require.NoError(t, err)

	assert.Equal(t, float32(1.5), packet.State.Time)
	assert.Equal(t, mgl32.Vec3{5, 30, 5}, packet.State.LightDirection)
	assert.Equal(t, rvw.ProjectionMatrix, packet.State.Projection)
	assert.Equal(t, rvw.WorldCamera.GetView(), packet.State.View)
	assert.Equal(t, rvw.WorldCamera.GetPosition(), packet.State.CameraPosition)
	assert.Equal(t, float32(16), packet.State.InnerTess)
	assert.Equal(t, float32(16), packet.State.OuterTess)

	// Submission order survives, the water stays in front of the boat
	// parts in the draw sequence.
	require.Len(t, packet.Items, 2)
	assert.Same(t, items[0], packet.Items[0])
	assert.Same(t, items[1], packet.Items[1])
}

func TestWorldBuildPacketRejectsWrongData(t *testing.T) {
	rvs := testRenderViewSystem(t)
	require.NoError(t, rvs.Create(&metadata.RenderViewConfig{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_WORLD,
		Name:           "world",
	}))

	_, err := rvs.BuildPacket(rvs.Get("world"), &metadata.UIPacketData{})
	assert.Error(t, err)

	_, err = rvs.BuildPacket(nil, &metadata.WorldPacketData{})
	assert.Error(t, err)
}

func TestUIBuildPacketBuildsTextItems(t *testing.T) {
	rvs := testRenderViewSystem(t)

	// Assembled by hand, creating a ui view through the system would
	// compile the text pipeline.
	uiView := &metadata.RenderView{
		RenderViewType: metadata.RENDERER_VIEW_KNOWN_TYPE_UI,
		Name:           "ui",
		InternalData: &metadata.RenderViewUI{
			ViewMatrix:       mgl32.Ident4(),
			ProjectionMatrix: mgl32.Ortho(0, 1000, 800, 0, -100, 100),
			Pipeline:         &metadata.Pipeline{Name: "Pipeline.Builtin.Text"},
		},
	}

	atlas := &metadata.TextureMap{}
	text := &metadata.UIText{
		UniqueID:   7,
		UITextType: metadata.UI_TEXT_TYPE_SYSTEM,
		Data:       &metadata.FontData{Atlas: atlas},
		Geometry:   &metadata.Geometry{},
		Text:       "FPS",
		Position:   mgl32.Vec3{20, 20, 0},
		Colour:     mgl32.Vec4{1, 1, 1, 1},
	}

	packet, err := rvs.BuildPacket(uiView, &metadata.UIPacketData{
		Texts: []*metadata.UIText{text, nil, {UniqueID: 8}},
	})
	require.NoError(t, err)

	// The nil entry and the text without geometry are skipped.
	require.Len(t, packet.Items, 1)
	item := packet.Items[0]
	assert.Equal(t, uint32(7), item.UniqueID)
	assert.Equal(t, []string{"textureImage"}, item.SamplerNames)
	assert.Same(t, atlas, item.Textures[0])
	assert.Equal(t, mgl32.Translate3D(20, 20, 0), item.Model)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, item.DiffuseColour)
}
