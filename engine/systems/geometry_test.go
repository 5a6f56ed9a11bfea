package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

func testGeometrySystem(t *testing.T) *GeometrySystem {
	t.Helper()
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 16})
	require.NoError(t, err)
	return gs
}

func TestNewGeometrySystemRejectsZeroCount(t *testing.T) {
	_, err := NewGeometrySystem(&GeometrySystemConfig{})
	assert.Error(t, err)
}

func TestGenerateGridConfigSmall(t *testing.T) {
	gs := testGeometrySystem(t)

	config, err := gs.GenerateGridConfig(0, 2, 1, "small_grid")
	require.NoError(t, err)

	// A 2x2 quad grid has 3x3 vertex samples.
	assert.Len(t, config.Positions, 9*3)
	assert.Len(t, config.Normals, 9*3)
	assert.Len(t, config.Indices, 4*4)

	// Vertices walk the x axis first, then advance along z.
	assert.Equal(t, []float32{0, 0, 0}, config.Positions[0:3])
	assert.Equal(t, []float32{1, 0, 0}, config.Positions[3:6])
	assert.Equal(t, []float32{2, 0, 0}, config.Positions[6:9])
	assert.Equal(t, []float32{0, 0, 1}, config.Positions[9:12])
	assert.Equal(t, []float32{2, 0, 2}, config.Positions[24:27])

	// Every normal points straight up.
	for i := 0; i+2 < len(config.Normals); i += 3 {
		assert.Equal(t, float32(0), config.Normals[i+0])
		assert.Equal(t, float32(1), config.Normals[i+1])
		assert.Equal(t, float32(0), config.Normals[i+2])
	}

	// Each quad winds counter-clockwise from its top-left corner.
	assert.Equal(t, []uint32{0, 1, 4, 3}, config.Indices[0:4])
	assert.Equal(t, []uint32{1, 2, 5, 4}, config.Indices[4:8])
	assert.Equal(t, []uint32{3, 4, 7, 6}, config.Indices[8:12])
	assert.Equal(t, []uint32{4, 5, 8, 7}, config.Indices[12:16])

	// The indices describe 4-point tessellation patches.
	assert.Equal(t, metadata.PrimitiveModePatches, config.PrimitiveMode)
	assert.Equal(t, int32(4), config.PatchVertices)
}

func TestGenerateGridConfigWaterSized(t *testing.T) {
	gs := testGeometrySystem(t)

	config, err := gs.GenerateGridConfig(-10, 10, 1, "water_grid")
	require.NoError(t, err)

	// 21x21 vertex samples and 20x20 quads of four indices each.
	assert.Len(t, config.Positions, 441*3)
	assert.Len(t, config.Normals, 441*3)
	assert.Len(t, config.Indices, 1600)

	// Index values stay within the vertex count.
	for _, index := range config.Indices {
		assert.Less(t, index, uint32(441))
	}

	assert.Equal(t, float32(-10), config.MinExtents.X())
	assert.Equal(t, float32(10), config.MaxExtents.X())
	assert.Equal(t, float32(0), config.Center.X())
}

func TestGenerateGridConfigRejectsBadRanges(t *testing.T) {
	gs := testGeometrySystem(t)

	_, err := gs.GenerateGridConfig(0, 2, 0, "zero_step")
	assert.Error(t, err)

	_, err = gs.GenerateGridConfig(0, 2, -1, "negative_step")
	assert.Error(t, err)

	_, err = gs.GenerateGridConfig(2, 2, 1, "empty_range")
	assert.Error(t, err)
}

func TestGenerateConfigFromMeshData(t *testing.T) {
	gs := testGeometrySystem(t)

	data := &resources.MeshData{
		Positions:   []float32{0, 0, 0, 2, 0, 0, 0, 4, 6},
		Normals:     []float32{0, 1, 0, 0, 1, 0, 0, 1, 0},
		Colours:     make([]float32, 9),
		Texcoords:   []float32{0, 0, 1, 0, 0, 1},
		Indices:     []uint32{0, 1, 2},
		VertexCount: 3,
	}

	config := gs.GenerateConfigFromMeshData("tri", data)

	assert.Equal(t, metadata.PrimitiveModeTriangles, config.PrimitiveMode)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, config.MinExtents)
	assert.Equal(t, mgl32.Vec3{2, 4, 6}, config.MaxExtents)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, config.Center)
	assert.Equal(t, data.Indices, config.Indices)
}
