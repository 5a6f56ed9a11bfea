package loaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/core"
)

const triangleMesh = `ply
format ascii 1.0
comment a single triangle
element vertex 3
property float x
property float y
property float z
property float nx
property float ny
property float nz
property float u
property float v
element face 1
property list uchar uint vertex_indices
end_header
0.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0
1.0 0.0 0.0 0.0 1.0 0.0 1.0 0.0
0.0 0.0 1.0 0.0 1.0 0.0 0.0 1.0
3 0 1 2
`

func TestParseMeshReadsDeclaredAttributes(t *testing.T) {
	mesh, err := ParseMesh("triangle", []byte(triangleMesh))
	require.NoError(t, err)

	assert.Equal(t, uint32(3), mesh.VertexCount)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}, mesh.Positions)
	assert.Equal(t, []float32{0, 1, 0, 0, 1, 0, 0, 1, 0}, mesh.Normals)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, mesh.Texcoords)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)

	// Colours were not declared, so the array is zero filled.
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 0, 0, 0}, mesh.Colours)
}

func TestParseMeshMapsPermutedPropertyOrder(t *testing.T) {
	// The same triangle with its properties declared z, x, y: values in
	// each vertex line must land in the attribute named by position.
	permuted := `ply
format ascii 1.0
comment permuted property order
element vertex 1
property float z
property float x
property float y
element face 0
property list uchar uint vertex_indices
end_header
3.0 1.0 2.0
`
	mesh, err := ParseMesh("permuted", []byte(permuted))
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3}, mesh.Positions)
}

func TestParseMeshMapsSAndTToTextureCoordinates(t *testing.T) {
	source := `ply
format ascii 1.0
comment exporter using s/t names
element vertex 1
property float x
property float y
property float z
property float s
property float t
element face 0
property list uchar uint vertex_indices
end_header
0.0 0.0 0.0 0.25 0.75
`
	mesh, err := ParseMesh("st", []byte(source))
	require.NoError(t, err)

	assert.Equal(t, []float32{0.25, 0.75}, mesh.Texcoords)
}

func TestParseMeshDiscardsFaceArityToken(t *testing.T) {
	mesh, err := ParseMesh("triangle", []byte(triangleMesh))
	require.NoError(t, err)

	// The leading "3" of the face line is the arity, not an index.
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
}

func TestParseMeshRejectsMissingMagic(t *testing.T) {
	source := strings.Replace(triangleMesh, "ply\n", "obj\n", 1)

	_, err := ParseMesh("bogus", []byte(source))
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "bogus", formatErr.Asset)
}

func TestParseMeshRejectsUnknownProperty(t *testing.T) {
	source := strings.Replace(triangleMesh, "property float u", "property float curvature", 1)

	_, err := ParseMesh("bogus", []byte(source))
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "curvature")
}

func TestParseMeshRejectsTruncatedVertexData(t *testing.T) {
	// Cut the file off after the second vertex line.
	source := triangleMesh[:strings.Index(triangleMesh, "0.0 0.0 1.0")]

	_, err := ParseMesh("short", []byte(source))
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "vertex data ends")
}

func TestParseMeshRejectsOutOfRangeFaceIndex(t *testing.T) {
	source := strings.Replace(triangleMesh, "3 0 1 2", "3 0 1 7", 1)

	_, err := ParseMesh("bogus", []byte(source))
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
}
