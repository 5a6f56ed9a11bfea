package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

// testFontData is a tiny synthetic face with two letters, a replacement
// glyph and one kerning pair. Atlas coordinates are chosen so the
// expected texcoords come out as exact binary fractions.
func testFontData() *metadata.FontData {
	return &metadata.FontData{
		FontType:    metadata.FONT_TYPE_SYSTEM,
		Face:        "Test Face",
		Size:        16,
		LineHeight:  24,
		TabXAdvance: 40,
		AtlasSizeX:  256,
		AtlasSizeY:  256,
		Glyphs: []*metadata.FontGlyph{
			{Codepoint: 'A', X: 0, Y: 0, Width: 16, Height: 16, XOffset: 1, YOffset: 2, XAdvance: 12},
			{Codepoint: 'B', X: 16, Y: 0, Width: 16, Height: 16, XOffset: 0, YOffset: 2, XAdvance: 11},
			{Codepoint: '�', X: 32, Y: 0, Width: 16, Height: 16, XAdvance: 16},
		},
		Kernings: []*metadata.FontKerning{
			{Codepoint0: 'A', Codepoint1: 'B', Amount: -2},
		},
	}
}

func textWith(content string, textType metadata.UITextType) *metadata.UIText {
	return &metadata.UIText{
		UITextType: textType,
		Data:       testFontData(),
		Text:       content,
	}
}

func TestBuildTextGeometryQuadPerGlyph(t *testing.T) {
	fs := &FontSystem{}
	config := fs.buildTextGeometryConfig(textWith("AB", metadata.UI_TEXT_TYPE_SYSTEM))

	// Two quads of four corners each, indexed as two triangles per quad.
	require.Len(t, config.Positions, 2*4*3)
	require.Len(t, config.Texcoords, 2*4*2)
	require.Len(t, config.Indices, 2*6)
	assert.Equal(t, metadata.PrimitiveModeTriangles, config.PrimitiveMode)

	// First quad honours the glyph offsets.
	assert.Equal(t, float32(1), config.Positions[0])
	assert.Equal(t, float32(2), config.Positions[1])
	assert.Equal(t, float32(17), config.Positions[3])

	// The pen advances by XAdvance plus the A->B kerning before the
	// second quad starts.
	assert.Equal(t, float32(12-2), config.Positions[12])

	// Atlas coordinates of A span a sixteenth of the atlas.
	assert.Equal(t, float32(0), config.Texcoords[0])
	assert.Equal(t, float32(0), config.Texcoords[1])
	assert.Equal(t, float32(16.0/256.0), config.Texcoords[2])

	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, config.Indices)
}

func TestBuildTextGeometryNewlineAndTab(t *testing.T) {
	fs := &FontSystem{}
	config := fs.buildTextGeometryConfig(textWith("A\n\tB", metadata.UI_TEXT_TYPE_SYSTEM))

	// Newline and tab emit no quads of their own.
	require.Len(t, config.Positions, 2*4*3)

	// B sits one line down and one tab stop in.
	assert.Equal(t, float32(40+0), config.Positions[12])
	assert.Equal(t, float32(24+2), config.Positions[13])
}

func TestBuildTextGeometryFallsBackToReplacementGlyph(t *testing.T) {
	fs := &FontSystem{}
	config := fs.buildTextGeometryConfig(textWith("Z", metadata.UI_TEXT_TYPE_SYSTEM))

	// Z is not in the face, the replacement glyph at atlas x 32 fills in.
	require.Len(t, config.Positions, 4*3)
	assert.Equal(t, float32(32.0/256.0), config.Texcoords[0])
}

func TestBuildTextGeometrySkipsUnknownWithoutReplacement(t *testing.T) {
	text := textWith("Z", metadata.UI_TEXT_TYPE_SYSTEM)
	// Strip the replacement glyph so nothing can stand in for Z.
	text.Data.Glyphs = text.Data.Glyphs[:2]

	fs := &FontSystem{}
	config := fs.buildTextGeometryConfig(text)

	// Nothing printable remains, so the degenerate placeholder quad is
	// produced instead of an empty buffer.
	assert.Equal(t, make([]float32, 12), config.Positions)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, config.Indices)
}

func TestBuildTextGeometryEmptyString(t *testing.T) {
	fs := &FontSystem{}
	config := fs.buildTextGeometryConfig(textWith("", metadata.UI_TEXT_TYPE_SYSTEM))

	assert.Len(t, config.Positions, 12)
	assert.Len(t, config.Texcoords, 8)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, config.Indices)
}

func TestBuildTextGeometryBitmapFontFlipsV(t *testing.T) {
	fs := &FontSystem{}
	system := fs.buildTextGeometryConfig(textWith("A", metadata.UI_TEXT_TYPE_SYSTEM))
	bitmap := fs.buildTextGeometryConfig(textWith("A", metadata.UI_TEXT_TYPE_BITMAP))

	// Bitmap font pages decode bottom-up, their v coordinates mirror the
	// system atlas ones.
	assert.Equal(t, 1.0-system.Texcoords[1], bitmap.Texcoords[1])
	assert.Equal(t, 1.0-system.Texcoords[5], bitmap.Texcoords[5])
}

func TestKerningFor(t *testing.T) {
	data := testFontData()

	assert.Equal(t, float32(-2), kerningFor(data, []rune("AB"), 0))
	assert.Equal(t, float32(0), kerningFor(data, []rune("BA"), 0))
	// The last rune has no following partner to kern against.
	assert.Equal(t, float32(0), kerningFor(data, []rune("AB"), 1))
}
