package loaders

import (
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/gondola/engine/core"
)

func buildBitmap(sizeField, headerSize, width, height uint32, bitsPerPixel uint16, pixels []byte) []byte {
	data := make([]byte, bitmapPixelOffset, bitmapPixelOffset+len(pixels))
	data[0] = 'B'
	data[1] = 'M'
	binary.LittleEndian.PutUint32(data[2:6], sizeField)
	binary.LittleEndian.PutUint32(data[14:18], headerSize)
	binary.LittleEndian.PutUint32(data[18:22], width)
	binary.LittleEndian.PutUint32(data[22:26], height)
	binary.LittleEndian.PutUint16(data[28:30], bitsPerPixel)
	return append(data, pixels...)
}

func TestDecodeBitmapHonoursExplicitSizeField(t *testing.T) {
	pixels := make([]byte, 16)
	for i := range pixels {
		pixels[i] = byte(i + 1)
	}
	// The declared size governs, not the file length: four trailing
	// bytes beyond the declared size must not be read.
	data := buildBitmap(12, 40, 2, 2, 24, pixels)

	bitmap, err := DecodeBitmap("water", data)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), bitmap.Width)
	assert.Equal(t, uint32(2), bitmap.Height)
	assert.Equal(t, uint16(24), bitmap.BitsPerPixel)
	assert.Equal(t, uint32(40), bitmap.HeaderSize)
	assert.Equal(t, pixels[:12], bitmap.Pixels)
}

func TestDecodeBitmapDerivesSizeForZeroSizeField(t *testing.T) {
	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = byte(0xF0 - i)
	}
	data := buildBitmap(0, 40, 2, 2, 32, pixels)

	bitmap, err := DecodeBitmap("boat", data)
	require.NoError(t, err)

	assert.Len(t, bitmap.Pixels, 2*2*4)
	assert.Equal(t, pixels, bitmap.Pixels)
}

func TestDecodeBitmapRejectsZeroSizeFieldForNon32Bit(t *testing.T) {
	data := buildBitmap(0, 40, 2, 2, 24, make([]byte, 2*2*3))

	_, err := DecodeBitmap("water", data)
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "water", formatErr.Asset)
}

func TestDecodeBitmapRejectsMissingMarker(t *testing.T) {
	data := buildBitmap(12, 40, 2, 2, 24, make([]byte, 12))
	data[0] = 'P'
	data[1] = 'N'

	_, err := DecodeBitmap("bogus", data)
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestDecodeBitmapRejectsTruncatedPixelData(t *testing.T) {
	// Size field claims 12 bytes of pixels but only 4 follow the header.
	data := buildBitmap(12, 40, 2, 2, 24, make([]byte, 4))

	_, err := DecodeBitmap("short", data)
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestDecodeBitmapRejectsFileShorterThanHeader(t *testing.T) {
	_, err := DecodeBitmap("stub", []byte{'B', 'M', 0, 0})
	var formatErr *core.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestBitmapLoaderWrapsReadFailures(t *testing.T) {
	loader := &BitmapLoader{}
	_, err := loader.Load("testdata/does-not-exist.bmp", 0, nil)

	var ioErr *core.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "testdata/does-not-exist.bmp", ioErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
