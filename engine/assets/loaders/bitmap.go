package loaders

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/resources"
)

// Pixel data always starts right behind the 54 byte header.
const bitmapPixelOffset = 54

type BitmapLoader struct{}

// DecodeBitmap parses an uncompressed bitmap image. The header fields are
// read little endian from fixed offsets; bytes 30 through 53 hold
// compression, palette and resolution information that does not apply to
// the uncompressed images supported here and are skipped. Pixel bytes are
// returned exactly as stored, so callers see BGR ordering for 24 bits per
// pixel and BGRA for 32, in the file's bottom-up row order.
//
// Files may leave the size field at offset 2 zeroed. In that case the
// pixel data size is derived as width*height*4, which is only well
// defined for 32 bits per pixel; any other depth with a zeroed size
// field is rejected.
func DecodeBitmap(name string, data []byte) (*resources.Bitmap, error) {
	if len(data) < bitmapPixelOffset {
		return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("file is %d bytes, shorter than the %d byte bitmap header", len(data), bitmapPixelOffset)}
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil, &core.FormatError{Asset: name, Reason: "missing BM marker"}
	}

	imageSize := binary.LittleEndian.Uint32(data[2:6])
	headerSize := binary.LittleEndian.Uint32(data[14:18])
	width := binary.LittleEndian.Uint32(data[18:22])
	height := binary.LittleEndian.Uint32(data[22:26])
	bitsPerPixel := binary.LittleEndian.Uint16(data[28:30])

	if imageSize == 0 {
		if bitsPerPixel != 32 {
			return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("size field is zero but depth is %d bits per pixel, cannot derive the pixel data size", bitsPerPixel)}
		}
		imageSize = width * height * 4
	}

	available := uint64(len(data)) - bitmapPixelOffset
	if uint64(imageSize) > available {
		return nil, &core.FormatError{Asset: name, Reason: fmt.Sprintf("pixel data truncated, need %d bytes but only %d follow the header", imageSize, available)}
	}

	return &resources.Bitmap{
		Width:        width,
		Height:       height,
		BitsPerPixel: bitsPerPixel,
		HeaderSize:   headerSize,
		Pixels:       data[bitmapPixelOffset : bitmapPixelOffset+uint64(imageSize)],
	}, nil
}

func (bl *BitmapLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	bitmap, err := DecodeBitmap(name, data)
	if err != nil {
		return nil, err
	}

	return &resources.Resource{
		Name:     name,
		FullPath: path,
		DataSize: uint64(len(bitmap.Pixels)),
		Data:     bitmap,
	}, nil
}

func (bl *BitmapLoader) Unload(*resources.Resource) error {
	return nil
}
