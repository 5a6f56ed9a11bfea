package loaders

import (
	"path/filepath"
	"strings"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	// Only the descriptor is parsed here. Page images are bitmaps and go
	// through the bitmap loader so they end up in the texture system like
	// any other texture.
	desc, err := bmfont.LoadDescriptor(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}

	data := &metadata.BitmapFontResourceData{
		Data: &metadata.FontData{
			FontType:   metadata.FONT_TYPE_BITMAP,
			Face:       desc.Info.Face,
			Size:       uint32(desc.Info.Size),
			LineHeight: int32(desc.Common.LineHeight),
			Baseline:   int32(desc.Common.Base),
			AtlasSizeX: int32(desc.Common.ScaleW),
			AtlasSizeY: int32(desc.Common.ScaleH),
			Glyphs:     make([]*metadata.FontGlyph, 0, len(desc.Chars)),
			Kernings:   make([]*metadata.FontKerning, 0, len(desc.Kerning)),
		},
		Pages: make([]*metadata.BitmapFontPage, 0, len(desc.Pages)),
	}

	for _, p := range desc.Pages {
		data.Pages = append(data.Pages, &metadata.BitmapFontPage{
			ID:   int8(p.ID),
			Name: strings.TrimSuffix(p.File, filepath.Ext(p.File)),
		})
	}

	for _, g := range desc.Chars {
		data.Data.Glyphs = append(data.Data.Glyphs, &metadata.FontGlyph{
			Codepoint: int32(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		})
	}

	for pair, k := range desc.Kerning {
		data.Data.Kernings = append(data.Data.Kernings, &metadata.FontKerning{
			Codepoint0: int32(pair.First),
			Codepoint1: int32(pair.Second),
			Amount:     int16(k.Amount),
		})
	}

	return &resources.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		DataSize: uint64(len(data.Data.Glyphs)),
		Data:     data,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *resources.Resource) error {
	if resource.Data != nil {
		data := resource.Data.(*metadata.BitmapFontResourceData)
		data.Data.Glyphs = nil
		data.Data.Kernings = nil
		data.Pages = nil
		resource.Data = nil
		resource.DataSize = 0
	}
	return nil
}
