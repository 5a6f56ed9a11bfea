package loaders

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
	"github.com/spaghettifunk/gondola/engine/resources"
)

// SystemFontLoader reads a fontcfg file listing the typeface binary and
// the face names it provides, e.g.
//
//	file=NotoSans.ttf
//	face=Noto Sans
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}
	defer file.Close()

	rd := &metadata.SystemFontResourceData{
		Fonts: []*metadata.SystemFontFace{},
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "file=") {
			// Typeface binaries live next to the config file.
			filename := strings.TrimPrefix(line, "file=")
			fullPath := filepath.Join(filepath.Dir(path), filename)
			fontBytes, err := os.ReadFile(fullPath)
			if err != nil {
				return nil, &core.IOError{Path: fullPath, Err: err}
			}
			collection, err := sfnt.ParseCollection(fontBytes)
			if err != nil {
				return nil, &core.FormatError{Asset: filename, Reason: err.Error()}
			}
			rd.FontBinary = collection
			rd.BinarySize = uint64(len(fontBytes))
		} else if strings.HasPrefix(line, "face=") {
			rd.Fonts = append(rd.Fonts, &metadata.SystemFontFace{
				Name: strings.TrimPrefix(line, "face="),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}

	return &resources.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		DataSize: rd.BinarySize,
		Data:     rd,
	}, nil
}

func (fl *SystemFontLoader) Unload(*resources.Resource) error {
	return nil
}
