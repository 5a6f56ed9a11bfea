package loaders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/resources"
)

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	// GLSL stage source. The stage itself is derived from the file
	// extension by the shader system.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}
	return &resources.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data: &resources.ShaderSource{
			Source: string(data),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(*resources.Resource) error {
	return nil
}
