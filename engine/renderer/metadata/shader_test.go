package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderStageFromFileName(t *testing.T) {
	tests := []struct {
		filename string
		stage    ShaderStage
	}{
		{"water.vert", ShaderStageVertex},
		{"water.tesc", ShaderStageTessellationControl},
		{"water.tese", ShaderStageTessellationEvaluation},
		{"water.geom", ShaderStageGeometry},
		{"water.frag", ShaderStageFragment},
		{"reduce.comp", ShaderStageCompute},
	}
	for _, tt := range tests {
		stage, err := ShaderStageFromFileName(tt.filename)
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.stage, stage, tt.filename)
	}
}

func TestShaderStageFromFileNameRejectsUnknownExtension(t *testing.T) {
	_, err := ShaderStageFromFileName("water.glsl")
	assert.Error(t, err)

	_, err = ShaderStageFromFileName("water")
	assert.Error(t, err)
}

func TestShaderStageString(t *testing.T) {
	assert.Equal(t, "vertex", ShaderStageVertex.String())
	assert.Equal(t, "fragment", ShaderStageFragment.String())
	assert.Equal(t, "tessellation control", ShaderStageTessellationControl.String())
	assert.Equal(t, "tessellation evaluation", ShaderStageTessellationEvaluation.String())
	assert.Equal(t, "geometry", ShaderStageGeometry.String())
	assert.Equal(t, "unknown", ShaderStage(0).String())
}
