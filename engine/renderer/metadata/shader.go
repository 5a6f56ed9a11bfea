package metadata

import (
	"fmt"
	"path/filepath"
)

/**
 * @brief Represents the current state of a given shader pipeline.
 */
type ShaderState int

const (
	/** @brief The pipeline has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief The pipeline has gone through the creation process, but not initialization. It is unusable.*/
	SHADER_STATE_UNINITIALIZED
	/** @brief The pipeline is created and initialized, and is ready for use.*/
	SHADER_STATE_INITIALIZED
)

/** @brief Shader stages available in the system. */
type ShaderStage int

const (
	ShaderStageVertex                 ShaderStage = 0x00000001
	ShaderStageTessellationControl    ShaderStage = 0x00000002
	ShaderStageTessellationEvaluation ShaderStage = 0x00000004
	ShaderStageGeometry               ShaderStage = 0x00000008
	ShaderStageFragment               ShaderStage = 0x00000010
	ShaderStageCompute                ShaderStage = 0x00000020
)

// String returns the human readable stage name used in error messages
// and compile logs.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageTessellationControl:
		return "tessellation control"
	case ShaderStageTessellationEvaluation:
		return "tessellation evaluation"
	case ShaderStageGeometry:
		return "geometry"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageCompute:
		return "compute"
	}
	return "unknown"
}

// ShaderStageFromFileName derives the stage from the file extension,
// following the glslang naming convention.
func ShaderStageFromFileName(name string) (ShaderStage, error) {
	switch filepath.Ext(name) {
	case ".vert":
		return ShaderStageVertex, nil
	case ".tesc":
		return ShaderStageTessellationControl, nil
	case ".tese":
		return ShaderStageTessellationEvaluation, nil
	case ".geom":
		return ShaderStageGeometry, nil
	case ".frag":
		return ShaderStageFragment, nil
	case ".comp":
		return ShaderStageCompute, nil
	}
	return 0, fmt.Errorf("file %s has no recognized shader stage extension", name)
}

/** @brief A single shader stage ready to be compiled into a pipeline. */
type ShaderStageConfig struct {
	/** @brief The Stage this source belongs to. */
	Stage ShaderStage
	/** @brief The name of the file the source was loaded from. */
	FileName string
	/** @brief The GLSL source text. */
	Source string
}

/**
 * @brief Configuration for a shader pipeline. Typically created by the
 * application and handed to the shader system, which loads the stage
 * sources and asks the backend to compile and link them.
 */
type PipelineConfig struct {
	/** @brief The name of the pipeline to be created. */
	Name string
	/** @brief The face cull mode to be used. Default is none if not supplied. */
	CullMode FaceCullMode
	/** @brief Whether depth testing is enabled while this pipeline is bound. */
	DepthTestEnabled bool
	/** @brief Whether alpha blending is enabled while this pipeline is bound. */
	BlendEnabled bool
	/** @brief The collection of stage file names to be loaded, one per stage. */
	StageFilenames []string
}

/**
 * @brief Represents a compiled and linked shader pipeline on the frontend.
 */
type Pipeline struct {
	/** @brief The pipeline identifier. */
	ID uint32
	/** @brief The pipeline Name. */
	Name string
	/** @brief The internal State of the pipeline. */
	State ShaderState
	/** @brief The face cull mode applied while this pipeline is bound. */
	CullMode FaceCullMode
	/** @brief Whether depth testing is enabled while this pipeline is bound. */
	DepthTestEnabled bool
	/** @brief Whether alpha blending is enabled while this pipeline is bound. */
	BlendEnabled bool
	/** @brief The stage file names the pipeline was built from. Kept for reloads. */
	StageFilenames []string
	/** @brief An opaque pointer to hold renderer API specific data. Renderer is responsible for creation and destruction of this. */
	InternalData interface{}
}
