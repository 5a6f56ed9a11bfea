package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/gondola/engine/core"
	"github.com/spaghettifunk/gondola/engine/renderer/metadata"
)

/**
 * @brief Holds a linked program handle and the uniform locations resolved
 * from it so far.
 */
type OpenGLPipeline struct {
	/** @brief The linked program handle. */
	Handle uint32
	/** @brief Uniform locations by name. Names the program does not declare are cached as -1. */
	UniformLocations map[string]int32
}

var glShaderStages = map[metadata.ShaderStage]uint32{
	metadata.ShaderStageVertex:                 gl.VERTEX_SHADER,
	metadata.ShaderStageTessellationControl:    gl.TESS_CONTROL_SHADER,
	metadata.ShaderStageTessellationEvaluation: gl.TESS_EVALUATION_SHADER,
	metadata.ShaderStageGeometry:               gl.GEOMETRY_SHADER,
	metadata.ShaderStageFragment:               gl.FRAGMENT_SHADER,
	metadata.ShaderStageCompute:                gl.COMPUTE_SHADER,
}

// PipelineCreate compiles every stage, links them into a program and
// stores the handle on the pipeline. Stage objects are detached and
// deleted once the program is linked. On any failure all GL objects
// created so far are released before the error is returned.
func (vr *OpenGLRenderer) PipelineCreate(pipeline *metadata.Pipeline, stages []*metadata.ShaderStageConfig) error {
	handle := gl.CreateProgram()

	compiled := make([]uint32, 0, len(stages))
	for _, stage := range stages {
		sh, err := compileStage(stage)
		if err != nil {
			for _, c := range compiled {
				gl.DeleteShader(c)
			}
			gl.DeleteProgram(handle)
			return err
		}
		gl.AttachShader(handle, sh)
		compiled = append(compiled, sh)
	}

	gl.LinkProgram(handle)

	for _, sh := range compiled {
		gl.DetachShader(handle, sh)
		gl.DeleteShader(sh)
	}

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(handle)

		return &core.LinkError{Log: strings.TrimRight(infoLog, "\x00")}
	}

	pipeline.InternalData = &OpenGLPipeline{
		Handle:           handle,
		UniformLocations: make(map[string]int32),
	}
	pipeline.State = metadata.SHADER_STATE_INITIALIZED
	return nil
}

func (vr *OpenGLRenderer) PipelineDestroy(pipeline *metadata.Pipeline) error {
	internal, ok := pipeline.InternalData.(*OpenGLPipeline)
	if !ok || internal == nil {
		return nil
	}
	gl.DeleteProgram(internal.Handle)
	pipeline.InternalData = nil
	pipeline.State = metadata.SHADER_STATE_NOT_CREATED
	return nil
}

func compileStage(stage *metadata.ShaderStageConfig) (uint32, error) {
	handle := gl.CreateShader(glShaderStages[stage.Stage])

	csources, free := gl.Strs(stage.Source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(handle)

		return 0, &core.ShaderCompileError{
			Stage: stage.Stage.String(),
			Log:   strings.TrimRight(infoLog, "\x00"),
		}
	}
	return handle, nil
}

// UniformLocation resolves and caches the location of the named uniform.
// Unknown names resolve to -1 and the setters skip them, so one uniform
// set serves pipelines with different declarations.
func (p *OpenGLPipeline) UniformLocation(name string) int32 {
	if loc, ok := p.UniformLocations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.Handle, gl.Str(name+"\x00"))
	p.UniformLocations[name] = loc
	return loc
}

func (p *OpenGLPipeline) SetMat4(name string, value mgl32.Mat4) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

func (p *OpenGLPipeline) SetVec3(name string, value mgl32.Vec3) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform3fv(loc, 1, &value[0])
	}
}

func (p *OpenGLPipeline) SetVec4(name string, value mgl32.Vec4) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform4fv(loc, 1, &value[0])
	}
}

func (p *OpenGLPipeline) SetFloat(name string, value float32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform1f(loc, value)
	}
}

func (p *OpenGLPipeline) SetInt(name string, value int32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		gl.Uniform1i(loc, value)
	}
}

func (p *OpenGLPipeline) SetFloatArray(name string, values []float32) {
	if loc := p.UniformLocation(name); loc >= 0 && len(values) > 0 {
		gl.Uniform1fv(loc, int32(len(values)), &values[0])
	}
}

func (p *OpenGLPipeline) SetVec2Array(name string, values []float32) {
	if loc := p.UniformLocation(name); loc >= 0 && len(values) >= 2 {
		gl.Uniform2fv(loc, int32(len(values)/2), &values[0])
	}
}
