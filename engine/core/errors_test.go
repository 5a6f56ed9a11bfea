package core

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{Asset: "assets/textures/boat.bmp", Reason: "missing BM marker"}
	assert.Contains(t, err.Error(), "boat.bmp")
	assert.Contains(t, err.Error(), "missing BM marker")

	anon := &FormatError{Reason: "truncated pixel data"}
	assert.Equal(t, "invalid asset format: truncated pixel data", anon.Error())
}

func TestShaderCompileErrorCarriesStageAndLog(t *testing.T) {
	err := &ShaderCompileError{Stage: "fragment", Log: "0:12: 'vec4' : syntax error"}
	assert.Contains(t, err.Error(), "fragment")
	assert.Contains(t, err.Error(), "syntax error")

	// The stage must survive wrapping so callers can identify which stage
	// broke without parsing the message.
	wrapped := fmt.Errorf("building water pipeline: %w", err)
	var compileErr *ShaderCompileError
	assert.True(t, errors.As(wrapped, &compileErr))
	assert.Equal(t, "fragment", compileErr.Stage)
}

func TestLinkErrorDistinctFromCompileError(t *testing.T) {
	var err error = &LinkError{Log: "unresolved symbol"}

	var compileErr *ShaderCompileError
	assert.False(t, errors.As(err, &compileErr))

	var linkErr *LinkError
	assert.True(t, errors.As(err, &linkErr))
	assert.Equal(t, "unresolved symbol", linkErr.Log)
}

func TestIOErrorUnwrapsToCause(t *testing.T) {
	err := &IOError{Path: "assets/models/boat.ply", Err: os.ErrNotExist}
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "assets/models/boat.ply")
}
