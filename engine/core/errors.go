package core

import (
	"fmt"
)

// Asset and pipeline construction errors form a closed set. All of them are
// fatal at scene-construction time; nothing in the engine retries or falls
// back to a default asset.

// FormatError reports a malformed or truncated asset (bitmap or mesh file).
type FormatError struct {
	// Asset is the path or logical name of the offending asset.
	Asset string
	// Reason describes what was wrong with the data.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Asset == "" {
		return fmt.Sprintf("invalid asset format: %s", e.Reason)
	}
	return fmt.Sprintf("invalid asset format in %s: %s", e.Asset, e.Reason)
}

// ShaderCompileError reports a single pipeline stage that failed to compile,
// together with the driver's info log.
type ShaderCompileError struct {
	// Stage is the pipeline stage name, e.g. "vertex" or "fragment".
	Stage string
	// Log is the driver info log, already trimmed of trailing NULs.
	Log string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a shader program that failed to link after all of its
// stages compiled.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link shader program: %s", e.Log)
}

// IOError reports an asset file that could not be read at all.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
