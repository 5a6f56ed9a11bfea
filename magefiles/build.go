//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Validates every shader stage under assets/shaders. The engine compiles
// the sources at runtime, so this only catches syntax errors early.
func (Build) Shaders() error {
	stages, err := filepath.Glob("assets/shaders/*")
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		return fmt.Errorf("no shader stages found under assets/shaders")
	}
	for _, stage := range stages {
		if _, err := executeCmd("glslangValidator", withArgs(stage), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Builds the game binary into bin/.
func (Build) Game() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/windwaker", "."), withStream()); err != nil {
		return err
	}
	return nil
}
