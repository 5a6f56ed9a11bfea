//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Validates the shaders and then runs the game from source.
func (Run) Game() error {
	if err := (Build{}).Shaders(); err != nil {
		return err
	}
	fmt.Println("Running the game...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}
