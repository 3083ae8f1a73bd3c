//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds the binary and opens the still-life window.
func (Run) App() error {
	mg.Deps(Build.App)
	fmt.Println("Run stilllife...")
	if _, err := executeCmd("bin/stilllife", withStream()); err != nil {
		return err
	}
	return nil
}
