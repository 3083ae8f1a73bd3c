//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"

	"github.com/spaghettifunk/stilllife/engine/assets/loaders"
	"github.com/spaghettifunk/stilllife/engine/systems"
)

type Materials mg.Namespace

const materialLibraryPath = "assets/materials/still_life.toml"

// Writes the builtin material table to the asset material library.
func (Materials) Export() error {
	if err := os.MkdirAll(filepath.Dir(materialLibraryPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(materialLibraryPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := loaders.EncodeMaterialLibrary(f, systems.BuiltinMaterialLibrary()); err != nil {
		return fmt.Errorf("failed to encode %s: %w", materialLibraryPath, err)
	}
	fmt.Printf("Wrote %s\n", materialLibraryPath)
	return f.Close()
}
