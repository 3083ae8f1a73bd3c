package engine

import (
	"github.com/spaghettifunk/stilllife/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Directory holding shaders/, textures/ and materials/.
	AssetRoot string
	// Image mapped onto textured surfaces, relative to AssetRoot.
	TexturePath string
	// Optional material library, relative to AssetRoot. Empty keeps the builtin table.
	MaterialLibraryPath string
	// Watch AssetRoot and rebuild programs, textures and materials on change.
	HotReload bool
	// The colour the framebuffer is cleared to.
	ClearColour [4]float32
}
