package engine

import (
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
	"github.com/spaghettifunk/stilllife/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Set by the engine before FnInitialize runs.
	SystemManager *systems.SystemManager
	Renderer      *renderer.Renderer
	// The shapes whose buffer sets must exist before the first frame.
	Shapes       []metadata.ShapeKind
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
