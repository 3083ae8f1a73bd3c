package stilllife

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/stilllife/engine"
	"github.com/spaghettifunk/stilllife/engine/core"
)

const (
	WindowTitle  = "Lab 6 - Shading and Texturing"
	WindowWidth  = 600
	WindowHeight = 600
)

type StillLife struct {
	*engine.Game
}

type gameState struct {
	composer *Composer
	animator *Animator
	layout   []Instance

	width  uint32
	height uint32
}

/**
 * @brief Builds the still-life game. assetRoot holds the shaders/, textures/
 * and materials/ directories.
 */
func NewStillLife(assetRoot string, logLevel core.LogLevel, hotReload bool) *StillLife {
	sl := &StillLife{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:           100,
				StartPosY:           100,
				StartWidth:          WindowWidth,
				StartHeight:         WindowHeight,
				Name:                WindowTitle,
				LogLevel:            logLevel,
				AssetRoot:           assetRoot,
				TexturePath:         filepath.Join("textures", "table.png"),
				MaterialLibraryPath: filepath.Join("materials", "still_life.toml"),
				HotReload:           hotReload,
			},
			Shapes: SceneShapes,
			State: &gameState{
				animator: NewAnimator(),
			},
		},
	}

	sl.FnInitialize = sl.Initialize
	sl.FnUpdate = sl.Update
	sl.FnRender = sl.Render
	sl.FnOnResize = sl.OnResize
	sl.FnShutdown = sl.Shutdown

	return sl
}

func (g *StillLife) state() *gameState {
	return g.State.(*gameState)
}

func (g *StillLife) Initialize() error {
	if g.SystemManager == nil || g.Renderer == nil {
		return fmt.Errorf("the engine did not provide its systems: %w", core.ErrNotInitialized)
	}

	state := g.state()
	state.composer = NewComposer(g.SystemManager, g.Renderer)
	state.layout = Layout()
	if err := state.composer.Validate(state.layout); err != nil {
		core.LogError("the scene cannot be drawn: %s", err)
		return err
	}

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g, g.onKey)
	core.LogInfo("still life ready: %d instances. A starts, S stops, R resets.", len(state.layout))
	return nil
}

func (g *StillLife) Update(deltaTime float64) error {
	if g.state().animator.Tick() {
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_REDRAW_REQUESTED})
	}
	return nil
}

func (g *StillLife) Render(deltaTime float64) error {
	state := g.state()
	return state.composer.RenderFrame(state.animator.Apply(state.layout))
}

func (g *StillLife) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width = width
	state.height = height
	if state.composer != nil {
		state.composer.SetViewport(width, height)
	}
	return nil
}

func (g *StillLife) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_KEY_PRESSED, g)
	return nil
}

func (g *StillLife) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return false
	}

	animator := g.state().animator
	switch ke.KeyCode {
	case core.KEY_A:
		core.LogDebug("animation started")
		animator.Start()
	case core.KEY_S:
		core.LogDebug("animation stopped")
		animator.Stop()
	case core.KEY_R:
		core.LogDebug("animation reset")
		animator.Reset()
		core.EventFire(core.EventContext{Type: core.EVENT_CODE_REDRAW_REQUESTED})
	default:
		return false
	}
	return true
}
