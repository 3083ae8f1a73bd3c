package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spaghettifunk/stilllife/engine/assets"
	"github.com/spaghettifunk/stilllife/engine/containers"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
	"github.com/spaghettifunk/stilllife/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything it owned
	EngineStageTerminated
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	case EngineStageTerminated:
		return "terminated"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// idleWait is how long an iteration that drew nothing yields before polling again.
const idleWait = 5 * time.Millisecond

// maxPendingChanges bounds how many distinct files are reloaded per iteration.
const maxPendingChanges = 32

/**
 * @brief The window the engine draws into. The GLFW platform implements it;
 * tests use an in-memory one.
 */
type Window interface {
	Startup(applicationName string, x, y, width, height uint32) error
	Shutdown()
	PumpMessages() error
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (uint32, uint32)
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	isRunning     bool
	isSuspended   bool
	isDirty       bool
	window        Window
	renderer      *renderer.Renderer
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.Metrics
	lastTime      float64

	// distinct paths changed since the last iteration, in arrival order
	pendingChanges *containers.RingQueue[string]
}

func New(g *Game, window Window, backend renderer.RendererBackend) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		err := fmt.Errorf("func New - a game with an application config is required: %w", core.ErrNotInitialized)
		core.LogError(err.Error())
		return nil, err
	}
	config := g.ApplicationConfig
	core.SetLogLevel(config.LogLevel)

	r := renderer.NewRenderer(backend)
	am := assets.NewAssetManager()

	libraryPath := ""
	if len(config.MaterialLibraryPath) > 0 {
		libraryPath = filepath.Join(config.AssetRoot, config.MaterialLibraryPath)
	}
	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		ShaderDir:           filepath.Join(config.AssetRoot, "shaders"),
		TexturePath:         filepath.Join(config.AssetRoot, config.TexturePath),
		MaterialLibraryPath: libraryPath,
		Slices:              systems.DefaultShapeSlices,
		Stacks:              systems.DefaultShapeStacks,
		CameraEye:           math.NewVec3(0.0, 1.25, 6.5),
		CameraTarget:        math.NewVec3(0.0, 0.8, 0.0),
		CameraUp:            math.NewVec3(0.0, 5.0, 0.0),
	}, am, r)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		window:        window,
		renderer:      r,
		assetManager:  am,
		systemManager: sm,
		width:         config.StartWidth,
		height:        config.StartHeight,

		pendingChanges: containers.NewRingQueue[string](maxPendingChanges),
	}, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine cannot initialize while %s", e.currentStage)
	}
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system: %w", core.ErrPlatformInit)
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)
	core.EventRegister(core.EVENT_CODE_REDRAW_REQUESTED, e, e.onEvent)

	if err := e.window.Startup(config.Name, config.StartPosX, config.StartPosY, config.StartWidth, config.StartHeight); err != nil {
		return err
	}
	e.width, e.height = e.window.FramebufferSize()

	if err := e.renderer.Initialize(&metadata.RendererBackendConfig{
		ApplicationName: config.Name,
		Width:           e.width,
		Height:          e.height,
		ClearColour:     math.NewVec4(config.ClearColour[0], config.ClearColour[1], config.ClearColour[2], config.ClearColour[3]),
	}); err != nil {
		return err
	}

	// initialize subsystems
	if err := e.assetManager.Initialize(config.AssetRoot, config.HotReload); err != nil {
		core.LogError("failed to index assets in `%s`: %s", config.AssetRoot, err)
		return err
	}
	if err := e.systemManager.Initialize(e.gameInstance.Shapes...); err != nil {
		return err
	}

	e.gameInstance.SystemManager = e.systemManager
	e.gameInstance.Renderer = e.renderer
	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized (%dx%d).", config.Name, e.width, e.height)
	return nil
}

/**
 * @brief Runs the frame loop until the window closes, a quit event arrives
 * or ctx is cancelled. A frame is only drawn when something changed; the
 * first frame is always drawn.
 */
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run while %s: %w", e.currentStage, core.ErrNotInitialized)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.isDirty = true

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("%s, requesting quit.", ctx.Err())
			core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		default:
		}

		e.drainAssetChanges()
		if e.systemManager.Update() > 0 {
			e.isDirty = true
		}

		drawn := false
		if !e.isSuspended {
			// Update clock and get delta time.
			e.clock.Update()
			currentTime := e.clock.Elapsed()
			delta := currentTime - e.lastTime

			if e.gameInstance.FnUpdate != nil {
				if err := e.gameInstance.FnUpdate(delta); err != nil {
					core.LogError("Game update failed, shutting down: %s", err)
					return err
				}
			}

			if e.isDirty {
				if err := e.drawFrame(delta); err != nil {
					return err
				}
				drawn = true
				e.clock.Update()
				if e.metrics.Update(e.clock.Elapsed() - currentTime) {
					core.LogDebug("%.0f fps, %.3f ms/frame", e.metrics.FPS(), e.metrics.FrameTime())
				}
			}

			// NOTE: Input update/state copying should always be handled
			// after any input should be recorded; I.E. before this line.
			core.InputUpdate(delta)

			e.lastTime = currentTime
		}

		if err := e.window.PumpMessages(); err != nil {
			core.LogError("window system failed: %s", err)
			return err
		}
		if e.window.ShouldClose() {
			e.isRunning = false
		}
		if e.isRunning && !drawn {
			time.Sleep(idleWait)
		}
	}
	return nil
}

func (e *Engine) drawFrame(delta float64) error {
	if err := e.renderer.BeginFrame(delta); err != nil {
		core.LogError("begin frame failed: %s", err)
		return err
	}
	if e.gameInstance.FnRender != nil {
		if err := e.gameInstance.FnRender(delta); err != nil {
			core.LogError("Game render failed, shutting down: %s", err)
			// the frame must still be closed
			if endErr := e.renderer.EndFrame(delta); endErr != nil {
				core.LogError("end frame failed: %s", endErr)
			}
			return err
		}
	}
	if err := e.renderer.EndFrame(delta); err != nil {
		core.LogError("end frame failed: %s", err)
		return err
	}
	e.isDirty = false
	return nil
}

// drainAssetChanges hands every file changed since the last iteration to
// the system that owns it. Editors often write a file several times in a
// row; each path is reloaded once.
func (e *Engine) drainAssetChanges() {
	samePath := func(a, b string) bool { return a == b }
collect:
	for {
		select {
		case change := <-e.assetManager.Changes():
			if e.pendingChanges.Contains(change.Path, samePath) {
				continue
			}
			if err := e.pendingChanges.Enqueue(change.Path); err != nil {
				core.LogWarn("too many asset changes, dropping %s", change.Path)
			}
		default:
			break collect
		}
	}

	for !e.pendingChanges.IsEmpty() {
		path, _ := e.pendingChanges.Dequeue()
		core.LogDebug("asset changed: %s", path)
		e.systemManager.OnAssetChanged(path)
		e.isDirty = true
	}
}

/**
 * @brief Releases everything in reverse order of creation: game, systems,
 * renderer, assets, window and finally the event and input state.
 */
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageTerminated {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs,
		e.systemManager.Shutdown(),
		e.renderer.Shutdown(),
		e.assetManager.Shutdown(),
	)
	e.window.Shutdown()
	errs = append(errs,
		core.EventSystemShutdown(),
		core.InputShutdown(),
	)

	e.currentStage = EngineStageTerminated
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

// FrameNumber returns how many frames have been presented.
func (e *Engine) FrameNumber() uint64 {
	return e.renderer.FrameNumber()
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		e.window.RequestClose()
		return true
	case core.EVENT_CODE_REDRAW_REQUESTED:
		e.isDirty = true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	switch ke.KeyCode {
	case core.KEY_ESCAPE, core.KEY_Q:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight

	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	e.isDirty = true
	return false
}
