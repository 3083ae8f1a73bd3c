package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/stilllife/engine/core"
)

const (
	contextVersionMajor = 4
	contextVersionMinor = 1
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window *glfw.Window
}

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

/**
 * @brief Opens the window and makes its OpenGL 4.1 core context current on
 * the calling thread.
 */
func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return fmt.Errorf("%w: %s", core.ErrPlatformInit, err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, contextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, contextVersionMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return fmt.Errorf("%w: %s", core.ErrWindowCreate, err)
	}
	window.MakeContextCurrent()
	p.Window = window

	major := window.GetAttrib(glfw.ContextVersionMajor)
	minor := window.GetAttrib(glfw.ContextVersionMinor)
	if major < contextVersionMajor || (major == contextVersionMajor && minor < contextVersionMinor) {
		p.Shutdown()
		return fmt.Errorf("got %d.%d, need %d.%d: %w", major, minor, contextVersionMajor, contextVersionMinor, core.ErrContextVersion)
	}
	core.LogInfo("OpenGL context %d.%d created.", major, minor)

	glfw.SwapInterval(1)

	p.Window.SetKeyCallback(keyCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetCloseCallback(closeCallback)
	p.Window.SetRefreshCallback(refreshCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
}

/**
 * @brief Dispatches pending window events to the callbacks. GLFW reports
 * unexpected errors by panicking with a *glfw.Error; those are turned into
 * core.ErrPlatformRuntime.
 */
func (p *Platform) PumpMessages() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverPlatformError(r)
		}
	}()
	glfw.PollEvents()
	return nil
}

func (p *Platform) SwapBuffers() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverPlatformError(r)
		}
	}()
	p.Window.SwapBuffers()
	return nil
}

func (p *Platform) ShouldClose() bool {
	return p.Window == nil || p.Window.ShouldClose()
}

func (p *Platform) RequestClose() {
	if p.Window != nil {
		p.Window.SetShouldClose(true)
	}
}

func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func recoverPlatformError(r interface{}) error {
	if e, ok := r.(error); ok {
		var glfwErr *glfw.Error
		if errors.As(e, &glfwErr) {
			core.LogError("glfw error %d: %s", glfwErr.Code, glfwErr.Desc)
		} else {
			core.LogError("platform error: %s", e)
		}
		return fmt.Errorf("%w: %s", core.ErrPlatformRuntime, e)
	}
	panic(r)
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code := translateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	core.InputProcessKey(code, action == glfw.Press)
}

func translateKey(key glfw.Key) core.KeyCode {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return core.KEY_A + core.KeyCode(key-glfw.KeyA)
	case key == glfw.KeyEscape:
		return core.KEY_ESCAPE
	case key == glfw.KeyEnter:
		return core.KEY_ENTER
	case key == glfw.KeySpace:
		return core.KEY_SPACE
	}
	return core.KEY_UNKNOWN
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.SystemEvent{
			WindowWidth:  uint32(width),
			WindowHeight: uint32(height),
		},
	})
}

func closeCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
}

func refreshCallback(w *glfw.Window) {
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_REDRAW_REQUESTED})
}
