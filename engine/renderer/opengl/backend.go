// Package opengl implements the renderer backend on top of an OpenGL 4.1
// core context. Every call must happen on the thread that owns the context.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/platform"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type OpenGLRenderer struct {
	platform          *platform.Platform
	FrameNumber       uint64
	clearColour       math.Vec4
	framebufferWidth  uint32
	framebufferHeight uint32
	initialized       bool
}

func New(p *platform.Platform) *OpenGLRenderer {
	return &OpenGLRenderer{
		platform:    p,
		FrameNumber: 0,
	}
}

func (r *OpenGLRenderer) Initialize(config *metadata.RendererBackendConfig) error {
	if err := gl.Init(); err != nil {
		core.LogError("failed to load OpenGL functions: %s", err)
		return fmt.Errorf("%w: %s", core.ErrPlatformInit, err)
	}
	core.LogInfo("OpenGL %s, GLSL %s, %s",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)))

	r.clearColour = config.ClearColour
	r.framebufferWidth = config.Width
	r.framebufferHeight = config.Height
	if r.platform != nil && r.platform.Window != nil {
		// the framebuffer is larger than the window on high-dpi displays
		r.framebufferWidth, r.framebufferHeight = r.platform.FramebufferSize()
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(r.clearColour.X, r.clearColour.Y, r.clearColour.Z, r.clearColour.W)
	gl.Viewport(0, 0, int32(r.framebufferWidth), int32(r.framebufferHeight))

	r.initialized = true
	return checkError("initialize")
}

func (r *OpenGLRenderer) Shutdown() error {
	// the function pointers only exist after gl.Init
	if !r.initialized {
		return nil
	}
	gl.UseProgram(0)
	r.initialized = false
	return nil
}

func (r *OpenGLRenderer) Resized(width, height uint32) error {
	r.framebufferWidth = width
	r.framebufferHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (r *OpenGLRenderer) BeginFrame(deltaTime float64) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (r *OpenGLRenderer) EndFrame(deltaTime float64) error {
	if err := checkError("end frame"); err != nil {
		core.LogWarn("%s", err)
	}
	r.FrameNumber++
	if r.platform == nil {
		return nil
	}
	return r.platform.SwapBuffers()
}

// checkError drains the GL error queue and reports the first error seen.
func checkError(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("%s: gl error 0x%04X", op, first)
	}
	return nil
}
