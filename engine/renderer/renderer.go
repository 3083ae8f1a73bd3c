package renderer

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

/**
 * @brief The API agnostic front of the renderer. Systems talk to this type,
 * it forwards to the backend and owns the uniform lookup rules.
 */
type Renderer struct {
	backend RendererBackend
	frame   metadata.FrameData
	current *metadata.Shader
}

func NewRenderer(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(config *metadata.RendererBackendConfig) error {
	if err := r.backend.Initialize(config); err != nil {
		core.LogError("renderer backend failed to initialize: %s", err)
		return err
	}
	core.LogInfo("renderer initialized (%dx%d).", config.Width, config.Height)
	return nil
}

func (r *Renderer) Shutdown() error {
	r.current = nil
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	r.frame.DeltaTime = deltaTime
	return r.backend.BeginFrame(deltaTime)
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	if err := r.backend.EndFrame(deltaTime); err != nil {
		return err
	}
	r.frame.FrameNumber++
	return nil
}

// FrameNumber returns how many frames have been presented.
func (r *Renderer) FrameNumber() uint64 {
	return r.frame.FrameNumber
}

func (r *Renderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	return r.backend.TextureCreate(pixels, texture)
}

func (r *Renderer) TextureDestroy(texture *metadata.Texture) error {
	if !texture.IsLoaded() {
		return nil
	}
	return r.backend.TextureDestroy(texture)
}

// TextureBind binds texture to the given unit. Binding the sentinel is a no-op.
func (r *Renderer) TextureBind(texture *metadata.Texture, unit uint32) error {
	if !texture.IsLoaded() {
		return nil
	}
	return r.backend.TextureBind(texture, unit)
}

func (r *Renderer) GeometryCreate(config *metadata.GeometryConfig) (*metadata.Geometry, error) {
	if len(config.Vertices) == 0 || len(config.Indices) == 0 {
		return nil, fmt.Errorf("geometry `%s` has no vertices or indices", config.Name)
	}
	g := &metadata.Geometry{
		Name:        config.Name,
		Shape:       config.Shape,
		VertexCount: uint32(len(config.Vertices)),
		IndexCount:  uint32(len(config.Indices)),
		Extents:     math.GeometryExtents(config.Vertices),
	}
	if err := r.backend.GeometryCreate(g, config.Vertices, config.Indices); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Renderer) GeometryDestroy(geometry *metadata.Geometry) error {
	return r.backend.GeometryDestroy(geometry)
}

func (r *Renderer) GeometryDraw(geometry *metadata.Geometry) error {
	if r.current == nil {
		return fmt.Errorf("draw of `%s` without a program in use: %w", geometry.Name, core.ErrNotInitialized)
	}
	return r.backend.GeometryDraw(geometry)
}

func (r *Renderer) ShaderCreate(config *metadata.ShaderConfig, sources map[metadata.ShaderStage]string) (*metadata.Shader, error) {
	shader := &metadata.Shader{
		Name:     config.Name,
		Uniforms: make(map[string]*metadata.ShaderUniform, len(config.Uniforms)),
		State:    metadata.SHADER_STATE_NOT_CREATED,
	}
	if err := r.backend.ShaderCreate(shader, config, sources); err != nil {
		return nil, err
	}
	shader.State = metadata.SHADER_STATE_INITIALIZED
	return shader, nil
}

func (r *Renderer) ShaderDestroy(shader *metadata.Shader) error {
	if shader.State != metadata.SHADER_STATE_INITIALIZED {
		return nil
	}
	if r.current == shader {
		r.current = nil
	}
	if err := r.backend.ShaderDestroy(shader); err != nil {
		return err
	}
	shader.State = metadata.SHADER_STATE_DESTROYED
	return nil
}

func (r *Renderer) ShaderUse(shader *metadata.Shader) error {
	if shader.State != metadata.SHADER_STATE_INITIALIZED {
		return fmt.Errorf("shader `%s` is not initialized: %w", shader.Name, core.ErrNotInitialized)
	}
	if err := r.backend.ShaderUse(shader); err != nil {
		return err
	}
	r.current = shader
	return nil
}

/**
 * @brief Writes a uniform by name. Names outside the program contract are an
 * error; declared uniforms the program does not expose are skipped.
 */
func (r *Renderer) SetUniform(shader *metadata.Shader, name string, value interface{}) error {
	u, err := shader.Uniform(name)
	if err != nil {
		return err
	}
	if u.Presence == metadata.UniformAbsent {
		return nil
	}
	return r.backend.SetUniform(shader, u, value)
}
