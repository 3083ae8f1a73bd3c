package renderer

import (
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

/**
 * @brief The graphics API specific half of the renderer. Every method is
 * called from the thread that owns the graphics context.
 */
type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error

	TextureCreate(pixels []uint8, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture) error
	TextureBind(texture *metadata.Texture, unit uint32) error

	GeometryCreate(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error
	GeometryDestroy(geometry *metadata.Geometry) error
	GeometryDraw(geometry *metadata.Geometry) error

	// ShaderCreate compiles and links the stages and resolves every uniform
	// declared in config into shader.Uniforms, present or not.
	ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig, sources map[metadata.ShaderStage]string) error
	ShaderDestroy(shader *metadata.Shader) error
	ShaderUse(shader *metadata.Shader) error
	// SetUniform writes value to a uniform that is present in the program.
	// Supported values: float32, int32, math.Vec3, math.Vec4, math.Mat4.
	SetUniform(shader *metadata.Shader, uniform *metadata.ShaderUniform, value interface{}) error
}
