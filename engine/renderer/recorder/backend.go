// Package recorder provides a renderer backend that keeps every call in
// memory instead of talking to a graphics API. It is used to render frames
// headlessly and to inspect exactly what a frame asked the GPU to do.
package recorder

import (
	"fmt"
	"maps"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type UniformWrite struct {
	Shader string
	Name   string
	Value  interface{}
}

type DrawCall struct {
	Shader   string
	Geometry string
	Shape    metadata.ShapeKind
	// Uniforms holds the value of every uniform of the program at draw time.
	Uniforms map[string]interface{}
	// Textures maps texture unit to texture id at draw time.
	Textures map[uint32]uint32
}

type program struct {
	name     string
	uniforms map[string]interface{}
}

type Backend struct {
	// Strip lists, per program name, uniforms the fake linker drops.
	Strip       map[string][]string
	// FailCompile makes ShaderCreate fail for the named programs.
	FailCompile map[string]bool

	Writes   []UniformWrite
	Draws    []DrawCall
	Frames   int
	Textures map[uint32]*metadata.Texture

	nextID   uint32
	programs map[uint32]*program
	current  *program
	bound    map[uint32]uint32
	inFrame  bool
	width    uint32
	height   uint32
}

func New() *Backend {
	return &Backend{
		Strip:       make(map[string][]string),
		FailCompile: make(map[string]bool),
		Textures:    make(map[uint32]*metadata.Texture),
		programs:    make(map[uint32]*program),
		bound:       make(map[uint32]uint32),
	}
}

// Reset forgets recorded writes and draws, keeping created resources.
func (b *Backend) Reset() {
	b.Writes = nil
	b.Draws = nil
}

// WritesFor returns the uniform writes issued against the named program.
func (b *Backend) WritesFor(shader string) []UniformWrite {
	var out []UniformWrite
	for _, w := range b.Writes {
		if w.Shader == shader {
			out = append(out, w)
		}
	}
	return out
}

func (b *Backend) Size() (uint32, uint32) {
	return b.width, b.height
}

func (b *Backend) newID() uint32 {
	b.nextID++
	return b.nextID
}

func (b *Backend) Initialize(config *metadata.RendererBackendConfig) error {
	b.width, b.height = config.Width, config.Height
	return nil
}

func (b *Backend) Shutdown() error {
	b.current = nil
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.width, b.height = width, height
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	if b.inFrame {
		return fmt.Errorf("BeginFrame called twice without EndFrame")
	}
	b.inFrame = true
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	if !b.inFrame {
		return fmt.Errorf("EndFrame called without BeginFrame")
	}
	b.inFrame = false
	b.Frames++
	return nil
}

func (b *Backend) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	expected := int(texture.Width) * int(texture.Height) * int(texture.ChannelCount)
	if len(pixels) != expected {
		return fmt.Errorf("texture `%s`: got %d bytes, want %d", texture.Name, len(pixels), expected)
	}
	texture.ID = b.newID()
	b.Textures[texture.ID] = texture
	return nil
}

func (b *Backend) TextureDestroy(texture *metadata.Texture) error {
	delete(b.Textures, texture.ID)
	texture.ID = metadata.NoTextureID
	return nil
}

func (b *Backend) TextureBind(texture *metadata.Texture, unit uint32) error {
	if _, ok := b.Textures[texture.ID]; !ok {
		return fmt.Errorf("texture `%s` was never created", texture.Name)
	}
	b.bound[unit] = texture.ID
	return nil
}

func (b *Backend) GeometryCreate(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) error {
	for _, i := range indices {
		if int(i) >= len(vertices) {
			return fmt.Errorf("geometry `%s`: index %d out of range", geometry.Name, i)
		}
	}
	geometry.ID = b.newID()
	return nil
}

func (b *Backend) GeometryDestroy(geometry *metadata.Geometry) error {
	geometry.ID = 0
	return nil
}

func (b *Backend) GeometryDraw(geometry *metadata.Geometry) error {
	if b.current == nil {
		return fmt.Errorf("draw without a program: %w", core.ErrNotInitialized)
	}
	b.Draws = append(b.Draws, DrawCall{
		Shader:   b.current.name,
		Geometry: geometry.Name,
		Shape:    geometry.Shape,
		Uniforms: maps.Clone(b.current.uniforms),
		Textures: maps.Clone(b.bound),
	})
	return nil
}

func (b *Backend) ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig, sources map[metadata.ShaderStage]string) error {
	if b.FailCompile[config.Name] {
		return fmt.Errorf("shader `%s`: %w", config.Name, core.ErrShaderCompile)
	}
	for _, stage := range config.Stages {
		if _, ok := sources[stage.Stage]; !ok {
			return fmt.Errorf("shader `%s` has no %s source: %w", config.Name, stage.Stage, core.ErrShaderCompile)
		}
	}

	stripped := make(map[string]bool)
	for _, name := range b.Strip[config.Name] {
		stripped[name] = true
	}

	location := int32(0)
	for _, uc := range config.Uniforms {
		u := &metadata.ShaderUniform{
			Name:     uc.Name,
			Type:     uc.Type,
			Required: uc.Required,
			Location: -1,
			Presence: metadata.UniformAbsent,
		}
		if !stripped[uc.Name] {
			u.Location = location
			u.Presence = metadata.UniformPresent
			location++
		}
		shader.Uniforms[uc.Name] = u
	}

	shader.ID = b.newID()
	b.programs[shader.ID] = &program{
		name:     config.Name,
		uniforms: make(map[string]interface{}),
	}
	return nil
}

func (b *Backend) ShaderDestroy(shader *metadata.Shader) error {
	if p, ok := b.programs[shader.ID]; ok && p == b.current {
		b.current = nil
	}
	delete(b.programs, shader.ID)
	return nil
}

func (b *Backend) ShaderUse(shader *metadata.Shader) error {
	p, ok := b.programs[shader.ID]
	if !ok {
		return fmt.Errorf("shader `%s` was never created: %w", shader.Name, core.ErrShaderNotFound)
	}
	b.current = p
	return nil
}

func (b *Backend) SetUniform(shader *metadata.Shader, uniform *metadata.ShaderUniform, value interface{}) error {
	p, ok := b.programs[shader.ID]
	if !ok {
		return fmt.Errorf("shader `%s` was never created: %w", shader.Name, core.ErrShaderNotFound)
	}
	if err := checkType(uniform, value); err != nil {
		return err
	}
	p.uniforms[uniform.Name] = value
	b.Writes = append(b.Writes, UniformWrite{Shader: shader.Name, Name: uniform.Name, Value: value})
	return nil
}

func checkType(uniform *metadata.ShaderUniform, value interface{}) error {
	ok := false
	switch uniform.Type {
	case metadata.ShaderUniformTypeFloat32:
		_, ok = value.(float32)
	case metadata.ShaderUniformTypeFloat32_3:
		_, ok = value.(math.Vec3)
	case metadata.ShaderUniformTypeFloat32_4:
		_, ok = value.(math.Vec4)
	case metadata.ShaderUniformTypeInt32, metadata.ShaderUniformTypeSampler:
		_, ok = value.(int32)
	case metadata.ShaderUniformTypeMatrix4:
		_, ok = value.(math.Mat4)
	}
	if !ok {
		return fmt.Errorf("uniform `%s`: unexpected value type %T", uniform.Name, value)
	}
	return nil
}
