package stilllife

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/components"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
	"github.com/spaghettifunk/stilllife/engine/systems"
)

/** @brief Which program and which uniform setup an instance is drawn with. */
type ShadingMode uint8

const (
	ShadingPhong ShadingMode = iota
	ShadingTexture
)

func (m ShadingMode) String() string {
	if m == ShadingTexture {
		return "texture"
	}
	return "phong"
}

/**
 * @brief One placed shape of the scene. Instances are plain values: moving
 * one never affects another.
 */
type Instance struct {
	Name      string
	Shape     metadata.ShapeKind
	Mode      ShadingMode
	Tag       metadata.Tag
	Placement math.Transform
}

// SceneShapes lists every shape the layout draws.
var SceneShapes = []metadata.ShapeKind{
	metadata.ShapeQuad,
	metadata.ShapeTeapot,
	metadata.ShapeSphere,
	metadata.ShapeCone,
	metadata.ShapeCylinder,
}

func place(scale, rotation, translation math.Vec3) math.Transform {
	return math.NewTransform(scale, rotation, translation)
}

func uniform(s float32) math.Vec3 {
	return math.NewVec3(s, s, s)
}

func phong(name string, shape metadata.ShapeKind, tag metadata.Tag, placement math.Transform) Instance {
	return Instance{Name: name, Shape: shape, Mode: ShadingPhong, Tag: tag, Placement: placement}
}

/**
 * @brief Returns the still life in draw order. Grouped objects (the
 * flowers, the plate, the second leaf) are derived from their neighbour's
 * placement, so the order of the list matters.
 */
func Layout() []Instance {
	zero := math.NewVec3Zero()

	table := Instance{
		Name:      "table",
		Shape:     metadata.ShapeQuad,
		Mode:      ShadingTexture,
		Tag:       metadata.ShapeTag(metadata.ShapeQuad),
		Placement: place(uniform(3), math.NewVec3(-90, 0, 0), math.NewVec3(0, -1.75, -0.55)),
	}

	muffinCup := place(math.NewVec3(0.4, 0.2, 0.4), zero, math.NewVec3(-0.1, -0.15, 0))
	plate := muffinCup.WithScale(math.NewVec3(0.7, 0.1, 0.7)).Translated(math.NewVec3(0, -0.1, 0))

	flower1 := place(math.NewVec3(0.35, 0.3, 0.35), math.NewVec3(250, 0, -20), math.NewVec3(0.4, 1, 0))
	flower2 := flower1.Translated(math.NewVec3(0.5, 0.2, 0)).Rotated(math.NewVec3(0, 0, 25))
	flower3 := flower2.Translated(math.NewVec3(-0.8, 0, -0.2)).Rotated(math.NewVec3(0, 0, -65))
	yellowFlower := flower3.Translated(math.NewVec3(0.4, 0.2, -0.3)).Rotated(math.NewVec3(0, 0, 10))

	leaf1 := place(math.NewVec3(0.06, 1, 0.06), math.NewVec3(-10, 0, 10), math.NewVec3(0.5, 0.9, -0.4))
	leaf2 := leaf1.Translated(math.NewVec3(0.1, -0.2, 0)).Rotated(math.NewVec3(-5, 0, -40))

	apple := metadata.MaterialTag(metadata.MaterialApple)
	muffin := metadata.MaterialTag(metadata.MaterialMuffin)
	muffinCupTag := metadata.MaterialTag(metadata.MaterialMuffinCup)
	cup := metadata.MaterialTag(metadata.MaterialCup)
	flower := metadata.MaterialTag(metadata.MaterialFlower)
	yellow := metadata.MaterialTag(metadata.MaterialYellowFlower)
	wood := metadata.MaterialTag(metadata.MaterialWood)
	candle := metadata.MaterialTag(metadata.MaterialCandle)
	vase := metadata.MaterialTag(metadata.MaterialVase)
	leaf := metadata.MaterialTag(metadata.MaterialLeaf)

	return []Instance{
		table,
		phong("apple", metadata.ShapeSphere, apple, place(uniform(0.4), zero, math.NewVec3(1, 0, 0.1))),
		phong("muffin", metadata.ShapeSphere, muffin, place(uniform(0.35), zero, math.NewVec3(-0.1, 0, 0))),
		phong("muffin cup", metadata.ShapeCylinder, muffinCupTag, muffinCup),
		phong("plate", metadata.ShapeCylinder, cup, plate),
		phong("flower 1", metadata.ShapeCone, flower, flower1),
		phong("flower 2", metadata.ShapeCone, flower, flower2),
		phong("flower 3", metadata.ShapeCone, flower, flower3),
		phong("yellow flower", metadata.ShapeCone, yellow, yellowFlower),
		phong("cup", metadata.ShapeCone, cup, place(math.NewVec3(0.5, 0.25, 0.5), math.NewVec3(180, 0, 0), math.NewVec3(-0.6, -0.1, 0))),
		phong("cup base", metadata.ShapeCone, cup, place(math.NewVec3(0.2, 0.3, 0.2), zero, math.NewVec3(-0.6, -0.1, 0))),
		phong("wood", metadata.ShapeCylinder, wood, place(math.NewVec3(0.2, 0.7, 0.2), zero, math.NewVec3(-1.1, -0.1, 0))),
		phong("candle", metadata.ShapeCylinder, candle, place(math.NewVec3(0.15, 0.5, 0.15), zero, math.NewVec3(-1.1, 0.5, 0))),
		phong("vase base", metadata.ShapeCylinder, vase, place(math.NewVec3(0.5, 0.6, 0.5), zero, math.NewVec3(0.5, 0, -0.4))),
		phong("vase middle", metadata.ShapeSphere, vase, place(uniform(0.7), math.NewVec3(0, 0, 180), math.NewVec3(0.5, 0.4, -0.4))),
		phong("vase top", metadata.ShapeCone, vase, place(uniform(0.5), math.NewVec3(180, 0, 0), math.NewVec3(0.5, 0.6, -0.4))),
		phong("teapot", metadata.ShapeTeapot, metadata.ShapeTag(metadata.ShapeTeapot), place(math.NewVec3(1, 1.5, 1), math.NewVec3(0, 180, 0), math.NewVec3(-0.4, -0.25, -1))),
		phong("leaf 1", metadata.ShapeCylinder, leaf, leaf1),
		phong("leaf 2", metadata.ShapeCylinder, leaf, leaf2),
	}
}

/**
 * @brief Draws instances: for each one it selects the program, lets the
 * material or texture system write the surface uniforms, uploads the
 * transforms and issues one draw on the shape's shared buffer set.
 */
type Composer struct {
	renderer  *renderer.Renderer
	shaders   *systems.ShaderSystem
	materials *systems.MaterialSystem
	textures  *systems.TextureSystem
	geometry  *systems.GeometrySystem
	camera    *components.Camera
	aspect    float32
}

func NewComposer(sm *systems.SystemManager, r *renderer.Renderer) *Composer {
	return &Composer{
		renderer:  r,
		shaders:   sm.ShaderSystem,
		materials: sm.MaterialSystem,
		textures:  sm.TextureSystem,
		geometry:  sm.GeometrySystem,
		camera:    sm.CameraSystem.GetDefault(),
		aspect:    1.0,
	}
}

// SetViewport updates the aspect ratio of the projection.
func (c *Composer) SetViewport(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

func (c *Composer) Camera() *components.Camera {
	return c.camera
}

/**
 * @brief Checks every instance can be drawn: its program and buffer set
 * exist and, for Phong instances, the material table has its tag.
 */
func (c *Composer) Validate(instances []Instance) error {
	for _, inst := range instances {
		if _, err := c.program(inst.Mode); err != nil {
			return fmt.Errorf("instance `%s`: %w", inst.Name, err)
		}
		if _, err := c.geometry.Acquire(inst.Shape); err != nil {
			return fmt.Errorf("instance `%s`: %w", inst.Name, err)
		}
		if inst.Mode == ShadingPhong {
			if err := c.materials.Covers(inst.Tag); err != nil {
				return fmt.Errorf("instance `%s`: %w", inst.Name, err)
			}
		}
	}
	return nil
}

func (c *Composer) program(mode ShadingMode) (*metadata.Shader, error) {
	if mode == ShadingTexture {
		return c.shaders.Get(metadata.BUILTIN_SHADER_NAME_TEXTURE)
	}
	return c.shaders.Get(metadata.BUILTIN_SHADER_NAME_PHONG)
}

// RenderFrame issues exactly one draw per instance, in order.
func (c *Composer) RenderFrame(instances []Instance) error {
	view := c.camera.GetView()
	projection := c.camera.GetProjection(c.aspect)
	for _, inst := range instances {
		if err := c.draw(inst, view, projection); err != nil {
			core.LogError("failed to draw `%s`: %s", inst.Name, err)
			return err
		}
	}
	return nil
}

func (c *Composer) draw(inst Instance, view, projection math.Mat4) error {
	shader, err := c.program(inst.Mode)
	if err != nil {
		return err
	}
	if err := c.renderer.ShaderUse(shader); err != nil {
		return err
	}

	if inst.Mode == ShadingTexture {
		err = c.textures.Apply(shader, inst.Tag)
	} else {
		err = c.materials.Apply(shader, inst.Tag)
	}
	if err != nil {
		return err
	}

	if err := c.renderer.SetUniform(shader, metadata.UniformModel, inst.Placement.Model()); err != nil {
		return err
	}
	if err := c.renderer.SetUniform(shader, metadata.UniformView, view); err != nil {
		return err
	}
	if err := c.renderer.SetUniform(shader, metadata.UniformProjection, projection); err != nil {
		return err
	}

	geometry, err := c.geometry.Acquire(inst.Shape)
	if err != nil {
		return err
	}
	return c.renderer.GeometryDraw(geometry)
}
