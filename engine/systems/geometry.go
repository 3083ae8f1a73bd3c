package systems

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type GeometrySystemConfig struct {
	/** @brief The number of segments around the y axis of curved shapes. */
	Slices uint32
	/** @brief The number of rings from pole to pole of the sphere. */
	Stacks uint32
}

/**
 * @brief Owns one buffer set per canonical shape. Buffer sets are created
 * once at start up and shared by every instance of that shape.
 */
type GeometrySystem struct {
	Config *GeometrySystemConfig
	// Registered buffer sets keyed by shape.
	RegisteredGeometries map[metadata.ShapeKind]*metadata.Geometry
	renderer             *renderer.Renderer
}

func NewGeometrySystem(config *GeometrySystemConfig, r *renderer.Renderer) (*GeometrySystem, error) {
	if config.Slices < 3 {
		err := fmt.Errorf("func NewGeometrySystem - config.Slices must be >= 3")
		core.LogError(err.Error())
		return nil, err
	}
	if config.Stacks < 2 {
		err := fmt.Errorf("func NewGeometrySystem - config.Stacks must be >= 2")
		core.LogError(err.Error())
		return nil, err
	}
	return &GeometrySystem{
		Config:               config,
		RegisteredGeometries: make(map[metadata.ShapeKind]*metadata.Geometry),
		renderer:             r,
	}, nil
}

// GenerateShapeConfig returns the CPU side mesh for the given shape.
func (gs *GeometrySystem) GenerateShapeConfig(shape metadata.ShapeKind) (*metadata.GeometryConfig, error) {
	switch shape {
	case metadata.ShapeQuad:
		return GenerateQuadConfig(), nil
	case metadata.ShapeTeapot:
		return GenerateTeapotConfig(gs.Config.Slices), nil
	case metadata.ShapeSphere:
		return GenerateSphereConfig(0.5, gs.Config.Slices, gs.Config.Stacks), nil
	case metadata.ShapeCone:
		return GenerateConeConfig(0.5, 1.0, gs.Config.Slices), nil
	case metadata.ShapeCylinder:
		return GenerateCylinderConfig(0.5, 1.0, gs.Config.Slices), nil
	case metadata.ShapeCube:
		return GenerateCubeConfig(1.0, 1.0, 1.0), nil
	}
	return nil, fmt.Errorf("shape %d: %w", shape, core.ErrGeometryNotFound)
}

/**
 * @brief Creates the buffer sets for the given shapes. Shapes that already
 * have one are skipped.
 */
func (gs *GeometrySystem) Initialize(shapes ...metadata.ShapeKind) error {
	for _, shape := range shapes {
		if _, ok := gs.RegisteredGeometries[shape]; ok {
			continue
		}
		config, err := gs.GenerateShapeConfig(shape)
		if err != nil {
			core.LogError(err.Error())
			return err
		}
		geometry, err := gs.renderer.GeometryCreate(config)
		if err != nil {
			err = fmt.Errorf("failed to create geometry `%s`: %w", config.Name, err)
			core.LogError(err.Error())
			return err
		}
		gs.RegisteredGeometries[shape] = geometry
		core.LogDebug("geometry `%s` created (%d vertices, %d indices)", geometry.Name, geometry.VertexCount, geometry.IndexCount)
	}
	return nil
}

// Acquire returns the buffer set of the given shape.
func (gs *GeometrySystem) Acquire(shape metadata.ShapeKind) (*metadata.Geometry, error) {
	g, ok := gs.RegisteredGeometries[shape]
	if !ok {
		return nil, fmt.Errorf("shape %s: %w", shape, core.ErrGeometryNotFound)
	}
	return g, nil
}

func (gs *GeometrySystem) Shutdown() error {
	for shape, g := range gs.RegisteredGeometries {
		if err := gs.renderer.GeometryDestroy(g); err != nil {
			return err
		}
		delete(gs.RegisteredGeometries, shape)
	}
	return nil
}
