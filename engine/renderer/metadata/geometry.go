package metadata

import "github.com/spaghettifunk/stilllife/engine/math"

/**
 * @brief Represents the configuration for a geometry: the CPU side mesh
 * of one canonical shape, ready to be uploaded.
 */
type GeometryConfig struct {
	Name     string
	Shape    ShapeKind
	Vertices []math.Vertex3D
	Indices  []uint32
}

/**
 * @brief Represents an uploaded geometry (a buffer set). Many scene
 * instances draw the same geometry with different transforms.
 */
type Geometry struct {
	/** @brief The backend identifier (vertex array object for OpenGL). */
	ID           uint32
	Name         string
	Shape        ShapeKind
	VertexCount  uint32
	IndexCount   uint32
	Extents      math.Extents3D
	/** @brief An opaque pointer to hold renderer API specific data. */
	InternalData interface{}
}
