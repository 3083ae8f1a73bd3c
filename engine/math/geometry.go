package math

import "github.com/chewxy/math32"

// GeometryExtents returns the axis aligned bounds of the vertex positions.
func GeometryExtents(vertices []Vertex3D) Extents3D {
	if len(vertices) == 0 {
		return Extents3D{}
	}
	ext := Extents3D{
		Min: NewVec3(math32.Inf(1), math32.Inf(1), math32.Inf(1)),
		Max: NewVec3(math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)),
	}
	for _, v := range vertices {
		p := v.Position
		ext.Min = NewVec3(math32.Min(ext.Min.X, p.X), math32.Min(ext.Min.Y, p.Y), math32.Min(ext.Min.Z, p.Z))
		ext.Max = NewVec3(math32.Max(ext.Max.X, p.X), math32.Max(ext.Max.Y, p.Y), math32.Max(ext.Max.Z, p.Z))
	}
	return ext
}

// GeometryGenerateNormals writes a face normal into every vertex of each
// triangle. Only meaningful for meshes that do not share vertices between faces.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)
		normal := edge1.Cross(edge2).Normalized()

		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}
