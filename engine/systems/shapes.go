package systems

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

/** @brief The tessellation used for the canonical shapes. */
const (
	DefaultShapeSlices uint32 = 32
	DefaultShapeStacks uint32 = 16
)

/**
 * @brief A point on the outline of a surface of revolution, with the
 * outward normal of the outline at that point. r is the distance from the
 * y axis.
 */
type profilePoint struct {
	r, y   float32
	nr, ny float32
}

/**
 * @brief Generates the configuration for a unit quad in the xy plane,
 * facing +z, with texture coordinates covering [0, 1].
 */
func GenerateQuadConfig() *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name:     metadata.ShapeQuad.String(),
		Shape:    metadata.ShapeQuad,
		Vertices: make([]math.Vertex3D, 4),
	}

	normal := math.NewVec3(0.0, 0.0, 1.0)
	config.Vertices[0] = math.Vertex3D{Position: math.NewVec3(-0.5, -0.5, 0), Normal: normal, Texcoord: math.NewVec2(0, 0)} // 2    1
	config.Vertices[1] = math.Vertex3D{Position: math.NewVec3(0.5, 0.5, 0), Normal: normal, Texcoord: math.NewVec2(1, 1)}   //
	config.Vertices[2] = math.Vertex3D{Position: math.NewVec3(-0.5, 0.5, 0), Normal: normal, Texcoord: math.NewVec2(0, 1)}  //
	config.Vertices[3] = math.Vertex3D{Position: math.NewVec3(0.5, -0.5, 0), Normal: normal, Texcoord: math.NewVec2(1, 0)}  // 0    3

	// counter-clockwise
	config.Indices = []uint32{0, 1, 2, 0, 3, 1}
	return config
}

func GenerateCubeConfig(width, height, depth float32) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}

	hw, hh, hd := width*0.5, height*0.5, depth*0.5

	type face struct {
		normal     math.Vec3
		u, v       math.Vec3
		halfU      float32
		halfV      float32
		halfNormal float32
	}
	faces := []face{
		{math.NewVec3(0, 0, 1), math.NewVec3(1, 0, 0), math.NewVec3(0, 1, 0), hw, hh, hd},   // front
		{math.NewVec3(0, 0, -1), math.NewVec3(-1, 0, 0), math.NewVec3(0, 1, 0), hw, hh, hd}, // back
		{math.NewVec3(-1, 0, 0), math.NewVec3(0, 0, 1), math.NewVec3(0, 1, 0), hd, hh, hw},  // left
		{math.NewVec3(1, 0, 0), math.NewVec3(0, 0, -1), math.NewVec3(0, 1, 0), hd, hh, hw},  // right
		{math.NewVec3(0, -1, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 0, 1), hw, hd, hh},  // bottom
		{math.NewVec3(0, 1, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 0, -1), hw, hd, hh},  // top
	}

	config := &metadata.GeometryConfig{
		Name:     metadata.ShapeCube.String(),
		Shape:    metadata.ShapeCube,
		Vertices: make([]math.Vertex3D, 0, 4*6),
		Indices:  make([]uint32, 0, 6*6),
	}
	corners := [4][2]float32{{-1, -1}, {1, 1}, {-1, 1}, {1, -1}}
	for i, f := range faces {
		centre := f.normal.MulScalar(f.halfNormal)
		for _, c := range corners {
			position := centre.Add(f.u.MulScalar(c[0] * f.halfU)).Add(f.v.MulScalar(c[1] * f.halfV))
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: position,
				Normal:   f.normal,
				Texcoord: math.NewVec2((c[0]+1)*0.5, (c[1]+1)*0.5),
			})
		}
		offset := uint32(i * 4)
		config.Indices = append(config.Indices, offset+0, offset+1, offset+2, offset+0, offset+3, offset+1)
	}
	return config
}

// GenerateSphereConfig builds a UV sphere centred on the origin.
func GenerateSphereConfig(radius float32, slices, stacks uint32) *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name:  metadata.ShapeSphere.String(),
		Shape: metadata.ShapeSphere,
	}
	profile := make([]profilePoint, 0, stacks+1)
	for k := uint32(0); k <= stacks; k++ {
		phi := -math.K_HALF_PI + math.K_PI*float32(k)/float32(stacks)
		c, s := math32.Cos(phi), math32.Sin(phi)
		profile = append(profile, profilePoint{r: radius * c, y: radius * s, nr: c, ny: s})
	}
	appendLathe(config, profile, slices)
	return config
}

// GenerateCylinderConfig builds a capped cylinder along y, centred on the origin.
func GenerateCylinderConfig(radius, height float32, slices uint32) *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name:  metadata.ShapeCylinder.String(),
		Shape: metadata.ShapeCylinder,
	}
	half := height * 0.5
	appendLathe(config, []profilePoint{
		{r: radius, y: -half, nr: 1, ny: 0},
		{r: radius, y: half, nr: 1, ny: 0},
	}, slices)
	appendDisk(config, -half, radius, slices, false)
	appendDisk(config, half, radius, slices, true)
	return config
}

// GenerateConeConfig builds a cone with its base at -height/2 and apex at +height/2.
func GenerateConeConfig(radius, height float32, slices uint32) *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name:  metadata.ShapeCone.String(),
		Shape: metadata.ShapeCone,
	}
	half := height * 0.5
	slant := math32.Sqrt(height*height + radius*radius)
	nr, ny := height/slant, radius/slant
	appendLathe(config, []profilePoint{
		{r: radius, y: -half, nr: nr, ny: ny},
		{r: 0, y: half, nr: nr, ny: ny},
	}, slices)
	appendDisk(config, -half, radius, slices, false)
	return config
}

/**
 * @brief Builds a teapot from three parts: a body of revolution with a
 * lid and knob, a curved spout and a handle. The result fits roughly in
 * a unit box centred on the origin, spout towards +x.
 */
func GenerateTeapotConfig(slices uint32) *metadata.GeometryConfig {
	config := &metadata.GeometryConfig{
		Name:  metadata.ShapeTeapot.String(),
		Shape: metadata.ShapeTeapot,
	}

	const centreY = 0.43
	outline := [][2]float32{
		{0.00, 0.00}, {0.30, 0.00}, {0.42, 0.05}, {0.50, 0.20}, {0.52, 0.35},
		{0.48, 0.50}, {0.40, 0.60}, {0.30, 0.65}, {0.28, 0.66}, {0.20, 0.70},
		{0.10, 0.74}, {0.05, 0.76}, {0.06, 0.80}, {0.05, 0.84}, {0.00, 0.86},
	}
	profile := make([]profilePoint, len(outline))
	for i := range outline {
		prev, next := outline[max(i-1, 0)], outline[min(i+1, len(outline)-1)]
		dr, dy := next[0]-prev[0], next[1]-prev[1]
		length := math32.Sqrt(dr*dr + dy*dy)
		profile[i] = profilePoint{
			r:  outline[i][0],
			y:  outline[i][1] - centreY,
			nr: dy / length,
			ny: -dr / length,
		}
	}
	appendLathe(config, profile, slices)

	// spout: quadratic bezier out of the lower body, tapering towards the tip
	const spoutSteps = 12
	spout := make([]math.Vec3, 0, spoutSteps+1)
	spoutRadii := make([]float32, 0, spoutSteps+1)
	p0, p1, p2 := math.NewVec3(0.42, 0.15, 0), math.NewVec3(0.80, 0.20, 0), math.NewVec3(0.78, 0.58, 0)
	for i := 0; i <= spoutSteps; i++ {
		t := float32(i) / spoutSteps
		a, b, c := (1-t)*(1-t), 2*(1-t)*t, t*t
		spout = append(spout, p0.MulScalar(a).Add(p1.MulScalar(b)).Add(p2.MulScalar(c)).Add(math.NewVec3(0, -centreY, 0)))
		spoutRadii = append(spoutRadii, 0.10-0.06*t)
	}
	appendTube(config, spout, spoutRadii, slices/2)

	// handle: half ellipse on the -x side
	const handleSteps = 16
	handle := make([]math.Vec3, 0, handleSteps+1)
	handleRadii := make([]float32, 0, handleSteps+1)
	for i := 0; i <= handleSteps; i++ {
		a := -math.K_HALF_PI + math.K_PI*float32(i)/handleSteps
		handle = append(handle, math.NewVec3(-0.48-0.18*math32.Cos(a), 0.38+0.20*math32.Sin(a)-centreY, 0))
		handleRadii = append(handleRadii, 0.035)
	}
	appendTube(config, handle, handleRadii, slices/2)

	return config
}

// appendLathe sweeps profile (ordered bottom to top) around the y axis.
func appendLathe(config *metadata.GeometryConfig, profile []profilePoint, slices uint32) {
	base := uint32(len(config.Vertices))
	rows := uint32(len(profile) - 1)
	for k, p := range profile {
		for c := uint32(0); c <= slices; c++ {
			theta := math.K_PI_2 * float32(c) / float32(slices)
			cos, sin := math32.Cos(theta), math32.Sin(theta)
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: math.NewVec3(p.r*cos, p.y, p.r*sin),
				Normal:   math.NewVec3(p.nr*cos, p.ny, p.nr*sin).Normalized(),
				Texcoord: math.NewVec2(float32(c)/float32(slices), float32(k)/float32(rows)),
			})
		}
	}
	appendGridIndices(config, base, rows, slices)
}

// appendDisk adds a flat cap at height y facing up or down.
func appendDisk(config *metadata.GeometryConfig, y, radius float32, slices uint32, up bool) {
	normal := math.NewVec3(0, -1, 0)
	if up {
		normal = math.NewVec3(0, 1, 0)
	}
	centre := uint32(len(config.Vertices))
	config.Vertices = append(config.Vertices, math.Vertex3D{
		Position: math.NewVec3(0, y, 0),
		Normal:   normal,
		Texcoord: math.NewVec2(0.5, 0.5),
	})
	for c := uint32(0); c <= slices; c++ {
		theta := math.K_PI_2 * float32(c) / float32(slices)
		cos, sin := math32.Cos(theta), math32.Sin(theta)
		config.Vertices = append(config.Vertices, math.Vertex3D{
			Position: math.NewVec3(radius*cos, y, radius*sin),
			Normal:   normal,
			Texcoord: math.NewVec2(0.5+0.5*cos, 0.5+0.5*sin),
		})
	}
	for c := uint32(0); c < slices; c++ {
		a, b := centre+1+c, centre+2+c
		if up {
			config.Indices = append(config.Indices, centre, b, a)
		} else {
			config.Indices = append(config.Indices, centre, a, b)
		}
	}
}

/**
 * @brief Sweeps a circle along a centre line lying in the xy plane. The
 * ends are left open.
 */
func appendTube(config *metadata.GeometryConfig, centre []math.Vec3, radii []float32, slices uint32) {
	base := uint32(len(config.Vertices))
	rows := uint32(len(centre) - 1)
	binormal := math.NewVec3(0, 0, 1)
	for k := range centre {
		prev, next := centre[max(k-1, 0)], centre[min(k+1, len(centre)-1)]
		tangent := next.Sub(prev).Normalized()
		normal := binormal.Cross(tangent).Normalized()
		for c := uint32(0); c <= slices; c++ {
			theta := math.K_PI_2 * float32(c) / float32(slices)
			dir := normal.MulScalar(math32.Cos(theta)).Add(binormal.MulScalar(math32.Sin(theta))).Normalized()
			config.Vertices = append(config.Vertices, math.Vertex3D{
				Position: centre[k].Add(dir.MulScalar(radii[k])),
				Normal:   dir,
				Texcoord: math.NewVec2(float32(c)/float32(slices), float32(k)/float32(rows)),
			})
		}
	}
	appendGridIndices(config, base, rows, slices)
}

// appendGridIndices triangulates a (rows+1) x (cols+1) vertex grid starting at base.
func appendGridIndices(config *metadata.GeometryConfig, base, rows, cols uint32) {
	stride := cols + 1
	for r := uint32(0); r < rows; r++ {
		for c := uint32(0); c < cols; c++ {
			a := base + r*stride + c
			b := a + stride
			config.Indices = append(config.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
}
