package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

func checkMesh(t *testing.T, config *metadata.GeometryConfig) {
	t.Helper()
	require.NotEmpty(t, config.Vertices)
	require.Zero(t, len(config.Indices)%3)
	for _, i := range config.Indices {
		require.Less(t, int(i), len(config.Vertices))
	}
	for i, v := range config.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Length(), 1e-4, "%s vertex %d", config.Name, i)
	}
}

func TestShapeVertexAndIndexCounts(t *testing.T) {
	const slices, stacks = 12, 6
	cases := []struct {
		config   *metadata.GeometryConfig
		vertices int
		indices  int
	}{
		{GenerateQuadConfig(), 4, 6},
		{GenerateCubeConfig(1, 1, 1), 24, 36},
		{GenerateSphereConfig(0.5, slices, stacks), (slices + 1) * (stacks + 1), slices * stacks * 6},
		{GenerateCylinderConfig(0.5, 1, slices), 2*(slices+1) + 2*(slices+2), 12 * slices},
		{GenerateConeConfig(0.5, 1, slices), 2*(slices+1) + (slices + 2), 9 * slices},
	}
	for _, tc := range cases {
		t.Run(tc.config.Name, func(t *testing.T) {
			assert.Len(t, tc.config.Vertices, tc.vertices)
			assert.Len(t, tc.config.Indices, tc.indices)
			checkMesh(t, tc.config)
		})
	}
	checkMesh(t, GenerateTeapotConfig(slices))
}

func TestShapesFitTheUnitBox(t *testing.T) {
	for _, config := range []*metadata.GeometryConfig{
		GenerateSphereConfig(0.5, 16, 8),
		GenerateCylinderConfig(0.5, 1, 16),
		GenerateConeConfig(0.5, 1, 16),
		GenerateCubeConfig(1, 1, 1),
	} {
		extents := math.GeometryExtents(config.Vertices)
		assert.InDelta(t, -0.5, extents.Min.Y, 1e-5, config.Name)
		assert.InDelta(t, 0.5, extents.Max.Y, 1e-5, config.Name)
		assert.InDelta(t, 0.5, extents.Max.X, 1e-5, config.Name)
	}
}

func TestQuadFacesTheViewer(t *testing.T) {
	quad := GenerateQuadConfig()
	for _, v := range quad.Vertices {
		assert.Equal(t, math.NewVec3(0, 0, 1), v.Normal)
		assert.Zero(t, v.Position.Z)
	}
}

func TestGeometrySystemSharesOneBufferSetPerShape(t *testing.T) {
	r := newRig(t)
	gs, err := NewGeometrySystem(&GeometrySystemConfig{Slices: 16, Stacks: 8}, r.renderer)
	require.NoError(t, err)

	require.NoError(t, gs.Initialize(metadata.ShapeSphere, metadata.ShapeQuad, metadata.ShapeSphere))
	assert.Len(t, gs.RegisteredGeometries, 2)

	a, err := gs.Acquire(metadata.ShapeSphere)
	require.NoError(t, err)
	b, _ := gs.Acquire(metadata.ShapeSphere)
	assert.Same(t, a, b)
	assert.Equal(t, metadata.ShapeSphere, a.Shape)
	assert.Equal(t, uint32(17*9), a.VertexCount)

	_, err = gs.Acquire(metadata.ShapeTeapot)
	assert.ErrorIs(t, err, core.ErrGeometryNotFound)

	require.NoError(t, gs.Shutdown())
	assert.Empty(t, gs.RegisteredGeometries)
}

func TestGeometrySystemConfigLimits(t *testing.T) {
	r := newRig(t)
	_, err := NewGeometrySystem(&GeometrySystemConfig{Slices: 2, Stacks: 8}, r.renderer)
	assert.Error(t, err)
	_, err = NewGeometrySystem(&GeometrySystemConfig{Slices: 8, Stacks: 1}, r.renderer)
	assert.Error(t, err)
}
