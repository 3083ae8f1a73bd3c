package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
	"github.com/spaghettifunk/stilllife/engine/renderer/recorder"
)

func newShader(t *testing.T, r *renderer.Renderer) *metadata.Shader {
	t.Helper()
	config := &metadata.ShaderConfig{
		Name: "test",
		Stages: []metadata.ShaderStageConfig{
			{Stage: metadata.ShaderStageVertex},
			{Stage: metadata.ShaderStageFragment},
		},
		Uniforms: []metadata.ShaderUniformConfig{
			{Name: metadata.UniformKa, Type: metadata.ShaderUniformTypeFloat32, Required: true},
			{Name: metadata.UniformAmbientColour, Type: metadata.ShaderUniformTypeFloat32_4},
		},
	}
	shader, err := r.ShaderCreate(config, map[metadata.ShaderStage]string{
		metadata.ShaderStageVertex:   "",
		metadata.ShaderStageFragment: "",
	})
	require.NoError(t, err)
	return shader
}

func TestSetUniformSkipsAbsentAndRejectsUndeclared(t *testing.T) {
	backend := recorder.New()
	backend.Strip["test"] = []string{metadata.UniformAmbientColour}
	r := renderer.NewRenderer(backend)

	shader := newShader(t, r)
	assert.Equal(t, metadata.SHADER_STATE_INITIALIZED, shader.State)

	require.NoError(t, r.SetUniform(shader, metadata.UniformAmbientColour, math.NewVec4(1, 1, 1, 1)))
	assert.Empty(t, backend.Writes)

	require.NoError(t, r.SetUniform(shader, metadata.UniformKa, float32(0.2)))
	assert.Len(t, backend.Writes, 1)

	assert.ErrorIs(t, r.SetUniform(shader, "nope", float32(1)), core.ErrUniformUndeclared)
}

func TestDrawRequiresProgramInUse(t *testing.T) {
	r := renderer.NewRenderer(recorder.New())
	geometry, err := r.GeometryCreate(&metadata.GeometryConfig{
		Name:     "tri",
		Vertices: make([]math.Vertex3D, 3),
		Indices:  []uint32{0, 1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), geometry.IndexCount)

	assert.ErrorIs(t, r.GeometryDraw(geometry), core.ErrNotInitialized)

	shader := newShader(t, r)
	require.NoError(t, r.ShaderUse(shader))
	assert.NoError(t, r.GeometryDraw(geometry))

	require.NoError(t, r.ShaderDestroy(shader))
	assert.Equal(t, metadata.SHADER_STATE_DESTROYED, shader.State)
	assert.ErrorIs(t, r.GeometryDraw(geometry), core.ErrNotInitialized)
}

func TestSentinelTextureBindIsNoop(t *testing.T) {
	r := renderer.NewRenderer(recorder.New())
	assert.NoError(t, r.TextureBind(metadata.NewNoTexture("missing.png"), 0))
	assert.NoError(t, r.TextureDestroy(metadata.NewNoTexture("missing.png")))
}

func TestFrameCounter(t *testing.T) {
	r := renderer.NewRenderer(recorder.New())
	require.NoError(t, r.Initialize(&metadata.RendererBackendConfig{Width: 600, Height: 600}))
	for i := 0; i < 3; i++ {
		require.NoError(t, r.BeginFrame(0.016))
		require.NoError(t, r.EndFrame(0.016))
	}
	assert.Equal(t, uint64(3), r.FrameNumber())
}
