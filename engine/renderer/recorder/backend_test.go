package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

func testConfig() *metadata.ShaderConfig {
	return &metadata.ShaderConfig{
		Name: "test",
		Stages: []metadata.ShaderStageConfig{
			{Stage: metadata.ShaderStageVertex, Filename: "test.vert"},
			{Stage: metadata.ShaderStageFragment, Filename: "test.frag"},
		},
		Uniforms: []metadata.ShaderUniformConfig{
			{Name: metadata.UniformKa, Type: metadata.ShaderUniformTypeFloat32, Required: true},
			{Name: metadata.UniformAmbientColour, Type: metadata.ShaderUniformTypeFloat32_4},
		},
	}
}

func testSources() map[metadata.ShaderStage]string {
	return map[metadata.ShaderStage]string{
		metadata.ShaderStageVertex:   "void main() {}",
		metadata.ShaderStageFragment: "void main() {}",
	}
}

func TestShaderCreateResolvesEveryDeclaredUniform(t *testing.T) {
	b := New()
	b.Strip["test"] = []string{metadata.UniformAmbientColour}

	shader := &metadata.Shader{Name: "test", Uniforms: map[string]*metadata.ShaderUniform{}}
	require.NoError(t, b.ShaderCreate(shader, testConfig(), testSources()))

	require.Len(t, shader.Uniforms, 2)
	assert.Equal(t, metadata.UniformPresent, shader.Uniforms[metadata.UniformKa].Presence)
	assert.Equal(t, metadata.UniformAbsent, shader.Uniforms[metadata.UniformAmbientColour].Presence)
	assert.Equal(t, int32(-1), shader.Uniforms[metadata.UniformAmbientColour].Location)
}

func TestShaderCreateFailures(t *testing.T) {
	b := New()
	b.FailCompile["test"] = true
	shader := &metadata.Shader{Name: "test", Uniforms: map[string]*metadata.ShaderUniform{}}
	assert.ErrorIs(t, b.ShaderCreate(shader, testConfig(), testSources()), core.ErrShaderCompile)

	b = New()
	sources := testSources()
	delete(sources, metadata.ShaderStageFragment)
	assert.ErrorIs(t, b.ShaderCreate(shader, testConfig(), sources), core.ErrShaderCompile)
}

func TestDrawSnapshotsProgramState(t *testing.T) {
	b := New()
	shader := &metadata.Shader{Name: "test", Uniforms: map[string]*metadata.ShaderUniform{}}
	require.NoError(t, b.ShaderCreate(shader, testConfig(), testSources()))

	geometry := &metadata.Geometry{Name: "quad", Shape: metadata.ShapeQuad}
	vertices := make([]math.Vertex3D, 3)
	require.NoError(t, b.GeometryCreate(geometry, vertices, []uint32{0, 1, 2}))

	assert.Error(t, b.GeometryDraw(geometry))

	require.NoError(t, b.ShaderUse(shader))
	require.NoError(t, b.SetUniform(shader, shader.Uniforms[metadata.UniformKa], float32(0.5)))
	require.NoError(t, b.GeometryDraw(geometry))
	require.NoError(t, b.SetUniform(shader, shader.Uniforms[metadata.UniformKa], float32(0.8)))
	require.NoError(t, b.GeometryDraw(geometry))

	require.Len(t, b.Draws, 2)
	assert.Equal(t, float32(0.5), b.Draws[0].Uniforms[metadata.UniformKa])
	assert.Equal(t, float32(0.8), b.Draws[1].Uniforms[metadata.UniformKa])
	assert.Equal(t, "test", b.Draws[0].Shader)
	assert.Equal(t, metadata.ShapeQuad, b.Draws[1].Shape)
	assert.Len(t, b.WritesFor("test"), 2)
	assert.Empty(t, b.WritesFor("other"))
}

func TestSetUniformChecksValueType(t *testing.T) {
	b := New()
	shader := &metadata.Shader{Name: "test", Uniforms: map[string]*metadata.ShaderUniform{}}
	require.NoError(t, b.ShaderCreate(shader, testConfig(), testSources()))

	err := b.SetUniform(shader, shader.Uniforms[metadata.UniformKa], math.NewVec3(1, 2, 3))
	assert.Error(t, err)
	assert.Empty(t, b.Writes)
}

func TestTextureCreateChecksPixelCount(t *testing.T) {
	b := New()
	texture := &metadata.Texture{Name: "t", Width: 2, Height: 2, ChannelCount: 4}
	assert.Error(t, b.TextureCreate(make([]uint8, 3), texture))
	require.NoError(t, b.TextureCreate(make([]uint8, 16), texture))
	assert.True(t, texture.IsLoaded())

	require.NoError(t, b.TextureBind(texture, 0))
	require.NoError(t, b.TextureDestroy(texture))
	assert.False(t, texture.IsLoaded())
}

func TestFramesMustBePaired(t *testing.T) {
	b := New()
	assert.Error(t, b.EndFrame(0))
	require.NoError(t, b.BeginFrame(0))
	assert.Error(t, b.BeginFrame(0))
	require.NoError(t, b.EndFrame(0))
	assert.Equal(t, 1, b.Frames)
}
