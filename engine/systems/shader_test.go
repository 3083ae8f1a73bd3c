package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

func TestShaderSystemCreatesBuiltinPrograms(t *testing.T) {
	r := newRig(t)
	ss := r.shaders(t)
	require.NoError(t, ss.Initialize())

	for _, name := range []string{metadata.BUILTIN_SHADER_NAME_PHONG, metadata.BUILTIN_SHADER_NAME_TEXTURE} {
		sh, err := ss.Get(name)
		require.NoError(t, err)
		assert.Equal(t, metadata.SHADER_STATE_INITIALIZED, sh.State)
	}
	_, err := ss.Get("Shader.Builtin.Skybox")
	assert.ErrorIs(t, err, core.ErrShaderNotFound)

	require.NoError(t, ss.Shutdown())
	assert.Empty(t, ss.Lookup)
}

func TestTextureProgramContract(t *testing.T) {
	config := TextureShaderConfig()
	required := map[string]bool{}
	for _, u := range config.Uniforms {
		required[u.Name] = u.Required
	}
	assert.True(t, required[metadata.UniformSampler])
	assert.True(t, required[metadata.UniformModel])
	assert.True(t, required[metadata.UniformLightPosition])
	assert.False(t, required[metadata.UniformAmbientColour])
	assert.False(t, required[metadata.UniformDiffuseColour])
	assert.False(t, required[metadata.UniformSpecularColour])

	for _, u := range PhongShaderConfig().Uniforms {
		assert.True(t, u.Required, u.Name)
		assert.NotEqual(t, metadata.UniformSampler, u.Name)
	}
}

func TestShaderMissingUniforms(t *testing.T) {
	t.Run("optional stripped", func(t *testing.T) {
		r := newRig(t)
		r.backend.Strip[metadata.BUILTIN_SHADER_NAME_TEXTURE] = []string{
			metadata.UniformAmbientColour, metadata.UniformDiffuseColour, metadata.UniformSpecularColour,
		}
		ss := r.shaders(t)
		sh, err := ss.CreateShader(TextureShaderConfig())
		require.NoError(t, err)
		assert.Equal(t, metadata.UniformAbsent, sh.Uniforms[metadata.UniformDiffuseColour].Presence)
	})

	t.Run("required stripped", func(t *testing.T) {
		r := newRig(t)
		r.backend.Strip[metadata.BUILTIN_SHADER_NAME_PHONG] = []string{metadata.UniformKs}
		ss := r.shaders(t)
		_, err := ss.CreateShader(PhongShaderConfig())
		assert.ErrorIs(t, err, core.ErrUniformMissing)
		_, err = ss.Get(metadata.BUILTIN_SHADER_NAME_PHONG)
		assert.ErrorIs(t, err, core.ErrShaderNotFound)
	})
}

func TestShaderSystemSetupFailures(t *testing.T) {
	r := newRig(t)
	r.backend.FailCompile[metadata.BUILTIN_SHADER_NAME_PHONG] = true
	assert.ErrorIs(t, r.shaders(t).Initialize(), core.ErrShaderCompile)

	r = newRig(t)
	ss, err := NewShaderSystem(&ShaderSystemConfig{ShaderDir: r.path("elsewhere")}, r.assets, r.renderer)
	require.NoError(t, err)
	assert.ErrorIs(t, ss.Initialize(), core.ErrAssetNotFound)

	_, err = NewShaderSystem(&ShaderSystemConfig{}, r.assets, r.renderer)
	assert.Error(t, err)
}

func TestShaderReload(t *testing.T) {
	r := newRig(t)
	ss := r.shaders(t)
	require.NoError(t, ss.Initialize())
	previous, _ := ss.Get(metadata.BUILTIN_SHADER_NAME_PHONG)
	texture, _ := ss.Get(metadata.BUILTIN_SHADER_NAME_TEXTURE)

	require.NoError(t, ss.Reload(r.path("shaders", "phong.frag")))
	current, _ := ss.Get(metadata.BUILTIN_SHADER_NAME_PHONG)
	assert.NotSame(t, previous, current)
	assert.Equal(t, uint32(1), current.Generation)
	assert.Equal(t, metadata.SHADER_STATE_DESTROYED, previous.State)

	untouched, _ := ss.Get(metadata.BUILTIN_SHADER_NAME_TEXTURE)
	assert.Same(t, texture, untouched)

	// a broken program leaves the working one in place
	r.backend.FailCompile[metadata.BUILTIN_SHADER_NAME_PHONG] = true
	assert.ErrorIs(t, ss.Reload(r.path("shaders", "phong.vert")), core.ErrShaderCompile)
	kept, _ := ss.Get(metadata.BUILTIN_SHADER_NAME_PHONG)
	assert.Same(t, current, kept)
	assert.Equal(t, metadata.SHADER_STATE_INITIALIZED, kept.State)

	assert.NoError(t, ss.Reload(r.path("textures", "table.png")))
}
