package stilllife

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/assets/loaders"
	"github.com/spaghettifunk/stilllife/engine/systems"
)

// shippedAssets is the asset root the binary runs with.
var shippedAssets = filepath.Join("..", "assets")

func TestShippedMaterialLibraryMatchesBuiltin(t *testing.T) {
	f, err := os.Open(filepath.Join(shippedAssets, "materials", "still_life.toml"))
	require.NoError(t, err)
	defer f.Close()

	shipped, err := loaders.DecodeMaterialLibrary(f)
	require.NoError(t, err)
	builtin := systems.BuiltinMaterialLibrary()

	assert.True(t, shipped.Light.Colour.Compare(builtin.Light.Colour, tolerance))
	assert.True(t, shipped.Light.Position.Compare(builtin.Light.Position, tolerance))
	assert.True(t, shipped.Light.Ambient.Compare(builtin.Light.Ambient, tolerance))

	require.Len(t, shipped.Materials, len(builtin.Materials))
	for tag, want := range builtin.Materials {
		got, ok := shipped.Materials[tag]
		require.True(t, ok, "missing %s", tag)
		assert.True(t, got.Ambient.Compare(want.Ambient, tolerance), "%s Oa", tag)
		assert.True(t, got.Diffuse.Compare(want.Diffuse, tolerance), "%s Od", tag)
		assert.True(t, got.Specular.Compare(want.Specular, tolerance), "%s Os", tag)
		assert.InDelta(t, want.Ka, got.Ka, tolerance, "%s ka", tag)
		assert.InDelta(t, want.Kd, got.Kd, tolerance, "%s kd", tag)
		assert.InDelta(t, want.Ks, got.Ks, tolerance, "%s ks", tag)
		assert.InDelta(t, want.Exponent, got.Exponent, tolerance, "%s exponent", tag)
	}
}

func TestShippedShadersDeclareTheirUniforms(t *testing.T) {
	programs := map[string][]string{
		"phong": {
			"model", "view", "projection", "Oa", "Od", "Os", "ka", "kd", "ks", "specular_exponent",
			"light_color", "light_position", "light_ambient",
		},
		"texture": {
			"model", "view", "projection", "ka", "kd", "ks", "specular_exponent",
			"light_color", "light_position", "light_ambient", "happy_img",
		},
	}
	for name, uniforms := range programs {
		vert, err := os.ReadFile(filepath.Join(shippedAssets, "shaders", name+".vert"))
		require.NoError(t, err)
		frag, err := os.ReadFile(filepath.Join(shippedAssets, "shaders", name+".frag"))
		require.NoError(t, err)
		source := string(vert) + string(frag)
		for _, u := range uniforms {
			assert.Regexp(t, `uniform \w+ `+u+`;`, source, "%s: %s", name, u)
		}
	}
}

func TestShippedTableTexture(t *testing.T) {
	f, err := os.Open(filepath.Join(shippedAssets, "textures", "table.png"))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}
