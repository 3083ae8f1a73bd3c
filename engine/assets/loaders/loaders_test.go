package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

// writeStripes writes a 2x2 PNG whose top row is red and bottom row is blue.
func writeStripes(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.NRGBA{R: 255, A: 255})
		img.Set(x, 1, color.NRGBA{B: 255, A: 255})
	}
	path := filepath.Join(t.TempDir(), "stripes.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestImageLoaderFlipsRows(t *testing.T) {
	path := writeStripes(t)
	loader := &ImageLoader{}

	res, err := loader.Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: false})
	require.NoError(t, err)
	data := res.Data.(*metadata.ImageResourceData)
	assert.Equal(t, uint8(4), data.ChannelCount)
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Len(t, data.Pixels, 16)
	assert.Equal(t, []uint8{255, 0, 0, 255}, data.Pixels[0:4])

	res, err = loader.Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)
	data = res.Data.(*metadata.ImageResourceData)
	assert.Equal(t, []uint8{0, 0, 255, 255}, data.Pixels[0:4])
	assert.Equal(t, []uint8{255, 0, 0, 255}, data.Pixels[8:12])
}

func TestImageLoaderFailures(t *testing.T) {
	loader := &ImageLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.png"), metadata.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, core.ErrTextureLoad)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = loader.Load(garbage, metadata.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, core.ErrTextureLoad)
}

func TestShaderLoaderReadsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phong.vert")
	require.NoError(t, os.WriteFile(path, []byte("#version 410 core\n"), 0o644))

	res, err := (&ShaderLoader{}).Load(path, metadata.ResourceTypeShader, nil)
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\n", res.Data)
	assert.Equal(t, "phong.vert", res.Name)
}

const sampleLibrary = `
[light]
light_color = [1.0, 1.0, 1.0, 1.0]
light_position = [3.0, 9.0, 2.0]
light_ambient = [0.5, 0.5, 0.5, 1.0]

[[material]]
tag = "MATL_APPLE"
Oa = [0.2, 0.2, 0.2, 1.0]
Od = [1.0, 0.0, 0.0, 1.0]
Os = [1.0, 1.0, 1.0, 1.0]
ka = 0.8
kd = 0.8
ks = 1.0
specular_exponent = 100.0
`

func TestDecodeMaterialLibrary(t *testing.T) {
	lib, err := DecodeMaterialLibrary(strings.NewReader(sampleLibrary))
	require.NoError(t, err)

	assert.Equal(t, math.NewVec3(3, 9, 2), lib.Light.Position)
	apple, ok := lib.Materials[metadata.MaterialTag(metadata.MaterialApple)]
	require.True(t, ok)
	assert.Equal(t, math.NewVec4(1, 0, 0, 1), apple.Diffuse)
	assert.Equal(t, float32(100), apple.Exponent)
}

func TestDecodeMaterialLibraryRejects(t *testing.T) {
	cases := map[string]struct {
		input string
		err   error
	}{
		"unknown tag": {
			input: strings.Replace(sampleLibrary, "MATL_APPLE", "MATL_CHEESE", 1),
			err:   core.ErrUnknownTag,
		},
		"colour out of range": {
			input: strings.Replace(sampleLibrary, "Od = [1.0, 0.0", "Od = [1.5, 0.0", 1),
			err:   core.ErrInvalidMaterial,
		},
		"negative exponent": {
			input: strings.Replace(sampleLibrary, "specular_exponent = 100.0", "specular_exponent = -1.0", 1),
			err:   core.ErrInvalidMaterial,
		},
		"duplicate tag": {
			input: sampleLibrary + sampleLibrary[strings.Index(sampleLibrary, "[[material]]"):],
			err:   core.ErrInvalidMaterial,
		},
		"missing light": {
			input: sampleLibrary[strings.Index(sampleLibrary, "[[material]]"):],
			err:   core.ErrInvalidMaterial,
		},
		"unknown key": {
			input: sampleLibrary + "shininess = 3.0\n",
			err:   core.ErrInvalidMaterial,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeMaterialLibrary(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMaterialLibraryRoundTripIsExact(t *testing.T) {
	lib := &metadata.MaterialLibrary{
		Light: metadata.DefaultLight(),
		Materials: map[metadata.Tag]metadata.MaterialProfile{
			metadata.MaterialTag(metadata.MaterialWood): {
				Ambient:  math.NewVec4(.5, .3, .05, 1),
				Diffuse:  math.NewVec4(.75, .5, .1, 1),
				Specular: math.NewVec4(1, 1, 1, 1),
				Ka:       .8, Kd: .1, Ks: .01, Exponent: 1,
			},
			metadata.ShapeTag(metadata.ShapeSphere): {
				Ambient:  math.NewVec4(.5, .5, .5, 1),
				Diffuse:  math.NewVec4(.49, .99, 0, 1),
				Specular: math.NewVec4(1, 1, 1, 1),
				Ka:       .5, Kd: .8, Ks: 1, Exponent: 50,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeMaterialLibrary(&buf, lib))

	// entries are written by ascending code
	text := buf.String()
	assert.Less(t, strings.Index(text, "OBJ_SPHERE"), strings.Index(text, "MATL_WOOD"))

	back, err := DecodeMaterialLibrary(&buf)
	require.NoError(t, err)
	assert.Equal(t, lib, back)
}
