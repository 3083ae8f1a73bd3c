package systems

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

var applyOrder = []string{
	"light_color", "light_position", "light_ambient",
	"Oa", "Od", "Os", "ka", "kd", "ks", "specular_exponent",
}

func TestMaterialApplyWritesLiterals(t *testing.T) {
	r := newRig(t)
	ms := r.materials(t, "")
	phong := r.program(t, r.shaders(t), PhongShaderConfig())

	cases := map[metadata.Tag][]interface{}{
		metadata.ShapeTag(metadata.ShapeTeapot): {
			math.NewVec4(.1, .1, .1, 1), math.NewVec4(.6, .6, .6, 1), math.NewVec4(1, 1, 1, 1),
			float32(.5), float32(.7), float32(1), float32(90),
		},
		metadata.ShapeTag(metadata.ShapeSphere): {
			math.NewVec4(.5, .5, .5, 1), math.NewVec4(.49, .99, 0, 1), math.NewVec4(1, 1, 1, 1),
			float32(.5), float32(.8), float32(1), float32(50),
		},
		metadata.MaterialTag(metadata.MaterialApple): {
			math.NewVec4(.2, .2, .2, 1), math.NewVec4(1, 0, 0, 1), math.NewVec4(1, 1, 1, 1),
			float32(.8), float32(.8), float32(1), float32(100),
		},
		metadata.MaterialTag(metadata.MaterialMuffin): {
			math.NewVec4(.3, .3, .3, 1), math.NewVec4(.75, .5, .1, 1), math.NewVec4(1, 1, 1, 1),
			float32(.8), float32(.8), float32(.1), float32(2),
		},
		metadata.MaterialTag(metadata.MaterialFlower): {
			math.NewVec4(.2, .2, .2, 1), math.NewVec4(.8, 0, 0, 1), math.NewVec4(1, 1, 1, 1),
			float32(.8), float32(.8), float32(.1), float32(2),
		},
		metadata.MaterialTag(metadata.MaterialVase): {
			math.NewVec4(.1, .25, .1, 1), math.NewVec4(.5, .5, .5, 1), math.NewVec4(1, 1, 1, 1),
			float32(.5), float32(.8), float32(.6), float32(100),
		},
		metadata.MaterialTag(metadata.MaterialCandle): {
			math.NewVec4(.8, .8, .8, 1), math.NewVec4(.5, .5, .75, 1), math.NewVec4(1, 1, 1, 1),
			float32(.5), float32(.3), float32(.1), float32(100),
		},
		metadata.MaterialTag(metadata.MaterialCup): {
			math.NewVec4(.8, .8, .8, 1), math.NewVec4(.5, .5, .5, 1), math.NewVec4(1, 1, 1, 1),
			float32(.2), float32(.8), float32(.6), float32(100),
		},
		metadata.MaterialTag(metadata.MaterialYellowFlower): {
			math.NewVec4(.2, .5, .2, 1), math.NewVec4(.7, .7, 0, 1), math.NewVec4(1, 1, 1, 1),
			float32(.3), float32(.8), float32(.1), float32(2),
		},
		metadata.MaterialTag(metadata.MaterialWood): {
			math.NewVec4(.5, .3, .05, 1), math.NewVec4(.75, .5, .1, 1), math.NewVec4(1, 1, 1, 1),
			float32(.8), float32(.1), float32(.01), float32(1),
		},
		metadata.MaterialTag(metadata.MaterialLeaf): {
			math.NewVec4(.35, .5, .25, 1), math.NewVec4(.35, .8, .25, 1), math.NewVec4(1, 1, 1, 1),
			float32(.3), float32(.4), float32(.05), float32(1),
		},
		metadata.MaterialTag(metadata.MaterialMuffinCup): {
			math.NewVec4(.5, .3, .05, 1), math.NewVec4(.75, .5, .1, 1), math.NewVec4(1, 1, 1, 1),
			float32(.8), float32(.1), float32(.01), float32(2),
		},
	}
	require.Len(t, cases, len(BuiltinMaterialLibrary().Materials))

	for tag, expected := range cases {
		t.Run(tag.String(), func(t *testing.T) {
			r.backend.Reset()
			require.NoError(t, ms.Apply(phong, tag))

			writes := r.backend.Writes
			require.Equal(t, applyOrder, names(writes))
			assert.Equal(t, math.NewVec4(1, 1, 1, 1), writes[0].Value)
			assert.Equal(t, math.NewVec3(3, 9, 2), writes[1].Value)
			assert.Equal(t, math.NewVec4(.5, .5, .5, 1), writes[2].Value)
			for i, value := range expected {
				assert.Equal(t, value, writes[3+i].Value, writes[3+i].Name)
			}
		})
	}
}

func TestEveryBuiltinEntryIsValid(t *testing.T) {
	lib := BuiltinMaterialLibrary()
	assert.Len(t, lib.Materials, 12)
	for tag, profile := range lib.Materials {
		assert.NoError(t, profile.Validate(), tag.String())
		assert.Equal(t, math.NewVec4(1, 1, 1, 1), profile.Specular, tag.String())
	}
}

func TestMaterialApplyUnknownTagWritesNothing(t *testing.T) {
	r := newRig(t)
	ms := r.materials(t, "")
	phong := r.program(t, r.shaders(t), PhongShaderConfig())

	for _, shape := range []metadata.ShapeKind{metadata.ShapeQuad, metadata.ShapeCone, metadata.ShapeCylinder, metadata.ShapeCube} {
		r.backend.Reset()
		err := ms.Apply(phong, metadata.ShapeTag(shape))
		assert.ErrorIs(t, err, core.ErrMaterialNotFound)
		assert.Empty(t, r.backend.Writes)
	}
}

func TestMaterialTagsAndCoverage(t *testing.T) {
	r := newRig(t)
	ms := r.materials(t, "")

	tags := ms.Tags()
	require.Len(t, tags, 12)
	for i := 1; i < len(tags); i++ {
		assert.Less(t, tags[i-1].Code(), tags[i].Code())
	}
	assert.Equal(t, metadata.ShapeTag(metadata.ShapeTeapot), tags[0])

	assert.NoError(t, ms.Covers(tags...))
	assert.ErrorIs(t, ms.Covers(metadata.MaterialTag(metadata.MaterialVase), metadata.ShapeTag(metadata.ShapeQuad)), core.ErrMaterialNotFound)
}

func TestExportedLibraryAppliesIdentically(t *testing.T) {
	r := newRig(t)
	builtin := r.materials(t, "")

	library := r.path("materials", "still_life.toml")
	require.NoError(t, os.MkdirAll(r.path("materials"), 0o755))
	f, err := os.Create(library)
	require.NoError(t, err)
	require.NoError(t, builtin.Export(f))
	require.NoError(t, f.Close())

	loaded := r.materials(t, library)
	assert.Equal(t, builtin.Tags(), loaded.Tags())
	assert.Equal(t, builtin.Light(), loaded.Light())

	phong := r.program(t, r.shaders(t), PhongShaderConfig())
	for _, tag := range builtin.Tags() {
		r.backend.Reset()
		require.NoError(t, builtin.Apply(phong, tag))
		expected := r.backend.Writes

		r.backend.Reset()
		require.NoError(t, loaded.Apply(phong, tag))
		assert.Equal(t, expected, r.backend.Writes, tag.String())
	}
}

func TestMaterialReloadKeepsTableOnFailure(t *testing.T) {
	r := newRig(t)
	library := r.path("materials", "still_life.toml")
	writeAsset(t, library, `
[light]
light_color = [1.0, 1.0, 1.0, 1.0]
light_position = [3.0, 9.0, 2.0]
light_ambient = [0.5, 0.5, 0.5, 1.0]

[[material]]
tag = "MATL_CUP"
Oa = [0.8, 0.8, 0.8, 1.0]
Od = [0.5, 0.5, 0.5, 1.0]
Os = [1.0, 1.0, 1.0, 1.0]
ka = 0.2
kd = 0.8
ks = 0.6
specular_exponent = 100.0
`)
	ms := r.materials(t, library)
	assert.Equal(t, []metadata.Tag{metadata.MaterialTag(metadata.MaterialCup)}, ms.Tags())

	writeAsset(t, library, "[[material]]\ntag = \"MATL_CHEESE\"\n")
	assert.ErrorIs(t, ms.Reload(), core.ErrUnknownTag)
	assert.Equal(t, []metadata.Tag{metadata.MaterialTag(metadata.MaterialCup)}, ms.Tags())
}

func TestMaterialLibraryMissing(t *testing.T) {
	r := newRig(t)
	ms, err := NewMaterialSystem(&MaterialSystemConfig{LibraryPath: r.path("materials", "nope.toml")}, r.assets, r.renderer)
	require.NoError(t, err)
	assert.ErrorIs(t, ms.Initialize(), core.ErrAssetNotFound)
}
