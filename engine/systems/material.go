package systems

import (
	"fmt"
	"io"
	"slices"

	"github.com/spaghettifunk/stilllife/engine/assets"
	"github.com/spaghettifunk/stilllife/engine/assets/loaders"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief Optional TOML library replacing the builtin table. Empty keeps the builtin one. */
	LibraryPath string
}

/**
 * @brief Maps every tag to its Phong reflectance profile and writes the
 * light and the profile to a program before a draw.
 */
type MaterialSystem struct {
	Config  *MaterialSystemConfig
	library *metadata.MaterialLibrary
	// sub systems
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
}

func NewMaterialSystem(config *MaterialSystemConfig, am *assets.AssetManager, r *renderer.Renderer) (*MaterialSystem, error) {
	if r == nil {
		err := fmt.Errorf("func NewMaterialSystem - renderer is required: %w", core.ErrNotInitialized)
		core.LogError(err.Error())
		return nil, err
	}
	return &MaterialSystem{
		Config:       config,
		library:      BuiltinMaterialLibrary(),
		assetManager: am,
		renderer:     r,
	}, nil
}

func colour(r, g, b float32) math.Vec4 {
	return math.NewVec4(r, g, b, 1.0)
}

func grey(v float32) math.Vec4 {
	return colour(v, v, v)
}

// BuiltinMaterialLibrary returns the table the still life is shaded with.
func BuiltinMaterialLibrary() *metadata.MaterialLibrary {
	white := grey(1.0)
	return &metadata.MaterialLibrary{
		Light: metadata.DefaultLight(),
		Materials: map[metadata.Tag]metadata.MaterialProfile{
			metadata.ShapeTag(metadata.ShapeTeapot): {
				Ambient: grey(0.1), Diffuse: grey(0.6), Specular: white,
				Ka: 0.5, Kd: 0.7, Ks: 1.0, Exponent: 90.0,
			},
			metadata.ShapeTag(metadata.ShapeSphere): {
				Ambient: grey(0.5), Diffuse: colour(0.49, 0.99, 0.0), Specular: white,
				Ka: 0.5, Kd: 0.8, Ks: 1.0, Exponent: 50.0,
			},
			metadata.MaterialTag(metadata.MaterialApple): {
				Ambient: grey(0.2), Diffuse: colour(1.0, 0.0, 0.0), Specular: white,
				Ka: 0.8, Kd: 0.8, Ks: 1.0, Exponent: 100.0,
			},
			metadata.MaterialTag(metadata.MaterialMuffin): {
				Ambient: grey(0.3), Diffuse: colour(0.75, 0.5, 0.1), Specular: white,
				Ka: 0.8, Kd: 0.8, Ks: 0.1, Exponent: 2.0,
			},
			metadata.MaterialTag(metadata.MaterialFlower): {
				Ambient: grey(0.2), Diffuse: colour(0.8, 0.0, 0.0), Specular: white,
				Ka: 0.8, Kd: 0.8, Ks: 0.1, Exponent: 2.0,
			},
			metadata.MaterialTag(metadata.MaterialVase): {
				Ambient: colour(0.1, 0.25, 0.1), Diffuse: grey(0.5), Specular: white,
				Ka: 0.5, Kd: 0.8, Ks: 0.6, Exponent: 100.0,
			},
			metadata.MaterialTag(metadata.MaterialCandle): {
				Ambient: grey(0.8), Diffuse: colour(0.5, 0.5, 0.75), Specular: white,
				Ka: 0.5, Kd: 0.3, Ks: 0.1, Exponent: 100.0,
			},
			metadata.MaterialTag(metadata.MaterialWood): {
				Ambient: colour(0.5, 0.3, 0.05), Diffuse: colour(0.75, 0.5, 0.1), Specular: white,
				Ka: 0.8, Kd: 0.1, Ks: 0.01, Exponent: 1.0,
			},
			metadata.MaterialTag(metadata.MaterialCup): {
				Ambient: grey(0.8), Diffuse: grey(0.5), Specular: white,
				Ka: 0.2, Kd: 0.8, Ks: 0.6, Exponent: 100.0,
			},
			metadata.MaterialTag(metadata.MaterialYellowFlower): {
				Ambient: colour(0.2, 0.5, 0.2), Diffuse: colour(0.7, 0.7, 0.0), Specular: white,
				Ka: 0.3, Kd: 0.8, Ks: 0.1, Exponent: 2.0,
			},
			metadata.MaterialTag(metadata.MaterialMuffinCup): {
				Ambient: colour(0.5, 0.3, 0.05), Diffuse: colour(0.75, 0.5, 0.1), Specular: white,
				Ka: 0.8, Kd: 0.1, Ks: 0.01, Exponent: 2.0,
			},
			metadata.MaterialTag(metadata.MaterialLeaf): {
				Ambient: colour(0.35, 0.5, 0.25), Diffuse: colour(0.35, 0.8, 0.25), Specular: white,
				Ka: 0.3, Kd: 0.4, Ks: 0.05, Exponent: 1.0,
			},
		},
	}
}

/**
 * @brief Replaces the builtin table with the configured library, if any.
 */
func (ms *MaterialSystem) Initialize() error {
	if len(ms.Config.LibraryPath) == 0 {
		core.LogDebug("using the builtin material table (%d entries)", len(ms.library.Materials))
		return nil
	}
	return ms.LoadLibrary(ms.Config.LibraryPath)
}

func (ms *MaterialSystem) Shutdown() error {
	ms.library = nil
	return nil
}

// LoadLibrary reads a TOML library through the asset manager and makes it current.
func (ms *MaterialSystem) LoadLibrary(path string) error {
	if ms.assetManager == nil {
		return fmt.Errorf("material library `%s`: %w", path, core.ErrNotInitialized)
	}
	res, err := ms.assetManager.LoadAsset(path, nil)
	if err != nil {
		core.LogError("failed to load material library `%s`: %s", path, err)
		return err
	}
	lib, ok := res.Data.(*metadata.MaterialLibrary)
	if !ok {
		return fmt.Errorf("`%s` is not a material library: %w", path, core.ErrInvalidMaterial)
	}
	ms.library = lib
	core.LogInfo("material library `%s` loaded (%d entries)", path, len(lib.Materials))
	return nil
}

/**
 * @brief Re-reads the configured library. When it fails to parse the
 * current table stays in place and the error is returned.
 */
func (ms *MaterialSystem) Reload() error {
	if len(ms.Config.LibraryPath) == 0 {
		return nil
	}
	previous := ms.library
	if err := ms.LoadLibrary(ms.Config.LibraryPath); err != nil {
		ms.library = previous
		core.LogWarn("keeping the previous material table")
		return err
	}
	return nil
}

// Light returns the scene light. It is shared by every program.
func (ms *MaterialSystem) Light() metadata.LightSource {
	return ms.library.Light
}

func (ms *MaterialSystem) Profile(tag metadata.Tag) (metadata.MaterialProfile, error) {
	p, ok := ms.library.Materials[tag]
	if !ok {
		return metadata.MaterialProfile{}, fmt.Errorf("`%s`: %w", tag, core.ErrMaterialNotFound)
	}
	return p, nil
}

// Tags lists the tags that have a profile, ordered by code.
func (ms *MaterialSystem) Tags() []metadata.Tag {
	tags := make([]metadata.Tag, 0, len(ms.library.Materials))
	for tag := range ms.library.Materials {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, func(a, b metadata.Tag) int {
		return a.Code() - b.Code()
	})
	return tags
}

// Covers fails on the first tag without a profile.
func (ms *MaterialSystem) Covers(tags ...metadata.Tag) error {
	for _, tag := range tags {
		if _, err := ms.Profile(tag); err != nil {
			return err
		}
	}
	return nil
}

// Export writes the current table as TOML.
func (ms *MaterialSystem) Export(w io.Writer) error {
	return loaders.EncodeMaterialLibrary(w, ms.library)
}

/**
 * @brief Writes the light followed by the profile of tag to shader, which
 * should be the program in use. Nothing is written for an unknown tag.
 */
func (ms *MaterialSystem) Apply(shader *metadata.Shader, tag metadata.Tag) error {
	profile, err := ms.Profile(tag)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := ApplyLight(ms.renderer, shader, ms.library.Light); err != nil {
		return err
	}
	return ms.write(shader, []uniformValue{
		{metadata.UniformAmbientColour, profile.Ambient},
		{metadata.UniformDiffuseColour, profile.Diffuse},
		{metadata.UniformSpecularColour, profile.Specular},
		{metadata.UniformKa, profile.Ka},
		{metadata.UniformKd, profile.Kd},
		{metadata.UniformKs, profile.Ks},
		{metadata.UniformExponent, profile.Exponent},
	})
}

func (ms *MaterialSystem) write(shader *metadata.Shader, values []uniformValue) error {
	return writeUniforms(ms.renderer, shader, values)
}

type uniformValue struct {
	name  string
	value interface{}
}

func writeUniforms(r *renderer.Renderer, shader *metadata.Shader, values []uniformValue) error {
	for _, u := range values {
		if err := r.SetUniform(shader, u.name, u.value); err != nil {
			core.LogError("failed to set uniform `%s`: %s", u.name, err)
			return err
		}
	}
	return nil
}

// ApplyLight writes the three light uniforms.
func ApplyLight(r *renderer.Renderer, shader *metadata.Shader, light metadata.LightSource) error {
	return writeUniforms(r, shader, []uniformValue{
		{metadata.UniformLightColour, light.Colour},
		{metadata.UniformLightPosition, light.Position},
		{metadata.UniformLightAmbient, light.Ambient},
	})
}
