package systems

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/stilllife/engine/assets"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

/** @brief The texture unit the sampler reads from. */
const TextureUnit uint32 = 0

type TextureSystemConfig struct {
	/** @brief The image mapped onto textured surfaces. */
	Path string
}

/**
 * @brief Owns the single surface texture and writes the texture program's
 * uniforms. A texture that fails to load leaves the sentinel in place.
 */
type TextureSystem struct {
	Config  *TextureSystemConfig
	Profile metadata.TextureProfile
	texture *metadata.Texture
	// sub systems
	jobSystem      *JobSystem
	materialSystem *MaterialSystem
	assetManager   *assets.AssetManager
	renderer       *renderer.Renderer
}

func NewTextureSystem(config *TextureSystemConfig, js *JobSystem, ms *MaterialSystem, am *assets.AssetManager, r *renderer.Renderer) (*TextureSystem, error) {
	if ms == nil || am == nil {
		err := fmt.Errorf("func NewTextureSystem - material system and asset manager are required: %w", core.ErrNotInitialized)
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:         config,
		Profile:        metadata.DefaultTextureProfile(),
		texture:        metadata.NewNoTexture(config.Path),
		jobSystem:      js,
		materialSystem: ms,
		assetManager:   am,
		renderer:       r,
	}, nil
}

func (ts *TextureSystem) Initialize() error {
	ts.texture = ts.Load(ts.Config.Path)
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	if err := ts.renderer.TextureDestroy(ts.texture); err != nil {
		return err
	}
	ts.texture = metadata.NewNoTexture(ts.Config.Path)
	return nil
}

// Texture returns the current texture, possibly the sentinel.
func (ts *TextureSystem) Texture() *metadata.Texture {
	return ts.texture
}

/**
 * @brief Loads and uploads the image at path. Any failure is logged and
 * the sentinel is returned; the caller keeps running.
 */
func (ts *TextureSystem) Load(path string) *metadata.Texture {
	data, err := ts.decode(path)
	if err != nil {
		core.LogError("failed to load texture `%s`: %s", path, err)
		return metadata.NewNoTexture(path)
	}
	texture, err := ts.upload(path, data)
	if err != nil {
		core.LogError("failed to upload texture `%s`: %s", path, err)
		return metadata.NewNoTexture(path)
	}
	return texture
}

func (ts *TextureSystem) decode(path string) (*metadata.ImageResourceData, error) {
	res, err := ts.assetManager.LoadAsset(path, &metadata.ImageResourceParams{FlipY: true})
	if err != nil {
		return nil, err
	}
	data, ok := res.Data.(*metadata.ImageResourceData)
	// the pixels outlive the resource; only the loader's hold is released
	if err := ts.assetManager.UnloadAsset(res); err != nil {
		core.LogWarn("failed to unload `%s`: %s", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("`%s` is not an image: %w", path, core.ErrTextureLoad)
	}
	return data, nil
}

func (ts *TextureSystem) upload(path string, data *metadata.ImageResourceData) (*metadata.Texture, error) {
	texture := &metadata.Texture{
		Name:         filepath.Base(path),
		Path:         path,
		Width:        data.Width,
		Height:       data.Height,
		ChannelCount: data.ChannelCount,
		Filter:       metadata.TextureFilterModeLinear,
		Repeat:       metadata.TextureRepeatRepeat,
		Mipmaps:      true,
	}
	if err := ts.renderer.TextureCreate(data.Pixels, texture); err != nil {
		return nil, err
	}
	core.LogDebug("texture `%s` uploaded (%dx%d)", texture.Name, texture.Width, texture.Height)
	return texture, nil
}

/**
 * @brief Decodes the image again on a worker and swaps it in from the main
 * thread once JobSystem.Update runs. On failure the current texture stays.
 */
func (ts *TextureSystem) Reload() error {
	path := ts.Config.Path
	return ts.jobSystem.Submit(metadata.JobTask{
		InputParams: path,
		OnStart: func(params interface{}) (interface{}, error) {
			return ts.decode(params.(string))
		},
		OnComplete: func(result interface{}) {
			texture, err := ts.upload(path, result.(*metadata.ImageResourceData))
			if err != nil {
				core.LogWarn("keeping the previous texture: %s", err)
				return
			}
			texture.Generation = ts.texture.Generation + 1
			if err := ts.renderer.TextureDestroy(ts.texture); err != nil {
				core.LogWarn("failed to destroy the previous texture: %s", err)
			}
			ts.texture = texture
			core.LogInfo("texture `%s` reloaded (generation %d)", texture.Name, texture.Generation)
		},
		OnFailure: func(err error) {
			core.LogWarn("keeping the previous texture: %s", err)
		},
	})
}

/**
 * @brief Binds the texture to unit 0 and writes the sampler, the light and
 * the fixed texture profile. The tag does not affect what is written.
 */
func (ts *TextureSystem) Apply(shader *metadata.Shader, tag metadata.Tag) error {
	if err := ts.renderer.TextureBind(ts.texture, TextureUnit); err != nil {
		core.LogError("failed to bind texture `%s`: %s", ts.texture.Name, err)
		return err
	}
	if err := writeUniforms(ts.renderer, shader, []uniformValue{
		{metadata.UniformSampler, int32(TextureUnit)},
	}); err != nil {
		return err
	}
	if err := ApplyLight(ts.renderer, shader, ts.materialSystem.Light()); err != nil {
		return err
	}
	return writeUniforms(ts.renderer, shader, []uniformValue{
		{metadata.UniformKa, ts.Profile.Ka},
		{metadata.UniformKd, ts.Profile.Kd},
		{metadata.UniformKs, ts.Profile.Ks},
		{metadata.UniformExponent, ts.Profile.Exponent},
	})
}
