package systems

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/stilllife/engine/assets"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The directory holding the GLSL sources. */
	ShaderDir string
}

type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for shader name->program
	Lookup map[string]*metadata.Shader
	// The configuration every program was created from, by name.
	configs map[string]*metadata.ShaderConfig
	// sub systems
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
}

func NewShaderSystem(config *ShaderSystemConfig, am *assets.AssetManager, r *renderer.Renderer) (*ShaderSystem, error) {
	if len(config.ShaderDir) == 0 {
		err := fmt.Errorf("NewShaderSystem - config.ShaderDir must be set")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:       config,
		Lookup:       make(map[string]*metadata.Shader),
		configs:      make(map[string]*metadata.ShaderConfig),
		assetManager: am,
		renderer:     r,
	}, nil
}

func transformUniforms() []metadata.ShaderUniformConfig {
	return []metadata.ShaderUniformConfig{
		{Name: metadata.UniformModel, Type: metadata.ShaderUniformTypeMatrix4, Required: true},
		{Name: metadata.UniformView, Type: metadata.ShaderUniformTypeMatrix4, Required: true},
		{Name: metadata.UniformProjection, Type: metadata.ShaderUniformTypeMatrix4, Required: true},
	}
}

// surfaceUniforms are the colour terms; colourRequired is false when the
// program takes its colour from a sampler instead.
func surfaceUniforms(colourRequired bool) []metadata.ShaderUniformConfig {
	return []metadata.ShaderUniformConfig{
		{Name: metadata.UniformAmbientColour, Type: metadata.ShaderUniformTypeFloat32_4, Required: colourRequired},
		{Name: metadata.UniformDiffuseColour, Type: metadata.ShaderUniformTypeFloat32_4, Required: colourRequired},
		{Name: metadata.UniformSpecularColour, Type: metadata.ShaderUniformTypeFloat32_4, Required: colourRequired},
		{Name: metadata.UniformKa, Type: metadata.ShaderUniformTypeFloat32, Required: true},
		{Name: metadata.UniformKd, Type: metadata.ShaderUniformTypeFloat32, Required: true},
		{Name: metadata.UniformKs, Type: metadata.ShaderUniformTypeFloat32, Required: true},
		{Name: metadata.UniformExponent, Type: metadata.ShaderUniformTypeFloat32, Required: true},
	}
}

func lightUniforms() []metadata.ShaderUniformConfig {
	return []metadata.ShaderUniformConfig{
		{Name: metadata.UniformLightColour, Type: metadata.ShaderUniformTypeFloat32_4, Required: true},
		{Name: metadata.UniformLightPosition, Type: metadata.ShaderUniformTypeFloat32_3, Required: true},
		{Name: metadata.UniformLightAmbient, Type: metadata.ShaderUniformTypeFloat32_4, Required: true},
	}
}

// PhongShaderConfig is the contract of the per-material lighting program.
func PhongShaderConfig() *metadata.ShaderConfig {
	uniforms := transformUniforms()
	uniforms = append(uniforms, surfaceUniforms(true)...)
	uniforms = append(uniforms, lightUniforms()...)
	return &metadata.ShaderConfig{
		Name: metadata.BUILTIN_SHADER_NAME_PHONG,
		Stages: []metadata.ShaderStageConfig{
			{Stage: metadata.ShaderStageVertex, Filename: "phong.vert"},
			{Stage: metadata.ShaderStageFragment, Filename: "phong.frag"},
		},
		Uniforms: uniforms,
	}
}

// TextureShaderConfig is the contract of the texture mapped program.
func TextureShaderConfig() *metadata.ShaderConfig {
	uniforms := transformUniforms()
	uniforms = append(uniforms, surfaceUniforms(false)...)
	uniforms = append(uniforms, lightUniforms()...)
	uniforms = append(uniforms, metadata.ShaderUniformConfig{
		Name: metadata.UniformSampler, Type: metadata.ShaderUniformTypeSampler, Required: true,
	})
	return &metadata.ShaderConfig{
		Name: metadata.BUILTIN_SHADER_NAME_TEXTURE,
		Stages: []metadata.ShaderStageConfig{
			{Stage: metadata.ShaderStageVertex, Filename: "texture.vert"},
			{Stage: metadata.ShaderStageFragment, Filename: "texture.frag"},
		},
		Uniforms: uniforms,
	}
}

func (shaderSystem *ShaderSystem) Initialize() error {
	for _, config := range []*metadata.ShaderConfig{PhongShaderConfig(), TextureShaderConfig()} {
		if _, err := shaderSystem.CreateShader(config); err != nil {
			return err
		}
	}
	return nil
}

/**
 * @brief Shuts down the shader system, destroying every program.
 */
func (shaderSystem *ShaderSystem) Shutdown() error {
	for name, sh := range shaderSystem.Lookup {
		if err := shaderSystem.renderer.ShaderDestroy(sh); err != nil {
			core.LogError(err.Error())
			return err
		}
		delete(shaderSystem.Lookup, name)
	}
	return nil
}

/**
 * @brief Creates a new program with the given config and registers it under
 * config.Name, replacing any program of that name. A required uniform
 * missing from the linked program is a setup error; a missing optional
 * one is only reported at debug level.
 */
func (shaderSystem *ShaderSystem) CreateShader(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	shader, err := shaderSystem.build(config)
	if err != nil {
		return nil, err
	}

	if old, ok := shaderSystem.Lookup[config.Name]; ok {
		shader.Generation = old.Generation + 1
		if err := shaderSystem.renderer.ShaderDestroy(old); err != nil {
			core.LogWarn("failed to destroy previous `%s` program: %s", config.Name, err)
		}
	}
	shaderSystem.Lookup[config.Name] = shader
	shaderSystem.configs[config.Name] = config
	core.LogInfo("shader `%s` ready (generation %d)", config.Name, shader.Generation)
	return shader, nil
}

func (shaderSystem *ShaderSystem) build(config *metadata.ShaderConfig) (*metadata.Shader, error) {
	sources := make(map[metadata.ShaderStage]string, len(config.Stages))
	for _, stage := range config.Stages {
		path := filepath.Join(shaderSystem.Config.ShaderDir, stage.Filename)
		res, err := shaderSystem.assetManager.LoadAsset(path, nil)
		if err != nil {
			err = fmt.Errorf("shader `%s`: %w", config.Name, err)
			core.LogError(err.Error())
			return nil, err
		}
		sources[stage.Stage] = res.Data.(string)
		if err := shaderSystem.assetManager.UnloadAsset(res); err != nil {
			core.LogWarn("failed to unload `%s`: %s", path, err)
		}
	}

	shader, err := shaderSystem.renderer.ShaderCreate(config, sources)
	if err != nil {
		core.LogError("failed to create shader `%s`: %s", config.Name, err)
		return nil, err
	}

	required, optional := shader.MissingUniforms(config)
	for _, name := range optional {
		core.LogDebug("shader `%s`: optional uniform `%s` not present, writes will be skipped", config.Name, name)
	}
	if len(required) > 0 {
		if derr := shaderSystem.renderer.ShaderDestroy(shader); derr != nil {
			core.LogWarn("failed to destroy incomplete `%s` program: %s", config.Name, derr)
		}
		err := fmt.Errorf("shader `%s` lacks %v: %w", config.Name, required, core.ErrUniformMissing)
		core.LogError(err.Error())
		return nil, err
	}
	return shader, nil
}

func (shaderSystem *ShaderSystem) Get(name string) (*metadata.Shader, error) {
	sh, ok := shaderSystem.Lookup[name]
	if !ok {
		return nil, fmt.Errorf("`%s`: %w", name, core.ErrShaderNotFound)
	}
	return sh, nil
}

/**
 * @brief Rebuilds every program that has a stage read from path. On
 * failure the previous program stays in use and the error is returned.
 */
func (shaderSystem *ShaderSystem) Reload(path string) error {
	var errs []error
	for name, config := range shaderSystem.configs {
		if !usesFile(shaderSystem.Config.ShaderDir, config, path) {
			continue
		}
		core.LogInfo("reloading shader `%s`", name)
		if _, err := shaderSystem.CreateShader(config); err != nil {
			core.LogWarn("keeping previous `%s` program", name)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func usesFile(dir string, config *metadata.ShaderConfig, path string) bool {
	for _, stage := range config.Stages {
		if filepath.Clean(filepath.Join(dir, stage.Filename)) == filepath.Clean(path) {
			return true
		}
	}
	return false
}
