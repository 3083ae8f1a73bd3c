package systems

import (
	"errors"
	"path/filepath"

	"github.com/spaghettifunk/stilllife/engine/assets"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type SystemManagerConfig struct {
	ShaderDir           string
	TexturePath         string
	MaterialLibraryPath string
	Slices              uint32
	Stacks              uint32
	CameraEye           math.Vec3
	CameraTarget        math.Vec3
	CameraUp            math.Vec3
}

type SystemManager struct {
	CameraSystem   *CameraSystem
	GeometrySystem *GeometrySystem
	JobSystem      *JobSystem
	MaterialSystem *MaterialSystem
	ShaderSystem   *ShaderSystem
	TextureSystem  *TextureSystem

	config       *SystemManagerConfig
	assetManager *assets.AssetManager
}

func NewSystemManager(config *SystemManagerConfig, am *assets.AssetManager, r *renderer.Renderer) (*SystemManager, error) {
	js, err := NewJobSystem(1, 4)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 8,
		Eye:            config.CameraEye,
		Target:         config.CameraTarget,
		Up:             config.CameraUp,
	})
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		Slices: config.Slices,
		Stacks: config.Stacks,
	}, r)
	if err != nil {
		return nil, err
	}
	ssys, err := NewShaderSystem(&ShaderSystemConfig{
		ShaderDir: config.ShaderDir,
	}, am, r)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		LibraryPath: config.MaterialLibraryPath,
	}, am, r)
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		Path: config.TexturePath,
	}, js, ms, am, r)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		CameraSystem:   cs,
		GeometrySystem: gs,
		JobSystem:      js,
		MaterialSystem: ms,
		ShaderSystem:   ssys,
		TextureSystem:  ts,
		config:         config,
		assetManager:   am,
	}, nil
}

/**
 * @brief Compiles the programs, loads the material table and the texture
 * and builds the buffer sets of the given shapes. Only a texture failure
 * is tolerated.
 */
func (sm *SystemManager) Initialize(shapes ...metadata.ShapeKind) error {
	if err := sm.ShaderSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.MaterialSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Initialize(); err != nil {
		return err
	}
	return sm.GeometrySystem.Initialize(shapes...)
}

// Update runs the callbacks of finished background jobs and returns how many ran.
func (sm *SystemManager) Update() int {
	return sm.JobSystem.Update()
}

/**
 * @brief Routes a changed file to the system that owns it. Reload failures
 * are logged and the previous state stays in use.
 */
func (sm *SystemManager) OnAssetChanged(path string) error {
	var err error
	switch {
	case sm.isFile(path, sm.config.MaterialLibraryPath):
		err = sm.MaterialSystem.Reload()
	case sm.isFile(path, sm.config.TexturePath):
		err = sm.TextureSystem.Reload()
	default:
		err = sm.ShaderSystem.Reload(path)
	}
	if err != nil {
		core.LogWarn("reload of `%s` failed: %s", path, err)
	}
	return err
}

func (sm *SystemManager) isFile(path, configured string) bool {
	return len(configured) > 0 && filepath.Clean(path) == filepath.Clean(configured)
}

func (sm *SystemManager) Shutdown() error {
	// the job system goes first so no callback runs against released resources
	errs := []error{
		sm.JobSystem.Shutdown(),
		sm.GeometrySystem.Shutdown(),
		sm.TextureSystem.Shutdown(),
		sm.ShaderSystem.Shutdown(),
		sm.MaterialSystem.Shutdown(),
		sm.CameraSystem.Shutdown(),
	}
	return errors.Join(errs...)
}
