package systems

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/components"
)

type cameraLookup struct {
	camera         *components.Camera
	referenceCount uint16
}

type CameraSystem struct {
	Config *CameraSystemConfig
	Lookup map[string]*cameraLookup
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The maximum number of named cameras. */
	MaxCameraCount uint16
	/** @brief Where the default camera sits and what it looks at. */
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		Lookup:        make(map[string]*cameraLookup, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(config.Eye, config.Target, config.Up),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	clear(cs.Lookup)
	return nil
}

/**
 * @brief Acquires a camera by name. If one is not found, a new one is
 * created at the default camera's pose. The reference counter is
 * incremented.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	entry, ok := cs.Lookup[name]
	if !ok {
		if len(cs.Lookup) >= int(cs.Config.MaxCameraCount) {
			err := fmt.Errorf("func Acquire - no free camera slot for `%s`. Adjust camera system config to allow more", name)
			core.LogError(err.Error())
			return nil, err
		}
		core.LogDebug("Creating new camera named '%s'...", name)
		entry = &cameraLookup{
			camera: components.NewCamera(cs.Config.Eye, cs.Config.Target, cs.Config.Up),
		}
		cs.Lookup[name] = entry
	}
	entry.referenceCount++
	return entry.camera, nil
}

/**
 * @brief Releases a camera with the given name. When the counter reaches 0
 * the camera is forgotten.
 */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	entry, ok := cs.Lookup[name]
	if !ok {
		core.LogWarn("CameraSystem Release failed lookup for `%s`. Nothing was done.", name)
		return
	}
	entry.referenceCount--
	if entry.referenceCount == 0 {
		delete(cs.Lookup, name)
	}
}

func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.DefaultCamera
}
