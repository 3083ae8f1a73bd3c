package components

import (
	"github.com/spaghettifunk/stilllife/engine/math"
)

/** @brief The vertical field of view, in degrees. */
const DEFAULT_CAMERA_FOV float32 = 45.0

const (
	DEFAULT_CAMERA_NEAR_CLIP float32 = 0.1
	DEFAULT_CAMERA_FAR_CLIP  float32 = 100.0
)

/**
 * @brief A fixed look-at camera. The view matrix is rebuilt lazily
 * when the eye, target or up vector change.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief The point the camera looks at. */
	Target math.Vec3
	/** @brief The up direction; it does not need to be unit length. */
	Up math.Vec3

	FOV      float32
	NearClip float32
	FarClip  float32

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix math.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera(position, target, up math.Vec3) *Camera {
	camera := &Camera{}
	camera.Reset()
	camera.Position = position
	camera.Target = target
	camera.Up = up
	return camera
}

func (c *Camera) Reset() {
	c.Position = math.NewVec3Zero()
	c.Target = math.NewVec3(0, 0, -1)
	c.Up = math.NewVec3Up()
	c.FOV = DEFAULT_CAMERA_FOV
	c.NearClip = DEFAULT_CAMERA_NEAR_CLIP
	c.FarClip = DEFAULT_CAMERA_FAR_CLIP
	c.IsDirty = true
	c.ViewMatrix = math.NewMat4Identity()
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

func (c *Camera) SetTarget(target math.Vec3) {
	c.Target = target
	c.IsDirty = true
}

func (c *Camera) GetView() math.Mat4 {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4LookAt(c.Position, c.Target, c.Up)
		c.IsDirty = false
	}
	return c.ViewMatrix
}

// GetProjection returns the perspective projection for the given aspect ratio.
func (c *Camera) GetProjection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.NewMat4Perspective(math.DegToRad(c.FOV), aspect, c.NearClip, c.FarClip)
}

func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalized()
}
