package metadata

import "github.com/spaghettifunk/stilllife/engine/math"

/** @brief Settings handed to a backend at initialization. */
type RendererBackendConfig struct {
	ApplicationName string
	Width           uint32
	Height          uint32
	/** @brief The colour the framebuffer is cleared to each frame. */
	ClearColour math.Vec4
}

/** @brief Per frame data threaded through the frontend. */
type FrameData struct {
	FrameNumber uint64
	DeltaTime   float64
}
