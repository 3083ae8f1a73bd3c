package stilllife

import (
	"github.com/spaghettifunk/stilllife/engine/math"
)

type pathSide uint8

const (
	sideTop pathSide = iota
	sideLeft
	sideRight
	sideRestart
)

// pathStart is where the apple begins each lap of its triangular path.
var pathStart = math.NewVec2(1.3, 2.2)

const (
	pathStepX     float32 = 0.025
	pathStepY     float32 = 0.025
	pathHalfStepX float32 = 0.0125

	spinStep float32 = 1
)

/**
 * @brief Moves the apple around a triangle and spins the teapot. The
 * animator only holds offsets; Apply computes placements from the base
 * layout every frame, so nothing accumulates across frames.
 */
type Animator struct {
	running bool
	side    pathSide
	path    math.Vec2
	angle   float32
}

func NewAnimator() *Animator {
	a := &Animator{}
	a.Reset()
	return a
}

func (a *Animator) Start() {
	a.running = true
}

func (a *Animator) Stop() {
	a.running = false
}

// Reset stops the animation and puts both objects back at rest.
func (a *Animator) Reset() {
	a.running = false
	a.side = sideTop
	a.path = pathStart
	a.angle = 0
}

func (a *Animator) Running() bool {
	return a.running
}

// Offset is the distance of the apple from its resting place.
func (a *Animator) Offset() math.Vec3 {
	return math.NewVec3(a.path.X-pathStart.X, a.path.Y-pathStart.Y, 0)
}

func (a *Animator) Angle() float32 {
	return a.angle
}

/**
 * @brief Advances one step. Returns false when the animation is stopped
 * and nothing moved.
 */
func (a *Animator) Tick() bool {
	if !a.running {
		return false
	}

	a.angle += spinStep
	if a.angle >= 360 {
		a.angle = 0
	}

	switch a.side {
	case sideTop:
		if a.path.X > 0.5 {
			a.path.X -= pathStepX
			break
		}
		a.side = sideLeft
		fallthrough
	case sideLeft:
		if a.path.Y > 1.4 {
			a.path.X += pathHalfStepX
			a.path.Y -= pathStepY
			break
		}
		a.side = sideRight
		fallthrough
	case sideRight:
		if a.path.X < 1.3 {
			a.path.X += pathHalfStepX
			a.path.Y += pathStepY
			break
		}
		fallthrough
	default:
		a.side = sideTop
		a.path = pathStart
	}
	return true
}

// Apply returns a copy of instances with the apple moved and the teapot spun.
func (a *Animator) Apply(instances []Instance) []Instance {
	out := make([]Instance, len(instances))
	copy(out, instances)
	for i := range out {
		switch out[i].Name {
		case "apple":
			out[i].Placement = out[i].Placement.Translated(a.Offset())
		case "teapot":
			out[i].Placement = out[i].Placement.Rotated(math.NewVec3(0, a.angle, 0))
		}
	}
	return out
}
