package locomotion

import (
	gomath "math"

	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// DefaultDeadzone is the stick deflection magnitude that starts aiming.
const DefaultDeadzone = 0.5

// State is a controller's locomotion mode.
type State int

const (
	// StateIdle means no arc is being drawn.
	StateIdle State = iota
	// StateAiming means the arc is recomputed and drawn every frame.
	StateAiming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAiming:
		return "aiming"
	}
	return "unknown"
}

// FrameRebaser installs the offset transform realizing a committed
// teleport.
type FrameRebaser interface {
	SetOffset(target math.Vec3, angle float32)
}

// Controller is the per-controller aim/commit state machine. All
// transitions happen inside the per-frame callback; there is one
// transition at most per frame.
type Controller struct {
	state    State
	arc      *Arc
	deadzone float32
	heading  float32
}

// NewController creates a controller in the idle state. A zero or
// negative deadzone falls back to the default.
func NewController(arc *Arc, deadzone float32) *Controller {
	if deadzone <= 0 {
		deadzone = DefaultDeadzone
	}
	return &Controller{arc: arc, deadzone: deadzone}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Arc returns the visualizer this controller drives.
func (c *Controller) Arc() *Arc {
	return c.arc
}

// Start begins aiming. No-op if already aiming.
func (c *Controller) Start() {
	if c.state == StateAiming {
		return
	}
	c.state = StateAiming
}

// Update recomputes the arc at the controller's current pose. Effective
// only while aiming; the heading is retained for a later commit.
func (c *Controller) Update(scene *collision.Node, position math.Vec3, orientation math.Quat, heading float32) {
	if c.state != StateAiming {
		return
	}
	c.heading = heading
	c.arc.Update(scene, position, orientation, heading)
}

// Cancel abandons aiming and hides all visuals. The active frame is
// untouched. No-op while idle.
func (c *Controller) Cancel() {
	if c.state != StateAiming {
		return
	}
	c.state = StateIdle
	c.arc.Hide()
}

// Commit ends aiming and installs the marker position and stored
// heading as the new frame offset. The state reset and visual hide
// complete before the frame swap; exactly one offset update results.
func (c *Controller) Commit(frames FrameRebaser) {
	if c.state != StateAiming {
		return
	}
	target := c.arc.MarkerPosition()
	heading := c.heading
	c.state = StateIdle
	c.arc.Hide()
	frames.SetOffset(target, heading)
}

// Drive applies one frame of the analog-stick policy. While idle, a
// deflection past the deadzone starts aiming. While aiming, a fully
// released stick commits if the marker shows a valid landing spot and
// cancels otherwise; any other deflection re-aims with the heading set
// to the stick angle relative to the controller's facing yaw.
func (c *Controller) Drive(scene *collision.Node, position math.Vec3, orientation math.Quat, x, y float32, frames FrameRebaser) {
	switch c.state {
	case StateIdle:
		if (math.Vec2{X: x, Y: y}).Length() > c.deadzone {
			c.Start()
		}
	case StateAiming:
		if x == 0 && y == 0 {
			if c.arc.MarkerVisible() {
				c.Commit(frames)
			} else {
				c.Cancel()
			}
			return
		}
		heading := float32(gomath.Atan2(float64(-x), float64(-y))) + orientation.Yaw()
		c.Update(scene, position, orientation, heading)
	}
}
