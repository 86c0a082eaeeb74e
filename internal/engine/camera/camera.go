// Package camera provides the desktop fallback camera. In a headset the
// view pose comes from tracking; on the desktop this camera emulates the
// head, and its pose doubles as the emulated controller grip.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hauswalk/pkg/math"
)

// FirstPersonCamera is a walk-style camera at eye height.
type FirstPersonCamera struct {
	Position math.Vec3
	Yaw      float32 // Horizontal angle (radians), 0 faces -Z
	Pitch    float32 // Vertical angle (radians), positive looks up

	// Constraints
	MinPitch float32
	MaxPitch float32

	// Sensitivity
	LookSensitivity float32
	MoveSpeed       float32 // World units per second
}

// NewFirstPersonCamera creates a camera with walkthrough defaults.
func NewFirstPersonCamera(eyeHeight float32) *FirstPersonCamera {
	return &FirstPersonCamera{
		Position:        math.Vec3{Y: eyeHeight},
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		LookSensitivity: 0.003,
		MoveSpeed:       2.5,
	}
}

// Orientation returns the camera rotation as a quaternion, yaw then
// pitch.
func (c *FirstPersonCamera) Orientation() math.Quat {
	yaw := math.QuatFromYaw(c.Yaw)
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1}, c.Pitch)
	return yaw.Mul(pitch)
}

// HandleLook updates yaw and pitch from a mouse delta.
func (c *FirstPersonCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch -= deltaY * c.LookSensitivity

	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleMovement moves the camera on the XZ plane relative to its yaw.
// forward and right are -1..1 inputs, dt is the frame time in seconds.
func (c *FirstPersonCamera) HandleMovement(forward, right, dt float32) {
	sin := float32(gomath.Sin(float64(c.Yaw)))
	cos := float32(gomath.Cos(float64(c.Yaw)))

	// Yaw 0 faces -Z.
	dir := math.Vec3{X: -sin, Z: -cos}
	side := math.Vec3{X: cos, Z: -sin}

	step := dir.Scale(forward).Add(side.Scale(right)).Scale(c.MoveSpeed * dt)
	c.Position = c.Position.Add(step)
}
