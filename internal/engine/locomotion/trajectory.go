// Package locomotion implements teleport locomotion: ballistic arc
// simulation, landing marker placement, and the per-controller
// aim/commit state machine.
package locomotion

import (
	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// Default integration constants. Carried over from the tuning the arc
// shipped with; override via Config.
const (
	DefaultGravityY = -0.1
	DefaultTimeStep = 0.2
	DefaultMaxSteps = 50
)

// Config holds the trajectory integration parameters.
type Config struct {
	Gravity  math.Vec3
	TimeStep float32
	MaxSteps int
}

// DefaultConfig returns the standard arc tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:  math.Vec3{Y: DefaultGravityY},
		TimeStep: DefaultTimeStep,
		MaxSteps: DefaultMaxSteps,
	}
}

// Trajectory is one frame's simulated arc. Samples always starts at the
// origin passed to Simulate. Hit is nil when the step budget ran out
// before any geometry was struck; otherwise the last sample is the hit
// point and no samples exist beyond it.
type Trajectory struct {
	Samples []math.Vec3
	Hit     *collision.Hit
}

// Simulator integrates gravity-curved paths and resolves them against
// scene geometry segment by segment.
type Simulator struct {
	cfg Config
}

// NewSimulator creates a simulator with the given tuning.
func NewSimulator(cfg Config) *Simulator {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = DefaultTimeStep
	}
	return &Simulator{cfg: cfg}
}

// Config returns the simulator's tuning.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Simulate projects an arc from origin along the orientation's forward
// vector. Each step the velocity picks up gravity, and the segment from
// the previous sample to the new one is cast against the scene, bounded
// to the exact segment length so a hit can only occur within that span.
// The first hit truncates the arc: the hit point replaces the unclamped
// sample and later steps are not evaluated.
func (s *Simulator) Simulate(scene *collision.Node, origin math.Vec3, orientation math.Quat) Trajectory {
	dt := s.cfg.TimeStep
	velocity := orientation.Forward()
	position := origin

	samples := make([]math.Vec3, 1, s.cfg.MaxSteps+1)
	samples[0] = origin

	for i := 0; i < s.cfg.MaxSteps; i++ {
		velocity = velocity.Add(s.cfg.Gravity.Scale(dt))
		next := position.Add(velocity.Scale(dt))

		segment := next.Sub(position)
		length := segment.Length()
		if length > 0 && scene != nil {
			ray := collision.Ray{Origin: position, Direction: segment.Scale(1 / length)}
			if hit, ok := scene.Raycast(ray, length); ok {
				samples = append(samples, hit.Point)
				return Trajectory{Samples: samples, Hit: &hit}
			}
		}

		samples = append(samples, next)
		position = next
	}

	return Trajectory{Samples: samples}
}
