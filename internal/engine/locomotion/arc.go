package locomotion

import (
	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// DefaultSurfaceThreshold is the minimum upward normal component for a
// hit to count as a landable surface. Rejects near-vertical geometry
// such as walls.
const DefaultSurfaceThreshold = 0.9

// ValidityFunc decides whether a hit is a safe teleport destination.
type ValidityFunc func(hit collision.Hit) bool

// SurfaceValidity accepts hits whose normal's upward component exceeds
// the threshold.
func SurfaceValidity(threshold float32) ValidityFunc {
	return func(hit collision.Hit) bool {
		return hit.Normal.Y > threshold
	}
}

// PolylineSink receives the arc's sampled points. The point buffer is
// rebuilt on every update, never patched incrementally.
type PolylineSink interface {
	SetPoints(points []math.Vec3)
	SetVisible(visible bool)
}

// MarkerSink receives the landing marker's pose and visibility.
type MarkerSink interface {
	SetPose(position math.Vec3, yaw float32)
	SetVisible(visible bool)
}

// Arc owns a trajectory simulator and a landing marker. Each update it
// recomputes the arc from the controller's current pose, filters the
// collision through the validity predicate, and drives the polyline and
// marker sinks.
type Arc struct {
	sim      *Simulator
	line     PolylineSink
	marker   MarkerSink
	validity ValidityFunc

	markerPos     math.Vec3
	markerVisible bool
}

// NewArc creates an arc visualizer. A nil validity falls back to
// SurfaceValidity with the default threshold.
func NewArc(sim *Simulator, line PolylineSink, marker MarkerSink, validity ValidityFunc) *Arc {
	if validity == nil {
		validity = SurfaceValidity(DefaultSurfaceThreshold)
	}
	return &Arc{
		sim:      sim,
		line:     line,
		marker:   marker,
		validity: validity,
	}
}

// Update recomputes the arc from the controller's current world pose and
// refreshes the polyline and marker. The marker becomes visible only if
// the arc struck geometry and the hit passes the validity predicate; on
// an invalid or absent hit it is hidden in place, keeping its last
// position.
func (a *Arc) Update(scene *collision.Node, position math.Vec3, orientation math.Quat, heading float32) {
	traj := a.sim.Simulate(scene, position, orientation)

	a.line.SetPoints(traj.Samples)
	a.line.SetVisible(true)

	if traj.Hit != nil && a.validity(*traj.Hit) {
		a.markerPos = traj.Hit.Point
		a.markerVisible = true
		if traj.Hit.Normal != (math.Vec3{}) {
			a.marker.SetPose(a.markerPos, heading)
		}
		a.marker.SetVisible(true)
		return
	}

	a.markerVisible = false
	a.marker.SetVisible(false)
}

// Hide suppresses both the polyline and the marker.
func (a *Arc) Hide() {
	a.markerVisible = false
	a.line.SetVisible(false)
	a.marker.SetVisible(false)
}

// MarkerVisible reports whether the marker currently shows a valid
// landing spot.
func (a *Arc) MarkerVisible() bool {
	return a.markerVisible
}

// MarkerPosition returns the marker's last placed position. Only
// meaningful while MarkerVisible is true.
func (a *Arc) MarkerPosition() math.Vec3 {
	return a.markerPos
}
