package locomotion

import (
	"testing"

	"github.com/Faultbox/hauswalk/internal/engine/collision"
	"github.com/Faultbox/hauswalk/pkg/math"
)

// groundQuad builds a horizontal quad at the given height spanning
// [-size, size] on X and Z.
func groundQuad(height, size float32) collision.Quad {
	return collision.Quad{
		Corner: math.Vec3{X: -size, Y: height, Z: -size},
		EdgeU:  math.Vec3{X: 2 * size},
		EdgeV:  math.Vec3{Z: 2 * size},
	}
}

func TestSimulateNoGeometry(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	scene := collision.NewNode("empty")

	traj := sim.Simulate(scene, math.Vec3{Y: 1}, math.QuatIdentity())

	if traj.Hit != nil {
		t.Error("empty scene should yield no collision")
	}
	if len(traj.Samples) != DefaultMaxSteps+1 {
		t.Errorf("sample count: got %d, want %d", len(traj.Samples), DefaultMaxSteps+1)
	}
}

func TestSimulateFirstSampleIsOrigin(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	origin := math.Vec3{X: 2.5, Y: 1.1, Z: -3}

	traj := sim.Simulate(collision.NewNode("empty"), origin, math.QuatIdentity())

	if traj.Samples[0] != origin {
		t.Errorf("first sample: got %v, want %v", traj.Samples[0], origin)
	}
}

func TestSimulatePathGrowsMonotonically(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	traj := sim.Simulate(collision.NewNode("empty"), math.Vec3{Y: 1}, math.QuatIdentity())

	for i := 1; i < len(traj.Samples); i++ {
		if traj.Samples[i].Distance(traj.Samples[i-1]) <= 0 {
			t.Fatalf("segment %d has zero length", i)
		}
	}
}

func TestSimulateFlatGroundScenario(t *testing.T) {
	// Gravity (0,-0.1,0), dt 0.2, start at (0,1,0) facing -Z. The arc
	// descends below y=0 during step 22: segment (0,0.076,-4.2) to
	// (0,-0.012,-4.4) crosses the ground at z = -4.2 - 0.2*(0.076/0.088).
	sim := NewSimulator(DefaultConfig())
	scene := collision.NewNode("house")
	scene.AddChild(collision.NewColliderNode("floor", groundQuad(0, 10)))

	traj := sim.Simulate(scene, math.Vec3{Y: 1}, math.QuatIdentity())

	if traj.Hit == nil {
		t.Fatal("expected collision with the ground")
	}
	if len(traj.Samples) != 23 {
		t.Errorf("sample count: got %d, want 23", len(traj.Samples))
	}
	hit := traj.Hit
	if abs(hit.Point.Y) > 1e-3 {
		t.Errorf("hit Y: got %v, want 0", hit.Point.Y)
	}
	if abs(hit.Point.Z-(-4.372727)) > 1e-3 {
		t.Errorf("hit Z: got %v, want -4.372727", hit.Point.Z)
	}
	if hit.Normal.Distance(math.Vec3{Y: 1}) > 1e-3 {
		t.Errorf("ground normal: got %v, want (0,1,0)", hit.Normal)
	}
	if hit.Node == nil || hit.Node.Name != "floor" {
		t.Error("hit should reference the floor node")
	}
}

func TestSimulateHitTruncatesSamples(t *testing.T) {
	sim := NewSimulator(DefaultConfig())
	scene := collision.NewNode("house")
	scene.AddChild(collision.NewColliderNode("floor", groundQuad(0, 10)))

	traj := sim.Simulate(scene, math.Vec3{Y: 1}, math.QuatIdentity())

	if traj.Hit == nil {
		t.Fatal("expected collision")
	}
	last := traj.Samples[len(traj.Samples)-1]
	if last != traj.Hit.Point {
		t.Errorf("last sample %v should equal hit point %v", last, traj.Hit.Point)
	}
}

func TestSimulateNearestOfStackedObstacles(t *testing.T) {
	// Both quads sit inside the same descending segment (0.076 to
	// -0.012); the upper one is nearer along the ray and must win.
	sim := NewSimulator(DefaultConfig())
	scene := collision.NewNode("house")
	upper := scene.AddChild(collision.NewColliderNode("upper", groundQuad(0.07, 10)))
	scene.AddChild(collision.NewColliderNode("lower", groundQuad(0.02, 10)))

	traj := sim.Simulate(scene, math.Vec3{Y: 1}, math.QuatIdentity())

	if traj.Hit == nil {
		t.Fatal("expected collision")
	}
	if traj.Hit.Node != upper {
		t.Errorf("struck node: got %q, want %q", traj.Hit.Node.Name, "upper")
	}
	if abs(traj.Hit.Point.Y-0.07) > 1e-3 {
		t.Errorf("hit Y: got %v, want 0.07", traj.Hit.Point.Y)
	}
}

func TestSimulateWallHit(t *testing.T) {
	// Vertical wall across the arc's path produces a collision with a
	// horizontal normal.
	sim := NewSimulator(DefaultConfig())
	scene := collision.NewNode("house")
	scene.AddChild(collision.NewColliderNode("wall", collision.Quad{
		Corner: math.Vec3{X: -5, Y: -5, Z: -2},
		EdgeU:  math.Vec3{X: 10},
		EdgeV:  math.Vec3{Y: 10},
	}))

	traj := sim.Simulate(scene, math.Vec3{Y: 1}, math.QuatIdentity())

	if traj.Hit == nil {
		t.Fatal("expected collision with the wall")
	}
	if abs(traj.Hit.Normal.Y) > 1e-3 {
		t.Errorf("wall normal should be horizontal, got %v", traj.Hit.Normal)
	}
	if abs(traj.Hit.Point.Z-(-2)) > 1e-3 {
		t.Errorf("hit Z: got %v, want -2", traj.Hit.Point.Z)
	}
}

func TestSimulateCustomStepBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 5
	sim := NewSimulator(cfg)

	traj := sim.Simulate(collision.NewNode("empty"), math.Vec3{Y: 1}, math.QuatIdentity())

	if len(traj.Samples) != 6 {
		t.Errorf("sample count: got %d, want 6", len(traj.Samples))
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
